package service

import (
	"context"
	"studyshare-be/internal/constant"
	"studyshare-be/internal/pkg/serverutils"
)

type IPdfNormalizerService interface {
	Normalize(ctx context.Context, raw []byte) ([]byte, error)
}

type pdfNormalizerService struct {
	objectsPerTick int
}

func NewPdfNormalizerService() IPdfNormalizerService {
	return &pdfNormalizerService{objectsPerTick: constant.PdfObjectsPerTick}
}

func (s *pdfNormalizerService) Normalize(ctx context.Context, raw []byte) ([]byte, error) {
	return serverutils.NormalizePdf(ctx, raw, s.objectsPerTick)
}
