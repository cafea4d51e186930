package serverutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type PdfPage struct {
	PageNumber int
	Content    string
}

// NormalizePdf parses raw, reapplies every page's declared MediaBox and
// writes the document back with object and xref streams. Pages are touched
// in batches of objectsPerTick; ctx is checked between batches.
// Every failure, including a panic inside pdfcpu, comes back as a *DecodeError.
func NormalizePdf(ctx context.Context, raw []byte, objectsPerTick int) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &DecodeError{Err: fmt.Errorf("pdf processing panicked: %v", r)}
		}
	}()

	if objectsPerTick <= 0 {
		objectsPerTick = 1
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true

	pdfCtx, err := api.ReadContext(bytes.NewReader(raw), conf)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, &DecodeError{Err: err}
	}

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if (pageNr-1)%objectsPerTick == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &DecodeError{Err: err}
			}
		}

		pageDict, _, inherited, err := pdfCtx.PageDict(pageNr, false)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("page %d: %w", pageNr, err)}
		}
		if pageDict == nil || inherited == nil || inherited.MediaBox == nil {
			continue
		}

		pageDict.Update("MediaBox", inherited.MediaBox.Array())
	}

	var buf bytes.Buffer
	if err := api.WriteContext(pdfCtx, &buf); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("failed to serialize pdf: %w", err)}
	}

	return buf.Bytes(), nil
}

func ExtractTextPerPage(reader io.Reader) ([]PdfPage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	readerAt := bytes.NewReader(data)
	content, err := pdf.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	var pages []PdfPage

	for pageIndex := 1; pageIndex <= content.NumPage(); pageIndex++ {
		page := content.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}

		clean := strings.TrimSpace(text)
		if clean != "" {
			pages = append(pages, PdfPage{
				PageNumber: pageIndex,
				Content:    clean,
			})
		}
	}

	return pages, nil
}

// NormalizePreview trims text and cuts it to maxLen bytes on a rune boundary.
func NormalizePreview(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	if len(text) <= maxLen {
		return text
	}

	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + "..."
}
