package pdftest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_Structure(t *testing.T) {
	doc := Build("hello (world)")

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-1.4\n")))
	assert.True(t, bytes.HasSuffix(doc, []byte("%%EOF\n")))
	assert.Contains(t, string(doc), `(hello \(world\))`)
	assert.Contains(t, string(doc), "/Count 1")
}

func TestPadded_ReachesSize(t *testing.T) {
	doc := Padded(1<<20, "Midterm Review")

	assert.GreaterOrEqual(t, len(doc), 1<<20)
	assert.Less(t, len(doc), (1<<20)+64)
	assert.True(t, bytes.HasSuffix(doc, []byte("%%EOF\n")))
}
