package intake

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/render/docx"
	"github.com/de-tools/legal-atlas/pkg/render/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract("contract.TXT", []byte("\xef\xbb\xbfThis Agreement is made on 1 May."))

	require.NoError(t, err)
	assert.Equal(t, "This Agreement is made on 1 May.", text)
}

func TestExtract_PlainText_InvalidUTF8(t *testing.T) {
	_, err := Extract("contract.txt", []byte{0xff, 0xfe, 0x00})

	assert.Error(t, err)
}

func TestExtract_DOCX_RenderedReport(t *testing.T) {
	// Given a docx produced by the report renderer
	data, err := docx.NewRenderer().Render(domain.ReportModel{
		Title:       "Lease Review",
		GeneratedAt: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		Sections:    []domain.ReportSection{domain.SummarySection{Text: "Tenant pays rent monthly."}},
	})
	require.NoError(t, err)

	// When
	text, err := Extract("review.docx", data)

	// Then
	require.NoError(t, err)
	assert.Contains(t, text, "Lease Review\n")
	assert.Contains(t, text, "Document Summary\nTenant pays rent monthly.")
}

func TestExtract_DOCX_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extract("broken.docx", buf.Bytes())

	assert.ErrorContains(t, err, "word/document.xml")
}

func TestExtract_PDF_RenderedReport(t *testing.T) {
	// Given a pdf produced by the report renderer
	data, err := pdf.NewRenderer(pdf.DefaultConfig()).Render(domain.ReportModel{
		Title:       "Lease Review",
		GeneratedAt: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		Sections:    []domain.ReportSection{domain.SummarySection{Text: "Tenant pays rent monthly."}},
	})
	require.NoError(t, err)

	// When
	text, err := Extract("review.pdf", data)

	// Then every printed line comes back on its own line, top to bottom
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Lease Review",
		"Generated on 2025-01-02 03:04",
		"Document Summary",
		"Tenant pays rent monthly.",
		"Page 1/1",
	}, strings.Split(text, "\n"))
}

func TestExtract_PDF_Malformed(t *testing.T) {
	_, err := Extract("scan.pdf", []byte("%PDF-1.4 not really a pdf"))

	assert.Error(t, err)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"contract.doc", "contract.rtf", "contract"} {
		_, err := Extract(name, []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	_, err := Extract("empty.txt", []byte("  \n\t "))

	assert.ErrorIs(t, err, ErrNoText)
}
