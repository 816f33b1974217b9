package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		fileName string
		want     Mode
	}{
		{"png by mime", "image/png", "report.bin", ModeImage},
		{"jpeg by mime", "image/jpeg", "photo", ModeImage},
		{"pdf by mime", "application/pdf", "certificate", ModePDF},
		{"mime wins over extension", "application/pdf", "scan.png", ModePDF},
		{"image by extension", "", "birth-cert.JPG", ModeImage},
		{"pdf by extension", "application/octet-stream", "report.pdf", ModePDF},
		{"generic mime unknown extension", "application/octet-stream", "record.docx", ModeDownload},
		{"nothing known", "", "", ModeDownload},
		{"mime with whitespace", "  image/webp ", "x", ModeImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.mimeType, tt.fileName))
		})
	}
}

func TestIsInline(t *testing.T) {
	assert.True(t, IsInline("data:application/pdf;base64,JVBERi0x"))
	assert.False(t, IsInline("https://storage.example.com/doc.pdf"))
	assert.False(t, IsInline(""))
}
