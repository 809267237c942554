package eventscout

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ImageExtensions lists the file extensions treated as images.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// IsImageFile reports whether filename has an image extension (case-insensitive).
func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FileExtractor turns an uploaded file into text suitable for prompting.
type FileExtractor interface {
	ExtractFile(ctx context.Context, filename string, content []byte) (string, error)
}

// Ensure file extractors implement FileExtractor at compile time.
var (
	_ FileExtractor = PlainText{}
	_ FileExtractor = OCRPlaceholder{}
	_ FileExtractor = (*FileRouter)(nil)
)

// PlainText returns file content unchanged.
type PlainText struct{}

// ExtractFile returns content as a string.
func (PlainText) ExtractFile(_ context.Context, _ string, content []byte) (string, error) {
	return string(content), nil
}

// OCRPlaceholder stands in for an OCR backend. It names the file instead of
// reading text from the image.
type OCRPlaceholder struct{}

// ExtractFile returns a fixed placeholder naming the file.
func (OCRPlaceholder) ExtractFile(_ context.Context, filename string, _ []byte) (string, error) {
	return fmt.Sprintf("[Image file: %s. OCR processing would be applied here in production.]", filename), nil
}

// FileRouter dispatches image files to Image and everything else to Text.
type FileRouter struct {
	Text  FileExtractor
	Image FileExtractor
}

// NewFileRouter returns a router using PlainText for text and OCRPlaceholder for images.
func NewFileRouter() *FileRouter {
	return &FileRouter{Text: PlainText{}, Image: OCRPlaceholder{}}
}

// ExtractFile routes the file by extension.
func (r *FileRouter) ExtractFile(ctx context.Context, filename string, content []byte) (string, error) {
	if IsImageFile(filename) {
		return r.Image.ExtractFile(ctx, filename, content)
	}
	return r.Text.ExtractFile(ctx, filename, content)
}

// NormalizeFile returns the prompt text for a file using the default router.
func NormalizeFile(content, filename string) string {
	// Neither default variant can fail.
	text, _ := NewFileRouter().ExtractFile(context.Background(), filename, []byte(content))
	return text
}
