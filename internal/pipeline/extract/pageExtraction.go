package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/akolanti/DoodleAPI/internal/llm"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Extractor turns uploaded bytes into ordered pages of plain text.
type Extractor interface {
	ExtractPages(ctx context.Context, data []byte, mimeType string, sourceURL string) ([]docModel.Page, error)
}

type extractor struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func NewExtractor(provider llm.Provider) Extractor {
	return &extractor{
		provider: provider,
		logger:   logger_i.NewLogger("PageExtraction"),
	}
}

func (e *extractor) ExtractPages(ctx context.Context, data []byte, mimeType string, sourceURL string) ([]docModel.Page, error) {
	switch {
	case mimeType == "application/pdf":
		return e.extractPDF(data)
	case strings.HasPrefix(mimeType, "image/"):
		return e.extractImage(ctx, data, mimeType, sourceURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

func (e *extractor) extractPDF(data []byte) ([]docModel.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("failed opening pdf bytes")
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []docModel.Page
	numPages := reader.NumPage()
	e.logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// keep going, a single bad page should not sink the document
			e.logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}

		pages = append(pages, docModel.Page{
			PageNumber: i,
			Text:       content,
		})
	}
	return pages, nil
}

// extractImage OCRs an uploaded image into a single synthetic page 1.
func (e *extractor) extractImage(ctx context.Context, data []byte, mimeType string, sourceURL string) ([]docModel.Page, error) {
	text, err := e.provider.ExtractImageText(ctx, data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from image: %w", err)
	}
	return []docModel.Page{
		{
			PageNumber: 1,
			Text:       text,
			ImageURL:   sourceURL,
		},
	}, nil
}

// protectExtract runs GetPlainText behind a timeout; some malformed PDFs make
// the parser spin.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		return "", errors.New("timeout")
	}
}
