package infrastructure

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"

	"github.com/orbaps/Recruit-AI-1/domain"
)

// Oversized non-document payloads are truncated instead of rejected so a
// plain-text resume with an odd extension still gets evaluated.
const maxRawTextBytes = 10000

// Extractor turns uploaded resume documents into plain text. PDF and DOCX get
// real parsers; anything else is treated as text. An empty result is an
// ExtractionError, which the batch run reports as a per-item failure.
type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

func (e *Extractor) ExtractText(fileName string, data []byte) (string, error) {
	ext := ""
	if idx := strings.LastIndex(fileName, "."); idx != -1 {
		ext = strings.ToLower(fileName[idx+1:])
	}

	var (
		text string
		err  error
	)
	switch ext {
	case "pdf":
		text, err = e.extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	default:
		if len(data) > maxRawTextBytes {
			data = data[:maxRawTextBytes]
		}
		text = string(data)
	}

	if err != nil {
		return "", &domain.ExtractionError{FileName: fileName, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &domain.ExtractionError{FileName: fileName, Err: errors.New("document contains no extractable text")}
	}

	e.logger.Debug("extracted resume text",
		zap.String("file_name", fileName),
		zap.Int("characters", len(text)),
	)
	return text, nil
}

func (e *Extractor) extractPDF(data []byte) (string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}
	if numPages == 0 {
		return "", errors.New("PDF has no pages")
	}

	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			e.logger.Warn("skipping unreadable PDF page", zap.Int("page", i), zap.Error(err))
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			e.logger.Warn("skipping unreadable PDF page", zap.Int("page", i), zap.Error(err))
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			e.logger.Warn("skipping unreadable PDF page", zap.Int("page", i), zap.Error(err))
			continue
		}
		if pageText != "" {
			builder.WriteString(pageText)
			builder.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", errors.New("no text could be extracted from any page")
	}
	return result, nil
}

// extractDOCX reads word/document.xml out of the OOXML container and collects
// the character data, with a newline per paragraph.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open DOCX container: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errors.New("DOCX container has no document part")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document part: %w", err)
	}
	defer rc.Close()

	var builder strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document part: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			builder.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				builder.WriteString("\n")
			}
		}
	}
	return builder.String(), nil
}
