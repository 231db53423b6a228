package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/skill-matcher/internal/config"
)

// LoadSkills resolves the canonical skill list from the configured source.
// With no source path the inline comma-separated list is used. File sources:
// .txt (one skill per line), .json (string array), .pdf (exported taxonomy
// document, one skill per extracted text line).
func LoadSkills(cfg config.SkillsConfig) ([]string, error) {
	if cfg.Source == "" {
		return splitInline(cfg.Inline), nil
	}

	switch strings.ToLower(filepath.Ext(cfg.Source)) {
	case ".txt":
		data, err := os.ReadFile(cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to read skill list: %w", err)
		}
		return splitLines(string(data)), nil

	case ".json":
		data, err := os.ReadFile(cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to read skill list: %w", err)
		}
		var skills []string
		if err := json.Unmarshal(data, &skills); err != nil {
			return nil, fmt.Errorf("failed to parse skill list: %w", err)
		}
		return trimAll(skills), nil

	case ".pdf":
		text, err := extractPDFText(cfg.Source)
		if err != nil {
			return nil, err
		}
		return splitLines(text), nil

	default:
		return nil, fmt.Errorf("unsupported skill source %q (want .txt, .json or .pdf)", cfg.Source)
	}
}

func splitInline(inline string) []string {
	return trimAll(strings.Split(inline, ","))
}

func splitLines(text string) []string {
	return trimAll(strings.Split(text, "\n"))
}

func trimAll(values []string) []string {
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

func extractPDFText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}
