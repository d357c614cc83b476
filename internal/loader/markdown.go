package loader

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tripguide/internal/domain"
)

type frontMatter struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	URL   string   `yaml:"url"`
	Tags  []string `yaml:"tags"`
}

// parseMarkdown turns a markdown file into a document. Optional YAML front
// matter between "---" lines supplies id, title, url and tags. Without an id
// the relative path (extension dropped, separators as dashes) is used; without
// a title the first "# " heading, then the file name.
func parseMarkdown(path, rel string, data []byte) (domain.Document, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	var fm frontMatter
	body := text
	if strings.HasPrefix(text, "---\n") {
		if end := strings.Index(text[4:], "\n---"); end >= 0 {
			if err := yaml.Unmarshal([]byte(text[4:4+end]), &fm); err != nil {
				return domain.Document{}, err
			}
			body = text[4+end+4:]
			body = strings.TrimPrefix(body, "\n")
		}
	}

	doc := domain.Document{
		ID:      fm.ID,
		Title:   fm.Title,
		URL:     fm.URL,
		Content: strings.TrimSpace(body),
		Tags:    fm.Tags,
	}
	if doc.ID == "" {
		stem := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		doc.ID = strings.ReplaceAll(stem, "/", "-")
	}
	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	if doc.Title == "" {
		doc.Title = filepath.Base(path)
	}
	return doc, nil
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}
