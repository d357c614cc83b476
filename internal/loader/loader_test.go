package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripguide/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSONList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.json", `[
		{"id": "a", "title": "Rail", "url": "https://example.com/a", "content": "Trains run daily.", "tags": ["transport"]},
		{"id": "b", "title": "Food", "content": "Plov."}
	]`)

	docs, err := New(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, domain.Document{
		ID: "a", Title: "Rail", URL: "https://example.com/a", Content: "Trains run daily.", Tags: []string{"transport"},
	}, docs[0])
	assert.Equal(t, "b", docs[1].ID)
}

func TestLoad_JSONObject(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.json", `{"documents": [{"id": "a", "content": "x"}]}`)
	docs, err := New(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "list.yaml", "- id: a\n  title: Rail\n  content: |\n    Trains run daily.\n\n    Taxis are metered.\n")
	obj := writeFile(t, dir, "obj.yml", "documents:\n  - id: b\n    content: Plov.\n    tags: [food]\n")

	docs, err := New(list, nil).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Trains run daily.\n\nTaxis are metered.\n", docs[0].Content)

	docs, err = New(obj, nil).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"food"}, docs[0].Tags)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.toml", "[[documents]]\nid = \"a\"\ntitle = \"Rail\"\ncontent = \"Trains run daily.\"\n\n[[documents]]\nid = \"b\"\ncontent = \"Plov.\"\n")
	docs, err := New(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Rail", docs[0].Title)
	assert.Equal(t, "b", docs[1].ID)
}

func TestLoad_MarkdownDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "samarkand.md", "---\nid: smk\ntitle: Samarkand\nurl: https://example.com/smk\ntags: [city]\n---\n\nRegistan square.\n\nShah-i-Zinda.\n")
	writeFile(t, dir, "regions/bukhara.md", "# Bukhara guide\n\nOld town walks.\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "khiva.markdown", "Ichan Kala fortress.")

	docs, err := New(dir, nil).Load()
	require.NoError(t, err)
	require.Len(t, docs, 3)

	byID := map[string]domain.Document{}
	for _, d := range docs {
		byID[d.ID] = d
	}
	smk := byID["smk"]
	assert.Equal(t, "Samarkand", smk.Title)
	assert.Equal(t, "https://example.com/smk", smk.URL)
	assert.Equal(t, []string{"city"}, smk.Tags)
	assert.Equal(t, "Registan square.\n\nShah-i-Zinda.", smk.Content)

	bukhara, ok := byID["regions-bukhara"]
	require.True(t, ok)
	assert.Equal(t, "Bukhara guide", bukhara.Title)

	khiva, ok := byID["khiva"]
	require.True(t, ok)
	assert.Equal(t, "khiva.markdown", khiva.Title)
}

func TestLoad_Validation(t *testing.T) {
	dir := t.TempDir()
	missingID := writeFile(t, dir, "missing.json", `[{"id": " ", "content": "x"}, {"id": "a", "content": "y"}]`)
	docs, err := New(missingID, nil).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)

	dup := writeFile(t, dir, "dup.json", `[{"id": "a"}, {"id": "a"}]`)
	_, err = New(dup, nil).Load()
	assert.ErrorIs(t, err, ErrDuplicateID)

	empty := writeFile(t, dir, "empty.json", `[]`)
	docs, err = New(empty, nil).Load()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := New(filepath.Join(dir, "absent.json"), nil).Load()
	assert.ErrorIs(t, err, os.ErrNotExist)

	csv := writeFile(t, dir, "kb.csv", "id,content")
	_, err = New(csv, nil).Load()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := writeFile(t, dir, "bad.yaml", "documents: [unclosed")
	_, err = New(bad, nil).Load()
	assert.Error(t, err)
}

func TestExtensions(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, DefaultExtensions, New(dir, nil).Extensions())
	assert.Equal(t, []string{".txt"}, New(dir, []string{".txt"}).Extensions())

	file := writeFile(t, dir, "kb.YAML", "[]")
	assert.Equal(t, []string{".yaml"}, New(file, nil).Extensions())
}
