package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var entries = []models.KnowledgeEntry{
	{ID: "1", Title: "Lathe safety", Category: "Lathe", Status: models.StatusCertified, CreatedAt: "2024-01-02", TechName: "Ann", ProdTime: "5 min read"},
	{ID: "2", Title: "Brake pads", Category: "Auto-Mobiles", Status: models.StatusTraining, CreatedAt: "2024-01-03", TechName: "Bob", ProdTime: "12 min read", Views: 4},
}

func render(t *testing.T, format string, data any) string {
	t.Helper()
	f, err := NewFormatter(format)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, data))
	return buf.String()
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"", "table", "JSON", " yaml "} {
		_, err := NewFormatter(name)
		assert.NoError(t, err, name)
	}
	_, err := NewFormatter("xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestTable_Slice(t *testing.T) {
	out := render(t, "table", entries)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "TECHNAME")
	assert.Contains(t, lines[0], "PRODTIME")
	assert.Contains(t, lines[1], "Lathe safety")
	assert.Contains(t, lines[2], "12 min read")
}

func TestTable_Empty(t *testing.T) {
	assert.Equal(t, "No entries found.\n", render(t, "table", []models.KnowledgeEntry{}))
}

func TestTable_Struct(t *testing.T) {
	out := render(t, "table", entries[1])
	assert.Contains(t, out, "Title:")
	assert.Contains(t, out, "Brake pads")
	assert.Contains(t, out, "Views:")

	var none *models.KnowledgeEntry
	assert.Equal(t, "Nothing selected.\n", render(t, "table", none))
}

func TestTable_TruncatesLongCells(t *testing.T) {
	long := entries[0]
	long.Description = strings.Repeat("x", 100)
	out := render(t, "table", []models.KnowledgeEntry{long})
	assert.Contains(t, out, strings.Repeat("x", maxCell-3)+"...")
	assert.NotContains(t, out, strings.Repeat("x", maxCell))
}

func TestJSON(t *testing.T) {
	out := render(t, "json", entries)
	var got []models.KnowledgeEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, entries, got)
	assert.Contains(t, out, `"prodTime": "5 min read"`)
}

func TestYAML(t *testing.T) {
	out := render(t, "yaml", entries)
	assert.Contains(t, out, "techName: Ann")

	var got []models.KnowledgeEntry
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, entries, got)
}
