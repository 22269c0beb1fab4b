package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTemplateDefinitions(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": "T1", "name": "Drake", "path": "images/1.png"},
		{"id": "T2", "name": "Blank", "path": "builtin:#ffffff"}
	]`)

	templateDefs, err := LoadTemplateDefinitions(path)
	require.NoError(t, err)
	require.Len(t, templateDefs, 2)
	assert.Equal(t, "Drake", templateDefs[0].Name)

	def, err := Find(templateDefs, "T2")
	require.NoError(t, err)
	assert.Equal(t, "builtin:#ffffff", def.Path)
}

func TestLoadTemplateDefinitions_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":     `[]`,
		"duplicate": `[{"id":"a","path":"x"},{"id":"a","path":"y"}]`,
		"no path":   `[{"id":"a"}]`,
		"not json":  `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTemplateDefinitions(writeCatalog(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadTemplateDefinitions(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind_Unknown(t *testing.T) {
	_, err := Find(DefaultTemplates(), "missing")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	require.NoError(t, ValidateTemplates(DefaultTemplates()))
}
