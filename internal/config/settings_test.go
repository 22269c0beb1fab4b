package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.InDelta(t, 2.7, s.ExportScale(), 1e-9)
}

func TestLoadSettings_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meme.yaml")
	yamlData := `
templates_file: assets/templates.json
export_size: 800
output_file: out.png
template_ttl: 5m
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o644))
	t.Setenv("MEME_OUTPUT_FILE", "env.png")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "assets/templates.json", s.TemplatesFile)
	assert.Equal(t, 800, s.ExportSize)
	assert.Equal(t, 5*time.Minute, s.TemplateTTL)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "env.png", s.OutputFile, "окружение перекрывает YAML")
	assert.Equal(t, DefaultSoundVolume, s.SoundVolume)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export_size: -1\n"), 0o644))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export_size")

	require.NoError(t, os.WriteFile(path, []byte("export_size: [\n"), 0o644))
	_, err = LoadSettings(path)
	require.Error(t, err)
}

func TestLoadSettings_BadEnv(t *testing.T) {
	t.Setenv("MEME_EXPORT_SIZE", "huge")
	_, err := LoadSettings("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
