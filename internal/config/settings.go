package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Settings — настройки запуска, которые можно поменять без пересборки.
// Порядок: значения по умолчанию -> YAML-файл -> переменные окружения MEME_*.
type Settings struct {
	TemplatesFile string        `yaml:"templates_file" env:"MEME_TEMPLATES_FILE"`
	ClickSound    string        `yaml:"click_sound" env:"MEME_CLICK_SOUND"`
	SoundVolume   float64       `yaml:"sound_volume" env:"MEME_SOUND_VOLUME"`
	ExportSize    int           `yaml:"export_size" env:"MEME_EXPORT_SIZE"`
	OutputDir     string        `yaml:"output_dir" env:"MEME_OUTPUT_DIR"`
	OutputFile    string        `yaml:"output_file" env:"MEME_OUTPUT_FILE"`
	TemplateTTL   time.Duration `yaml:"template_ttl" env:"MEME_TEMPLATE_TTL"`
	LogLevel      string        `yaml:"log_level" env:"MEME_LOG_LEVEL"`
	PprofAddr     string        `yaml:"pprof_addr" env:"MEME_PPROF_ADDR"` // пустая строка выключает pprof
}

// DefaultSettings возвращает настройки по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		SoundVolume: DefaultSoundVolume,
		ExportSize:  ExportSize,
		OutputDir:   DefaultOutputDir,
		OutputFile:  DefaultOutputFile,
		TemplateTTL: DefaultTemplateTTL,
		LogLevel:    "info",
	}
}

// LoadSettings читает YAML (если путь задан и файл существует) и применяет окружение.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Нет файла, остаются значения по умолчанию
		case err != nil:
			return s, fmt.Errorf("failed to read settings file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("failed to unmarshal settings: %w", err)
			}
		}
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, s.Validate()
}

// Validate проверяет значения, которые нельзя молча исправить.
func (s Settings) Validate() error {
	if s.ExportSize <= 0 {
		return fmt.Errorf("export_size must be positive, got %d", s.ExportSize)
	}
	if s.SoundVolume < 0 || s.SoundVolume > 1 {
		return fmt.Errorf("sound_volume must be within [0, 1], got %v", s.SoundVolume)
	}
	if s.OutputFile == "" {
		return errors.New("output_file must not be empty")
	}
	return nil
}

// ExportScale — коэффициент перевода template-space в пиксели экспорта.
func (s Settings) ExportScale() float64 {
	return float64(s.ExportSize) / TemplateSize
}
