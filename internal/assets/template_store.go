package assets

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"
	"time"

	"go-meme-generator/internal/config"
	"go-meme-generator/internal/defs"
	"go-meme-generator/pkg/render"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// TemplateLoadError — шаблон не удалось загрузить или декодировать.
type TemplateLoadError struct {
	Template string
	Path     string
	Err      error
}

func (e *TemplateLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("template %q: load failed: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("template %q (%s): load failed: %v", e.Template, e.Path, e.Err)
}

func (e *TemplateLoadError) Unwrap() error { return e.Err }

// TemplateStore управляет загрузкой, декодированием и кэшированием шаблонов.
// Load безопасен для вызова из нескольких горутин.
type TemplateStore struct {
	templates []defs.TemplateDefinition
	cache     *cache.Cache
	ttl       time.Duration
	open      func(path string) (io.ReadCloser, error)
	logger    *zap.Logger
}

// NewTemplateStore создаёт хранилище. cleanup == 0 отключает фоновую очистку кэша.
func NewTemplateStore(templateDefs []defs.TemplateDefinition, ttl, cleanup time.Duration, logger *zap.Logger) (*TemplateStore, error) {
	if err := defs.ValidateTemplates(templateDefs); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateStore{
		templates: templateDefs,
		cache:     cache.New(ttl, cleanup),
		ttl:       ttl,
		open:      func(path string) (io.ReadCloser, error) { return os.Open(path) },
		logger:    logger,
	}, nil
}

// Templates возвращает каталог в исходном порядке.
func (s *TemplateStore) Templates() []defs.TemplateDefinition {
	out := make([]defs.TemplateDefinition, len(s.templates))
	copy(out, s.templates)
	return out
}

// Load возвращает декодированное изображение шаблона.
func (s *TemplateStore) Load(ctx context.Context, id string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TemplateLoadError{Template: id, Err: err}
	}
	if img, ok := s.cache.Get(id); ok {
		return img.(image.Image), nil
	}

	def, err := defs.Find(s.templates, id)
	if err != nil {
		return nil, &TemplateLoadError{Template: id, Err: err}
	}

	img, err := s.decode(def.Path)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.logger.Warn("template load failed", zap.String("template", id), zap.String("path", def.Path), zap.Error(err))
		return nil, &TemplateLoadError{Template: id, Path: def.Path, Err: err}
	}

	s.cache.Set(id, img, s.ttl)
	s.logger.Debug("template loaded", zap.String("template", id), zap.Stringer("bounds", img.Bounds()))
	return img, nil
}

func (s *TemplateStore) decode(path string) (image.Image, error) {
	if spec, ok := strings.CutPrefix(path, defs.BuiltinPrefix); ok {
		c, err := render.ParseHexColor(spec)
		if err != nil {
			return nil, err
		}
		size := int(config.TemplateSize)
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		return img, nil
	}

	f, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// Preload загружает все шаблоны параллельно. Возвращает первую ошибку,
// остальные шаблоны всё равно попадают в кэш.
func (s *TemplateStore) Preload(ctx context.Context) error {
	var eg errgroup.Group
	for _, def := range s.templates {
		eg.Go(func() error {
			_, err := s.Load(ctx, def.ID)
			return err
		})
	}
	return eg.Wait()
}

// Invalidate выкидывает все шаблоны из кэша (например, после замены файлов).
func (s *TemplateStore) Invalidate() {
	s.cache.Flush()
	s.logger.Info("template cache flushed")
}
