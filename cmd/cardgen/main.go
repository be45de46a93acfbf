// Command cardgen renders greeting cards to PNG files without the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/youruser/subhasayah/internal/card"
	"github.com/youruser/subhasayah/internal/config"
	"github.com/youruser/subhasayah/internal/fonts"
	imagepkg "github.com/youruser/subhasayah/internal/image"
	"github.com/youruser/subhasayah/internal/logger"
	"github.com/youruser/subhasayah/internal/presets"
	"github.com/youruser/subhasayah/internal/util"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml")
		photoPath  = flag.String("photo", "", "photo file (JPEG, PNG, GIF or WebP)")
		message    = flag.String("message", "", "greeting text; defaults to the language preset")
		title      = flag.String("title", "", "title line")
		theme      = flag.String("theme", "", "light, blue or dark")
		lang       = flag.String("lang", "", "preset language (te, en, sa)")
		fontFamily = flag.String("font", "", "font family list")
		fontSize   = flag.Float64("font-size", 0, "body font size in preview pixels")
		signature  = flag.String("signature", "", "signature line")
		qrText     = flag.String("qr", "", "text to encode in a corner QR badge")
		count      = flag.Int("count", 1, "number of cards")
		size       = flag.Int("size", 0, "output size in pixels; defaults to render.export_size")
		outDir     = flag.String("out", "out", "output directory")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	zl, err := logger.New(logger.Options{Level: cfg.Log.Level, Development: true})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	if err := run(zl, cfg, options{
		photo: *photoPath, message: *message, title: *title, theme: *theme, lang: *lang,
		font: *fontFamily, fontSize: *fontSize, signature: *signature, qr: *qrText,
		count: *count, size: *size, out: *outDir,
	}); err != nil {
		zl.Fatal("cardgen failed", zap.Error(err))
	}
}

type options struct {
	photo, message, title, theme, lang, font, signature, qr string
	fontSize                                                float64
	count, size                                             int
	out                                                     string
}

func run(zl *zap.Logger, cfg *config.Config, opt options) error {
	if opt.count < 1 || opt.count > cfg.Render.MaxCount {
		return fmt.Errorf("count must be between 1 and %d", cfg.Render.MaxCount)
	}
	if opt.size <= 0 {
		opt.size = cfg.Render.ExportSize
	}

	reg := fonts.NewRegistry(zl.Named("fonts"))
	for _, f := range cfg.Fonts {
		if err := reg.RegisterFile(f.Family, f.Path); err != nil {
			return fmt.Errorf("register font %s: %w", f.Family, err)
		}
	}
	ps := presets.Builtin(cfg.App.Year)
	if extra, err := presets.LoadPresetsFromDataDir(cfg.DataDir, cfg.App.Year); err == nil {
		ps = presets.Merge(ps, extra)
	}
	if opt.lang == "" {
		if lang, kept := presets.PickLanguage(ps, cfg.Render.DefaultLanguage, reg.Covers, "en"); !kept {
			zl.Warn("no registered font can draw the default language",
				zap.String("configured", cfg.Render.DefaultLanguage),
				zap.String("using", lang),
			)
			cfg.Render.DefaultLanguage = lang
		}
	}

	style, err := card.NewStyle(card.Options{
		Theme:     opt.theme,
		Lang:      opt.lang,
		Message:   opt.message,
		Title:     opt.title,
		Font:      opt.font,
		FontSize:  opt.fontSize,
		Signature: opt.signature,
		QRText:    opt.qr,
	}, card.Defaults{
		Year:       cfg.App.Year,
		Theme:      cfg.Render.DefaultTheme,
		Language:   cfg.Render.DefaultLanguage,
		FontSize:   cfg.Render.DefaultFontSize,
		CanvasSize: cfg.Render.PreviewSize,
	}, ps)
	if err != nil {
		return err
	}

	photo := loadPhoto(zl, opt.photo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := &card.Exporter{
		AppName: cfg.App.Name,
		Year:    cfg.App.Year,
		Workers: cfg.Render.Workers,
		Fonts:   reg,
		Logger:  zl.Named("export"),
	}
	batch := exp.Export(ctx, style, photo, opt.count, opt.size)
	for _, it := range batch.Items {
		path := filepath.Join(opt.out, it.Name)
		if err := util.WriteFileAtomic(path, it.Data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		zl.Info("wrote card", zap.String("path", path), zap.Int("bytes", len(it.Data)))
	}
	if batch.Skipped > 0 {
		zl.Warn("some cards were skipped", zap.Int("skipped", batch.Skipped), zap.Int("written", len(batch.Items)))
	}
	if len(batch.Items) == 0 {
		return fmt.Errorf("no cards written")
	}
	return nil
}

// loadPhoto returns nil when there is no usable photo; the card then
// renders on its background alone.
func loadPhoto(zl *zap.Logger, path string) image.Image {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		zl.Warn("cannot read photo, continuing without it", zap.String("path", path), zap.Error(err))
		return nil
	}
	n, err := imagepkg.Normalize(raw)
	if err != nil {
		zl.Warn("cannot use photo, continuing without it", zap.String("path", path), zap.Error(err))
		return nil
	}
	zl.Info("photo loaded",
		zap.Stringer("orientation", n.Orientation),
		zap.Int("source_width", n.SourceWidth),
		zap.Int("source_height", n.SourceHeight),
	)
	return n.Image
}
