package main

import (
	"errors"
	"flag"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/subhasayah/internal/api"
	"github.com/youruser/subhasayah/internal/config"
	"github.com/youruser/subhasayah/internal/fonts"
	"github.com/youruser/subhasayah/internal/logger"
	"github.com/youruser/subhasayah/internal/presets"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Options{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	reg := fonts.NewRegistry(zl.Named("fonts"))
	for _, f := range cfg.Fonts {
		if err := reg.RegisterFile(f.Family, f.Path); err != nil {
			zl.Fatal("register font", zap.String("family", f.Family), zap.Error(err))
		}
	}

	// Load presets at startup (best-effort)
	ps := presets.Builtin(cfg.App.Year)
	extra, err := presets.LoadPresetsFromDataDir(cfg.DataDir, cfg.App.Year)
	if err != nil {
		zl.Warn("failed to load preset CSVs at startup", zap.String("data_dir", cfg.DataDir), zap.Error(err))
	} else {
		ps = presets.Merge(ps, extra)
	}
	if lang, kept := presets.PickLanguage(ps, cfg.Render.DefaultLanguage, reg.Covers, "en"); !kept {
		zl.Warn("no registered font can draw the default language, register one under fonts",
			zap.String("configured", cfg.Render.DefaultLanguage),
			zap.String("using", lang),
		)
		cfg.Render.DefaultLanguage = lang
	}

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(zl.Named("http")))
	api.RegisterRoutes(r, api.NewHandler(cfg, reg, ps, zl.Named("api")))

	zl.Info("starting server",
		zap.String("addr", cfg.Addr()),
		zap.Int("presets", len(ps)),
		zap.Strings("fonts", reg.Families()),
	)
	if err := r.Run(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
