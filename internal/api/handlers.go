package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/subhasayah/internal/card"
	"github.com/youruser/subhasayah/internal/config"
	"github.com/youruser/subhasayah/internal/fonts"
	imagepkg "github.com/youruser/subhasayah/internal/image"
	"github.com/youruser/subhasayah/internal/presets"
	"github.com/youruser/subhasayah/internal/util"
)

// Handler serves the card API.
type Handler struct {
	cfg      *config.Config
	fonts    *fonts.Registry
	presets  []presets.Preset
	exporter *card.Exporter
	log      *zap.Logger
}

func NewHandler(cfg *config.Config, reg *fonts.Registry, ps []presets.Preset, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		cfg:     cfg,
		fonts:   reg,
		presets: ps,
		exporter: &card.Exporter{
			AppName: cfg.App.Name,
			Year:    cfg.App.Year,
			Workers: cfg.Render.Workers,
			Fonts:   reg,
			Logger:  log.Named("export"),
		},
		log: log,
	}
}

// cardForm is the multipart form accepted by the card endpoints.
type cardForm struct {
	Theme      string  `form:"theme"`
	Lang       string  `form:"lang"`
	Message    string  `form:"message"`
	Title      string  `form:"title"`
	Font       string  `form:"font"`
	FontSize   float64 `form:"font_size"`
	Background string  `form:"bg"`
	Foreground string  `form:"fg"`
	Signature  string  `form:"signature"`
	QRText     string  `form:"qr_text"`
	PhotoURL   string  `form:"photo_url"`
	Count      int     `form:"count"`
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = fmt.Sprintf("%s:%d", h.cfg.App.Name, h.cfg.App.Year)
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil && v > 0 && v <= 2048 {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) themesHandler(c *gin.Context) {
	out := []gin.H{}
	for _, t := range card.Themes() {
		out = append(out, gin.H{"name": t.Name, "bg": card.Hex(t.Background), "fg": card.Hex(t.Foreground)})
	}
	c.JSON(http.StatusOK, gin.H{"themes": out})
}

func (h *Handler) presetsHandler(c *gin.Context) {
	var opt presets.FilterOptions
	if lang := c.Query("lang"); lang != "" {
		opt.Languages = strings.Split(lang, ",")
	}
	opt.FreeWords = c.Query("q")
	out := presets.Filter(h.presets, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "presets": out})
}

func (h *Handler) fontsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"families": h.fonts.Families()})
}

func (h *Handler) previewHandler(c *gin.Context) {
	form, style, photo, ok := h.parseCard(c)
	if !ok {
		return
	}
	out, err := imagepkg.Render(style, photo, h.cfg.Render.PreviewSize, h.fonts)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := card.PNGEncoder(&buf, out); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	h.log.Debug("preview rendered", zap.String("lang", form.Lang), zap.Bool("photo", photo != nil))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) exportHandler(c *gin.Context) {
	form, style, photo, ok := h.parseCard(c)
	if !ok {
		return
	}
	count := form.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > h.cfg.Render.MaxCount {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("count must be between 1 and %d", h.cfg.Render.MaxCount))
		return
	}

	batch := h.exporter.Export(c.Request.Context(), style, photo, count, h.cfg.Render.ExportSize)
	if len(batch.Items) == 0 {
		h.fail(c, http.StatusInternalServerError, fmt.Errorf("no cards exported: %w", errors.Join(failureErrs(batch)...)))
		return
	}
	var buf bytes.Buffer
	if err := batch.WriteZip(&buf); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("X-Skipped-Count", strconv.Itoa(batch.Skipped))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%d.zip"`, h.cfg.App.Name, h.cfg.App.Year))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// parseCard binds the form, builds the style and loads the optional photo.
// On failure it has already written the response.
func (h *Handler) parseCard(c *gin.Context) (cardForm, imagepkg.Style, image.Image, bool) {
	var form cardForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return form, imagepkg.Style{}, nil, false
	}
	style, err := h.buildStyle(form)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return form, style, nil, false
	}
	photo, err := h.loadPhoto(c, form)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, imagepkg.ErrTooLarge):
			status = http.StatusRequestEntityTooLarge
		case errors.Is(err, imagepkg.ErrDecode) || errors.Is(err, imagepkg.ErrInvalidImage):
			status = http.StatusUnprocessableEntity
		}
		h.fail(c, status, err)
		return form, style, nil, false
	}
	return form, style, photo, true
}

func (h *Handler) buildStyle(form cardForm) (imagepkg.Style, error) {
	return card.NewStyle(card.Options{
		Theme:      form.Theme,
		Lang:       form.Lang,
		Message:    form.Message,
		Title:      form.Title,
		Font:       form.Font,
		FontSize:   form.FontSize,
		Background: form.Background,
		Foreground: form.Foreground,
		Signature:  form.Signature,
		QRText:     form.QRText,
	}, card.Defaults{
		Year:       h.cfg.App.Year,
		Theme:      h.cfg.Render.DefaultTheme,
		Language:   h.cfg.Render.DefaultLanguage,
		FontSize:   h.cfg.Render.DefaultFontSize,
		CanvasSize: h.cfg.Render.PreviewSize,
	}, h.presets)
}

func (h *Handler) loadPhoto(c *gin.Context, form cardForm) (image.Image, error) {
	var n *imagepkg.Normalized
	fh, err := c.FormFile("photo")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, util.MaxFetchBytes+1))
		if err != nil {
			return nil, err
		}
		if len(raw) > util.MaxFetchBytes {
			return nil, fmt.Errorf("photo exceeds %d bytes", util.MaxFetchBytes)
		}
		n, err = imagepkg.Normalize(raw)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
		if form.PhotoURL == "" {
			return nil, nil
		}
		n, err = imagepkg.DownloadPhoto(c.Request.Context(), form.PhotoURL, h.cfg.Fetch.Timeout)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	h.log.Debug("photo normalized",
		zap.Stringer("orientation", n.Orientation),
		zap.Int("source_width", n.SourceWidth),
		zap.Int("source_height", n.SourceHeight),
		zap.Int("size", n.Image.Bounds().Dx()),
	)
	return n.Image, nil
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func failureErrs(b card.Batch) []error {
	errs := make([]error, 0, len(b.Failures))
	for _, f := range b.Failures {
		errs = append(errs, f)
	}
	return errs
}
