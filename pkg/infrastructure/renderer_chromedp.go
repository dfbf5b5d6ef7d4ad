package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"resume-builder/internal/usecase"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// initialViewportHeight only sizes the first layout; screenshots of the
// capture node cover its full height.
const initialViewportHeight = 1123

type RasterOptions struct {
	ChromePath  string
	SettleDelay time.Duration
	Timeout     time.Duration
}

// ChromedpRasterizer captures HTML surfaces with headless Chrome.
type ChromedpRasterizer struct {
	opts RasterOptions
	log  *zap.Logger
}

func NewChromedpRasterizer(opts RasterOptions, log *zap.Logger) *ChromedpRasterizer {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ChromedpRasterizer{opts: opts, log: log}
}

func (r *ChromedpRasterizer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	path := r.opts.ChromePath
	if path == "" {
		path = os.Getenv("CHROME_PATH")
	}
	if path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	return opts
}

// Rasterize loads html from a temp file, waits for the settle delay and
// screenshots the node matched by selector at the given scale.
func (r *ChromedpRasterizer) Rasterize(ctx context.Context, html, selector string, width int, scale float64) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.opts.Timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var found bool
	var buf []byte
	start := time.Now()
	err = chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(width), initialViewportHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}).
				Do(ctx)
		}),
		chromedp.Navigate("file://"+filepath.ToSlash(htmlPath)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.opts.SettleDelay),
		chromedp.Evaluate("document.querySelector("+strconv.Quote(selector)+") !== null", &found),
	)
	if err != nil {
		return nil, fmt.Errorf("load surface: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", usecase.ErrNoRenderableNode, selector)
	}

	if err := chromedp.Run(runCtx, chromedp.ScreenshotScale(selector, scale, &buf, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("screenshot %s: %w", selector, err)
	}
	r.log.Debug("surface rasterized",
		zap.Int("width", width),
		zap.Float64("scale", scale),
		zap.Int("bytes", len(buf)),
		zap.Duration("took", time.Since(start)),
	)
	return buf, nil
}
