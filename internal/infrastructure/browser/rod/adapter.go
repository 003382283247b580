package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"
	"miniclaw/internal/infrastructure/htmltext"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxWidth = 1024
	defaultQuality  = 80
	idleWait        = 2 * time.Second
)

type BrowserConfig struct {
	Headless  bool
	NoSandbox bool
	// Bin overrides the browser binary; empty lets rod locate or download one.
	Bin      string
	Timeout  time.Duration
	MaxWidth int
	Quality  int
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless: true,
		Timeout:  defaultTimeout,
		MaxWidth: defaultMaxWidth,
		Quality:  defaultQuality,
	}
}

// BrowserAdapter drives a single Chrome tab. The browser is launched on
// first use so that processes which never call a browser tool never start one.
type BrowserAdapter struct {
	cfg    BrowserConfig
	logger output.LoggerPort

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func NewBrowserAdapter(cfg BrowserConfig, logger output.LoggerPort) *BrowserAdapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = defaultMaxWidth
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = defaultQuality
	}
	return &BrowserAdapter{cfg: cfg, logger: logger}
}

func (b *BrowserAdapter) ensurePage() (*rod.Page, error) {
	if b.page != nil {
		return b.page, nil
	}

	l := launcher.New().
		Headless(b.cfg.Headless).
		NoSandbox(b.cfg.NoSandbox)
	if b.cfg.Bin != "" {
		l = l.Bin(b.cfg.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	b.logger.Info("Browser started", "headless", b.cfg.Headless)

	b.launcher = l
	b.browser = browser
	b.page = page
	return page, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	page, err := b.ensurePage()
	if err != nil {
		return err
	}

	p := page.Context(ctx).Timeout(b.cfg.Timeout)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	p.WaitIdle(idleWait)

	return nil
}

func (b *BrowserAdapter) GetPageContent(ctx context.Context) (*entity.PageContent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	page, err := b.ensurePage()
	if err != nil {
		return nil, err
	}
	p := page.Context(ctx).Timeout(b.cfg.Timeout)

	info, err := p.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to read page info: %w", err)
	}

	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML: %w", err)
	}

	return &entity.PageContent{
		URL:   info.URL,
		Title: info.Title,
		HTML:  html,
		Text:  htmltext.ExtractText(html, nil),
	}, nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	page, err := b.ensurePage()
	if err != nil {
		return nil, err
	}

	raw, err := page.Context(ctx).Timeout(b.cfg.Timeout).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(b.cfg.Quality),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	return downsize(raw, b.cfg.MaxWidth, b.cfg.Quality)
}

func (b *BrowserAdapter) CurrentURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
	b.browser, b.launcher, b.page = nil, nil, nil
}

// downsize scales the image to at most maxWidth pixels wide and re-encodes
// it as JPEG.
func downsize(raw []byte, maxWidth, quality int) (*entity.Screenshot, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}
