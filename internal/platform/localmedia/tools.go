package localmedia

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yungbote/strokesheet/internal/platform/ctxutil"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

// Tools is the glue around the system binary that turns a page SVG into a
// printable PDF.
//
// Supported converters:
// - rsvg-convert (librsvg2-bin), the default
// - chromium / google-chrome in headless mode
type Tools interface {
	AssertReady(ctx context.Context) error
	ConvertSVGToPDF(ctx context.Context, svgPath string, pdfPath string) error
}

const (
	ConverterRSVG     = "rsvg-convert"
	ConverterChromium = "chromium"
)

type Options struct {
	// Converter is ConverterRSVG or ConverterChromium.
	Converter string
	// Binary overrides the executable looked up in PATH.
	Binary  string
	Timeout time.Duration
}

type tools struct {
	log       *logger.Logger
	converter string
	binary    string
	timeout   time.Duration
}

func New(log *logger.Logger, opts Options) (Tools, error) {
	conv := strings.ToLower(strings.TrimSpace(opts.Converter))
	if conv == "" {
		conv = ConverterRSVG
	}
	bin := strings.TrimSpace(opts.Binary)
	switch conv {
	case ConverterRSVG:
		if bin == "" {
			bin = "rsvg-convert"
		}
	case ConverterChromium, "chrome", "google-chrome":
		conv = ConverterChromium
		if bin == "" {
			bin = "chromium"
		}
	default:
		return nil, fmt.Errorf("unsupported SVG converter %q", opts.Converter)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &tools{
		log:       log.With("service", "MediaTools", "converter", conv),
		converter: conv,
		binary:    bin,
		timeout:   timeout,
	}, nil
}

func (m *tools) AssertReady(ctx context.Context) error {
	if _, err := exec.LookPath(m.binary); err != nil {
		return fmt.Errorf("missing required binary %q in PATH: %w", m.binary, err)
	}
	return nil
}

func (m *tools) ConvertSVGToPDF(ctx context.Context, svgPath string, pdfPath string) error {
	ctx = ctxutil.Default(ctx)
	if svgPath == "" {
		return fmt.Errorf("svgPath required")
	}
	if pdfPath == "" {
		return fmt.Errorf("pdfPath required")
	}
	if err := m.AssertReady(ctx); err != nil {
		return err
	}
	absSVG, err := filepath.Abs(svgPath)
	if err != nil {
		return fmt.Errorf("resolve svg path: %w", err)
	}
	absPDF, err := filepath.Abs(pdfPath)
	if err != nil {
		return fmt.Errorf("resolve pdf path: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	args := m.args(absSVG, absPDF)
	cmd := exec.CommandContext(ctx, m.binary, args...)
	// Relative <image> references resolve against the page's directory.
	cmd.Dir = filepath.Dir(absSVG)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s convert failed: %w; out=%s", m.converter, err, string(out))
	}
	if st, statErr := os.Stat(absPDF); statErr != nil || st.Size() == 0 {
		return fmt.Errorf("pdf output missing at %s; %s out=%s", absPDF, m.converter, string(out))
	}
	m.log.Debug("converted page", "svg", absSVG, "pdf", absPDF, "took", time.Since(start))
	return nil
}

func (m *tools) args(svgPath, pdfPath string) []string {
	return converterArgs(m.converter, svgPath, pdfPath)
}

func converterArgs(converter, svgPath, pdfPath string) []string {
	switch converter {
	case ConverterChromium:
		return []string{
			"--headless",
			"--disable-gpu",
			// lets us run without CAP_SYS_ADMIN in containers
			"--no-sandbox",
			"--no-pdf-header-footer",
			"--print-to-pdf=" + pdfPath,
			"file://" + svgPath,
		}
	default:
		return []string{"-f", "pdf", "-o", pdfPath, svgPath}
	}
}
