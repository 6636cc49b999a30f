package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/imgextract"
	"github.com/fwojciec/imgextract/clipboard"
	"github.com/fwojciec/imgextract/etree"
	"github.com/fwojciec/imgextract/fs"
	"github.com/fwojciec/imgextract/goquery"
	imghttp "github.com/fwojciec/imgextract/http"
	"github.com/fwojciec/imgextract/rod"
	imgslog "github.com/fwojciec/imgextract/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Input for "-" and for a missing FILE argument.
	Stdin io.Reader

	// Services for end-to-end testing. Defaults are used when nil.
	Fetcher   imgextract.Fetcher
	Clipboard imgextract.Clipboard
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
		Stdin:      os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("imgextract"),
		kong.Description("Extract base64 images from HTML and replace them with file_img_url placeholders"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'imgextract --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set IMGEXTRACT_CONFIG to use a different config file\n")
		return err
	}
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	html := goquery.NewExtractor()
	html.MaxInputSize = cfg.maxInputSize()
	svg := etree.NewExtractor()
	svg.MaxInputSize = cfg.maxInputSize()
	deps.HTML = imgslog.NewLoggingExtractor(html, deps.Logger)
	deps.SVG = imgslog.NewLoggingExtractor(svg, deps.Logger)

	deps.Clipboard = m.Clipboard
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.NewClipboard()
	}
	deps.NewStore = func(dir string) imgextract.ImageStore {
		return fs.NewImageStore(dir)
	}

	// Fetchers are only created for URL input.
	if in := cli.input(kongCtx.Command()); in != nil && in.URL != "" {
		fetcher, err := m.openFetcher(in, cfg)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()
		retrying := imghttp.NewRetryFetcher(fetcher, imghttp.WithRetryLogger(deps.Logger))
		deps.Fetcher = imgslog.NewLoggingFetcher(retrying, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openFetcher(in *InputFlags, cfg *Config) (imgextract.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	timeout := in.Timeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}

	if in.Browser || cfg.Browser {
		if timeout == 0 {
			timeout = rod.DefaultFetchTimeout
		}
		return rod.NewFetcher(rod.WithFetchTimeout(timeout))
	}

	if timeout == 0 {
		timeout = imghttp.DefaultFetchTimeout
	}
	return imghttp.NewFetcher(
		imghttp.WithTimeout(timeout),
		imghttp.WithMaxBodySize(int64(cfg.maxInputSize())),
	), nil
}

// printError writes err the way users see it: application errors by their
// message, anything else verbatim.
func printError(w io.Writer, err error) {
	var e *imgextract.Error
	if errors.As(err, &e) {
		fmt.Fprintf(w, "error: %s\n", e.Message)
		return
	}
	fmt.Fprintf(w, "error: %s\n", err)
}
