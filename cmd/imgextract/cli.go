package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/imgextract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *Config
	HTML      imgextract.Extractor
	SVG       imgextract.Extractor
	Fetcher   imgextract.Fetcher
	Clipboard imgextract.Clipboard
	NewStore  func(dir string) imgextract.ImageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log extraction and fetch details to stderr"`

	Extract ExtractCmd `cmd:"" help:"Replace embedded images with file_img_url placeholders"`
	List    ListCmd    `cmd:"" help:"List embedded images without rewriting"`
}

// input returns the input flags of the selected command.
func (c *CLI) input(command string) *InputFlags {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "extract":
		return &c.Extract.InputFlags
	case "list":
		return &c.List.InputFlags
	}
	return nil
}

// InputFlags selects where markup is read from. With no FILE, --url or
// --paste the markup is read from stdin.
type InputFlags struct {
	File    string        `arg:"" optional:"" type:"path" help:"HTML or SVG file to read (\"-\" for stdin)"`
	URL     string        `short:"u" help:"Fetch markup from URL"`
	Paste   bool          `short:"p" help:"Read markup from the clipboard"`
	SVG     bool          `xor:"mode" help:"Treat input as a standalone SVG document"`
	HTML    bool          `xor:"mode" help:"Treat input as HTML, even for .svg files"`
	Browser bool          `short:"b" help:"Fetch --url through headless Chrome"`
	Timeout time.Duration `short:"t" help:"Fetch timeout for --url"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	InputFlags `embed:""`

	Names  map[int]string `name:"name" short:"n" mapsep:"none" placeholder:"ID=NAME" help:"File name for image ID (repeatable)"`
	Lazy   map[int]bool   `mapsep:"none" placeholder:"ID=BOOL" help:"Lazy loading for <img> ID (repeatable)"`
	Dir    string         `short:"d" type:"path" help:"Save images to directory"`
	Output string         `short:"o" type:"path" help:"Write generated code to file instead of stdout"`
	Copy   bool           `short:"c" help:"Copy generated code to the clipboard"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	InputFlags `embed:""`

	JSON bool `help:"Print records as JSON"`
}
