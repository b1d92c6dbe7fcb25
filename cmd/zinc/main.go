// zinc - Zinc grid decoder CLI tool
//
// Usage:
//
//	zinc parse [--pretty] [--path] [file]   Decode a grid and print it as Haystack JSON
//	zinc check [file]                       Report whether the fast path covers a grid
//	zinc scalar <token>                     Decode one scalar token
//	zinc view [--max-rows=N] [file]         Print a grid as a table
//	zinc browse [file]                      Page through a grid interactively
//	zinc serve                              Run the HTTP decode service
//	zinc version                            Print version info
//
// Every command accepts --config=FILE (YAML). Files ending in .gz or .zst
// are decompressed. If no file is given, reads from stdin.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	_ "time/tzdata"

	"github.com/Neumenon/zinc/internal/config"
	"github.com/Neumenon/zinc/internal/input"
	"github.com/Neumenon/zinc/internal/logging"
	"github.com/Neumenon/zinc/internal/render"
	"github.com/Neumenon/zinc/internal/server"
	"github.com/Neumenon/zinc/zinc"
	"go.uber.org/zap"
)

const (
	libVersion  = "0.1.0"
	zincVersion = "3.0"
)

// flags holds the options shared by all commands.
type flags struct {
	config  string
	pretty  bool
	path    bool
	maxRows int
	args    []string
}

func parseFlags(args []string) flags {
	var f flags
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--config="):
			f.config = strings.TrimPrefix(arg, "--config=")
		case arg == "--pretty":
			f.pretty = true
		case arg == "--path":
			f.path = true
		case strings.HasPrefix(arg, "--max-rows="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--max-rows="))
			if err != nil || n < 0 {
				fatal("invalid %s", arg)
			}
			f.maxRows = n
		case strings.HasPrefix(arg, "--") && arg != "--":
			fatal("unknown option: %s", arg)
		default:
			f.args = append(f.args, arg)
		}
	}
	return f
}

// file returns the input path argument, "-" for stdin.
func (f flags) file() string {
	if len(f.args) > 0 {
		return f.args[0]
	}
	return input.Stdin
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "version", "-v", "--version":
		fmt.Printf("zinc %s (Zinc %s)\n", libVersion, zincVersion)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	f := parseFlags(os.Args[2:])
	cfg, err := config.Load(f.config)
	if err != nil {
		fatal("%v", err)
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fatal("%v", err)
	}
	zinc.SetLogger(logger)

	// No full-grammar parser ships with the binaries: grids outside the
	// fast path fail with ErrNoFallback.
	parser := zinc.NewParser(zinc.NoFallback, cfg.ParserOptions(logger)...)

	var code int
	switch cmd {
	case "parse":
		code = cmdParse(parser, f)
	case "check":
		code = cmdCheck(parser, f)
	case "scalar":
		code = cmdScalar(parser, f)
	case "view":
		code = cmdView(parser, f)
	case "browse":
		code = cmdBrowse(parser, f)
	case "serve":
		code = cmdServe(parser, cfg, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		code = 1
	}
	logger.Sync()
	os.Exit(code)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `zinc - Zinc grid decoder (Zinc 3.0)

Usage:
  zinc parse [--pretty] [--path] [file]   Decode a grid and print it as Haystack JSON
  zinc check [file]                       Report whether the fast path covers a grid
  zinc scalar <token>                     Decode one scalar token
  zinc view [--max-rows=N] [file]         Print a grid as a table
  zinc browse [file]                      Page through a grid interactively
  zinc serve                              Run the HTTP decode service
  zinc version                            Print version info

Options:
  --config=FILE       YAML configuration (see internal/config); ZINC_* env vars override it
  --pretty            Indent JSON output
  --path              Print which decoder answered (fast or fallback) to stderr
  --max-rows=N        Limit rows printed by view

Files ending in .gz or .zst are decompressed. If no file is given, reads from stdin.

Examples:
  printf 'ver:"3.0"\nid,val\n@a,12kW\n' | zinc parse
  # Output: {"meta":{"ver":"3.0"},"cols":[{"name":"id"},{"name":"val"}],"rows":[{"id":"r:a","val":"n:12 kW"}]}

  zinc check sites.zinc.gz
  zinc scalar '2024-01-01T08:00:00-05:00 New_York'
  ZINC_SERVER_ADDR=:9090 zinc serve
`)
}

// readGrid decodes the input file through the dispatcher.
func readGrid(p *zinc.Parser, f flags) (*zinc.Grid, error) {
	text, err := input.ReadAll(f.file())
	if err != nil {
		return nil, err
	}
	return p.ParseGrid(text)
}

// cmdParse: Zinc -> Haystack JSON
func cmdParse(p *zinc.Parser, f flags) int {
	text, err := input.ReadAll(f.file())
	if err != nil {
		return fail(err)
	}
	g, path, err := p.ParseGridPath(text)
	if f.path {
		fmt.Fprintf(os.Stderr, "path: %s\n", path)
	}
	if err != nil {
		return fail(err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		return fail(err)
	}
	if f.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fail(err)
		}
		data = buf.Bytes()
	}
	os.Stdout.Write(data)
	fmt.Println()
	return 0
}

// cmdCheck runs the fast path alone and explains a decline. Exit status 2
// means the grid needs the full grammar.
func cmdCheck(p *zinc.Parser, f flags) int {
	text, err := input.ReadAll(f.file())
	if err != nil {
		return fail(err)
	}

	g, err := p.ParseFast(text)
	if err == nil {
		fmt.Printf("fast: %d columns, %d rows\n", len(g.Columns), len(g.Rows))
		return 0
	}

	var ze *zinc.Error
	if !errors.As(err, &ze) {
		return fail(err)
	}
	fmt.Printf("fallback: %s", ze.Kind)
	if ze.Line > 0 {
		fmt.Printf(" at line %d", ze.Line)
	}
	fmt.Printf(": %s", ze.Msg)
	if ze.Token != "" {
		fmt.Printf(" (%q)", ze.Token)
	}
	fmt.Println()
	return 2
}

// cmdScalar decodes each argument as one token.
func cmdScalar(p *zinc.Parser, f flags) int {
	if len(f.args) == 0 {
		return fail(errors.New("scalar: missing token"))
	}
	status := 0
	for _, tok := range f.args {
		v, err := p.ParseScalar(tok)
		if err != nil {
			fmt.Fprintf(os.Stderr, "zinc: %s: %v\n", tok, err)
			status = 1
			continue
		}
		js, _ := json.Marshal(zinc.ScalarJSON(v))
		fmt.Printf("%-8s %s\t%s\n", v.Kind(), v, js)
	}
	return status
}

func cmdView(p *zinc.Parser, f flags) int {
	g, err := readGrid(p, f)
	if err != nil {
		return fail(err)
	}
	fmt.Println(render.Table(g, render.Options{
		Width:    render.TerminalWidth(os.Stdout),
		MaxRows:  f.maxRows,
		ShowMeta: true,
	}))
	return 0
}

func cmdBrowse(p *zinc.Parser, f flags) int {
	if !render.IsTerminal(os.Stdout) {
		return fail(errors.New("browse: stdout is not a terminal, use view"))
	}
	g, err := readGrid(p, f)
	if err != nil {
		return fail(err)
	}
	title := "stdin"
	if name := f.file(); name != input.Stdin {
		title = filepath.Base(name)
	}
	if err := render.Browse(title, g); err != nil {
		return fail(err)
	}
	return 0
}

// cmdServe runs the HTTP service until SIGINT or SIGTERM.
func cmdServe(p *zinc.Parser, cfg *config.Config, logger *zap.Logger) int {
	srv := server.New(p, cfg.Server, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("server failed", zap.Error(err))
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
		return 1
	}
	return 0
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "zinc: %v\n", err)
	return 1
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "zinc: "+format+"\n", args...)
	os.Exit(1)
}
