// Command wp2md converts a WordPress WXR export into Markdown files, prints
// statistics about an export, or previews a single converted item.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-wp2md"
	wp2mdcmd "github.com/goliatone/go-wp2md/internal/commands/wp2md"
	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitItemsFailed = 2
)

// Globals are accepted before or after any subcommand.
type Globals struct {
	Config      string `name:"config" help:"YAML configuration file merged over the defaults."`
	LogLevel    string `name:"log-level" help:"Minimum log level (trace, debug, info, warn, error)."`
	LogProvider string `name:"log-provider" help:"Logger implementation (console or gologger)."`
	LogFormat   string `name:"log-format" help:"gologger output format (json, console or pretty)."`
	MetricsFile string `name:"metrics-file" help:"Write run metrics in Prometheus text format to this file."`
}

type cli struct {
	Globals

	Create  createCmd  `cmd:"" help:"Write every published post and page as a Markdown file."`
	Stats   statsCmd   `cmd:"" help:"Print statistics about an export without writing anything."`
	Preview previewCmd `cmd:"" help:"Print one converted item selected by slug or post ID."`
}

type createCmd struct {
	XMLFile       string `arg:"" name:"xmlfile" help:"WordPress export file."`
	OutDir        string `name:"outdir" help:"Output directory (defaults to ./out)."`
	LowercaseTags bool   `name:"lowercasetags" help:"Fold tags and categories to lower case."`
	Drafts        bool   `name:"drafts" help:"Also write drafts, pending and scheduled items."`
	Shortcodes    string `name:"shortcodes" help:"Shortcode handling: keep or hugo."`
}

func (c *createCmd) Run(app *application) error {
	outDir := c.OutDir
	if outDir == "" {
		outDir = app.module.Config().OutputDir
	}
	return app.handlers.Create.Execute(app.ctx, wp2mdcmd.CreateCommand{
		Source:        c.XMLFile,
		OutputDir:     outDir,
		LowercaseTags: c.LowercaseTags,
		IncludeDrafts: c.Drafts,
		Shortcodes:    strings.ToLower(c.Shortcodes),
	})
}

type statsCmd struct {
	XMLFile       string `arg:"" name:"xmlfile" help:"WordPress export file."`
	LowercaseTags bool   `name:"lowercasetags" help:"Fold tags and categories to lower case."`
}

func (c *statsCmd) Run(app *application) error {
	return app.handlers.Stats.Execute(app.ctx, wp2mdcmd.StatsCommand{
		Source:        c.XMLFile,
		LowercaseTags: c.LowercaseTags,
	})
}

type previewCmd struct {
	XMLFile       string `arg:"" name:"xmlfile" help:"WordPress export file."`
	Key           string `arg:"" name:"key" help:"Slug or numeric post ID."`
	LowercaseTags bool   `name:"lowercasetags" help:"Fold tags and categories to lower case."`
	Shortcodes    string `name:"shortcodes" help:"Shortcode handling: keep or hugo."`
	HTML          bool   `name:"html" help:"Render the converted Markdown as an HTML page."`
}

func (c *previewCmd) Run(app *application) error {
	return app.handlers.Preview.Execute(app.ctx, wp2mdcmd.PreviewCommand{
		Source:        c.XMLFile,
		Key:           c.Key,
		LowercaseTags: c.LowercaseTags,
		Shortcodes:    strings.ToLower(c.Shortcodes),
		HTML:          c.HTML,
	})
}

type application struct {
	ctx      context.Context
	module   *wp2md.Module
	handlers *wp2md.HandlerSet
	logger   interfaces.Logger
}

type exitRequest struct {
	code int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	var grammar cli
	parser, err := kong.New(&grammar,
		kong.Name("wp2md"),
		kong.Description("Convert WordPress WXR exports into Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitRequest{code: code}) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "wp2md: %v\n", err)
		return exitFailure
	}

	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			code = req.code
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "wp2md: %v\n", err)
		return exitFailure
	}

	cfg, err := loadConfig(grammar.Globals)
	if err != nil {
		fmt.Fprintf(stderr, "wp2md: %v\n", err)
		return exitFailure
	}

	moduleOpts := []wp2md.Option{wp2md.WithLogWriter(stderr)}
	var recorder *wp2md.MetricsRecorder
	if grammar.MetricsFile != "" {
		recorder = wp2md.NewMetricsRecorder()
		moduleOpts = append(moduleOpts, wp2md.WithMetrics(recorder))
	}

	module, err := wp2md.New(cfg, moduleOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "wp2md: invalid configuration: %v\n", err)
		return exitFailure
	}
	handlers, err := module.Commands(stdout)
	if err != nil {
		fmt.Fprintf(stderr, "wp2md: %v\n", err)
		return exitFailure
	}

	app := &application{
		ctx:      context.Background(),
		module:   module,
		handlers: handlers,
		logger:   logging.CLILogger(module.LoggerProvider()),
	}

	code = exitOK
	if err := kctx.Run(app); err != nil {
		code = app.fail(stderr, kctx.Command(), err)
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(grammar.MetricsFile); err != nil {
			app.logger.Error("cli.metrics.write_failed", "path", grammar.MetricsFile, "error", err)
			fmt.Fprintf(stderr, "wp2md: write metrics: %v\n", err)
			if code == exitOK {
				code = exitFailure
			}
		}
	}
	return code
}

func (a *application) fail(stderr io.Writer, command string, err error) int {
	code := exitFailure
	if wp2md.IsItemsFailed(err) {
		code = exitItemsFailed
	}
	a.logger.Error("cli.command.failed", "command", command, "exit_code", code, "error", err)
	fmt.Fprintf(stderr, "wp2md: %v\n", err)
	return code
}

func loadConfig(globals Globals) (wp2md.Config, error) {
	cfg := wp2md.DefaultConfig()
	if path := strings.TrimSpace(globals.Config); path != "" {
		loaded, err := wp2md.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if globals.LogLevel != "" {
		cfg.Logging.Level = globals.LogLevel
	}
	if globals.LogProvider != "" {
		cfg.Logging.Provider = globals.LogProvider
	}
	if globals.LogFormat != "" {
		cfg.Logging.Format = globals.LogFormat
	}
	return cfg, nil
}
