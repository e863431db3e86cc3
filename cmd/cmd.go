package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/akamensky/argparse"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/pm1-tools/pm1/config"
	"github.com/pm1-tools/pm1/mcpserver"
	"github.com/pm1-tools/pm1/plgn"
	"github.com/pm1-tools/pm1/pm1"
	"github.com/pm1-tools/pm1/printer"
	"github.com/pm1-tools/pm1/server"
	"github.com/pm1-tools/pm1/util"
)

const (
	exitOK      = 0
	exitGivenUp = 1
	exitInvalid = 2
)

type options struct {
	Number     string
	Table      bool
	JSON       bool
	Raw        bool
	MaxBound   int
	DebugLevel int
	Plugins    string
	Deploy     bool
	Listen     string
	MCP        bool
	NoColor    bool
	Version    bool
}

func parseArgs(args []string) (*options, string, error) {
	parser := argparse.NewParser("pm1", "Factor a positive integer with Pollard's p-1 method")
	number := parser.StringPositional(&argparse.Options{Help: "Positive integer to factor (prompted for when omitted)"})
	tablePrint := parser.Flag("t", "table", &argparse.Options{Help: "Output factors as table"})
	jsonPrint := parser.Flag("j", "json", &argparse.Options{Help: "Output result as JSON"})
	rawPrint := parser.Flag("", "raw", &argparse.Options{Help: "An Output Easy to Parse"})
	maxBound := parser.Int("b", "max-bound", &argparse.Options{Help: "Largest smoothness bound (sqrt of the number) the sieve may use, also in --deploy and --mcp"})
	debugLevel := parser.Int("", "debug-level", &argparse.Options{Help: "Set debug level (1=every step, 2=factors only, 3=silent)"})
	plugins := parser.String("", "plugins", &argparse.Options{Help: "Comma-separated list of enabled plugins [default, debug, steplog]"})
	deploy := parser.Flag("", "deploy", &argparse.Options{Help: "Start the HTTP API server"})
	listen := parser.String("", "listen", &argparse.Options{Help: "Listen address for --deploy, e.g. :1080"})
	mcpMode := parser.Flag("", "mcp", &argparse.Options{Help: "Serve the factor tool over MCP stdio"})
	noColor := parser.Flag("", "no-color", &argparse.Options{Help: "Disable colored output"})
	ver := parser.Flag("v", "version", &argparse.Options{Help: "Print version info and exit"})

	if err := parser.Parse(args); err != nil {
		return nil, parser.Usage(err), err
	}

	return &options{
		Number:     *number,
		Table:      *tablePrint,
		JSON:       *jsonPrint,
		Raw:        *rawPrint,
		MaxBound:   *maxBound,
		DebugLevel: *debugLevel,
		Plugins:    *plugins,
		Deploy:     *deploy,
		Listen:     *listen,
		MCP:        *mcpMode,
		NoColor:    *noColor,
		Version:    *ver,
	}, "", nil
}

// merge applies command line values over the loaded preference.
func merge(opts *options, pref *config.Preference) {
	if opts.MaxBound > 0 {
		pref.MaxBound = config.ClampBound(opts.MaxBound)
		pref.ServeMaxBound = pref.MaxBound
	}
	if opts.DebugLevel > 0 {
		pref.DebugLevel = opts.DebugLevel
	}
	if opts.Plugins != "" {
		pref.Plugins = opts.Plugins
	}
	if opts.Listen != "" {
		pref.Listen = opts.Listen
	}
	switch {
	case opts.JSON:
		pref.Output = "json"
	case opts.Table:
		pref.Output = "table"
	case opts.Raw:
		pref.Output = "raw"
	}
}

func searchConfig(pref *config.Preference) pm1.Config {
	return pm1.Config{
		MaxBound: pref.MaxBound,
		Plugins:  plgn.CreatePlugins(pref.Plugins, pref.DebugLevel),
	}
}

func Execute() {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(run(os.Args, os.Stdin, interactive))
}

func run(args []string, in io.Reader, interactive bool) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		fmt.Fprint(printer.Output, usage)
		return exitInvalid
	}
	if opts.NoColor || util.EnvNoColor {
		color.NoColor = true
	}

	pref, err := config.InitConfig()
	if err != nil {
		log.Println(err)
		return exitInvalid
	}
	merge(opts, pref)
	if pref.DebugLevel > 0 && pref.DebugLevel <= 2 && !hasPlugin(pref.Plugins, "debug") {
		pref.Plugins += ",debug"
	}

	if opts.Version {
		printer.Version()
		printer.CopyRight()
		return exitOK
	}

	if opts.Deploy {
		info := buildListenInfo(pref.Listen)
		fmt.Fprintf(printer.Output, "pm1 API listening on %s\n", info.Binding)
		if info.Access != "" && info.Access != info.Binding {
			fmt.Fprintf(printer.Output, "Access it via %s\n", info.Access)
		}
		if err := server.Run(pref.Listen, pm1.Config{MaxBound: pref.ServeMaxBound}); err != nil {
			log.Fatalln(err)
		}
		return exitOK
	}

	if opts.MCP {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mcpserver.Run(ctx, pm1.Config{MaxBound: pref.ServeMaxBound}); err != nil {
			log.Fatalln(err)
		}
		return exitOK
	}

	if pref.Output == "basic" {
		printer.Logo()
	}

	number, err := obtainNumber(opts.Number, in, interactive)
	if err != nil {
		if !errors.Is(err, pm1.ErrInvalidInput) {
			log.Println(err)
		}
		printer.PrintInvalidInput()
		return exitInvalid
	}

	res, err := pm1.FindFactors(number, searchConfig(pref))
	if err != nil {
		if errors.Is(err, pm1.ErrBoundTooLarge) {
			fmt.Fprintf(printer.Output, "%v\nRaise --max-bound to allow a larger sieve.\n", err)
			return exitInvalid
		}
		log.Println(err)
		return exitInvalid
	}

	switch pref.Output {
	case "json":
		r, err := json.Marshal(res)
		if err != nil {
			log.Println(err)
			return exitInvalid
		}
		fmt.Fprintln(printer.Output, string(r))
	case "table":
		printer.FactorTablePrinter(res)
	case "raw":
		printer.EasyPrinter(res)
	default:
		fmt.Fprintln(printer.Output)
		printer.Divider()
		printer.PrintResult(res)
	}

	if !res.Complete() {
		return exitGivenUp
	}
	return exitOK
}
