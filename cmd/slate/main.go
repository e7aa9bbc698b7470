package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/labstack/gommon/color"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"slate/internal"
)

const (
	exitOK = iota
	exitUsage
	exitSyntax
	exitRuntime
)

type cli struct {
	Script     string `arg:"" help:"Script to run, '-' reads stdin"`
	Tree       bool   `help:"Print the syntax tree instead of running"`
	NoColor    bool   `help:"Disable colored diagnostics"`
	LogLevel   string `default:"warn" enum:"trace,debug,info,warn,error" help:"Engine log level"`
	MaxDepth   int    `default:"10000" help:"Max depth of user function calls, capped at 100000"`
	NoMain     bool   `help:"Do not call a parameterless main automatically"`
	Profile    string `default:"" enum:",cpu,mem,block,mutex,trace" help:"Enable profiling"`
	ProfileDir string `default:"." type:"path" help:"Profile output directory"`
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":   profile.CPUProfile,
	"mem":   profile.MemProfile,
	"block": profile.BlockProfile,
	"mutex": profile.MutexProfile,
	"trace": profile.TraceProfile,
}

type stdPrinter struct {
	out   io.Writer
	err   io.Writer
	color *color.Color
}

func (s stdPrinter) Print(a ...interface{}) (n int, err error) {
	return fmt.Fprint(s.out, a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprint(w, s.color.Red(fmt.Sprintf(format, a...)))
}

// streams are the process files, replaced in tests
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}))
}

func run(args []string, std streams) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("slate"),
		kong.Description("Run a slate script."),
		kong.Writers(std.stdout, std.stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(std.stderr, err)
		return exitUsage
	}
	if _, err := parser.Parse(args); err != nil {
		parser.Errorf("%s", err)
		return exitUsage
	}

	logger := logrus.New()
	logger.SetOutput(std.stderr)
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		parser.Errorf("%s", err)
		return exitUsage
	}
	logger.SetLevel(level)

	if mode, ok := profileModes[c.Profile]; ok {
		defer profile.Start(mode, profile.ProfilePath(c.ProfileDir), profile.Quiet).Stop()
	}

	diag := color.New()
	diag.SetOutput(std.stderr)
	if c.NoColor {
		diag.Disable()
	}
	p := stdPrinter{out: std.stdout, err: std.stderr, color: diag}

	source, err := readScript(c.Script, std.stdin)
	if err != nil {
		p.Fprintf(std.stderr, "%s\n", err)
		return exitUsage
	}

	interp := internal.NewInterpreter(p,
		internal.WithLogger(logger),
		internal.WithMaxCallDepth(c.MaxDepth),
		internal.WithAutoMain(!c.NoMain),
	)

	if c.Tree {
		tree, err := interp.Tree(source)
		if err != nil {
			return report(p, logger, err)
		}
		fmt.Fprint(std.stdout, tree)
		return exitOK
	}

	if err := interp.Run(source); err != nil {
		return report(p, logger, err)
	}
	return exitOK
}

func readScript(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func report(p stdPrinter, logger *logrus.Logger, err error) int {
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithError(err).Error("script failed")
	}
	p.Fprintf(p.err, "%s", internal.FormatError(err))
	if internal.IsSyntaxError(err) {
		return exitSyntax
	}
	return exitRuntime
}
