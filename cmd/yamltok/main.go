// Command yamltok inspects YAML streams: it dumps scanner tokens, validates
// files and prints the lazily parsed node tree.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// CLI is the top-level command-line interface.
type CLI struct {
	LogLevel string `help:"Minimum level of diagnostics logged to stderr." enum:"debug,info,warn,error" default:"warn"`
	Color    string `help:"Colorize output." enum:"auto,always,never" default:"auto"`

	Tokens   TokensCmd   `cmd:"" help:"Print the scanner tokens of each input."`
	Validate ValidateCmd `cmd:"" help:"Check that each input is valid YAML."`
	Tree     TreeCmd     `cmd:"" help:"Print the node tree of each document."`
}

// env carries what every command needs.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	logger log.Logger
	colors *palette
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit); err != nil {
		fmt.Fprintln(os.Stderr, "yamltok:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("yamltok"),
		kong.Description("Inspect YAML streams."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
	if err != nil {
		return err
	}
	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	logger = level.NewFilter(logger, allowLevel(cli.LogLevel))

	e := &env{
		stdin:  stdin,
		stdout: stdout,
		logger: logger,
		colors: newPalette(useColor(cli.Color, stdout)),
	}
	return ktx.Run(e)
}

func allowLevel(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "info":
		return level.AllowInfo()
	case "error":
		return level.AllowError()
	}
	return level.AllowWarn()
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// input is one source named on the command line.
type input struct {
	name string
	data []byte
}

// readInputs reads the named files, or stdin when names is empty or "-".
func readInputs(names []string, stdin io.Reader) ([]input, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	inputs := make([]input, 0, len(names))
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(stdin)
			name = "<stdin>"
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", name)
		}
		inputs = append(inputs, input{name: name, data: data})
	}
	return inputs, nil
}
