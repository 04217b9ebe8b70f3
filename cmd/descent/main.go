package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/zephyrtronium/descent"
	"github.com/zephyrtronium/descent/internal/combinator"
	"github.com/zephyrtronium/descent/internal/config"
)

// CLI is the descent command line. Zero values mean "use the config file".
type CLI struct {
	Config     string   `help:"Configuration file path" default:"descent.yaml"`
	Mode       string   `help:"Arithmetic: float, big, or decimal"`
	Engine     string   `help:"Parser: descent or combinator"`
	Prec       uint     `help:"Precision of big calculations in bits"`
	Places     int32    `help:"Decimal places of quotients in decimal mode" default:"-1"`
	Fmt        string   `help:"Result formatting string"`
	RequireEnd bool     `help:"Reject input with text after the expression"`
	Echo       bool     `help:"Print parse trees"`
	Trace      bool     `help:"Print grammar rule attempts to stderr (descent engine only)"`
	Samples    bool     `help:"Evaluate the configured sample inputs"`
	In         string   `help:"Input file, one expression per line (default stdin if no args given)"`
	Verbose    bool     `help:"Enable verbose output" short:"v"`
	Exprs      []string `arg:"" optional:"" help:"Expressions to evaluate"`
}

var (
	red  = color.New(color.FgRed)
	blue = color.New(color.FgBlue)
)

func main() {
	log.SetFlags(0)
	var cli CLI
	kong.Parse(&cli, kong.Description("Evaluate arithmetic expressions with a backtracking recursive-descent parser."))
	failed, err := cli.run(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// settings resolves the configuration file and flag overrides.
func (cli *CLI) settings() (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cli.Mode != "" {
		cfg.Mode = cli.Mode
	}
	if cli.Engine != "" {
		cfg.Engine = cli.Engine
	}
	if cli.Prec != 0 {
		cfg.Prec = cli.Prec
	}
	if cli.Places >= 0 {
		p := cli.Places
		cfg.Places = &p
	}
	if cli.Fmt != "" {
		cfg.Format = cli.Fmt
	}
	cfg.RequireEnd = cfg.RequireEnd || cli.RequireEnd
	cfg.Echo = cfg.Echo || cli.Echo
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if cli.Trace && cfg.Engine != config.EngineDescent {
		return nil, fmt.Errorf("%w: --trace requires the descent engine, not %s", config.ErrConfigValidation, cfg.Engine)
	}
	return cfg, nil
}

// inputs gathers expressions from arguments, samples, or lines of input.
func (cli *CLI) inputs(cfg *config.Config, stdin io.Reader) ([]string, error) {
	var ins []string
	ins = append(ins, cli.Exprs...)
	if cli.Samples {
		ins = append(ins, cfg.Samples...)
	}
	var r io.Reader
	switch {
	case cli.In != "" && cli.In != "-":
		f, err := os.Open(cli.In)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	case cli.In == "-", len(ins) == 0:
		r = stdin
	}
	if r == nil {
		return ins, nil
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		ins = append(ins, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ins, nil
}

// run evaluates every input and returns the number that failed.
func (cli *CLI) run(stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	cfg, err := cli.settings()
	if err != nil {
		return 0, err
	}
	if cli.Verbose {
		blue.Fprintf(stderr, "engine %s, mode %s\n", cfg.Engine, cfg.Mode)
	}
	ins, err := cli.inputs(cfg, stdin)
	if err != nil {
		return 0, err
	}
	ctx := descent.NewContext(descent.Prec(cfg.Prec), descent.Places(cfg.DecimalPlaces()))
	failed := 0
	for _, src := range ins {
		if err := cli.eval(src, cfg, ctx, stdout, stderr); err != nil {
			red.Fprintf(stdout, "%q: %v\n", src, err)
			failed++
		}
	}
	return failed, nil
}

func (cli *CLI) eval(src string, cfg *config.Config, ctx *descent.Context, stdout, stderr io.Writer) error {
	a, err := cli.parse(src, cfg, stderr)
	if err != nil {
		return err
	}
	if cfg.Echo {
		fmt.Fprintf(stdout, "%v : ", a)
	}
	verb := cfg.Format + "\n"
	switch cfg.Mode {
	case config.ModeBig:
		r, err := ctx.Big(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, verb, r)
	case config.ModeDecimal:
		r, err := ctx.Decimal(a)
		if err != nil {
			return err
		}
		// decimal.Decimal has no fmt.Formatter, so the format is not applied.
		fmt.Fprintln(stdout, r.String())
	default:
		fmt.Fprintf(stdout, verb, descent.Eval(a))
	}
	return nil
}

func (cli *CLI) parse(src string, cfg *config.Config, stderr io.Writer) (descent.Node, error) {
	if cfg.Engine == config.EngineCombinator {
		a, end, err := combinator.Parse(src)
		if err != nil {
			return nil, err
		}
		if cfg.RequireEnd && strings.TrimSpace(string([]rune(src)[end:])) != "" {
			return nil, descent.ErrTrailing
		}
		return a, nil
	}
	var opts []descent.ParseOption
	if cfg.RequireEnd {
		opts = append(opts, descent.RequireEnd())
	}
	if cli.Trace {
		opts = append(opts, descent.Trace(func(rule string, start, end int, ok bool) {
			blue.Fprintf(stderr, "%-6s %d..%d %t\n", rule, start, end, ok)
		}))
	}
	a := descent.Parse(src, opts...)
	if a == nil {
		if err := descent.Check(src); errors.Is(err, descent.ErrTrailing) {
			return nil, err
		}
		return nil, descent.ErrNoMatch
	}
	return a, nil
}
