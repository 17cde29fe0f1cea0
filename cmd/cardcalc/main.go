package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xyproto/env/v2"

	"github.com/zephyrtronium/cardcalc"
	"github.com/zephyrtronium/cardcalc/console"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(env.Str("CARDCALC_LOG", "warn"))
	if err != nil {
		log.Fatal().Err(err).Msg("bad CARDCALC_LOG")
	}
	log = log.Level(lvl)

	var (
		inname, verb   string
		with           []cardcalc.Binding
		echo, simplify bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		v, err := cardcalc.EvalString(strings.TrimSpace(d[1]), nil)
		if err != nil {
			return fmt.Errorf("setting %s: %w", d[0], err)
		}
		with = append(with, cardcalc.Bind(strings.TrimSpace(d[0]), v))
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one card per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&echo, "echo", false, "print the canonical text of each input")
	flag.BoolVar(&simplify, "simplify", false, "print the simplified form of each expression")
	flag.Parse()

	depth := env.Int("CARDCALC_MAX_DEPTH", cardcalc.DefaultMaxDepth)
	terms := env.Int("CARDCALC_MAX_TERMS", cardcalc.DefaultMaxTerms)
	if depth <= 0 || terms <= 0 {
		log.Fatal().Int("depth", depth).Int("terms", terms).Msg("limits must be positive")
	}

	store := cardcalc.DefaultStore()
	if len(with) > 0 {
		store = store.AddScope(with...)
	}
	sess := console.New(
		console.WithStore(store),
		console.WithLogger(log),
		console.WithParseOptions(cardcalc.MaxDepth(depth)),
		console.WithEvalOptions(cardcalc.MaxTerms(terms)),
	)

	var ins []io.Reader
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal().Err(err).Msg("opening input")
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	verb += "\n"
	for _, in := range ins {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			c := sess.Submit(sc.Text())
			if c == nil {
				continue
			}
			show(c, verb, echo, simplify)
		}
		if err := sc.Err(); err != nil {
			log.Fatal().Err(err).Msg("reading input")
		}
	}
}

// show prints the outcome of one card.
func show(c *console.Card, verb string, echo, simplify bool) {
	if echo && c.Expr != nil {
		fmt.Printf("%v : ", c.Expr)
	}
	switch c.Kind {
	case console.ErrorCard:
		if near := cardcalc.Near(c.Input, c.Err); near != "" {
			fmt.Printf("error: %v (near %q)\n", c.Err, near)
			return
		}
		fmt.Printf("error: %v\n", c.Err)
	case console.FunctionCard:
		fmt.Printf("defined %s\n", c.Name)
	case console.VariableCard, console.ExpressionCard:
		if c.Kind == console.VariableCard {
			fmt.Printf("%s = ", c.Name)
		}
		if simplify {
			if s, err := cardcalc.Simplify(c.Expr); err == nil {
				fmt.Printf("%v = ", s)
			}
		}
		r, err := c.Result()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf(verb, r)
	}
}

func infile(inname string, std bool) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
