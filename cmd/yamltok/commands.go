package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/shapestone/yamlstream/internal/diag"
	"github.com/shapestone/yamlstream/internal/parser"
	"github.com/shapestone/yamlstream/internal/tokenizer"
	"github.com/shapestone/yamlstream/pkg/yaml"
)

// TokensCmd prints one line per token.
type TokensCmd struct {
	Files []string `arg:"" optional:"" help:"Input files, or '-' for stdin."`
}

func (c *TokensCmd) Run(e *env) error {
	inputs, err := readInputs(c.Files, e.stdin)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if len(inputs) > 1 {
			fmt.Fprintf(e.stdout, "# %s\n", in.name)
		}
		colors := tokenizer.Colors{
			Kind:  e.colors.kind.SprintFunc(),
			Value: e.colors.value.SprintFunc(),
		}
		err := tokenizer.DumpColors(e.stdout, in.data, colors,
			tokenizer.WithLogger(e.logger),
			tokenizer.WithSink(diag.NewLogSink(e.logger, in.name)))
		if err != nil {
			return errors.Wrapf(err, "scanning %s", in.name)
		}
	}
	return nil
}

// ValidateCmd reports whether each input is valid.
type ValidateCmd struct {
	Files []string `arg:"" optional:"" help:"Input files, or '-' for stdin."`
}

func (c *ValidateCmd) Run(e *env) error {
	inputs, err := readInputs(c.Files, e.stdin)
	if err != nil {
		return err
	}
	invalid := 0
	for _, in := range inputs {
		err := yaml.Validate(string(in.data), yaml.WithLogger(e.logger), yaml.WithName(in.name))
		if err != nil {
			invalid++
			fmt.Fprintf(e.stdout, "%s: %s %v\n", in.name, e.colors.bad.Sprint("invalid"), errors.Cause(err))
			continue
		}
		fmt.Fprintf(e.stdout, "%s: %s\n", in.name, e.colors.ok.Sprint("ok"))
	}
	if invalid > 0 {
		return errors.Errorf("%d of %d inputs are invalid", invalid, len(inputs))
	}
	return nil
}

// TreeCmd prints the node tree of every document.
type TreeCmd struct {
	Files []string `arg:"" optional:"" help:"Input files, or '-' for stdin."`
}

func (c *TreeCmd) Run(e *env) error {
	inputs, err := readInputs(c.Files, e.stdin)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		s := parser.NewStream(in.data,
			parser.WithLogger(e.logger),
			parser.WithSink(diag.NewLogSink(e.logger, in.name)))
		i := 0
		for doc := range s.Documents() {
			header := fmt.Sprintf("--- # %s document %d", in.name, i)
			if v := doc.Version(); v != "" {
				header += " %YAML " + v
			}
			fmt.Fprintln(e.stdout, header)
			e.writeNode(doc.Root(), 0, "")
			i++
		}
		if err := s.Err(); err != nil {
			return errors.Wrapf(err, "parsing %s", in.name)
		}
	}
	return nil
}

// writeNode prints n and its children, one node per line.
func (e *env) writeNode(n parser.Node, depth int, label string) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(label)
	b.WriteString(e.colors.kind.Sprint(n.Kind()))
	if n.RawTag() != "" {
		b.WriteString(" " + e.colors.tag.Sprint("<"+n.VerbatimTag()+">"))
	}
	if a := n.Anchor(); a != "" {
		b.WriteString(" " + e.colors.anchor.Sprint("&"+a))
	}

	switch n.Kind() {
	case parser.KindScalar:
		s, _ := n.Scalar()
		b.WriteString(" " + e.colors.value.Sprint(strconv.Quote(s.Value())))
	case parser.KindBlockScalar:
		bs, _ := n.BlockScalar()
		b.WriteString(" " + e.colors.value.Sprint(strconv.Quote(bs.Value())))
	case parser.KindAlias:
		a, _ := n.Alias()
		b.WriteString(" " + e.colors.anchor.Sprint("*"+a.Name()))
	case parser.KindMapping:
		m, _ := n.Mapping()
		b.WriteString(" (" + m.Style().String() + ")")
		fmt.Fprintln(e.stdout, b.String())
		for kv := range m.All() {
			e.writeNode(kv.Key(), depth+1, "? ")
			e.writeNode(kv.Value(), depth+1, ": ")
		}
		return
	case parser.KindSequence:
		sq, _ := n.Sequence()
		b.WriteString(" (" + sq.Style().String() + ")")
		fmt.Fprintln(e.stdout, b.String())
		for item := range sq.All() {
			e.writeNode(item, depth+1, "- ")
		}
		return
	}
	fmt.Fprintln(e.stdout, b.String())
}
