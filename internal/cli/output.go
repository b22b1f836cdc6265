// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/enumerate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report is the rendered outcome of compile and combine.
type Report struct {
	Expression string     `json:"expression" yaml:"expression"`
	Graph      *GraphView `json:"graph" yaml:"graph"`
	Paths      [][]string `json:"paths" yaml:"paths"`
	Designs    []string   `json:"designs" yaml:"designs"`
}

// GraphView is a serializable snapshot of an automaton.
type GraphView struct {
	Root  int        `json:"root" yaml:"root"`
	Nodes []NodeView `json:"nodes" yaml:"nodes"`
}

type NodeView struct {
	ID        int        `json:"id" yaml:"id"`
	Kind      string     `json:"kind" yaml:"kind"`
	Text      string     `json:"text" yaml:"text"`
	Operators []string   `json:"operators,omitempty" yaml:"operators,omitempty"`
	Edges     []EdgeView `json:"edges,omitempty" yaml:"edges,omitempty"`
}

type EdgeView struct {
	Dest        int               `json:"dest" yaml:"dest"`
	Kind        string            `json:"kind" yaml:"kind"`
	Text        string            `json:"text" yaml:"text"`
	Orientation string            `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Category    category.Category `json:"category,omitempty" yaml:"category,omitempty"`
}

func viewGraph(g *automaton.Graph) *GraphView {
	if g == nil {
		return &GraphView{}
	}
	v := &GraphView{}
	if root, ok := g.Root(); ok {
		v.Root = int(root)
	}
	for _, id := range g.NodeIDs() {
		n := NodeView{
			ID:   int(id),
			Kind: g.Kind(id).String(),
			Text: g.Text(id),
			Operators: lo.Map(g.Operators(id), func(op automaton.Operator, _ int) string {
				return op.String()
			}),
		}
		for _, e := range g.Edges(id) {
			ev := EdgeView{Dest: int(e.Dest), Kind: e.Kind.String(), Text: e.Text}
			if e.Kind == automaton.EdgeAtom {
				ev.Orientation = e.Orientation.String()
				ev.Category = e.Component.Category()
			}
			n.Edges = append(n.Edges, ev)
		}
		v.Nodes = append(v.Nodes, n)
	}
	return v
}

func pathTexts(paths []enumerate.Path) [][]string {
	return lo.Map(paths, func(p enumerate.Path, _ int) []string {
		if t := p.Texts(); t != nil {
			return t
		}
		return []string{}
	})
}

func render(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode json")
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case FormatText, "":
		return renderText(w, v)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", string(format))
	}
}

func renderText(w io.Writer, v any) error {
	var sb strings.Builder
	switch r := v.(type) {
	case *Report:
		fmt.Fprintf(&sb, "expression: %s\n", r.Expression)
		if r.Graph != nil {
			edges := lo.SumBy(r.Graph.Nodes, func(n NodeView) int { return len(n.Edges) })
			fmt.Fprintf(&sb, "graph: %d nodes, %d edges\n", len(r.Graph.Nodes), edges)
			for _, n := range r.Graph.Nodes {
				fmt.Fprintf(&sb, "  %d %s %q", n.ID, n.Kind, n.Text)
				if len(n.Operators) > 0 {
					fmt.Fprintf(&sb, " [%s]", strings.Join(n.Operators, " "))
				}
				sb.WriteByte('\n')
				for _, e := range n.Edges {
					fmt.Fprintf(&sb, "    -> %d %s", e.Dest, e.Text)
					if e.Orientation != "" {
						fmt.Fprintf(&sb, " (%s)", e.Orientation)
					}
					sb.WriteByte('\n')
				}
			}
		}
		fmt.Fprintf(&sb, "paths: %d\n", len(r.Paths))
		for _, p := range r.Paths {
			if len(p) == 0 {
				sb.WriteString("  <empty>\n")
				continue
			}
			fmt.Fprintf(&sb, "  %s\n", strings.Join(p, " "))
		}
		fmt.Fprintf(&sb, "designs: %d\n", len(r.Designs))
		for _, d := range r.Designs {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
	case fmt.Stringer:
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	default:
		fmt.Fprintln(&sb, v)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
