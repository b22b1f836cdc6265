// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/combine"
	"github.com/katalvlaran/constellation/compiler"
	"github.com/katalvlaran/constellation/design"
)

func newCombineCommand(a *app) *cobra.Command {
	var kindName string
	cmd := &cobra.Command{
		Use:   "combine EXPRESSION EXPRESSION [EXPRESSION...]",
		Short: "Compile several expressions and AND or MERGE the resulting graphs",
		Long: `combine compiles every argument as its own expression and folds the
graphs left to right with the chosen combinator. Operands are always
compiled in the edge representation.`,
		Example: `  constellation combine -c parts.json --kind and "cds1 or cds3" "cds2"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := combine.ParseKind(kindName)
			if err != nil {
				return err
			}
			table, err := loadCategories(a.cfg.Categories)
			if err != nil {
				return err
			}

			graphs := make([]*automaton.Graph, 0, len(args))
			tables := make([]category.Table, 0, len(args))
			texts := make([]string, 0, len(args))
			for _, arg := range args {
				e, res, err := a.compile(cmd.Context(), arg, table, compiler.EdgeRepresentation)
				if err != nil {
					return err
				}
				graphs = append(graphs, res.Graph)
				tables = append(tables, res.Categories)
				texts = append(texts, "("+e.String()+")")
			}

			res, err := combine.Combine(kind, graphs, tables,
				combine.WithContext(cmd.Context()),
				combine.WithTolerance(category.Tolerance(a.cfg.Tolerance)),
				combine.WithMaxCycles(a.cfg.MaxCycles),
				combine.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			designs, err := design.Enumerate(res.Paths, a.cfg.NumDesigns, design.WithSeed(a.cfg.Seed))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Format, &Report{
				Expression: strings.Join(texts, " "+string(kind)+" "),
				Graph:      viewGraph(res.Graph),
				Paths:      pathTexts(res.Paths),
				Designs:    designs,
			})
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", string(combine.KindAnd), "combinator: and or merge")
	return cmd
}
