package app

import (
	"context"

	"github.com/spf13/cobra"

	"maprecon/internal/excel"
	"maprecon/internal/report"
	"maprecon/pkg/dataset"
	"maprecon/pkg/logging"
	"maprecon/pkg/reconcile"
	"maprecon/pkg/tabular"
)

// NewReconcileCommand creates the reconcile command.
func (a *App) NewReconcileCommand() *cobra.Command {
	var (
		sourcePath string
		testPath   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a test mapping sheet against a source mapping sheet",
		Long: `Reconcile reads every sheet of both workbooks, reconstructs each row's
hierarchy path from its nesting level, matches test rows to source rows
through the tiered fallback strategy, and reports every cell-level
difference.

The command exits 0 when the sheets are identical, 1 when differences
were found, and 2 on any error.`,
		Example: `  maprecon reconcile --source latest_mapping.xlsx --test swift_export.xlsx
  maprecon reconcile --source a.xlsx --test b.xlsx --output report.xlsx -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), a.Logger())

			format, err := report.ParseFormat(a.config.Format)
			if err != nil {
				return err
			}

			reader := excel.NewReader()
			sourceSheets, err := reader.Workbook(logging.WithDataset(ctx, "source"), sourcePath)
			if err != nil {
				return err
			}
			testSheets, err := reader.Workbook(logging.WithDataset(ctx, "test"), testPath)
			if err != nil {
				return err
			}

			assembler := dataset.NewAssembler(a.builder())
			source := a.assemble(logging.WithDataset(ctx, "source"), assembler, sourceSheets)
			test := a.assemble(logging.WithDataset(ctx, "test"), assembler, testSheets)

			engine := reconcile.New(
				reconcile.WithLevelColumn(a.config.LevelColumn),
				reconcile.WithTagColumn(a.config.TagColumn),
			)
			result := engine.Reconcile(source, test)

			logging.FromContext(ctx).Info().
				Int("matched_primary", result.Summary.MatchedPrimary).
				Int("matched_parent_child", result.Summary.MatchedParentChild).
				Int("matched_loose_tag", result.Summary.MatchedLooseTag).
				Int("unmatched_test", result.Summary.UnmatchedTest).
				Int("unmatched_source", result.Summary.UnmatchedSource).
				Msg("Reconciliation complete")

			if outputPath != "" {
				writer := excel.NewWriter()
				if err := writer.Report(ctx, outputPath, sourceSheets, source, result); err != nil {
					return err
				}
			}

			if err := report.NewFormatter(format).Format(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if result.HasDifferences() {
				return ErrDifferencesFound
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "source (latest) mapping workbook")
	cmd.Flags().StringVar(&testPath, "test", "", "test mapping workbook to compare")
	cmd.Flags().StringVar(&outputPath, "output", "", "write a styled xlsx report to this path")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("test")

	return cmd
}

// assemble builds a dataset from parsed sheets and logs any structural
// diagnostics the path builder reported.
func (a *App) assemble(ctx context.Context, assembler *dataset.Assembler, sheets []*tabular.Table) *dataset.Dataset {
	ds := assembler.Assemble(sheets)

	log := logging.FromContext(ctx)
	for _, diag := range ds.Diagnostics {
		log.Warn().Msg(diag.Error())
	}
	log.Debug().
		Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Columns)).
		Msg("Assembled dataset")

	return ds
}
