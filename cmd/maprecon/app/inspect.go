package app

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"maprecon/internal/excel"
	"maprecon/pkg/dataset"
	"maprecon/pkg/logging"
)

// NewInspectCommand creates the inspect command, a debugging aid that prints
// the hierarchy path computed for every row of a workbook.
func (a *App) NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <workbook>",
		Short: "Print the hierarchy path derived for every row of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), a.Logger())

			sheets, err := excel.NewReader().Workbook(ctx, args[0])
			if err != nil {
				return err
			}

			ds := dataset.NewAssembler(a.builder()).Assemble(sheets)
			for _, diag := range ds.Diagnostics {
				a.Logger().Warn().Msg(diag.Error())
			}

			table := tablewriter.NewTable(cmd.OutOrStdout())
			table.Header("Sheet", a.config.TagColumn, a.config.NameColumn, "Hierarchy Path", "Parent Child Key")

			for _, row := range ds.Rows {
				path, key := row.Info.Path, row.Info.ParentChildKey
				if !row.Info.HasPath {
					path, key = "-", "-"
				}
				if err := table.Append(row.Sheet, row.Tag(), row.Get(a.config.NameColumn), path, key); err != nil {
					return err
				}
			}

			return table.Render()
		},
	}

	return cmd
}
