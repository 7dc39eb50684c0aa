package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
	"github.com/MrSnakeDoc/acronyms/internal/transfer"
	"github.com/MrSnakeDoc/acronyms/internal/view"
)

const descriptionWidth = 60

func newListCmd(o *options) *cobra.Command {
	var (
		search   string
		desc     bool
		asJSON   bool
		showFull bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List acronyms, sorted by acronym",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := view.Ascending
			if desc {
				dir = view.Descending
			}

			all := o.app.Store().All()
			records := o.app.Projector().Project(all, search, dir)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := transfer.Encode(out, records); err != nil {
					return err
				}
				_, err := fmt.Fprintln(out)
				return err
			}
			return printTable(out, records, len(all), showFull)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only show acronyms or descriptions containing this text")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort Z to A")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the same JSON as export")
	cmd.Flags().BoolVar(&showFull, "full", false, "do not truncate descriptions")
	return cmd
}

func printTable(out io.Writer, records []domain.Acronym, total int, full bool) error {
	if len(records) == 0 {
		warn(out, "No acronyms found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACRONYM\tDESCRIPTION\tLAST UPDATED\tID")
	for _, rec := range records {
		description := rec.Description
		if !full {
			description = truncate(description, descriptionWidth)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.Acronym,
			description,
			rec.UpdatedAt.Local().Format("2006-01-02"),
			rec.ID,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := headerColor.Fprintf(out, "\n%d of %d acronyms\n", len(records), total)
	return err
}
