package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/acronyms/internal/transfer"
)

func newExportCmd(o *options) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every acronym to " + transfer.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = o.cfg.ExportDir
			}
			records := o.app.Store().All()
			path, err := transfer.Export(records, dir)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Exported %d acronyms to %s", len(records), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "target directory (default $ACRONYMS_EXPORT_DIR or .)")
	return cmd
}

func newImportCmd(o *options) *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace every acronym with the content of an exported file",
		Long: `Replace the whole collection with the records of a file written by export.

Without a file argument the path is asked for interactively; an empty
answer, end of input or Ctrl-C cancels. Nothing changes unless the whole
file is valid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var picker transfer.Picker
			if len(args) == 1 {
				picker = transfer.PathPicker{Path: args[0]}
			} else {
				picker = transfer.PromptPicker{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
			}

			importer := o.app.Importer()
			if lenient {
				importer = transfer.NewImporter(transfer.ImportOptions{
					Strict:   false,
					Timeout:  o.cfg.ImportTimeout,
					MaxBytes: o.cfg.ImportMaxSize,
				}, o.logger.Named("import"))
			}

			records, err := importer.Import(ctx, picker)
			if err != nil {
				if errors.Is(err, transfer.ErrNoFileSelected) {
					warn(cmd.OutOrStdout(), "No file selected, nothing imported")
				}
				return err
			}

			if err := o.app.Store().ReplaceAll(ctx, records); err != nil {
				return fmt.Errorf("failed to save imported acronyms: %w", err)
			}
			success(cmd.OutOrStdout(), "Imported %d acronyms", len(records))
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept records with missing fields or duplicate ids")
	return cmd
}
