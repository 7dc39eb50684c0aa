package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
)

func newAddCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "add <acronym> <description>",
		Short:   "Add an acronym",
		Example: `  acronyms add API "Application Programming Interface"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := domain.Draft{Acronym: args[0], Description: args[1]}
			if err := draft.Check(); err != nil {
				return err
			}

			rec, err := o.app.Store().Add(cmd.Context(), draft.Acronym, draft.Description)
			if err != nil {
				return fmt.Errorf("failed to add acronym: %w", err)
			}
			success(cmd.OutOrStdout(), "Added %s (%s)", rec.Acronym, rec.ID)
			return nil
		},
	}
}

func newEditCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <acronym> <description>",
		Short: "Replace the acronym and description of an entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			draft := domain.Draft{Acronym: args[1], Description: args[2]}
			if err := draft.Check(); err != nil {
				return err
			}

			found, err := o.app.Store().Update(cmd.Context(), id, draft.Acronym, draft.Description)
			if err != nil {
				return fmt.Errorf("failed to update acronym: %w", err)
			}
			if !found {
				return fmt.Errorf("no acronym with id %q", id)
			}
			success(cmd.OutOrStdout(), "Updated %s", draft.Acronym)
			return nil
		},
	}
}

func newDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an acronym",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			found, err := o.app.Store().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete acronym: %w", err)
			}
			if !found {
				warn(cmd.OutOrStdout(), "No acronym with id %q, nothing deleted", id)
				return nil
			}
			success(cmd.OutOrStdout(), "Deleted %s", id)
			return nil
		},
	}
}
