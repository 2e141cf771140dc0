package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/pgcrud/internal/ui"
	"github.com/satishbabariya/pgcrud/pkg/crud"
	"github.com/satishbabariya/pgcrud/query/sqlgen"
)

// newCreateCommand creates the create command.
func newCreateCommand(g *globals) *cobra.Command {
	var (
		set        []string
		returning  []string
		onConflict string
	)

	cmd := &cobra.Command{
		Use:     "create <table>",
		Short:   "Insert a row",
		Example: `  pgcrud create users --set email=ann@example.com --set age:=31 --returning id`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(set)
			if err != nil {
				return err
			}
			return g.run(cmd, sqlgen.Insert, args[0], crud.Spec{
				Fields:     fields,
				Returning:  returning,
				OnConflict: onConflict,
			})
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Column to insert, as column=value or column:=json (repeatable)")
	cmd.Flags().StringSliceVar(&returning, "returning", nil, "Columns to return, or * for all")
	cmd.Flags().StringVar(&onConflict, "on-conflict", "", `Conflict clause, e.g. "ON CONFLICT DO NOTHING"`)

	return cmd
}

// newReadCommand creates the read command.
func newReadCommand(g *globals) *cobra.Command {
	var (
		where     []string
		returning []string
	)

	cmd := &cobra.Command{
		Use:     "read <table>",
		Short:   "Select rows",
		Example: `  pgcrud read users --returning '*' --where email=ann@example.com`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := parseAssignments(where)
			if err != nil {
				return err
			}
			return g.run(cmd, sqlgen.Select, args[0], crud.Spec{
				Match:     match,
				Returning: returning,
			})
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, "Equality condition, as column=value or column:=json (repeatable)")
	cmd.Flags().StringSliceVar(&returning, "returning", nil, "Columns to select, or * for all (required)")
	_ = cmd.MarkFlagRequired("returning")

	return cmd
}

// newUpdateCommand creates the update command.
func newUpdateCommand(g *globals) *cobra.Command {
	var (
		set       []string
		where     []string
		returning []string
	)

	cmd := &cobra.Command{
		Use:     "update <table>",
		Short:   "Update rows",
		Example: `  pgcrud update users --set name=Ann --where id:=1 --returning id,name`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(set)
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				return errors.New("update needs at least one --set column")
			}
			match, err := parseAssignments(where)
			if err != nil {
				return err
			}

			ok, err := confirmUnconditional(cmd, "update", args[0], match)
			if err != nil {
				return err
			}
			if !ok {
				ui.PrintWarning(cmd.OutOrStdout(), "aborted")
				return nil
			}

			return g.run(cmd, sqlgen.Update, args[0], crud.Spec{
				Fields:    fields,
				Match:     match,
				Returning: returning,
			})
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Column to set, as column=value or column:=json (repeatable)")
	cmd.Flags().StringArrayVar(&where, "where", nil, "Equality condition (repeatable)")
	cmd.Flags().StringSliceVar(&returning, "returning", nil, "Columns to return, or * for all")
	cmd.Flags().BoolP("yes", "y", false, "Do not ask before updating every row")

	return cmd
}

// newDeleteCommand creates the delete command.
func newDeleteCommand(g *globals) *cobra.Command {
	var (
		where     []string
		returning []string
	)

	cmd := &cobra.Command{
		Use:     "delete <table>",
		Short:   "Delete rows",
		Example: `  pgcrud delete sessions --where user_id:=42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := parseAssignments(where)
			if err != nil {
				return err
			}

			ok, err := confirmUnconditional(cmd, "delete", args[0], match)
			if err != nil {
				return err
			}
			if !ok {
				ui.PrintWarning(cmd.OutOrStdout(), "aborted")
				return nil
			}

			return g.run(cmd, sqlgen.Delete, args[0], crud.Spec{
				Match:     match,
				Returning: returning,
			})
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, "Equality condition (repeatable)")
	cmd.Flags().StringSliceVar(&returning, "returning", nil, "Columns to return, or * for all")
	cmd.Flags().BoolP("yes", "y", false, "Do not ask before deleting every row")

	return cmd
}
