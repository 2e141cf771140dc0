// Package commands implements CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/pgcrud/internal/config"
	"github.com/satishbabariya/pgcrud/internal/database"
	"github.com/satishbabariya/pgcrud/internal/debug"
	"github.com/satishbabariya/pgcrud/internal/ui"
	"github.com/satishbabariya/pgcrud/pkg/crud"
	"github.com/satishbabariya/pgcrud/query/sqlgen"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	databaseURL string
	provider    string
	debug       bool
	showSQL     bool

	cfg *config.Config
}

// NewRootCommand creates the pgcrud command tree.
func NewRootCommand(version, commit string) *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "pgcrud",
		Short:         "Run parameterized create/read/update/delete statements",
		Long:          "pgcrud builds a parameterized statement from a table, fields and conditions and runs it against PostgreSQL or SQLite.",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.databaseURL, "database-url", "", "Database connection URL (overrides config and DATABASE_URL)")
	flags.StringVar(&g.provider, "provider", "", "Database provider: postgres or sqlite")
	flags.BoolVar(&g.debug, "debug", false, "Log every statement to stderr")
	flags.BoolVar(&g.showSQL, "show-sql", false, "Print the generated SQL before running it")

	rootCmd.AddCommand(newCreateCommand(g))
	rootCmd.AddCommand(newReadCommand(g))
	rootCmd.AddCommand(newUpdateCommand(g))
	rootCmd.AddCommand(newDeleteCommand(g))

	return rootCmd
}

func (g *globals) load() error {
	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		return err
	}

	if g.databaseURL != "" {
		cfg.DatabaseURL = g.databaseURL
	}
	if g.provider != "" {
		cfg.Provider = g.provider
	} else if p := database.ProviderFromURL(cfg.DatabaseURL); p != "" {
		cfg.Provider = p
	}
	if g.debug {
		cfg.Debug = true
	}

	debug.Init(cfg.Debug)
	g.cfg = cfg
	return nil
}

// run opens the database, optionally echoes the statement and executes it
// through the crud entry points.
func (g *globals) run(cmd *cobra.Command, op sqlgen.Operation, table string, spec crud.Spec) error {
	if g.showSQL {
		if q, err := sqlgen.Build(op, table, spec.Fields, spec.Match, spec.Returning, spec.OnConflict); err == nil {
			ui.PrintSQL(cmd.OutOrStdout(), q.SQL, q.Args)
		}
	}

	db, err := database.Open(cmd.Context(), g.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := crud.Run(cmd.Context(), db, op, table, spec)
	if err != nil {
		return err
	}

	return report(cmd.OutOrStdout(), res)
}

func report(w io.Writer, res *crud.Result) error {
	if len(res.Columns) == 0 {
		ui.PrintSuccess(w, "%d row(s) affected", res.RowsAffected)
		return nil
	}

	headers, rows := ui.TableData(res.Columns, res.Rows)
	if err := ui.PrintTable(w, headers, rows); err != nil {
		return err
	}
	ui.PrintSuccess(w, "%d row(s)", len(res.Rows))
	return nil
}
