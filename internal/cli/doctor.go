package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksindesign/little-lemon-rn/internal/sqlite"
)

type doctorReport struct {
	Database  string              `json:"database"`
	Columns   map[string][]string `json:"columns"`
	MenuItems int                 `json:"menuItems"`
	HasUser   bool                `json:"hasUser"`
}

func (a *app) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Show the store location, schema columns and row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Detach()

			report := doctorReport{Database: store.Path(), Columns: map[string][]string{}}
			for _, table := range []string{sqlite.UsersTable, sqlite.MenuTable} {
				cols, err := store.Columns(ctx, table)
				if err != nil {
					return sysError("inspect %s: %w", table, err)
				}
				report.Columns[table] = cols
			}

			menu, err := store.Menu()
			if err != nil {
				return sysError("open menu: %w", err)
			}
			if report.MenuItems, err = menu.Count(ctx); err != nil {
				return sysError("count menu: %w", err)
			}
			users, err := store.Users()
			if err != nil {
				return sysError("open users: %w", err)
			}
			if _, report.HasUser, err = users.GetUser(ctx); err != nil {
				return sysError("read user: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "database:", report.Database)
			fmt.Fprintf(out, "%s: %s\n", sqlite.UsersTable, strings.Join(report.Columns[sqlite.UsersTable], ", "))
			fmt.Fprintf(out, "%s: %s\n", sqlite.MenuTable, strings.Join(report.Columns[sqlite.MenuTable], ", "))
			fmt.Fprintln(out, "menu items:", report.MenuItems)
			fmt.Fprintln(out, "user saved:", report.HasUser)
			return nil
		},
	}
}
