package cmd

import (
	"fmt"
	"portfolio-server/pkg/config"
	"portfolio-server/pkg/db/sqldb"
	"portfolio-server/portfolio_server/data"
	"portfolio-server/portfolio_server/settings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Resolve a setting from the configured sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cnf, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger := newLogger(cnf)
		d := openSettings(cmd.Context(), cnf, logger)
		r, err := settings.NewResolverFromNames(logger, cnf.Settings.Sources, d)
		if err != nil {
			return err
		}
		v, err := r.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Store a setting in the settings store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openStore(cmd)
		if err != nil {
			return err
		}
		return d.Set(cmd.Context(), args[0], args[1])
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the settings in the settings store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openStore(cmd)
		if err != nil {
			return err
		}
		list, err := d.GetAll(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTATUS\tUPDATED")
		for _, e := range list {
			status := "set"
			if !e.IsSet() {
				status = "not set"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, status, humanize.Time(time.Unix(e.UpdateAt, 0)))
		}
		return w.Flush()
	},
}

// openStore opens the settings store regardless of the configured sources.
func openStore(cmd *cobra.Command) (data.ISettingData, error) {
	cnf, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cnf)
	if err := sqldb.InitDB(cnf); err != nil {
		return nil, err
	}
	d := data.NewSettingDataFactory(logger, sqldb.GetDB(), cnf.Database.Driver).NewSettingData()
	if err := d.EnsureSchema(cmd.Context()); err != nil {
		return nil, err
	}
	return d, nil
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsListCmd)
	rootCmd.AddCommand(settingsCmd)
}
