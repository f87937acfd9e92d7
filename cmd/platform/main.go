package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yukti/platform/internal/platform/app"
	"github.com/yukti/platform/pkg/httpx"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "platform",
		Short:         "Multi-tenant company onboarding and passwordless authentication service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json or toml)")

	root.AddCommand(
		newServeCommand(&configFile),
		newMigrateCommand(&configFile),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			v, err := app.NewViper(*configFile)
			if err != nil {
				return err
			}
			v.SetDefault("version", version)
			httpx.ConfigureProfiles(v.GetString)

			cfg, err := app.LoadConfig(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			application, err := app.New(cfg, app.NewViperSettings(v))
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

func newMigrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and print the schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := app.NewViper(*configFile)
			if err != nil {
				return err
			}
			path := v.GetString("platform_database_file")

			db, err := app.OpenStore(path)
			if err != nil {
				return err
			}
			defer db.Close()

			ver, dirty, err := db.MigrationVersion()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: schema version %d (dirty=%t)\n", path, ver, dirty)
			return nil
		},
	}
}
