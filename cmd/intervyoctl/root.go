package main

import (
	"context"
	"errors"
	"log"

	"intervyo-backend/pkg/database"
	"intervyo-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "intervyoctl"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "intervyoctl administers the Intervyo backend: company catalog and recommendation previews",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Init(viper.GetBool("debug"))
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("database-url", "DATABASE_URL"); err != nil {
		log.Fatalf("binding DATABASE_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is intervyoctl.yaml in current directory)")
	rootCmd.PersistentFlags().String("database-url", "", "postgres connection string (env DATABASE_URL)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")

	viper.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(companiesCmd, recommendCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional; flags and env are enough.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	dsn := viper.GetString("database-url")
	if dsn == "" {
		return nil, errors.New("database url is required (--database-url or DATABASE_URL)")
	}
	return database.NewPostgresConnection(ctx, dsn)
}
