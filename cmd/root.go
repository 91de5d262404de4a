package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/config"
	"github.com/pable/doubles-league/internal/logger"
)

var (
	dbPath   string
	logLevel    string
	envFile     string
	metricsFile string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "league",
	Short: "Doubles league ratings and stats",
	Long:  "Replay a doubles league's match log into player and pair ratings, stats, streaks and records.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.New(logLevel)

		var err error
		if cfg, err = config.Load(envFile, log); err != nil {
			return err
		}
		if !cmd.Flags().Changed("log-level") {
			log = logger.New(cfg.LogLevel)
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return writeMetrics(metricsFile)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default $LEAGUE_DB_PATH or ~/.league/league.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "after the command, write cache counters in Prometheus text format to this path")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(ratingsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(rivalsCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(dropCmd)
}
