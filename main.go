package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Poolcalc/internal/auth"
	"Poolcalc/internal/calc/importer"
	"Poolcalc/internal/config"
	"Poolcalc/internal/db"
	"Poolcalc/internal/log"
	"Poolcalc/internal/server"
)

var (
	envFile      string
	tokenSubject string
	tokenTTL     time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "poolcalc",
	Short:         "Pool area and liner material calculator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calculator API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, undo, err := setup()
		if err != nil {
			return err
		}
		defer undo()

		conn, err := db.Open(cfg.Database.Type, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.Migrate(conn, cfg.Database.Type); err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return server.Run(ctx, cfg, conn)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, undo, err := setup()
		if err != nil {
			return err
		}
		defer undo()

		conn, err := db.Open(cfg.Database.Type, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.Migrate(conn, cfg.Database.Type); err != nil {
			return err
		}
		zap.S().Infow("migrations applied", "db_type", cfg.Database.Type)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE.xlsx",
	Short: "Compute every pool in a spreadsheet and print the results as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, undo, err := setup()
		if err != nil {
			return err
		}
		defer undo()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := importer.Import(f)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for POST /api/calculations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, undo, err := setup()
		if err != nil {
			return err
		}
		defer undo()

		if !cfg.AuthEnabled() {
			return fmt.Errorf("POOL_TOKEN_KEY environment variable is not set")
		}
		token, err := auth.IssueToken([]byte(cfg.Service.TokenKey), tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

// setup loads configuration and installs the global logger.
func setup() (*config.Config, func(), error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.New(files...)
	if err != nil {
		return nil, nil, fmt.Errorf("reading configuration: %w", err)
	}
	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)
	return cfg, func() {
		undo()
		_ = logger.Sync()
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "Path to a .env file (default .env)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Who the token is issued to")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 30*24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
