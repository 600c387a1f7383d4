package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-tutorial/internal"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/catalog"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/config"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/tui"
)

const (
	Version = "0.1.0"
	appName = "tictactoe"
)

// main - is the entry point of the application. It parses the command line and runs the chosen program.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Tic-tac-toe with move history and a filterable product table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.yml", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			return app.RunApp(initLogger(conf.LogLevel, os.Stdout), conf)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "game",
		Short: "Play tic-tac-toe in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, closeLog, err := initTUILogger(conf)
			if err != nil {
				return err
			}
			defer closeLog()

			return tui.RunGame(logger)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "products",
		Short: "Browse the product table in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			products, err := catalog.Load(conf.CatalogPath)
			if err != nil {
				return fmt.Errorf("could not load product catalog: %w", err)
			}

			logger, closeLog, err := initTUILogger(conf)
			if err != nil {
				return err
			}
			defer closeLog()

			return tui.RunProducts(logger, products.Products())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// initialize logger.
func initLogger(logLevel string, out io.Writer) *slog.Logger {
	level := slog.LevelInfo

	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// the terminal programs own the screen, so they log to a file or nowhere.
func initTUILogger(conf *config.Config) (*slog.Logger, func(), error) {
	if conf.TUILogPath == "" {
		return initLogger(conf.LogLevel, io.Discard), func() {}, nil
	}

	file, err := os.OpenFile(conf.TUILogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	return initLogger(conf.LogLevel, file), func() { _ = file.Close() }, nil
}
