package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const commandTimeout = 30 * time.Second

// openBackendFunc is replaced in tests
var openBackendFunc = func(ctx context.Context, log *zap.Logger) (*persistence.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	return persistence.OpenBackend(ctx, &cfg.Database, persistence.WithGormLogger(gormLog))
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Operate the portfolio backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	newLogger := func() *zap.Logger {
		return logger.New(config.LogConfig{Level: logLevel, Format: "console", Output: "stderr"})
	}

	root.AddCommand(
		newHashPasswordCmd(),
		newSeedCmd(newLogger),
		newOverviewCmd(newLogger),
	)
	return root
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash for admin.password_hash",
		Long:  `Hashes the given password, or the first line of stdin when no argument is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			hash, err := auth.NewPasswordHasher(cost).Hash(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", auth.DefaultBcryptCost, "bcrypt cost")
	return cmd
}

func passwordArg(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}

func newSeedCmd(newLogger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the about and biography documents from defaults",
		Long:  `Existing documents are left untouched.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger()
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			backend, err := openBackendFunc(ctx, log)
			if err != nil {
				return err
			}
			defer func() { _ = backend.Close() }()

			about, err := appcontent.NewAboutService(backend.Store, appcontent.WithLogger(log)).Read(ctx)
			if err != nil {
				return fmt.Errorf("seed about: %w", err)
			}
			bio, err := appcontent.NewBiographyService(backend.Store, appcontent.WithLogger(log)).Read(ctx)
			if err != nil {
				return fmt.Errorf("seed biography: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "about:     %s\n", about.AboutTitle)
			fmt.Fprintf(out, "biography: %s\n", bio.HeroTitle)
			return nil
		},
	}
}

func newOverviewCmd(newLogger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Print the dashboard record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger()
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			backend, err := openBackendFunc(ctx, log)
			if err != nil {
				return err
			}
			defer func() { _ = backend.Close() }()

			counts, err := appcontent.NewOverviewService(backend.Store).Counts(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-18s %d\n", "contact messages", counts.ContactMessages)
			fmt.Fprintf(out, "%-18s %d\n", "hire requests", counts.HireRequests)
			fmt.Fprintf(out, "%-18s %d\n", "blog posts", counts.BlogPosts)
			fmt.Fprintf(out, "%-18s %d\n", "certificates", counts.Certificates)
			fmt.Fprintf(out, "%-18s %d\n", "projects", counts.Projects)
			return nil
		},
	}
}
