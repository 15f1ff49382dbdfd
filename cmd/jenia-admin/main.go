package main

import (
	"context"
	"fmt"
	"os"

	"github.com/XrOne/jenia-portfolio/internal/config"
	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/logging"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "jenia-admin",
	Short: "Administrative tasks for the portfolio backend",
	Long: `Administrative tasks that run against the portfolio database and storage.

Configuration is read from the environment (and .env) exactly like the API server.`,
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var promoteCmd = &cobra.Command{
	Use:   "promote <openId>",
	Short: "Grant the admin role to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetRole(cmd, args[0], models.RoleAdmin)
	},
}

var demoteCmd = &cobra.Command{
	Use:   "demote <openId>",
	Short: "Revoke the admin role from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetRole(cmd, args[0], models.RoleUser)
	},
}

// deps holds the resources shared by every subcommand.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *database.DB
}

func (r *deps) Close() {
	r.db.Close()
	_ = r.logger.Sync()
}

func open(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &deps{cfg: cfg, logger: logger, db: db}, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}

func runSetRole(cmd *cobra.Command, openID, role string) error {
	ctx := cmd.Context()
	rt, err := open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	users := services.NewUserService(rt.db, rt.cfg.OwnerOpenID, rt.logger)
	user, err := users.SetRoleByOpenID(ctx, openID, role)
	if err != nil {
		return fmt.Errorf("failed to set role for %s: %w", openID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.OpenID, user.Role)
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(demoteCmd)
	rootCmd.AddCommand(publishCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
