package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhihern080614/mochibay-backend/internal/application/auth"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/persistence"
	"github.com/zhihern080614/mochibay-backend/pkg/config"
)

// bootFunc abre el almacén configurado; los tests la reemplazan.
type bootFunc func(ctx context.Context) (repository.Store, *config.Config, error)

// bootStore carga la configuración y abre el almacén.
func bootStore(ctx context.Context) (repository.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := persistence.Open(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func newRootCmd(boot bootFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "ordersctl",
		Short:         "Operator CLI for the mochibay order backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(boot))
	root.AddCommand(createAdminCmd(boot))
	root.AddCommand(promoteCmd(boot))
	return root
}

// ordersctl migrate
func migrateCmd(boot bootFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and orders tables (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cfg, err := boot(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Migrating %s…\n", cfg.DB.Redacted())
			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema up to date.")
			return nil
		},
	}
}

// ordersctl create-admin
func createAdminCmd(boot bootFunc) *cobra.Command {
	var in dto.RegisterRequest
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register a new user with the admin role",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cfg, err := boot(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			id, err := newAuthUseCase(store, cfg).CreateAdmin(ctx, in)
			if err != nil {
				return fmt.Errorf("create-admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created (id %s).\n", in.Email, id)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "display name")
	f.StringVar(&in.Email, "email", "", "login email")
	f.StringVar(&in.Password, "password", "", "initial password")
	f.StringVar(&in.Phone, "phone", "", "contact phone")
	f.StringVar(&in.UserClass, "class", "staff", "user class")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

// ordersctl promote
func promoteCmd(boot bootFunc) *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Change the role of an existing user (default: admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cfg, err := boot(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := newAuthUseCase(store, cfg).SetRole(ctx, email, role); err != nil {
				return fmt.Errorf("promote %s: %w", email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", email, role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to promote")
	cmd.Flags().StringVar(&role, "role", entity.RoleAdmin, "new role (user or admin)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAuthUseCase(store repository.Store, cfg *config.Config) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
}
