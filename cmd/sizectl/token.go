package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fitable-backend/internal/shared/auth"
	"fitable-backend/internal/shared/config"
)

func newTokenCmd() *cobra.Command {
	var sub, email, name string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token with the configured JWT secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sub == "" {
				return errors.New("--sub is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.Env)
			if err != nil {
				return err
			}
			signed, err := tokens.Sign(sub, email, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "user id to put in the subject claim")
	cmd.Flags().StringVar(&email, "email", "", "optional email claim")
	cmd.Flags().StringVar(&name, "name", "", "optional name claim")
	return cmd
}
