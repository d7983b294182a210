package main

import (
	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// JWTCommand constructs the 'jwt' subcommand that generates a signed HS256
// bearer token for a given subject (user ID) and TTL using the configured
// issuer, audience and signing key.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates JWT token for given user ID",
		Run: func(cmd *cobra.Command, args []string) {
			subject, _ := cmd.Flags().GetString("subject")
			TTL, _ := cmd.Flags().GetDuration("ttl")

			tokens, err := auth.NewTokenService(auth.TokenServiceOptions{
				Issuer:    cfg.JWT.Issuer,
				Audience:  cfg.JWT.Audience,
				SecretKey: cfg.JWT.SecretKey,
				TTL:       TTL,
			})
			if err != nil {
				logger.Fatal(context.Background(), "could not create token service", zap.Error(err))
			}

			signed, err := tokens.Issue(subject)
			if err != nil {
				logger.Fatal(context.Background(), "could not sign JWT", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "JWT subject (e.g., user ID)")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token TTL (e.g., 30s, 15m, 1h)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
