package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Pavex/internal/auth"
)

var tokenFlags struct {
	subject string
	ttl     time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for catalog writes",
	Long: `Sign a bearer token with auth.token_key (PAVEX_AUTH_TOKEN_KEY) for the
write routes of the service.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenFlags.subject == "" {
			return errors.New("--subject is required")
		}
		tok, err := auth.NewAuthenv(cfg.Auth.TokenKey).IssueToken(tokenFlags.subject, tokenFlags.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.subject, "subject", "", "who the token is for")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "token lifetime")
}
