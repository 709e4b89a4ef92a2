package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verakita/verakita-api/cmd/cli/config"
	"github.com/verakita/verakita-api/internal/middleware"
)

// InitAuth registers the token command on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(tokenCmd())
}

// tokenCmd mints an admin JWT signed with the server's secret and optionally stores it locally.
func tokenCmd() *cobra.Command {
	var secret, subject string
	var ttl time.Duration
	var save bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token",
		Long:  "Sign an admin JWT with the API's JWT_SECRET. Use --save to store it for admin commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("secret is required (--secret or JWT_SECRET)")
			}
			if subject == "" {
				return fmt.Errorf("subject is required")
			}

			tok, err := middleware.IssueToken([]byte(secret), subject, middleware.RoleAdmin, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			if save {
				if err := config.SaveToken(tok); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
				fmt.Println("Token stored locally.")
				return nil
			}
			fmt.Println(tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (defaults to JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "sub", "admin", "Token subject, usually a wallet address")
	cmd.Flags().DurationVar(&ttl, "ttl", config.TokenTTL(), "Token lifetime (defaults to JWT_EXPIRE_HOURS)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the token instead of printing it")
	return cmd
}
