package admin

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verakita/verakita-api/cmd/cli/client"
	"github.com/verakita/verakita-api/cmd/cli/config"
	"github.com/verakita/verakita-api/cmd/cli/output"
	"github.com/verakita/verakita-api/cmd/cli/root"
	"github.com/verakita/verakita-api/internal/models"
)

// InitAdmin registers the admin command group on the root command.
func InitAdmin(rootCmd *cobra.Command) {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin panel commands (requires an admin token)",
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage admin API keys",
	}
	keysCmd.AddCommand(listKeysCmd(), createKeyCmd(), revokeKeyCmd())

	adminCmd.AddCommand(logsCmd(), keysCmd)
	rootCmd.AddCommand(adminCmd)
}

func token() (string, error) {
	t, err := config.LoadToken()
	if err != nil || t == "" {
		return "", fmt.Errorf("no admin token: run 'verakita token --save' or set VERAKITA_TOKEN")
	}
	return t, nil
}

// ==========================
// Logs
// ==========================

func logsCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show system logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := token()
			if err != nil {
				return err
			}

			path := "/api/admin/logs"
			if level != "" {
				path += "?level=" + url.QueryEscape(level)
			}
			var out struct {
				Logs   []models.LogEntry `json:"logs"`
				Total  int               `json:"total"`
				Counts map[string]int    `json:"counts"`
			}
			if _, err := client.Call(http.MethodGet, path, tok, nil, &out); err != nil {
				return err
			}
			if root.JSONOutput(cmd) {
				return output.PrintJSON(out)
			}

			rows := make([][]interface{}, 0, len(out.Logs))
			for _, e := range out.Logs {
				rows = append(rows, []interface{}{
					e.ID, e.Timestamp.Format(time.RFC3339), strings.ToUpper(e.Level), e.Service, e.Message,
				})
			}
			output.RenderTable([]string{"ID", "Time", "Level", "Service", "Message"}, rows)
			fmt.Printf("info: %d  warning: %d  error: %d\n",
				out.Counts[models.LevelInfo], out.Counts[models.LevelWarning], out.Counts[models.LevelError])
			return nil
		},
	}
	cmd.Flags().StringVar(&level, "level", "", "Filter by level (info, warning, error)")
	root.AddJSONFlag(cmd)
	return cmd
}

// ==========================
// API Keys
// ==========================

func listKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := token()
			if err != nil {
				return err
			}

			var out struct {
				Keys []models.APIKey `json:"keys"`
			}
			if _, err := client.Call(http.MethodGet, "/api/admin/api-keys", tok, nil, &out); err != nil {
				return err
			}
			if root.JSONOutput(cmd) {
				return output.PrintJSON(out.Keys)
			}

			rows := make([][]interface{}, 0, len(out.Keys))
			for _, k := range out.Keys {
				rows = append(rows, []interface{}{
					k.ID, k.Name, k.MaskedKey, strings.Join(k.Permissions, ","), k.Status,
				})
			}
			output.RenderTable([]string{"ID", "Name", "Key", "Permissions", "Status"}, rows)
			return nil
		},
	}
	root.AddJSONFlag(cmd)
	return cmd
}

func createKeyCmd() *cobra.Command {
	var name, env string
	var perms []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an API key; the secret is shown once",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := token()
			if err != nil {
				return err
			}

			body := map[string]any{"name": name, "environment": env, "permissions": perms}
			var key models.NewAPIKey
			if _, err := client.Call(http.MethodPost, "/api/admin/api-keys", tok, body, &key); err != nil {
				return err
			}
			if root.JSONOutput(cmd) {
				return output.PrintJSON(key)
			}
			fmt.Printf("Created key %d (%s)\nSecret: %s\nStore it now; it will not be shown again.\n",
				key.ID, key.Name, key.Secret)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Key name")
	cmd.Flags().StringVar(&env, "env", "dev", "Environment (prod, dev, test)")
	cmd.Flags().StringSliceVar(&perms, "perm", []string{models.PermissionRead}, "Permissions (read, write)")
	root.AddJSONFlag(cmd)
	return cmd
}

func revokeKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := token()
			if err != nil {
				return err
			}

			var key models.APIKey
			if _, err := client.Call(http.MethodDelete, "/api/admin/api-keys/"+url.PathEscape(args[0]), tok, nil, &key); err != nil {
				return err
			}
			fmt.Printf("Key %d (%s) is now %s\n", key.ID, key.Name, key.Status)
			return nil
		},
	}
}
