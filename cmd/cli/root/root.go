package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the verakita command.
var RootCmd = &cobra.Command{
	Use:           "verakita",
	Short:         "Verakita review API CLI",
	Long:          "Command line interface for the Verakita review API: reviews, Walrus storage and admin tools.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}

// AddJSONFlag adds the --json/-j flag to cmd.
func AddJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Output raw JSON instead of tables")
}

// JSONOutput reports whether --json was set on cmd.
func JSONOutput(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}
