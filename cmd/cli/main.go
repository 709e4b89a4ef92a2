package main

import (
	"fmt"
	"os"

	"github.com/verakita/verakita-api/cmd/cli/admin"
	"github.com/verakita/verakita-api/cmd/cli/auth"
	"github.com/verakita/verakita-api/cmd/cli/reviews"
	"github.com/verakita/verakita-api/cmd/cli/root"
	"github.com/verakita/verakita-api/cmd/cli/walrus"
)

func main() {
	rootCmd := root.GetRoot()
	reviews.InitReviews(rootCmd)
	walrus.InitWalrus(rootCmd)
	admin.InitAdmin(rootCmd)
	auth.InitAuth(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
