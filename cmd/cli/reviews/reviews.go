package reviews

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/verakita/verakita-api/cmd/cli/client"
	"github.com/verakita/verakita-api/cmd/cli/output"
	"github.com/verakita/verakita-api/cmd/cli/root"
	"github.com/verakita/verakita-api/internal/models"
)

// InitReviews registers the reviews command group on the root command.
func InitReviews(rootCmd *cobra.Command) {
	reviewsCmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and submit reviews",
	}
	reviewsCmd.AddCommand(listCmd(), getCmd(), createCmd(), deleteCmd(), statsCmd(), verifyCmd())
	rootCmd.AddCommand(reviewsCmd)
}

// ==========================
// List Reviews
// ==========================

func listCmd() *cobra.Command {
	var target string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews, optionally for one target",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if target != "" {
				q.Set("target", target)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}

			var out struct {
				Reviews []models.Review `json:"reviews"`
				Total   int             `json:"total"`
			}
			if _, err := client.Call(http.MethodGet, "/api/reviews?"+q.Encode(), "", nil, &out); err != nil {
				return err
			}
			if root.JSONOutput(cmd) {
				return output.PrintJSON(out)
			}
			if len(out.Reviews) == 0 {
				fmt.Println("No reviews found.")
				return nil
			}

			rows := make([][]interface{}, 0, len(out.Reviews))
			for _, r := range out.Reviews {
				rows = append(rows, []interface{}{
					r.ID, r.Target, r.Rating, r.Author,
					time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339),
				})
			}
			output.RenderTable([]string{"ID", "Target", "Rating", "Author", "Time"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Reviewed address or object ID")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of reviews")
	root.AddJSONFlag(cmd)
	return cmd
}

// ==========================
// Get / Delete / Verify
// ==========================

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a review by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out map[string]any
			if _, err := client.Call(http.MethodGet, "/api/reviews/"+url.PathEscape(args[0]), "", nil, &out); err != nil {
				return err
			}
			return output.PrintJSON(out)
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Attempt to delete a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := client.Call(http.MethodDelete, "/api/reviews/"+url.PathEscape(args[0]), "", nil, nil)
			return err
		},
	}
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <id>",
		Short: "Check that a review object exists on-chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				ID       string `json:"id"`
				Verified bool   `json:"verified"`
			}
			if _, err := client.Call(http.MethodGet, "/api/reviews/"+url.PathEscape(args[0])+"/verify", "", nil, &out); err != nil {
				return err
			}
			if root.JSONOutput(cmd) {
				return output.PrintJSON(out)
			}
			fmt.Printf("Review %s verified: %t\n", out.ID, out.Verified)
			return nil
		},
	}
	root.AddJSONFlag(cmd)
	return cmd
}

// ==========================
// Create Review
// ==========================

func createCmd() *cobra.Command {
	var target, content, wallet, signature string
	var rating float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a review",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"target":        target,
				"rating":        rating,
				"content":       content,
				"walletAddress": wallet,
			}
			if signature != "" {
				body["signature"] = signature
			}

			var receipt models.ReviewReceipt
			if _, err := client.Call(http.MethodPost, "/api/reviews", "", body, &receipt); err != nil {
				return err
			}
			if root.JSONOutput(cmd) {
				return output.PrintJSON(receipt)
			}
			output.RenderTable([]string{"Review ID", "Transaction", "Blob ID"}, [][]interface{}{
				{receipt.ReviewID, receipt.TransactionHash, receipt.BlobID},
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Reviewed address or object ID")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating from 1 to 5")
	cmd.Flags().StringVar(&content, "content", "", "Review text")
	cmd.Flags().StringVar(&wallet, "wallet", "", "Author wallet address")
	cmd.Flags().StringVar(&signature, "signature", "", "Wallet signature")
	root.AddJSONFlag(cmd)
	return cmd
}

// ==========================
// Stats
// ==========================

func statsCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rating statistics for a target",
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats models.ReviewStats
			path := "/api/reviews/stats?target=" + url.QueryEscape(target)
			if _, err := client.Call(http.MethodGet, path, "", nil, &stats); err != nil {
				return err
			}
			if root.JSONOutput(cmd) {
				return output.PrintJSON(stats)
			}

			fmt.Printf("Total reviews: %d\nAverage rating: %.2f\n", stats.TotalReviews, stats.AverageRating)
			ratings := make([]int, 0, len(stats.RatingDistribution))
			for r := range stats.RatingDistribution {
				ratings = append(ratings, r)
			}
			sort.Sort(sort.Reverse(sort.IntSlice(ratings)))
			rows := make([][]interface{}, 0, len(ratings))
			for _, r := range ratings {
				rows = append(rows, []interface{}{r, stats.RatingDistribution[r]})
			}
			output.RenderTable([]string{"Rating", "Count"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Reviewed address or object ID")
	root.AddJSONFlag(cmd)
	return cmd
}
