package walrus

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verakita/verakita-api/cmd/cli/client"
	"github.com/verakita/verakita-api/cmd/cli/output"
	"github.com/verakita/verakita-api/cmd/cli/root"
)

// InitWalrus registers the walrus command group on the root command.
func InitWalrus(rootCmd *cobra.Command) {
	walrusCmd := &cobra.Command{
		Use:   "walrus",
		Short: "Store and fetch Walrus blobs through the API",
	}
	walrusCmd.AddCommand(uploadCmd(), fetchCmd())
	rootCmd.AddCommand(walrusCmd)
}

type uploadResult struct {
	BlobID   string `json:"blobId"`
	EndEpoch int64  `json:"endEpoch"`
	Cost     int64  `json:"cost"`
}

// ==========================
// Upload
// ==========================

func uploadCmd() *cobra.Command {
	var epochs int
	var data string

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a file, or a JSON document with --data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res uploadResult
			var err error
			switch {
			case len(args) == 1:
				res, err = uploadFile(args[0], epochs)
			case data != "":
				_, err = client.Send(http.MethodPost, "/api/walrus/upload", "", "application/json",
					bytes.NewBufferString(fmt.Sprintf(`{"data":%s,"epochs":%d}`, data, epochs)), &res)
			default:
				return fmt.Errorf("a file argument or --data is required")
			}
			if err != nil {
				return err
			}

			if root.JSONOutput(cmd) {
				return output.PrintJSON(res)
			}
			output.RenderTable([]string{"Blob ID", "End Epoch", "Cost"}, [][]interface{}{
				{res.BlobID, res.EndEpoch, res.Cost},
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&epochs, "epochs", 5, "Storage duration in epochs")
	cmd.Flags().StringVar(&data, "data", "", "JSON document to store")
	root.AddJSONFlag(cmd)
	return cmd
}

func uploadFile(path string, epochs int) (uploadResult, error) {
	var res uploadResult
	f, err := os.Open(path)
	if err != nil {
		return res, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return res, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return res, err
	}
	if err := mw.WriteField("epochs", strconv.Itoa(epochs)); err != nil {
		return res, err
	}
	if err := mw.Close(); err != nil {
		return res, err
	}

	_, err = client.Send(http.MethodPost, "/api/walrus/upload", "", mw.FormDataContentType(), &body, &res)
	return res, err
}

// ==========================
// Fetch
// ==========================

func fetchCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch <blobId>",
		Short: "Fetch a blob to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := io.Writer(os.Stdout)
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if _, err := client.Download("/api/walrus/"+url.PathEscape(args[0]), w); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(os.Stderr, "Blob %s written to %s\n", args[0], out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the blob to this file")
	return cmd
}
