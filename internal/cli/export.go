package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jihun/brolly/internal/api/handler"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a snapshot of members and rental history",
	Long:  "Write a consistent point-in-time JSON snapshot of both tables, for backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		snapshot, err := services.ExportRepo.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to take snapshot: %w", err)
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(handler.ToExportResponse(snapshot)); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}

		if exportOut != "" {
			fmt.Printf("Snapshot written to %s\n", exportOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
}
