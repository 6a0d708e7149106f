package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hotelprice/infra/modelstore"
)

var exportOut string

var exportModelCmd = &cobra.Command{
	Use:   "export-model",
	Short: "Write the sample linear model artifact",
	Long: "Fits a linear model on the built-in sample table and writes it as a JSON " +
		"artifact that the service loads from model.path.",
	RunE: runExportModel,
}

func init() {
	exportModelCmd.Flags().StringVarP(&exportOut, "out", "o", "models/hotel_price_model.json", "artifact destination")
	rootCmd.AddCommand(exportModelCmd)
}

func runExportModel(cmd *cobra.Command, _ []string) error {
	m, err := modelstore.FitFixture()
	if err != nil {
		return fmt.Errorf("fit fixture: %w", err)
	}
	if dir := filepath.Dir(exportOut); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	if err := modelstore.Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "model %s written to %s\n", m.Name(), exportOut)
	return err
}
