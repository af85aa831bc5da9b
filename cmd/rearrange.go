package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/retile/internal/retile"
	"github.com/kiesman99/retile/pkg/tile"
)

var rearrangeCmd = &cobra.Command{
	Use:   "rearrange INPUT",
	Short: "Reassemble the tiles of an image in the given order",
	Long: `Reassemble the tiles of INPUT so that output slot i holds source tile
ordering[i]. INPUT is a file path or an http(s) URL. The output keeps the
size and color model of the input.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindLocalFlags,
	RunE:    runRearrange,
}

func init() {
	rootCmd.AddCommand(rearrangeCmd)
	addRearrangeFlags(rearrangeCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringP("format", "f", "", "output format (png|jpeg|gif|bmp|tiff, default: from output extension)")
	cmd.Flags().Int("quality", tile.DefaultJPEGQuality, "JPEG quality")
}

func addRearrangeFlags(cmd *cobra.Command) {
	addOutputFlags(cmd)
	cmd.Flags().StringP("tile", "t", "", "tile size as WIDTHxHEIGHT (required)")
	cmd.Flags().String("ordering", "", "comma separated source tile for every output slot (required)")
}

func runRearrange(cmd *cobra.Command, args []string) error {
	tileSize, err := tileSizeFromConfig()
	if err != nil {
		return err
	}

	orderingStr := viper.GetString("ordering")
	if orderingStr == "" {
		return fmt.Errorf("ordering is required (use --ordering)")
	}
	ordering, err := tile.ParseOrdering(orderingStr)
	if err != nil {
		return err
	}

	runner, err := newRunner()
	if err != nil {
		return err
	}

	return runner.Rearrange(cmd.Context(), retile.Job{
		Input:    args[0],
		Output:   viper.GetString("output"),
		TileSize: tileSize,
		Ordering: ordering,
	})
}
