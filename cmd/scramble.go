package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/retile/internal/retile"
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble INPUT",
	Short: "Shuffle the tiles of an image with a seeded ordering",
	Long: `Shuffle the tiles of INPUT with the ordering derived from --seed. The
ordering is printed to stderr. unscramble with the same tile size and seed
restores the original image.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindLocalFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScramble(cmd, args, false)
	},
}

var unscrambleCmd = &cobra.Command{
	Use:     "unscramble INPUT",
	Short:   "Restore an image produced by scramble",
	Args:    cobra.ExactArgs(1),
	PreRunE: bindLocalFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScramble(cmd, args, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{scrambleCmd, unscrambleCmd} {
		rootCmd.AddCommand(c)
		addOutputFlags(c)
		c.Flags().StringP("tile", "t", "", "tile size as WIDTHxHEIGHT (required)")
		c.Flags().Uint32("seed", 0, "seed of the tile ordering")
	}
}

func runScramble(cmd *cobra.Command, args []string, inverse bool) error {
	tileSize, err := tileSizeFromConfig()
	if err != nil {
		return err
	}

	runner, err := newRunner()
	if err != nil {
		return err
	}

	ordering, err := runner.Scramble(cmd.Context(), retile.ScrambleJob{
		Input:    args[0],
		Output:   viper.GetString("output"),
		TileSize: tileSize,
		Seed:     viper.GetUint32("seed"),
		Inverse:  inverse,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Ordering: %s\n", ordering)
	return nil
}
