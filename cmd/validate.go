package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/retile/pkg/tile"
)

var errInvalid = errors.New("arrangement is not valid")

var validateCmd = &cobra.Command{
	Use:   "validate [INPUT]",
	Short: "Check a tile size and ordering against an image size",
	Long: `Check whether --tile and --ordering describe an exact permutation of the
tiles of an image. The image size comes from --image or from decoding INPUT.
Prints "valid" and exits 0, or prints the failed check and exits 1.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindLocalFlags,
	RunE:    runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("image", "", "image size as WIDTHxHEIGHT")
	validateCmd.Flags().StringP("tile", "t", "", "tile size as WIDTHxHEIGHT (required)")
	validateCmd.Flags().String("ordering", "", "comma separated source tile for every output slot")
}

func runValidate(cmd *cobra.Command, args []string) error {
	imageSize, err := imageSizeFor(cmd, args)
	if err != nil {
		return err
	}

	tileSize, err := tileSizeFromConfig()
	if err != nil {
		return err
	}

	ordering, err := tile.ParseOrdering(viper.GetString("ordering"))
	if err != nil {
		return err
	}

	if err := tile.Validate(imageSize, tileSize, ordering); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "invalid: %v\n", err)
		return errInvalid
	}

	grid, err := tile.NewGrid(imageSize, tileSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "valid: %d tiles (%d columns, %d rows)\n", grid.Count(), grid.Cols, grid.Rows)
	return nil
}

func imageSizeFor(cmd *cobra.Command, args []string) (tile.Size, error) {
	if s := viper.GetString("image"); s != "" {
		return tile.ParseSize(s)
	}
	if len(args) == 0 {
		return tile.Size{}, fmt.Errorf("either specify --image or an input image")
	}

	processor := tile.NewProcessor(appFs, viper.GetString("user-agent"))
	img, _, err := processor.Load(cmd.Context(), args[0])
	if err != nil {
		return tile.Size{}, err
	}
	b := img.Bounds()
	return tile.Size{Width: b.Dx(), Height: b.Dy()}, nil
}
