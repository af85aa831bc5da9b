package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/retile/internal/retile"
	"github.com/kiesman99/retile/pkg/tile"
)

const version = "1.0.0"

var (
	cfgFile string

	// appFs is swapped for an in-memory filesystem in tests
	appFs afero.Fs = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "retile",
	Short: "Split an image into tiles and reassemble them in a new order",
	Long: `retile partitions an image into a grid of equal-size tiles and reassembles
them according to an ordering: output slot i receives source tile ordering[i].
Tiles are numbered row by row starting at 0 in the top-left corner.

The tile size must divide both image dimensions and the ordering must use
every tile exactly once.

Examples:
  # Swap the tiles of each row of a 2x2 grid
  retile rearrange in.png --tile 2x2 --ordering 1,0,3,2 -o out.png

  # Same as above; rearrange is the default command
  retile in.png --tile 2x2 --ordering 1,0,3,2 -o out.png

  # Check an arrangement without touching an image
  retile validate --image 4x4 --tile 2x2 --ordering 0,0,1,2

  # Scramble with a seed and restore it
  retile scramble in.png --tile 32x32 --seed 42 -o scrambled.png
  retile unscramble scrambled.png --tile 32x32 --seed 42 -o restored.png

  # Start HTTP server
  retile serve --port 8080`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
	// If no subcommand is specified and we have args, run the rearrange command
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runRearrange(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.retile.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().Int("workers", 1, "goroutines used to copy tiles")
	rootCmd.PersistentFlags().String("user-agent", "retile/"+version, "HTTP User-Agent header for URL inputs")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("user-agent", rootCmd.PersistentFlags().Lookup("user-agent"))

	// Rearrange flags on root for the default behavior
	addRearrangeFlags(rootCmd)
	rootCmd.PreRunE = bindLocalFlags
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".retile" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".retile")
	}

	viper.SetEnvPrefix("RETILE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindLocalFlags binds the running command's flags to viper. Several
// commands share flag names, so binding happens only for the command that runs.
func bindLocalFlags(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.LocalNonPersistentFlags())
}

func setupLogging(cmd *cobra.Command) {
	if !viper.GetBool("verbose") {
		tile.SetLogger(nil)
		return
	}
	tile.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// newRunner builds a runner from the bound configuration
func newRunner() (*retile.Runner, error) {
	opts := &retile.Options{
		UserAgent: viper.GetString("user-agent"),
		Workers:   viper.GetInt("workers"),
		Quality:   viper.GetInt("quality"),
	}

	if name := viper.GetString("format"); name != "" {
		format, err := tile.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		opts.Format = &format
	}

	return retile.NewRunner(appFs, opts), nil
}

func tileSizeFromConfig() (tile.Size, error) {
	s := viper.GetString("tile")
	if s == "" {
		return tile.Size{}, fmt.Errorf("tile size is required (use --tile)")
	}
	return tile.ParseSize(s)
}
