package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "palimg",
	Short: "Palette-first packer for indexed-color web assets",
	Long: `palimg — turns logos, banners and icons into compact indexed-color
assets with bounded palettes built by median cut.

Generates GIF/PNG/BMP variants at multiple palette depths, content-addressed
filenames, and a manifest describing every palette and output file.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"palimg %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[palimg] "+format+"\n", args...)
	}
}
