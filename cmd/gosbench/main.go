// Command gosbench exercises the portability layer on the host kernel.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"gfxport/internal/buildinfo"
)

var rootCmd = &cobra.Command{
	Use:          "gosbench",
	Short:        "Soak and inspect the gfxport OS layer",
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = buildinfo.Long()

	rootCmd.AddCommand(soakCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "TOML configuration file (defaults when empty)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
