package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gfxport/gos"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	keyColor  = color.New(color.FgYellow)
)

// applyColor honours the --color flag; "auto" leaves fatih/color's
// terminal detection alone.
func applyColor(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(mode) {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (gos.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return gos.Config{}, err
	}
	if path == "" {
		return gos.DefaultConfig(), nil
	}
	return gos.LoadConfig(path)
}
