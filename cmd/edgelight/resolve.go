package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/edgelight"
	"github.com/gogpu/edgelight/swatch"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <package>",
	Short: "Resolve the trail color for a notification source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		declared, _ := cmd.Flags().GetString("color")
		iconPath, _ := cmd.Flags().GetString("icon")

		sig := edgelight.Signals{Declared: edgelight.Unset, Package: args[0]}
		if declared != "" {
			c, err := edgelight.ParseHex(declared)
			if err != nil {
				return fmt.Errorf("invalid --color: %w", err)
			}
			sig.Declared = c
		}
		if iconPath != "" {
			icon, err := loadImage(iconPath)
			if err != nil {
				return err
			}
			sig.Icon = icon
		}

		r := newResolver()
		res := r.Resolve(sig)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "color:       %s\n", res.Color)
		fmt.Fprintf(out, "source:      %s\n", res.Source)
		fmt.Fprintf(out, "dark:        %t\n", edgelight.IsDark(res.Color))
		fmt.Fprintf(out, "contrasting: %s\n", edgelight.ContrastingColor(res.Color))
		p := edgelight.ComplementaryPalette(res.Color)
		fmt.Fprintf(out, "palette:     %s %s %s %s\n", p[0], p[1], p[2], p[3])
		return nil
	},
}

// newResolver builds a resolver from the loaded config with icon
// swatch extraction enabled.
func newResolver() *edgelight.Resolver {
	opts := append(cfg.ResolverOptions(), edgelight.WithSwatchExtractor(swatch.New()))
	return edgelight.NewResolver(opts...)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open icon: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon %s: %w", path, err)
	}
	return img, nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("color", "", "Declared notification color (#AARRGGBB)")
	resolveCmd.Flags().String("icon", "", "Path to a PNG or JPEG notification icon")
}
