package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/edgelight"
	"github.com/gogpu/edgelight/surface"
)

var renderCmd = &cobra.Command{
	Use:   "render <package>",
	Short: "Render a full trail run to PNG frames",
	Long: `Simulates one run at the configured frame rate and writes every frame
to the output directory as frame_NNNNN.png.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.Surface.Output
		}
		declared, _ := cmd.Flags().GetString("color")
		bg, _ := cmd.Flags().GetString("background")

		sig := edgelight.Signals{Declared: edgelight.Unset, Package: args[0]}
		if declared != "" {
			c, err := edgelight.ParseHex(declared)
			if err != nil {
				return fmt.Errorf("invalid --color: %w", err)
			}
			sig.Declared = c
		}
		opts := surface.DefaultOptions(cfg.Surface.Width, cfg.Surface.Height)
		opts.OutputDir = out
		if bg != "" {
			c, err := edgelight.ParseHex(bg)
			if err != nil {
				return fmt.Errorf("invalid --background: %w", err)
			}
			opts.Background = c
		} else {
			opts.Background = color.Black
		}
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		res := newResolver().Resolve(sig)
		surf := surface.NewImageSurface(opts.Width, opts.Height, opts)
		defer surf.Close()

		frames, err := renderRun(surf, res.Color, cfg.Animation.Duration, cfg.Animation.FrameRate)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rendered %d frames of %s (%s) to %s\n", frames, res.Color, res.Source, out)
		return nil
	},
}

// renderRun ticks one run at a fixed step and renders every frame,
// including the final clearing frame. It returns the number of frames.
func renderRun(target edgelight.Renderer, c edgelight.Color, d time.Duration, fps int) (int, error) {
	anim := edgelight.NewAnimator(edgelight.WithStyle(cfg.Style()))
	anim.Start(c, d)

	w, h := target.Size()
	size := edgelight.Size{Width: float64(w), Height: float64(h)}
	step := time.Second / time.Duration(max(fps, 1))

	n := 0
	for elapsed := time.Duration(0); ; elapsed += step {
		f := anim.Tick(elapsed, size)
		if err := target.Render(f); err != nil {
			return n, err
		}
		n++
		if f.Finished {
			return n, nil
		}
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("out", "o", "", "Output directory (default from config)")
	renderCmd.Flags().String("color", "", "Declared notification color (#AARRGGBB)")
	renderCmd.Flags().String("background", "", "Background color (#AARRGGBB, default black)")
}
