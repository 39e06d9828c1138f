package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/edgelight"
	"github.com/gogpu/edgelight/internal/adapters/redis"
	"github.com/gogpu/edgelight/notify"
)

var sendCmd = &cobra.Command{
	Use:   "send <package>",
	Short: "Publish a notification to the Redis channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("redis")
		if addr == "" {
			addr = cfg.Redis.Addr
		}
		if addr == "" {
			return fmt.Errorf("no redis address: set redis.addr or --redis")
		}
		title, _ := cmd.Flags().GetString("title")
		text, _ := cmd.Flags().GetString("text")
		declared, _ := cmd.Flags().GetString("color")
		importance, _ := cmd.Flags().GetInt("importance")
		duration, _ := cmd.Flags().GetDuration("duration")
		iconPath, _ := cmd.Flags().GetString("icon")

		n := notify.Notification{
			Package:    args[0],
			Title:      title,
			Text:       text,
			Importance: importance,
			Duration:   duration,
		}
		if declared != "" {
			c, err := edgelight.ParseHex(declared)
			if err != nil {
				return fmt.Errorf("invalid --color: %w", err)
			}
			n.Color = c
		}
		if iconPath != "" {
			icon, err := loadImage(iconPath)
			if err != nil {
				return err
			}
			n.Icon = icon
		}

		client := redis.NewClient(addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		pub := redis.NewPublisher(client, redis.WithChannel(cfg.Redis.Channel))

		receivers, err := pub.Publish(cmd.Context(), n)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published to %d subscriber(s)\n", receivers)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("redis", "", "Redis address (default from config)")
	sendCmd.Flags().String("title", "", "Notification title")
	sendCmd.Flags().String("text", "", "Notification text")
	sendCmd.Flags().String("color", "", "Declared notification color (#AARRGGBB)")
	sendCmd.Flags().String("icon", "", "Path to a PNG or JPEG notification icon")
	sendCmd.Flags().Int("importance", notify.PriorityDefault, "Notification importance (-2..2)")
	sendCmd.Flags().Duration("duration", time.Duration(0), "Run duration override")
}
