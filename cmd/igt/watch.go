package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print timer positions as they are saved",
	Long: `Print the timer position every time igtd saves it, after a drag in
move mode or a reset. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return client.WatchPositionSaved(ctx, func(x, y float64) {
			fmt.Printf("%.1f %.1f\n", x, y)
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
