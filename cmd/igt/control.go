package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/igt/internal/dbus"
	"github.com/jmylchreest/igt/internal/host"
)

var notifyOpts struct {
	duration time.Duration
}

// simpleCommand builds a command that makes one call with no arguments.
func simpleCommand(use, short string, call func(*dbus.Client) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			return call(client)
		},
	}
}

var toggleCmd = simpleCommand("toggle", "Show or hide the timer", (*dbus.Client).ToggleOverlay)

var moveCmd = simpleCommand("move", "Enter or leave move mode", (*dbus.Client).ToggleMoveMode)

var resetCmd = simpleCommand("reset", "Move the timer back to its default position", (*dbus.Client).ResetPosition)

var teardownCmd = simpleCommand("teardown", "Detach the current host and hide the overlay", (*dbus.Client).HostTornDown)

var notifyCmd = &cobra.Command{
	Use:   "notify <message>",
	Short: "Show a message on the overlay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if notifyOpts.duration <= 0 {
			return fmt.Errorf("duration must be positive, got %s", notifyOpts.duration)
		}
		client, err := connect()
		if err != nil {
			return err
		}
		return client.ShowNotification(args[0], int32(notifyOpts.duration.Milliseconds()))
	},
}

var readyCmd = &cobra.Command{
	Use:   "ready [stopwatch|remote]",
	Short: "Attach a host and show the overlay",
	Long: `Attach a host with the given time source.

stopwatch: igtd keeps time itself; drive it with 'igt stopwatch'.
remote:    another program pushes the time with 'igt elapsed'.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{host.SourceStopwatch, host.SourceRemote},
	RunE: func(cmd *cobra.Command, args []string) error {
		source := host.SourceStopwatch
		if len(args) == 1 {
			source = args[0]
		}
		if source != host.SourceStopwatch && source != host.SourceRemote {
			return fmt.Errorf("unknown time source %q", source)
		}
		client, err := connect()
		if err != nil {
			return err
		}
		return client.HostReady(source)
	},
}

var elapsedCmd = &cobra.Command{
	Use:   "elapsed <seconds>",
	Short: "Set the elapsed time shown by a remote host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", args[0], err)
		}
		client, err := connect()
		if err != nil {
			return err
		}
		return client.SetElapsed(seconds)
	},
}

var stopwatchCmd = &cobra.Command{
	Use:       "stopwatch <start|pause|reset>",
	Short:     "Control the daemon's stopwatch",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"start", "pause", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "start", "pause", "reset":
		default:
			return fmt.Errorf("unknown stopwatch action %q", args[0])
		}
		client, err := connect()
		if err != nil {
			return err
		}
		return client.Stopwatch(args[0])
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd, moveCmd, resetCmd, teardownCmd)
	rootCmd.AddCommand(notifyCmd, readyCmd, elapsedCmd, stopwatchCmd)

	notifyCmd.Flags().DurationVarP(&notifyOpts.duration, "duration", "d", 2*time.Second,
		"How long the message stays on screen")
}
