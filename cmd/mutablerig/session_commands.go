package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mutablerig/internal/ipc"
	"mutablerig/internal/preflight"
)

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			client, err := ctx.dialClient()
			if err != nil {
				fmt.Fprintln(stdout, "Session is not running")
				return nil
			}
			defer client.Close()

			if _, err := client.Shutdown(); err != nil {
				return fmt.Errorf("request shutdown: %w", err)
			}
			fmt.Fprintln(stdout, "Session stopping")
			return nil
		},
	}
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and scene status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			client, err := ctx.dialClient()
			if err != nil {
				return renderOfflineStatus(cmd, ctx, colorize)
			}
			defer client.Close()

			status, err := client.Status()
			if err != nil {
				return err
			}

			for _, line := range renderSectionHeader("Session", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Running", statusOK, fmt.Sprintf("pid %d", status.PID), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Scene", statusInfo, fmt.Sprintf("%s (%s)", status.SceneName, status.ScenePath), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Frame", statusInfo,
				fmt.Sprintf("%s of %s..%s", formatFrame(status.CurrentFrame), formatFrame(status.StartFrame), formatFrame(status.EndFrame)), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Playing", statusInfo, yesNo(status.Playing), colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Rig", colorize) {
				fmt.Fprintln(stdout, line)
			}
			activeDetail := status.ActiveRig
			if status.ActiveRigTitle != "" {
				activeDetail = fmt.Sprintf("%s (%s)", status.ActiveRig, status.ActiveRigTitle)
			}
			fmt.Fprintln(stdout, renderStatusLine("Active", statusOK, activeDetail, colorize))
			if status.PendingRig != "" {
				fmt.Fprintln(stdout, renderStatusLine("Pending", statusWarn,
					fmt.Sprintf("%s at frame %s (%d deferrals)", status.PendingRig, formatFrame(status.PendingFrame), status.Deferrals), colorize))
			}
			if status.LastError != "" {
				fmt.Fprintln(stdout, renderStatusLine("Last error", statusError, status.LastError, colorize))
			}
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Journal", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Transfers", statusInfo, strconv.Itoa(status.TransferCount), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Database", statusInfo, status.JournalPath, colorize))
			return nil
		},
	}
}

func renderOfflineStatus(cmd *cobra.Command, ctx *commandContext, colorize bool) error {
	stdout := cmd.OutOrStdout()
	cfg := ctx.configValue()
	if cfg == nil {
		fmt.Fprintln(stdout, "Session is not running and no configuration could be loaded")
		return nil
	}

	for _, line := range renderSectionHeader("Session", colorize) {
		fmt.Fprintln(stdout, line)
	}
	fmt.Fprintln(stdout, renderStatusLine("Running", statusWarn, "no (start with `mutablerig run`)", colorize))
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Preflight", colorize) {
		fmt.Fprintln(stdout, line)
	}
	for _, result := range preflight.RunAll(cmd.Context(), cfg) {
		kind := statusError
		if result.Passed {
			kind = statusOK
		}
		fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	return nil
}

func newScrubCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scrub <frame>",
		Short: "Move the timeline to a frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := parseFrame(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Scrub(frame)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Frame %s, active rig %s\n", formatFrame(resp.Frame), resp.ActiveRig)
				if resp.Pending != "" {
					fmt.Fprintf(stdout, "Switch to %s pending until host evaluation settles\n", resp.Pending)
				}
				return nil
			})
		},
	}
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var fromFlag string
	var toFlag string
	var stopPlayback bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the timeline at the scene frame rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				if stopPlayback {
					resp, err := client.StopPlayback()
					if err != nil {
						return err
					}
					if resp.Stopped {
						fmt.Fprintln(stdout, "Playback stopped")
					} else {
						fmt.Fprintln(stdout, "No playback in progress")
					}
					return nil
				}

				status, err := client.Status()
				if err != nil {
					return err
				}
				from := status.CurrentFrame
				to := status.EndFrame
				if strings.TrimSpace(fromFlag) != "" {
					if from, err = parseFrame(fromFlag); err != nil {
						return err
					}
				}
				if strings.TrimSpace(toFlag) != "" {
					if to, err = parseFrame(toFlag); err != nil {
						return err
					}
				}

				resp, err := client.Play(from, to)
				if err != nil {
					return err
				}
				if !resp.Started {
					return fmt.Errorf("playback not started: %s", resp.Message)
				}
				fmt.Fprintf(stdout, "Playing frames %s to %s\n", formatFrame(from), formatFrame(to))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Frame to start from (default: current frame)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Frame to stop at (default: scene end frame)")
	cmd.Flags().BoolVar(&stopPlayback, "stop", false, "Stop an in-progress playback instead")
	return cmd
}

func parseFrame(value string) (float64, error) {
	frame, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame %q", value)
	}
	return frame, nil
}

func formatFrame(frame float64) string {
	return strconv.FormatFloat(frame, 'f', -1, 64)
}
