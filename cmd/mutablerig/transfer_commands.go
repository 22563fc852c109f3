package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mutablerig/internal/ipc"
	"mutablerig/internal/journal"
)

func newTransfersCommand(ctx *commandContext) *cobra.Command {
	transfersCmd := &cobra.Command{
		Use:   "transfers",
		Short: "Inspect the transfer journal",
	}

	transfersCmd.AddCommand(newTransfersListCommand(ctx))
	transfersCmd.AddCommand(newTransfersClearCommand(ctx))
	transfersCmd.AddCommand(newTransfersHealthCommand(ctx))

	return transfersCmd
}

// withJournal runs online against the session when one is reachable and
// falls back to opening the journal database directly otherwise, so the
// journal stays inspectable with no session running.
func withJournal(ctx *commandContext, online func(*ipc.Client) error, offline func(*journal.Store) error) error {
	client, dialErr := ctx.dialClient()
	if dialErr == nil {
		defer client.Close()
		return online(client)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return dialErr
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()
	return offline(store)
}

func newTransfersListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled rig switches",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return withJournal(ctx,
				func(client *ipc.Client) error {
					resp, err := client.TransferList(limit)
					if err != nil {
						return err
					}
					rows := make([][]string, 0, len(resp.Entries))
					for _, entry := range resp.Entries {
						rows = append(rows, []string{
							strconv.FormatInt(entry.ID, 10),
							formatFrame(entry.Frame),
							entry.FromRig,
							entry.ToRig,
							entry.CreatedAt,
						})
					}
					printTransferRows(cmd, rows)
					return nil
				},
				func(store *journal.Store) error {
					entries, err := store.List(cmd.Context(), limit)
					if err != nil {
						return err
					}
					rows := make([][]string, 0, len(entries))
					for _, entry := range entries {
						rows = append(rows, []string{
							strconv.FormatInt(entry.ID, 10),
							formatFrame(entry.Frame),
							entry.FromRig,
							entry.ToRig,
							entry.CreatedAt.Format(time.RFC3339),
						})
					}
					fmt.Fprintln(stdout, "Session is not running; reading journal directly")
					printTransferRows(cmd, rows)
					return nil
				})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries to list (0 for all)")
	return cmd
}

func printTransferRows(cmd *cobra.Command, rows [][]string) {
	stdout := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(stdout, "Journal is empty")
		return
	}
	fmt.Fprintln(stdout, renderTable(
		[]string{"ID", "Frame", "From", "To", "Recorded"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
	))
}

func newTransfersClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all journaled rig switches",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return withJournal(ctx,
				func(client *ipc.Client) error {
					resp, err := client.TransferClear()
					if err != nil {
						return err
					}
					fmt.Fprintf(stdout, "Removed %d transfers\n", resp.Removed)
					return nil
				},
				func(store *journal.Store) error {
					removed, err := store.Clear(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(stdout, "Removed %d transfers\n", removed)
					return nil
				})
		},
	}
}

func newTransfersHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show journal database diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(ctx,
				func(client *ipc.Client) error {
					health, err := client.JournalHealth()
					if err != nil {
						return err
					}
					printJournalHealth(cmd, journal.DatabaseHealth{
						DBPath:           health.DBPath,
						DatabaseExists:   health.DatabaseExists,
						DatabaseReadable: health.DatabaseReadable,
						TableExists:      health.TableExists,
						TotalTransfers:   health.TotalTransfers,
						IntegrityCheck:   health.IntegrityCheck,
						Error:            health.Error,
					})
					return nil
				},
				func(store *journal.Store) error {
					health, err := store.CheckHealth(cmd.Context())
					if err != nil {
						return err
					}
					printJournalHealth(cmd, health)
					return nil
				})
		},
	}
}

func printJournalHealth(cmd *cobra.Command, health journal.DatabaseHealth) {
	stdout := cmd.OutOrStdout()
	colorize := shouldColorize(stdout)
	okKind := func(ok bool) statusKind {
		if ok {
			return statusOK
		}
		return statusError
	}
	fmt.Fprintln(stdout, renderStatusLine("Database", statusInfo, health.DBPath, colorize))
	fmt.Fprintln(stdout, renderStatusLine("Exists", okKind(health.DatabaseExists), "", colorize))
	fmt.Fprintln(stdout, renderStatusLine("Readable", okKind(health.DatabaseReadable), "", colorize))
	fmt.Fprintln(stdout, renderStatusLine("Table", okKind(health.TableExists), "", colorize))
	fmt.Fprintln(stdout, renderStatusLine("Integrity", okKind(health.IntegrityCheck), "", colorize))
	fmt.Fprintln(stdout, renderStatusLine("Transfers", statusInfo, strconv.Itoa(health.TotalTransfers), colorize))
	if health.Error != "" {
		fmt.Fprintln(stdout, renderStatusLine("Error", statusError, health.Error, colorize))
	}
}
