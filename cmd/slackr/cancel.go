package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slackr/internal/bot"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>...",
	Short: "Cancel scheduled messages by their IDs",
	Long: `Cancels scheduled messages from their IDs.

The ID is printed by a successful joke command; the scheduled command
lists all pending IDs. Each cancellation asks for confirmation. Unknown
IDs are reported and the rest of the batch continues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCancel,
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}

// CancelEntry is one cancellation outcome in JSON output.
type CancelEntry struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

func runCancel(cmd *cobra.Command, args []string) error {
	b, _, err := newBot(false)
	if err != nil {
		return err
	}

	results, err := b.Cancel(cmd.Context(), args)
	if err != nil {
		return err
	}

	if humanOutput {
		for _, res := range results {
			switch res.Outcome {
			case bot.CancelDeleted:
				fmt.Printf("Deleted message with id %s\n", res.ID)
			case bot.CancelKept:
				fmt.Printf("Scheduled message %s kept.\n", res.ID)
			case bot.CancelNotFound:
				fmt.Printf("No scheduled message with id %q\n", res.ID)
			case bot.CancelFailed:
				fmt.Printf("Failed to delete %s: %v\n", res.ID, res.Err)
			}
		}
		return nil
	}

	entries := make([]CancelEntry, 0, len(results))
	for _, res := range results {
		entry := CancelEntry{ID: res.ID, Outcome: string(res.Outcome)}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		entries = append(entries, entry)
	}
	return outputJSON(entries)
}
