package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slackr/internal/slackapi"
)

var scheduledCmd = &cobra.Command{
	Use:   "scheduled",
	Short: "Prints all scheduled messages for the bot",
	Long: `Lists every pending scheduled message in the configured channel,
earliest post first. The printed IDs are the ones the cancel command
takes.`,
	RunE: runScheduled,
}

func init() {
	rootCmd.AddCommand(scheduledCmd)
}

// ScheduledEntry is one scheduled message in JSON output.
type ScheduledEntry struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	PostAt    string `json:"post_at"`
	CreatedAt string `json:"created_at"`
	Text      string `json:"text"`
}

func runScheduled(cmd *cobra.Command, args []string) error {
	b, _, err := newBot(false)
	if err != nil {
		return err
	}

	msgs, err := b.Scheduled(cmd.Context())
	if err != nil {
		return err
	}
	log.Infof("printing %d scheduled messages for channel %s", len(msgs), b.Config().Channel)

	if humanOutput {
		if len(msgs) == 0 {
			fmt.Println("No scheduled messages.")
			return nil
		}
		for _, m := range msgs {
			fmt.Println(m)
		}
		return nil
	}

	entries := make([]ScheduledEntry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, scheduledEntry(m))
	}
	return outputJSON(entries)
}

func scheduledEntry(m slackapi.ScheduledMessage) ScheduledEntry {
	return ScheduledEntry{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		PostAt:    formatInstant(m.PostAt),
		CreatedAt: formatInstant(m.CreatedAt),
		Text:      m.Text,
	}
}
