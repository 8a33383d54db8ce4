package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rerollCmd = &cobra.Command{
	Use:   "reroll",
	Short: "Reroll the member for the next day",
	Long: `Rerolls the selection for tomorrow's joke, letting you preview and
reject randomly selected members until one is accepted.

Once a pick is accepted, a "Reroll" announcement is scheduled a few
seconds out (the instant_delay config value). Rejecting every member
aborts without scheduling anything.`,
	RunE: runReroll,
}

func init() {
	rootCmd.AddCommand(rerollCmd)
}

// RerollOutcome is the JSON output of a successful reroll.
type RerollOutcome struct {
	Member     string `json:"member"`
	TargetDate string `json:"target_date"`
	PostAt     string `json:"post_at"`
	ScheduleID string `json:"schedule_id"`
}

func runReroll(cmd *cobra.Command, args []string) error {
	b, _, err := newBot(false)
	if err != nil {
		return err
	}

	res, err := b.Reroll(cmd.Context())
	if err != nil {
		return err
	}

	if humanOutput {
		fmt.Printf("Successfully assigned member %s for a joke on %s. Message will be posted at %s. Schedule ID: %s\n",
			res.Member, formatDate(res.TargetDate), formatInstant(res.PostAt), res.MessageID)
		return nil
	}
	return outputJSON(RerollOutcome{
		Member:     res.Member,
		TargetDate: formatDate(res.TargetDate),
		PostAt:     formatInstant(res.PostAt),
		ScheduleID: res.MessageID,
	})
}
