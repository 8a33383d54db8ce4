package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"slackr/internal/bot"
	"slackr/internal/schedule"
)

var (
	jokeDays   []string
	jokePostOn string
)

var jokeCmd = &cobra.Command{
	Use:   "joke",
	Short: "Notifies who has to find a joke",
	Long: `Schedules a reminder announcing which member is in charge of the
next joke.

With no --day, the target is tomorrow. Target days falling on a weekend
shift to the following Monday. The reminder posts advance_days before
the target, backing off to Friday when the offset lands on a weekend.

Examples:
  slackr joke
  slackr joke --day 2022-03-01
  slackr joke -d 2022-03-01 -d 2022-03-02
  slackr joke --day 2022-03-04 --post_on 2022-03-02`,
	RunE: runJoke,
}

func init() {
	rootCmd.AddCommand(jokeCmd)
	jokeCmd.Flags().StringArrayVarP(&jokeDays, "day", "d", nil,
		"Target day (YYYY-MM-DD), repeatable. Only future dates are allowed. Defaults to tomorrow.")
	jokeCmd.Flags().StringVarP(&jokePostOn, "post_on", "p", "",
		"Post the reminder on this day (YYYY-MM-DD) instead of the computed one. Must be before the target day.")
}

// JokeOutcome is the JSON outcome for one target date.
type JokeOutcome struct {
	TargetDate string `json:"target_date"`
	PostAt     string `json:"post_at,omitempty"`
	Member     string `json:"member,omitempty"`
	ScheduleID string `json:"schedule_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runJoke(cmd *cobra.Command, args []string) error {
	now := time.Now()
	for _, day := range jokeDays {
		if err := schedule.ValidateDateInput(day, now, time.Local); err != nil {
			return err
		}
	}
	if jokePostOn != "" {
		if err := schedule.ValidateDateInput(jokePostOn, now, time.Local); err != nil {
			return err
		}
	}

	b, _, err := newBot(false)
	if err != nil {
		return err
	}

	results, jokeErr := b.Joke(cmd.Context(), jokeDays, jokePostOn)
	printJokeResults(results)
	return jokeErr
}

// printJokeResults reports every outcome, success or failure,
// individually.
func printJokeResults(results []bot.JokeResult) {
	if humanOutput {
		for _, res := range results {
			if res.Err != nil {
				fmt.Printf("%s: skipped: %v\n", formatDate(res.TargetDate), res.Err)
				continue
			}
			fmt.Printf("Message %q successfully scheduled at %s. Schedule ID: %s\n",
				res.Text, formatInstant(res.PostAt), res.MessageID)
		}
		return
	}

	outcomes := make([]JokeOutcome, 0, len(results))
	for _, res := range results {
		outcome := JokeOutcome{
			TargetDate: formatDate(res.TargetDate),
			Member:     res.Member,
			ScheduleID: res.MessageID,
			Text:       res.Text,
		}
		if !res.PostAt.IsZero() {
			outcome.PostAt = formatInstant(res.PostAt)
		}
		if res.Err != nil {
			outcome.Error = res.Err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	outputJSON(outcomes)
}
