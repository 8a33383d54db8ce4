package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slackr/internal/schedule"
	"slackr/internal/slackapi"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Adds data to config, possibly fetching it from Slack",
	Long: `Adds individual pieces of configuration: members, the channel, the
posting times, or the API token. The config file is saved after each
successful add.`,
}

var addMemberCmd = &cobra.Command{
	Use:   "member <email>",
	Short: "Adds a member to config, looking their Slack ID up by email",
	Long: `Looks the Slack ID up from the user's registered email and, after
confirmation, adds it to the roster. The bot needs the users:read.email
permission.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddMember,
}

var addChannelCmd = &cobra.Command{
	Use:   "channel <channel>",
	Short: "Sets the channel the bot posts to and rosters its members",
	Long: `Sets the channel the bot will post to and adds all the channel's
users to the roster. One channel per configuration file, so any
previously set channel is overwritten. The bot joins the channel if not
already in.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddChannel,
}

var addTokenCmd = &cobra.Command{
	Use:   "token <token>",
	Short: "Verifies a Slack API token and saves it to config",
	Long: `Verifies the token against the Slack API and saves it in the config
file, along with the bot's own user ID, so it doesn't need to be set as
an environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddToken,
}

var (
	addTimeTarget    string
	addTimePostAt    string
	addTimeDayOffset int
)

var addTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Sets the target time, post_at time and day offset",
	Long: `Sets the target time, post_at time, and day offset. By default both
times are 11:30:00 local.

The target time is combined with input dates; the day offset schedules
the post that many days in advance, at the post_at time for explicit
post days. The joke command aborts a date when its computed post time is
already past.`,
	RunE: runAddTime,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addMemberCmd)
	addCmd.AddCommand(addChannelCmd)
	addCmd.AddCommand(addTokenCmd)
	addCmd.AddCommand(addTimeCmd)

	addTimeCmd.Flags().StringVar(&addTimeTarget, "target", "", "Target time (HH:MM:SS) combined with input dates")
	addTimeCmd.Flags().StringVar(&addTimePostAt, "post_at", "", "Time (HH:MM:SS) at which to post on the scheduled day")
	addTimeCmd.Flags().IntVar(&addTimeDayOffset, "day_offset", -1, "How many days in advance to schedule, relative to the target day")
}

func runAddMember(cmd *cobra.Command, args []string) error {
	email := args[0]
	if err := validateEmail(email); err != nil {
		return err
	}

	b, _, err := newBot(true)
	if err != nil {
		return err
	}
	if err := b.AddMember(cmd.Context(), email); err != nil {
		return err
	}
	return saveConfig(b)
}

func runAddChannel(cmd *cobra.Command, args []string) error {
	b, _, err := newBot(true)
	if err != nil {
		return err
	}
	if err := b.AddChannel(cmd.Context(), args[0]); err != nil {
		return err
	}
	return saveConfig(b)
}

func runAddToken(cmd *cobra.Command, args []string) error {
	token := args[0]

	b, _, err := newBot(true)
	if err != nil {
		return err
	}

	// The verification must run against the new token, not whatever the
	// bot was built with.
	api := slackapi.New(token, slackapi.WithLogger(log))
	identity, err := b.AddToken(cmd.Context(), api, token)
	if err != nil {
		return err
	}
	log.Infof("token verified for team %s (bot user %s)", identity.Team, identity.UserID)

	if err := saveConfig(b); err != nil {
		return err
	}
	if humanOutput {
		fmt.Printf("Token verified and saved. Bot user ID: %s\n", identity.UserID)
		return nil
	}
	return outputJSON(struct {
		Status string `json:"status"`
		UserID string `json:"user_id"`
		Team   string `json:"team"`
	}{Status: "saved", UserID: identity.UserID, Team: identity.Team})
}

func runAddTime(cmd *cobra.Command, args []string) error {
	for _, input := range []string{addTimeTarget, addTimePostAt} {
		if input != "" {
			if err := schedule.ValidateTimeInput(input); err != nil {
				return err
			}
		}
	}

	b, _, err := newBot(true)
	if err != nil {
		return err
	}

	if addTimeTarget != "" {
		if err := b.SetTargetTime(addTimeTarget); err != nil {
			return err
		}
	}
	if addTimePostAt != "" {
		if err := b.SetPostTime(addTimePostAt); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("day_offset") {
		if err := b.SetAdvanceDays(addTimeDayOffset); err != nil {
			return err
		}
	}
	return saveConfig(b)
}
