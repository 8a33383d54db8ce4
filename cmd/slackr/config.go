package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slackr/internal/config"
	"slackr/internal/schedule"
)

var (
	configMembers    []string
	configChannel    string
	configTargetTime string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generates the config file interactively",
	Long: `Builds a config file from the given flags, resolving members and the
channel against the Slack API, shows the result, and asks for
confirmation before writing it to ` + config.DefaultPath + ` (or the path in
` + config.PathEnvVar + `).`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringArrayVarP(&configMembers, "members", "m", nil, "Emails of members to roster, repeatable")
	configCmd.Flags().StringVarP(&configChannel, "channel", "c", "", "Channel to post to")
	configCmd.Flags().StringVarP(&configTargetTime, "target_time", "t", "", "Target time (HH:MM:SS) combined with input dates")
}

func runConfig(cmd *cobra.Command, args []string) error {
	for _, email := range configMembers {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if configTargetTime != "" {
		if err := schedule.ValidateTimeInput(configTargetTime); err != nil {
			return err
		}
	}

	b, confirm, err := newBot(true)
	if err != nil {
		return err
	}
	if err := b.Configure(cmd.Context(), configMembers, configChannel, configTargetTime); err != nil {
		return err
	}

	if humanOutput {
		cfg := b.Config()
		fmt.Printf("Channel:      %s\n", cfg.Channel)
		fmt.Printf("Members:      %v\n", cfg.Members)
		fmt.Printf("Target time:  %s\n", cfg.TargetTime)
		fmt.Printf("Post time:    %s\n", cfg.PostTime)
		fmt.Printf("Advance days: %d\n", cfg.AdvanceDays)
	} else {
		if err := outputJSON(b.Config()); err != nil {
			return err
		}
	}

	if !confirm.Confirm(fmt.Sprintf("Write this configuration to %s?", config.Path())) {
		log.Warn("configuration not saved")
		return nil
	}
	return saveConfig(b)
}
