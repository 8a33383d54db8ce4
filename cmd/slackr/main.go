// Package main provides the slackr CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"slackr/internal/bot"
	"slackr/internal/config"
	"slackr/internal/logger"
	"slackr/internal/roster"
	"slackr/internal/slackapi"
)

// Version is set at build time via ldflags.
var Version = "dev"

// apiKeyEnvVar holds the Slack bot token when it is not saved in config.
const apiKeyEnvVar = "SLACK_API_KEY"

var (
	verbosity   int
	humanOutput bool
	log         *logrus.Logger
)

var (
	errMissingToken = errors.New("token was not set")
	errConfigWrite  = errors.New("couldn't save config file")
)

var rootCmd = &cobra.Command{
	Use:   "slackr",
	Short: "Controls the Slack-R joke-duty bot",
	Long: `slackr schedules recurring Slack reminders announcing who has to
find the next joke.

Target dates stay off weekends (Saturday and Sunday shift to Monday) and
the reminder posts a configurable number of days ahead, backing off to
Friday when the offset crosses a weekend. Configuration lives in a local
JSON file (see the config command).

Commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.Init(verbosity)
		// Load .env if present (for SLACK_API_KEY)
		_ = godotenv.Load()
		log.Warnf("logging at %s level", log.GetLevel())
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity, the more -v the more verbose, up to -vvv")
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Errors are printed here since SilenceErrors is set.
		outputError(err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errMissingToken):
		return ExitMissingToken
	case errors.Is(err, errConfigWrite):
		return ExitConfigError
	}
	return ExitError
}

// newBot loads the configuration and assembles the bot with its
// collaborators. Commands that only edit config pass allowMissingToken
// so a fresh setup can run before any token exists.
func newBot(allowMissingToken bool) (*bot.Bot, roster.Confirmer, error) {
	cfg := config.Load(log)

	token := os.Getenv(apiKeyEnvVar)
	switch {
	case token != "":
		log.Debugf("found token in %s", apiKeyEnvVar)
	case cfg.Token != "":
		log.Debug("found token in config")
		token = cfg.Token
	case allowMissingToken:
		log.Debug("no token found, but this command can run without one")
	default:
		return nil, nil, fmt.Errorf("%w; set the %s environment variable or run `slackr add token <token>`",
			errMissingToken, apiKeyEnvVar)
	}

	api := slackapi.New(token, slackapi.WithLogger(log))
	confirm := roster.NewStdinConfirmer(os.Stdin, os.Stdout)
	b := bot.New(cfg, api, roster.NewPicker(nil), confirm, log)
	return b, confirm, nil
}

// saveConfig persists the bot's configuration.
func saveConfig(b *bot.Bot) error {
	if err := b.Config().Save(); err != nil {
		return fmt.Errorf("%w: %v", errConfigWrite, err)
	}
	log.Infof("successfully saved config file to %s", config.Path())
	return nil
}
