// Package config persists the bot configuration as one flat JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"slackr/internal/schedule"
)

const (
	// PathEnvVar overrides the location of the config file.
	PathEnvVar = "SLACKR_CONFIG_FILE_PATH"
	// DefaultPath is used when PathEnvVar is not set.
	DefaultPath = "./config.json"
)

// BotConfig is the persisted bot configuration. The JSON field set is a
// compatibility contract: Save then Load yields a field-for-field
// identical structure.
type BotConfig struct {
	// Members holds the ids eligible for selection. Adding a channel
	// pulls all of its members in.
	Members []string `json:"members"`
	// Selected records past selections. Persisted, but not consulted by
	// the selector.
	Selected []string `json:"selected"`
	// Channel the bot posts to. One channel per config file.
	Channel string `json:"channel"`
	// TargetTime is the time-of-day combined with input dates.
	TargetTime schedule.TimeOfDay `json:"target_time"`
	// PostTime is the time-of-day used for explicit post-on overrides.
	PostTime schedule.TimeOfDay `json:"post_time"`
	// AdvanceDays is how many days before the target to schedule the
	// post, giving the assignee some lead time.
	AdvanceDays int `json:"advance_days"`
	// InstantDelay is the delay in seconds for "instant" schedules such
	// as the reroll announcement.
	InstantDelay int64 `json:"instant_delay"`
	// Token is the Slack API token when stored in the file instead of
	// the environment.
	Token string `json:"token,omitempty"`
	// ID is the bot's own member id, kept so the bot never adds itself
	// to the roster.
	ID string `json:"id"`
}

// Default returns the out-of-the-box configuration.
func Default() *BotConfig {
	halfNoon := schedule.TimeOfDay{Hour: 11, Minute: 30}
	return &BotConfig{
		Members:      []string{},
		Selected:     []string{},
		TargetTime:   halfNoon,
		PostTime:     halfNoon,
		AdvanceDays:  1,
		InstantDelay: 45,
	}
}

// Path returns the config file location, honoring PathEnvVar.
func Path() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the configuration from Path. A missing, unreadable or
// corrupt file is not fatal: defaults are returned and a warning logged,
// so a first run can bootstrap itself.
func Load(log *logrus.Logger) *BotConfig {
	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Infof("config file doesn't exist yet at %s; run `slackr config` to create it", path)
		} else {
			log.Warnf("reading config at %s: %v; using defaults", path, err)
		}
		return Default()
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Warnf("parsing config at %s: %v; using defaults", path, err)
		return Default()
	}
	log.Debugf("loaded config from %s", path)
	return cfg
}

// Save writes the configuration to Path as indented JSON.
func (c *BotConfig) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(Path(), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
