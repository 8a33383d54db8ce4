// Package bot sequences the scheduling core, the member selector and
// the Slack API client behind each CLI subcommand.
package bot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"slackr/internal/config"
	"slackr/internal/roster"
	"slackr/internal/schedule"
	"slackr/internal/slackapi"
)

// ErrNoMember is returned when the roster is empty or fully excluded.
// It aborts the current operation with no partial result.
var ErrNoMember = errors.New("no member could be selected")

// API is the Slack capability set the bot depends on. slackapi.Client
// is the production implementation; tests substitute a double with no
// network behavior.
type API interface {
	ScheduleMessage(ctx context.Context, channel string, postAt time.Time, text string) (*slackapi.ScheduleReceipt, error)
	ListScheduledMessages(ctx context.Context, channel string) ([]slackapi.ScheduledMessage, error)
	DeleteScheduledMessage(ctx context.Context, channel, scheduledMessageID string) error
	LookupUserByEmail(ctx context.Context, email string) (*slackapi.User, error)
	JoinConversation(ctx context.Context, channel string) (*slackapi.ChannelInfo, error)
	ListChannelMembers(ctx context.Context, channel string) ([]string, error)
	VerifyIdentity(ctx context.Context) (*slackapi.Identity, error)
}

var _ API = (*slackapi.Client)(nil)

// Bot drives one CLI invocation end to end.
type Bot struct {
	cfg     *config.BotConfig
	api     API
	picker  *roster.Picker
	confirm roster.Confirmer
	log     *logrus.Logger

	// now and loc are fixed in tests for deterministic date math.
	now func() time.Time
	loc *time.Location
}

// New builds a Bot around a loaded configuration and its collaborators.
func New(cfg *config.BotConfig, api API, picker *roster.Picker, confirm roster.Confirmer, log *logrus.Logger) *Bot {
	return &Bot{
		cfg:     cfg,
		api:     api,
		picker:  picker,
		confirm: confirm,
		log:     log,
		now:     time.Now,
		loc:     time.Local,
	}
}

// Config exposes the live configuration, for commands that print or
// persist it after mutation.
func (b *Bot) Config() *config.BotConfig {
	return b.cfg
}

func jokeText(member string, target time.Time) string {
	return fmt.Sprintf("<@%s> will be in charge of a joke on %s!", member, target.Format(schedule.DateLayout))
}

// JokeResult is the outcome for one target date in a joke batch. Err is
// nil on success; a failed date never blocks the rest of the batch.
type JokeResult struct {
	TargetDate time.Time
	PostAt     time.Time
	Member     string
	MessageID  string
	Text       string
	Err        error
}

// Joke schedules one reminder per target date. Per-date failures are
// collected in the results; a scheduling-order violation or roster
// exhaustion aborts the rest of the operation and is returned as the
// second value.
func (b *Bot) Joke(ctx context.Context, days []string, postOn string) ([]JokeResult, error) {
	now := b.now()
	targets, parseErrs := schedule.TargetDates(now, days, b.cfg.TargetTime, b.loc)

	var results []JokeResult
	for _, err := range parseErrs {
		results = append(results, JokeResult{Err: err})
	}

	remote, err := b.api.ListScheduledMessages(ctx, b.cfg.Channel)
	if err != nil {
		return results, fmt.Errorf("listing scheduled messages: %w", err)
	}
	remoteAt := make([]time.Time, len(remote))
	for i, m := range remote {
		remoteAt[i] = m.PostAt
	}

	var pending []time.Time
	for _, target := range targets {
		b.log.Infof("target datetime: %s", target)
		res := JokeResult{TargetDate: target}

		postAt, err := schedule.PostAt(now, target, b.cfg.AdvanceDays, b.cfg.PostTime, postOn, b.loc)
		if err != nil {
			res.Err = err
			results = append(results, res)
			if errors.Is(err, schedule.ErrSchedulingOrder) {
				return results, err
			}
			continue
		}
		res.PostAt = postAt
		b.log.Infof("message schedule datetime: %s (timestamp %d)", postAt, postAt.Unix())

		if err := schedule.CheckDuplicate(postAt, remoteAt, pending); err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		member, ok := b.picker.Select(b.cfg.Members, nil)
		if !ok {
			res.Err = ErrNoMember
			results = append(results, res)
			return results, ErrNoMember
		}
		b.log.Infof("selected member %s", member)
		res.Member = member
		res.Text = jokeText(member, target)

		pending = append(pending, postAt)
		receipt, err := b.api.ScheduleMessage(ctx, b.cfg.Channel, postAt, res.Text)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		res.MessageID = receipt.ScheduledMessageID
		results = append(results, res)
	}
	return results, nil
}

// RerollResult confirms a rerolled assignment.
type RerollResult struct {
	Member     string
	TargetDate time.Time
	PostAt     time.Time
	MessageID  string
}

// Reroll interactively re-picks a member for the default (tomorrow)
// target, growing the exclusion set on every rejection, and schedules a
// near-instant announcement once a pick is accepted. Exhausting the
// roster is a hard stop.
func (b *Bot) Reroll(ctx context.Context) (*RerollResult, error) {
	exclude := make(map[string]bool)
	var member string
	for {
		m, ok := b.picker.Select(b.cfg.Members, exclude)
		if !ok {
			return nil, ErrNoMember
		}
		b.log.Infof("selected member %s", m)
		if b.confirm.Confirm(fmt.Sprintf("Member %s was selected. Pick it? y/n", m)) {
			member = m
			break
		}
		exclude[m] = true
	}

	now := b.now()
	targets, _ := schedule.TargetDates(now, nil, b.cfg.TargetTime, b.loc)
	target := targets[0]
	postAt := now.Add(time.Duration(b.cfg.InstantDelay) * time.Second)

	text := "Reroll: " + jokeText(member, target)
	receipt, err := b.api.ScheduleMessage(ctx, b.cfg.Channel, postAt, text)
	if err != nil {
		return nil, fmt.Errorf("scheduling reroll message: %w", err)
	}
	return &RerollResult{
		Member:     member,
		TargetDate: target,
		PostAt:     postAt,
		MessageID:  receipt.ScheduledMessageID,
	}, nil
}

// Scheduled returns every scheduled message for the configured channel,
// earliest post first.
func (b *Bot) Scheduled(ctx context.Context) ([]slackapi.ScheduledMessage, error) {
	msgs, err := b.api.ListScheduledMessages(ctx, b.cfg.Channel)
	if err != nil {
		return nil, err
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].PostAt.Before(msgs[j].PostAt) })
	return msgs, nil
}

// CancelOutcome classifies what happened to one cancellation request.
type CancelOutcome string

const (
	CancelDeleted  CancelOutcome = "deleted"
	CancelKept     CancelOutcome = "kept"
	CancelNotFound CancelOutcome = "not_found"
	CancelFailed   CancelOutcome = "failed"
)

// CancelResult reports the outcome for one requested id.
type CancelResult struct {
	ID      string
	Outcome CancelOutcome
	Err     error
}

// Cancel deletes scheduled messages by id, confirming each one. Unknown
// ids and per-id failures are reported without aborting the batch.
func (b *Bot) Cancel(ctx context.Context, ids []string) ([]CancelResult, error) {
	msgs, err := b.api.ListScheduledMessages(ctx, b.cfg.Channel)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled messages: %w", err)
	}
	b.log.Debugf("filtering from %d messages", len(msgs))

	var results []CancelResult
	for _, id := range ids {
		var found *slackapi.ScheduledMessage
		for i := range msgs {
			if msgs[i].ID == id {
				found = &msgs[i]
				break
			}
		}
		if found == nil {
			results = append(results, CancelResult{ID: id, Outcome: CancelNotFound})
			continue
		}
		if !b.confirm.Confirm(fmt.Sprintf("Found message: %s\nPlease confirm cancellation: y/n", found)) {
			b.log.Warnf("scheduled message %s kept", id)
			results = append(results, CancelResult{ID: id, Outcome: CancelKept})
			continue
		}
		if err := b.api.DeleteScheduledMessage(ctx, b.cfg.Channel, id); err != nil {
			results = append(results, CancelResult{ID: id, Outcome: CancelFailed, Err: err})
			continue
		}
		results = append(results, CancelResult{ID: id, Outcome: CancelDeleted})
	}
	return results, nil
}

// AddMember looks a user up by email and, after confirmation, appends
// their id to the roster.
func (b *Bot) AddMember(ctx context.Context, email string) error {
	user, err := b.api.LookupUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, slackapi.ErrUserNotFound):
			return fmt.Errorf("user %s was not found, or the bot doesn't have access to it: %w", email, err)
		case errors.Is(err, slackapi.ErrMissingScope):
			return fmt.Errorf("lookup by email requires the users:read.email scope, verify bot permissions: %w", err)
		}
		return err
	}
	if !b.confirm.Confirm(fmt.Sprintf("Found user %s. Is it who you want, save its ID %s in config? y/n", user.Name, user.ID)) {
		return nil
	}
	b.cfg.Members = append(b.cfg.Members, user.ID)
	return nil
}

// AddChannel joins the bot to channel, pulls the channel's members into
// the roster (skipping the bot itself and existing entries) and makes
// it the current channel.
func (b *Bot) AddChannel(ctx context.Context, channel string) error {
	if b.cfg.Channel == channel {
		b.log.Warnf("channel %s is already the current channel", channel)
	}

	info, err := b.api.JoinConversation(ctx, channel)
	if err != nil {
		return fmt.Errorf("joining channel %s: %w", channel, err)
	}
	if info.AlreadyMember {
		b.log.Warnf("was already in channel %s", info.Name)
	} else {
		b.log.Infof("joined channel %s", info.Name)
	}

	members, err := b.api.ListChannelMembers(ctx, channel)
	if err != nil {
		if errors.Is(err, slackapi.ErrChannelInvalid) {
			b.log.Errorf("the channel %s is invalid; a channel ID can be acquired from the URL of a message quote", channel)
		} else {
			b.log.Errorf("listing channel members: %v", err)
		}
		b.log.Warn("adding empty members list")
		members = nil
	}
	for _, m := range members {
		if m == b.cfg.ID || slices.Contains(b.cfg.Members, m) {
			continue
		}
		b.cfg.Members = append(b.cfg.Members, m)
	}

	b.cfg.Channel = channel
	return nil
}

// AddToken verifies a token against auth.test and stores it together
// with the bot's own user id. The api argument must be a client built
// from the new token, not the bot's current one.
func (b *Bot) AddToken(ctx context.Context, api API, token string) (*slackapi.Identity, error) {
	identity, err := api.VerifyIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}
	b.cfg.Token = token
	b.cfg.ID = identity.UserID
	return identity, nil
}

// SetTargetTime updates the time-of-day applied to input dates.
func (b *Bot) SetTargetTime(input string) error {
	t, err := schedule.ParseTimeOfDay(input)
	if err != nil {
		return err
	}
	b.cfg.TargetTime = t
	return nil
}

// SetPostTime updates the time-of-day used for explicit post-on days.
func (b *Bot) SetPostTime(input string) error {
	t, err := schedule.ParseTimeOfDay(input)
	if err != nil {
		return err
	}
	b.cfg.PostTime = t
	return nil
}

// SetAdvanceDays updates the advance-day offset.
func (b *Bot) SetAdvanceDays(days int) error {
	if days < 0 {
		return fmt.Errorf("day offset must not be negative, got %d", days)
	}
	b.cfg.AdvanceDays = days
	return nil
}

// Configure applies the bulk config command: add members by email, set
// the channel, set the target time. The caller prints the resulting
// config and offers to save it.
func (b *Bot) Configure(ctx context.Context, memberEmails []string, channel, targetTime string) error {
	for _, email := range memberEmails {
		if err := b.AddMember(ctx, email); err != nil {
			return err
		}
	}
	if channel != "" {
		if err := b.AddChannel(ctx, channel); err != nil {
			return err
		}
	}
	if targetTime != "" {
		if err := b.SetTargetTime(targetTime); err != nil {
			return err
		}
	}
	return nil
}
