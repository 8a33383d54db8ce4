// Package slackapi is a typed, rate-limited wrapper over the Slack Web
// API exposing only the operations the bot needs. Errors come back as
// the sentinel taxonomy in errors.go so callers never see HTTP details.
package slackapi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"golang.org/x/time/rate"
)

// Slack Tier-3 methods allow roughly 50 requests per minute; a small
// burst keeps the short pagination loops snappy.
const (
	requestsPerSecond = 0.8
	requestBurst      = 3
)

// Client calls the Slack Web API on behalf of the bot.
type Client struct {
	api     *slack.Client
	limiter *rate.Limiter
	log     *logrus.Logger
	loc     *time.Location
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug traces.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithLocation sets the timezone applied to instants in responses.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// New creates a Client authenticated with token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		api:     slack.New(token),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		log:     logrus.StandardLogger(),
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScheduledMessage is a pending scheduled message, as reported by Slack.
type ScheduledMessage struct {
	ID        string
	ChannelID string
	PostAt    time.Time
	CreatedAt time.Time
	Text      string
}

func (m ScheduledMessage) String() string {
	return fmt.Sprintf("ID: %s, created %s, scheduled for %s - #%s: %s",
		m.ID, m.CreatedAt.Format(time.RFC3339), m.PostAt.Format(time.RFC3339), m.ChannelID, m.Text)
}

// ScheduleReceipt confirms one scheduled message.
type ScheduleReceipt struct {
	Channel            string
	ScheduledMessageID string
	PostAt             time.Time
	Text               string
}

// User is a workspace member resolved by email lookup.
type User struct {
	ID   string
	Name string // display name, falling back to the username
}

// ChannelInfo is the result of joining a conversation.
type ChannelInfo struct {
	Name          string
	AlreadyMember bool
}

// Identity identifies the authenticated bot, from auth.test.
type Identity struct {
	UserID string
	BotID  string
	Team   string
}

// ScheduleMessage schedules text to be posted in channel at postAt.
func (c *Client) ScheduleMessage(ctx context.Context, channel string, postAt time.Time, text string) (*ScheduleReceipt, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	epoch := strconv.FormatInt(postAt.Unix(), 10)
	respChannel, id, err := c.api.ScheduleMessageContext(ctx, channel, epoch, slack.MsgOptionText(text, false))
	if err != nil {
		return nil, mapError(err)
	}
	c.log.Debugf("scheduled message %s in %s at %s", id, respChannel, postAt)
	return &ScheduleReceipt{
		Channel:            respChannel,
		ScheduledMessageID: id,
		PostAt:             postAt,
		Text:               text,
	}, nil
}

// ListScheduledMessages fetches every pending scheduled message for
// channel, following cursor pages sequentially until exhausted.
func (c *Client) ListScheduledMessages(ctx context.Context, channel string) ([]ScheduledMessage, error) {
	var all []ScheduledMessage
	cursor := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		page, next, err := c.api.GetScheduledMessagesContext(ctx, &slack.GetScheduledMessagesParameters{
			Channel: channel,
			Cursor:  cursor,
		})
		if err != nil {
			return nil, mapError(err)
		}
		for _, m := range page {
			all = append(all, ScheduledMessage{
				ID:        m.ID,
				ChannelID: m.Channel,
				PostAt:    time.Unix(int64(m.PostAt), 0).In(c.loc),
				CreatedAt: time.Unix(int64(m.DateCreated), 0).In(c.loc),
				Text:      m.Text,
			})
		}
		c.log.Debugf("fetched %d scheduled messages so far", len(all))
		if next == "" {
			break
		}
		cursor = next
	}
	return all, nil
}

// DeleteScheduledMessage cancels one pending scheduled message.
func (c *Client) DeleteScheduledMessage(ctx context.Context, channel, scheduledMessageID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.api.DeleteScheduledMessageContext(ctx, &slack.DeleteScheduledMessageParameters{
		Channel:            channel,
		ScheduledMessageID: scheduledMessageID,
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// LookupUserByEmail resolves a workspace member from their registered
// email. Requires the users:read.email scope.
func (c *Client) LookupUserByEmail(ctx context.Context, email string) (*User, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	u, err := c.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		return nil, mapError(err)
	}
	name := u.Profile.DisplayName
	if name == "" {
		name = u.Name
	}
	return &User{ID: u.ID, Name: name}, nil
}

// JoinConversation joins the bot to channel, reporting whether it was
// already a member.
func (c *Client) JoinConversation(ctx context.Context, channel string) (*ChannelInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ch, warning, warnings, err := c.api.JoinConversationContext(ctx, channel)
	if err != nil {
		return nil, mapError(err)
	}
	already := warning == "already_in_channel"
	for _, w := range warnings {
		if w == "already_in_channel" {
			already = true
		}
	}
	return &ChannelInfo{Name: ch.Name, AlreadyMember: already}, nil
}

// ListChannelMembers returns the member ids of channel, following
// cursor pages sequentially.
func (c *Client) ListChannelMembers(ctx context.Context, channel string) ([]string, error) {
	var members []string
	cursor := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		page, next, err := c.api.GetUsersInConversationContext(ctx, &slack.GetUsersInConversationParameters{
			ChannelID: channel,
			Cursor:    cursor,
		})
		if err != nil {
			return nil, mapError(err)
		}
		members = append(members, page...)
		if next == "" {
			break
		}
		cursor = next
	}
	return members, nil
}

// VerifyIdentity checks the token against auth.test and returns the
// bot's identity.
func (c *Client) VerifyIdentity(ctx context.Context) (*Identity, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &Identity{UserID: resp.UserID, BotID: resp.BotID, Team: resp.Team}, nil
}
