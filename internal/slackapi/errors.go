package slackapi

import (
	"errors"
	"fmt"
	"net"

	"github.com/slack-go/slack"
)

// Sentinel errors for the Slack error codes the bot reacts to. Codes
// outside this set pass through unchanged.
var (
	ErrUnauthenticated = errors.New("slack: authentication failed")
	ErrChannelInvalid  = errors.New("slack: channel is invalid or unknown")
	ErrUserNotFound    = errors.New("slack: user not found")
	ErrMissingScope    = errors.New("slack: token is missing a required scope")
	ErrRateLimited     = errors.New("slack: rate limited")
	ErrTransient       = errors.New("slack: transient failure")
)

// mapError folds slack-go errors into the sentinel taxonomy. slack-go
// surfaces API error codes as bare error strings, so the mapping keys
// on those codes.
func mapError(err error) error {
	var rl *slack.RateLimitedError
	if errors.As(err, &rl) {
		return fmt.Errorf("%w: retry after %s", ErrRateLimited, rl.RetryAfter)
	}

	switch err.Error() {
	case "invalid_auth", "not_authed", "token_revoked", "account_inactive":
		return fmt.Errorf("%w (%s)", ErrUnauthenticated, err.Error())
	case "channel_not_found", "invalid_channel", "is_archived":
		return fmt.Errorf("%w (%s)", ErrChannelInvalid, err.Error())
	case "users_not_found", "user_not_found", "user_not_visible":
		return fmt.Errorf("%w (%s)", ErrUserNotFound, err.Error())
	case "missing_scope":
		return ErrMissingScope
	case "ratelimited", "rate_limited":
		return fmt.Errorf("%w (%s)", ErrRateLimited, err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	return err
}
