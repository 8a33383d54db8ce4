package slackapi

import (
	"errors"
	"testing"
	"time"

	"github.com/slack-go/slack"
)

func TestMapErrorCodes(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"invalid_auth", ErrUnauthenticated},
		{"not_authed", ErrUnauthenticated},
		{"token_revoked", ErrUnauthenticated},
		{"channel_not_found", ErrChannelInvalid},
		{"invalid_channel", ErrChannelInvalid},
		{"users_not_found", ErrUserNotFound},
		{"missing_scope", ErrMissingScope},
		{"ratelimited", ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := mapError(errors.New(tt.code))
			if !errors.Is(got, tt.want) {
				t.Errorf("mapError(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMapErrorRateLimited(t *testing.T) {
	err := mapError(&slack.RateLimitedError{RetryAfter: 3 * time.Second})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("mapError(RateLimitedError) = %v, want ErrRateLimited", err)
	}
}

func TestMapErrorUnknownCodePassesThrough(t *testing.T) {
	orig := errors.New("fatal_error")
	got := mapError(orig)
	if got != orig {
		t.Errorf("mapError(unknown) = %v, want the original error", got)
	}
}
