// Package schedule computes target dates and post-at instants for the
// joke reminders: weekday rules, advance-day offsets, and duplicate
// detection against already-scheduled messages.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DateLayout is the accepted input date format.
	DateLayout = "2006-01-02"
	// TimeLayout is the accepted wall-clock time format.
	TimeLayout = "15:04:05"

	// MaxDaysAhead bounds how far in the future an input date may lie.
	MaxDaysAhead = 120
)

// Sentinel errors surfaced by the scheduling core. Callers branch with
// errors.Is; the wrapped message carries the offending date.
var (
	ErrInvalidDate     = errors.New("not a date, expected YYYY-MM-DD")
	ErrSchedulingOrder = errors.New("post date is not before the target date")
	ErrPastDeadline    = errors.New("too late to post")
	ErrDuplicateRemote = errors.New("a message is already scheduled for that date")
	ErrDuplicateLocal  = errors.New("date already scheduled in this batch")
)

// ShiftTargetWeekend moves a weekend target date forward to the
// following Monday: Saturday +2 days, Sunday +1 day. Weekday dates are
// returned unchanged, so the shift is idempotent.
func ShiftTargetWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		logrus.Warnf("target date %s is a Saturday, shifting to next Monday", d.Format(DateLayout))
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		logrus.Warnf("target date %s is a Sunday, shifting to next Monday", d.Format(DateLayout))
		return d.AddDate(0, 0, 1)
	}
	return d
}

// ShiftPostAtWeekend moves a weekend post-at instant back to the Friday
// before: Sunday -2 days, Saturday -1 day. A Saturday is only reachable
// when the advance offset is 2 or more.
func ShiftPostAtWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Sunday:
		logrus.Warnf("offset falling on a Sunday, shifting schedule to the Friday before")
		return d.AddDate(0, 0, -2)
	case time.Saturday:
		logrus.Warnf("offset falling on a Saturday, shifting schedule to the Friday before")
		return d.AddDate(0, 0, -1)
	}
	return d
}

// IsWeekday reports whether d falls Monday through Friday.
func IsWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ParseDate parses a YYYY-MM-DD input string as the instant at the given
// wall-clock time on that day, in loc.
func ParseDate(input string, at TimeOfDay, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, input, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	return at.On(d, loc), nil
}

// TargetDates resolves user-supplied date strings into target dates at
// targetTime, in input order. With no inputs it produces exactly one
// date: tomorrow. Every date has the weekend shift applied
// independently. Unparseable inputs are collected as errors without
// blocking the rest.
func TargetDates(now time.Time, inputs []string, targetTime TimeOfDay, loc *time.Location) ([]time.Time, []error) {
	if len(inputs) == 0 {
		logrus.Debug("no date was input, targeting tomorrow")
		tomorrow := targetTime.On(now.AddDate(0, 0, 1), loc)
		return []time.Time{ShiftTargetWeekend(tomorrow)}, nil
	}

	var dates []time.Time
	var errs []error
	for _, input := range inputs {
		t, err := ParseDate(input, targetTime, loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		dates = append(dates, ShiftTargetWeekend(t))
	}
	return dates, errs
}

// PostAt computes the instant at which the reminder for target is sent.
//
// When explicitPostOn is given it is taken as-is at postTime, with no
// weekend shift (the caller asked for that specific day), but must be
// strictly before target. Otherwise the post-at is target minus
// advanceDays whole days, keeping target's time-of-day, shifted off
// weekends back to Friday. Either way the result must be strictly in
// the future.
func PostAt(now, target time.Time, advanceDays int, postTime TimeOfDay, explicitPostOn string, loc *time.Location) (time.Time, error) {
	if explicitPostOn != "" {
		at, err := ParseDate(explicitPostOn, postTime, loc)
		if err != nil {
			return time.Time{}, err
		}
		if !at.Before(target) {
			return time.Time{}, fmt.Errorf("%w: %s is not before %s",
				ErrSchedulingOrder, at.Format(DateLayout), target.Format(DateLayout))
		}
		if !at.After(now) {
			return time.Time{}, fmt.Errorf("%w for %s", ErrPastDeadline, at.Format(DateLayout))
		}
		logrus.Debugf("valid post_at instant specified: %s", at)
		return at, nil
	}

	at := ShiftPostAtWeekend(target.AddDate(0, 0, -advanceDays))
	if !at.After(now) {
		return time.Time{}, fmt.Errorf("%w for %s", ErrPastDeadline, at.Format(DateLayout))
	}
	return at, nil
}

// CheckDuplicate rejects a candidate post-at instant that collides with
// an already-scheduled message or with another candidate of the current
// batch. Remote collisions compare calendar dates in candidate's
// location; batch collisions compare exact instants, since candidates
// are derived deterministically from the same time-of-day settings.
func CheckDuplicate(candidate time.Time, remote, pending []time.Time) error {
	cy, cm, cd := candidate.Date()
	for _, r := range remote {
		ry, rm, rd := r.In(candidate.Location()).Date()
		if ry == cy && rm == cm && rd == cd {
			return fmt.Errorf("%w: %s", ErrDuplicateRemote, candidate.Format(DateLayout))
		}
	}
	for _, p := range pending {
		if p.Equal(candidate) {
			return fmt.Errorf("%w: %s", ErrDuplicateLocal, candidate.Format(DateLayout))
		}
	}
	return nil
}

// ValidateDateInput checks a command-line date argument: it must parse,
// lie strictly in the future, and be less than MaxDaysAhead days ahead.
// The comparison instant carries now's wall-clock time, matching how
// the date will later be resolved.
func ValidateDateInput(input string, now time.Time, loc *time.Location) error {
	at := TimeOfDay{Hour: now.Hour(), Minute: now.Minute(), Second: now.Second()}
	parsed, err := ParseDate(input, at, loc)
	if err != nil {
		return err
	}
	if !parsed.After(now) {
		return fmt.Errorf("date %s must be in the future", input)
	}
	if !parsed.Before(now.AddDate(0, 0, MaxDaysAhead)) {
		return fmt.Errorf("date %s must not be more than %d days in the future", input, MaxDaysAhead)
	}
	return nil
}

// ValidateTimeInput checks a command-line HH:MM:SS argument.
func ValidateTimeInput(input string) error {
	_, err := ParseTimeOfDay(input)
	return err
}
