package oncall

import (
	"context"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ResolveScheduleID resolves a schedule name to exactly one schedule id.
// Zero matches and multiple matches both fail; ambiguity is never resolved
// by picking the first result.
func (c *Client) ResolveScheduleID(ctx context.Context, name string) (string, error) {
	schedules, err := c.SearchSchedules(ctx, name)
	if err != nil {
		return "", err
	}
	switch len(schedules) {
	case 0:
		return "", &ScheduleNotFoundError{Name: name}
	case 1:
		return schedules[0].ID, nil
	default:
		return "", &TooManySchedulesError{Name: name, Found: len(schedules)}
	}
}

// ResolvePhoneNumbers fetches a user's contacts and returns their voice/sms
// destinations, normalized, sorted ascending and deduplicated. An empty
// result is not an error at this layer.
func (c *Client) ResolvePhoneNumbers(ctx context.Context, username string) ([]string, error) {
	contacts, err := c.UserContacts(ctx, username)
	if err != nil {
		return nil, err
	}
	var numbers []string
	for _, contact := range contacts.Contacts {
		if contact.ContactMethod != "voice" && contact.ContactMethod != "sms" {
			continue
		}
		numbers = append(numbers, FormatPhoneNumber(contact.To))
	}
	// sort first so exact duplicates are adjacent
	sort.Strings(numbers)
	return slices.Compact(numbers), nil
}

// ResolveOnCall turns a schedule identifier into the current on-call roster
// with phone numbers. Per-recipient contact lookups run concurrently; the
// first failure cancels the rest and fails the whole resolution. The result
// preserves roster order, not completion order.
func (c *Client) ResolveOnCall(ctx context.Context, schedule ScheduleIdentifier) (AlertInfo, error) {
	logger := c.logger.With().
		Str("action", "resolve_on_call").
		Stringer("schedule", schedule).
		Logger()

	scheduleID := schedule.ID
	if schedule.ByName() {
		id, err := c.ResolveScheduleID(ctx, schedule.Name)
		if err != nil {
			return AlertInfo{}, err
		}
		scheduleID = id
	}

	recipients, err := c.OnCallRecipients(ctx, scheduleID)
	if err != nil {
		return AlertInfo{}, err
	}
	if len(recipients) == 0 {
		logger.Info().Msg("provider reports an empty on-call roster")
		return AlertInfo{}, &NoOnCallPersonError{}
	}

	people := make([]UserPhoneNumber, len(recipients))
	g, ctx := errgroup.WithContext(ctx)
	for i, user := range recipients {
		i, user := i, user
		g.Go(func() error {
			logger.Debug().Str("user", user).Msg("looking up phone numbers")
			numbers, err := c.ResolvePhoneNumbers(ctx, user)
			if err != nil {
				return err
			}
			people[i] = UserPhoneNumber{Name: user, Phone: numbers}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return AlertInfo{}, err
	}

	// guards against a provider handing back recipients and then nothing
	// resolvable
	if len(people) == 0 {
		return AlertInfo{}, &NoOnCallPersonError{}
	}
	primary := people[0]
	if len(primary.Phone) == 0 {
		return AlertInfo{}, &NoPhoneNumberError{Username: primary.Name}
	}
	return AlertInfo{
		Username:        primary.Name,
		PhoneNumber:     primary.Phone[0],
		FullInformation: people,
	}, nil
}
