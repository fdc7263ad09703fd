package oncall

import (
	"errors"
	"net/url"
)

// ScheduleIdentifier addresses a schedule either by its opaque id or by its
// human-readable name. Exactly one of the two is set.
type ScheduleIdentifier struct {
	ID   string
	Name string
}

var (
	ErrNoIdentifier        = errors.New("one of id or name must be provided")
	ErrAmbiguousIdentifier = errors.New("only one of id or name may be provided")
)

// ParseScheduleIdentifier builds a ScheduleIdentifier from request query
// parameters. Inputs carrying both or neither of id/name are rejected.
func ParseScheduleIdentifier(query url.Values) (ScheduleIdentifier, error) {
	id, name := query.Get("id"), query.Get("name")
	switch {
	case id == "" && name == "":
		return ScheduleIdentifier{}, ErrNoIdentifier
	case id != "" && name != "":
		return ScheduleIdentifier{}, ErrAmbiguousIdentifier
	}
	return ScheduleIdentifier{ID: id, Name: name}, nil
}

// ByName reports whether the identifier still needs a name lookup to obtain
// the schedule id.
func (s ScheduleIdentifier) ByName() bool { return s.ID == "" }

func (s ScheduleIdentifier) String() string {
	if s.ByName() {
		return "name=" + s.Name
	}
	return "id=" + s.ID
}

// UserPhoneNumber is a person together with their normalized, deduplicated
// phone numbers in ascending order.
type UserPhoneNumber struct {
	Name  string   `json:"name"`
	Phone []string `json:"phone"`
}

// AlertInfo is the result of an on-call resolution: the primary contact plus
// the full roster of on-call people and their numbers. PhoneNumber is always
// FullInformation[0].Phone[0].
type AlertInfo struct {
	Username        string            `json:"username"`
	PhoneNumber     string            `json:"phoneNumber"`
	FullInformation []UserPhoneNumber `json:"fullInformation"`
}

// PhoneNumbers flattens every resolved person's numbers, in roster order.
func (a AlertInfo) PhoneNumbers() []string {
	var numbers []string
	for _, person := range a.FullInformation {
		numbers = append(numbers, person.Phone...)
	}
	return numbers
}
