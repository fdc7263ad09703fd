// Package dto holds the wire shapes returned by the roster/contact provider.
package dto

// ScheduleDTO is one element of the schedule-search response.
type ScheduleDTO struct {
	ID string `json:"id"`
}

// OnCallRecipientsDTO extracts the flattened recipient list from the
// on-call endpoint's envelope.
type OnCallRecipientsDTO struct {
	Recipients []string `njson:"data.onCallRecipients"`
}

// UserContactsDTO extracts a user's contact methods from the user
// endpoint's envelope.
type UserContactsDTO struct {
	Username string           `njson:"data.username"`
	FullName string           `njson:"data.fullName"`
	Contacts []UserContactDTO `njson:"data.userContacts"`
}

// UserContactDTO is a single contact method. Enabled is returned by the
// provider but not consulted when selecting numbers.
type UserContactDTO struct {
	To            string `json:"to"`
	ID            string `json:"id"`
	ContactMethod string `json:"contactMethod"`
	Enabled       bool   `json:"enabled"`
}
