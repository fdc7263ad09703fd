package oncall

import "strings"

// FormatPhoneNumber converts a raw destination from the contact provider into
// canonical form: hyphens stripped, a leading + prepended. No further
// validation is done; garbage in stays garbage out.
func FormatPhoneNumber(number string) string {
	return "+" + strings.ReplaceAll(number, "-", "")
}
