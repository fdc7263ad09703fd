package oncall_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lordvidex/oncall-gateway/internal/oncall"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "hyphenated number", in: "555-123-4567", want: "+5551234567"},
		{name: "empty input", in: "", want: "+"},
		{name: "no hyphens", in: "5551234567", want: "+5551234567"},
		{name: "only hyphens", in: "---", want: "+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, oncall.FormatPhoneNumber(tt.in))
		})
	}
}

// Formatting an already-formatted number keeps prepending a plus; the
// function is deliberately not idempotent, only hyphen-stripping is.
func TestFormatPhoneNumberReapplied(t *testing.T) {
	once := oncall.FormatPhoneNumber("555-123-4567")
	assert.Equal(t, "+5551234567", once)
	assert.Equal(t, "++5551234567", oncall.FormatPhoneNumber(once))
}
