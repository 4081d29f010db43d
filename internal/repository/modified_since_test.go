package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupmanagement/internal/domain"
)

func TestParseModifiedSince(t *testing.T) {
	want := time.Date(2015, 10, 21, 7, 28, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"RFC1123", "Wed, 21 Oct 2015 07:28:00 GMT", want},
		{"RFC850", "Wednesday, 21-Oct-15 07:28:00 GMT", want},
		{"ANSIC", "Wed Oct 21 07:28:00 2015", want},
		{"RFC1123Z", "Wed, 21 Oct 2015 09:28:00 +0200", want},
		{"Minutes", "2015-10-21T07:28", want},
		{"Date", "2015-10-21", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"Padded", "  2015-10-21T07:28 ", want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModifiedSince(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseModifiedSince_Invalid(t *testing.T) {
	for _, value := range []string{"", "   ", "yesterday", "21.10.2015"} {
		_, err := ParseModifiedSince(value)
		assert.ErrorIs(t, err, domain.ErrBadInput, value)
	}
}
