package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateFilter(t *testing.T) {
	cases := []struct {
		raw  string
		want StateFilter
	}{
		{"", FilterAll},
		{"  ", FilterAll},
		{"ALL", FilterAll},
		{"all", FilterAll},
		{"Current", FilterCurrent},
		{"past", FilterPast},
		{"FUTURE", FilterFuture},
		{"waiting", FilterWaiting},
		{"rejected", FilterRejected},
		{" rejected ", FilterRejected},
	}
	for _, tc := range cases {
		got, err := ParseStateFilter(tc.raw)
		require.NoError(t, err, "token %q", tc.raw)
		assert.Equal(t, tc.want, got, "token %q", tc.raw)
	}
}

func TestParseStateFilterUnknown(t *testing.T) {
	for _, raw := range []string{"SOMETIMES", "APPROVED2", "CURRENT PAST"} {
		_, err := ParseStateFilter(raw)
		assert.Error(t, err, "token %q", raw)
	}
}
