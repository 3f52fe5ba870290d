package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusGlyph(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{StatusApproved, "✅"},
		{StatusPending, "⏳"},
		{StatusBanned, "🚫"},
		{StatusRejected, "❌"},
		{"unknown", "❓"},
	}

	for _, tc := range cases {
		u := &User{Status: tc.status}
		assert.Equal(t, tc.want, u.StatusGlyph())
	}
}
