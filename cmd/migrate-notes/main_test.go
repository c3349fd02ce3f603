package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLegacyNotes(t *testing.T) {
	cases := []struct {
		name    string
		notes   string
		want    parsedNotes
		matched bool
	}{
		{
			name:    "behavior and recess prefix",
			notes:   "Behavior: good. Recess: played outside. Slept well after lunch.",
			want:    parsedNotes{behavior: "good", recess: "played outside", remainder: "Slept well after lunch."},
			matched: true,
		},
		{
			name:    "behavior only",
			notes:   "Behavior: Excellent. Quiet morning.",
			want:    parsedNotes{behavior: "excellent", remainder: "Quiet morning."},
			matched: true,
		},
		{
			name:    "recess only",
			notes:   "Recess: stayed indoors. Runny nose.",
			want:    parsedNotes{recess: "stayed indoors", remainder: "Runny nose."},
			matched: true,
		},
		{
			name:    "unknown behavior value left in place",
			notes:   "Behavior: wonderful. Busy day.",
			want:    parsedNotes{remainder: "Behavior: wonderful. Busy day."},
			matched: false,
		},
		{
			name:    "free-form notes untouched",
			notes:   "Asked about the behavior chart today.",
			want:    parsedNotes{remainder: "Asked about the behavior chart today."},
			matched: false,
		},
		{
			name:    "empty",
			notes:   "",
			want:    parsedNotes{},
			matched: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := parseLegacyNotes(tc.notes)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.matched, matched)
		})
	}
}
