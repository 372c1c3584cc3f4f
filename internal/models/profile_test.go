package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileCompletion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		profile Profile
		want    int
	}{
		{
			name:    "Empty profile",
			profile: Profile{},
			want:    0,
		},
		{
			name:    "Whitespace does not count",
			profile: Profile{Name: "  ", Bio: "bio is not required"},
			want:    0,
		},
		{
			name:    "One of seven",
			profile: Profile{Name: "Asha"},
			want:    14,
		},
		{
			name:    "Four of seven",
			profile: Profile{Name: "Asha", Gender: "f", Phone: "123", College: "IIT"},
			want:    57,
		},
		{
			name: "All required fields",
			profile: Profile{
				Name: "Asha", Gender: "f", Phone: "123", College: "IIT",
				Degree: "BTech", Branch: "CSE", Year: "3",
			},
			want: 100,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.profile.Completion())
		})
	}
}

func TestEventMembership(t *testing.T) {
	t.Parallel()

	e := Event{RegisteredUsers: []string{"a", "b"}, BookmarkedBy: []string{"c"}}

	assert.True(t, e.IsRegistered("a"))
	assert.False(t, e.IsRegistered("c"))
	assert.True(t, e.IsBookmarked("c"))
	assert.False(t, e.IsBookmarked("a"))
}
