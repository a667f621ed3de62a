package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NormalizeTags(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		expect []string
	}{
		{
			name:   "case and noise characters",
			input:  []string{"  Growth", "#Lonely", "growth"},
			expect: []string{"growth", "lonely"},
		},
		{
			name:   "drops empties",
			input:  []string{"#", " ", ",", "calm"},
			expect: []string{"calm"},
		},
		{
			name:   "caps at five",
			input:  []string{"a", "b", "c", "d", "e", "f", "g"},
			expect: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:   "truncates long tags",
			input:  []string{strings.Repeat("x", 40)},
			expect: []string{strings.Repeat("x", 24)},
		},
		{
			name:   "nil input",
			input:  nil,
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, NormalizeTags(tt.input))
		})
	}
}

func Test_Excerpt(t *testing.T) {
	assert.Equal(t, "abc...", Excerpt("abc", 150))

	long := strings.Repeat("r", 200)
	got := Excerpt(long, 150)
	assert.Len(t, got, 153)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func Test_GenInviteCode(t *testing.T) {
	code := GenInviteCode(6)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.Contains(t, inviteCodeSeed, string(r))
	}
}

func Test_NormalizeHandle(t *testing.T) {
	assert.Equal(t, "@sarahwrites", NormalizeHandle("Sarah Writes"))
}

func Test_DisplayNameFromEmail(t *testing.T) {
	assert.Equal(t, "Sarah", DisplayNameFromEmail("sarah@example.com"))
	assert.Equal(t, "Anonymous", DisplayNameFromEmail("@example.com"))
}
