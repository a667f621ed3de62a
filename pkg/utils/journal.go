package utils

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const (
	maxTags      = 5
	maxTagLength = 24
)

// NormalizeTags cleans user supplied tags: lowercase, `#`/space/comma
// stripped, each capped at 24 chars, empties dropped, duplicates removed,
// at most 5 kept.
func NormalizeTags(tags []string) []string {
	cleaned := lo.FilterMap(tags, func(tag string, _ int) (string, bool) {
		t := strings.ToLower(strings.TrimSpace(tag))
		t = strings.NewReplacer("#", "", " ", "", ",", "").Replace(t)
		if r := []rune(t); len(r) > maxTagLength {
			t = string(r[:maxTagLength])
		}
		return t, t != ""
	})

	cleaned = lo.Uniq(cleaned)
	if len(cleaned) > maxTags {
		cleaned = cleaned[:maxTags]
	}
	return cleaned
}

// Excerpt returns the first limit runes of body followed by an ellipsis.
func Excerpt(body string, limit int) string {
	r := []rune(body)
	if len(r) > limit {
		r = r[:limit]
	}
	return string(r) + "..."
}

const inviteCodeSeed = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenInviteCode generates an l-character base-36 uppercase space invite code.
// Codes are not guaranteed unique, callers insert against the unique index on
// rp_space.invite_code and regenerate on conflict.
func GenInviteCode(l int) string {
	var b strings.Builder
	for i := 0; i < l; i++ {
		b.WriteByte(inviteCodeSeed[rand.Intn(len(inviteCodeSeed))])
	}
	return b.String()
}

// NormalizeHandle derives a handle from a display name: lowercase, spaces
// removed, `@` prefixed.
func NormalizeHandle(name string) string {
	return "@" + strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// DisplayNameFromEmail falls back to the mailbox part of an email address,
// first letter capitalized.
func DisplayNameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	r := []rune(name)
	if len(r) == 0 {
		return "Anonymous"
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
