package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ripplelabs/ripple-api/pkg/types"
)

func TestStarOutcomeIncrement(t *testing.T) {
	out := starOutcome(3, false)
	assert.Equal(t, int64(4), out.TotalStars)
	assert.False(t, out.Unlocked)
}

func TestStarOutcomeCrossesThreshold(t *testing.T) {
	out := starOutcome(types.SPACE_UNLOCK_STARS-1, false)
	assert.Equal(t, int64(types.SPACE_UNLOCK_STARS), out.TotalStars)
	assert.True(t, out.Unlocked)
}

func TestStarOutcomeAlreadyUnlocked(t *testing.T) {
	// The unlock fires once, a user past the threshold never reports again.
	out := starOutcome(types.SPACE_UNLOCK_STARS+10, true)
	assert.Equal(t, int64(types.SPACE_UNLOCK_STARS+11), out.TotalStars)
	assert.False(t, out.Unlocked)
}

func TestStarOutcomePastThresholdButLocked(t *testing.T) {
	// Counter already past the line while the flag is still off, e.g. after a
	// manual migration. The next star still flips it.
	out := starOutcome(types.SPACE_UNLOCK_STARS+5, false)
	assert.True(t, out.Unlocked)
}

func TestStarNotificationsPlain(t *testing.T) {
	list := starNotifications("journal-1", "note-1", "owner-1", "Ana", "author-1", false, 1700000000)
	assert.Len(t, list, 1)
	assert.Equal(t, types.NOTIFICATION_TYPE_STAR, list[0].Type)
	assert.Equal(t, "author-1", list[0].UserID)
	assert.Equal(t, "owner-1", list[0].ActorID)
	assert.Equal(t, "journal-1", list[0].JournalID)
	assert.Equal(t, "note-1", list[0].NoteID)
}

func TestStarNotificationsMilestone(t *testing.T) {
	list := starNotifications("journal-1", "note-1", "owner-1", "Ana", "author-1", true, 1700000000)
	assert.Len(t, list, 2)

	milestone := list[0]
	assert.Equal(t, types.NOTIFICATION_TYPE_MILESTONE, milestone.Type)
	assert.Equal(t, types.SYSTEM_ACTOR, milestone.ActorID)
	assert.Equal(t, types.SYSTEM_ACTOR_NAME, milestone.ActorName)
	// The milestone links back to the journal whose star crossed the line.
	assert.Equal(t, "journal-1", milestone.JournalID)

	assert.Equal(t, types.NOTIFICATION_TYPE_STAR, list[1].Type)
}
