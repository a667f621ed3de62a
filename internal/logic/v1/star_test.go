package v1_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ripplelabs/ripple-api/internal/core"
	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/plugins"
	"github.com/ripplelabs/ripple-api/pkg/security"
	"github.com/ripplelabs/ripple-api/pkg/types"
)

func setupTestCore(t *testing.T) *core.Core {
	t.Helper()
	if os.Getenv("TEST_CONFIG_PATH") == "" {
		t.Skip("TEST_CONFIG_PATH not set, logic tests need a live core")
	}
	c := core.MustSetupCore(core.MustLoadBaseConfig(os.Getenv("TEST_CONFIG_PATH")))
	plugins.Setup(c.InstallPlugins, "selfhost")
	return c
}

func userContext(c *core.Core, userID, email string) context.Context {
	return context.WithValue(context.Background(), v1.TOKEN_CONTEXT_KEY, security.TokenClaims{
		Appid: c.DefaultAppid(),
		User:  userID,
		Email: email,
	})
}

func registerTestUser(t *testing.T, c *core.Core, name string) (string, context.Context) {
	t.Helper()
	email := fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano())
	result, err := v1.NewAuthLogic(context.Background(), c).Register(email, "test-password", name)
	if err != nil {
		t.Fatal(err)
	}
	return result.UserID, userContext(c, result.UserID, email)
}

func publicJournalWithNote(t *testing.T, c *core.Core, ownerCtx, authorCtx context.Context) (*types.Journal, *types.Note) {
	t.Helper()
	journal, err := v1.NewJournalLogic(ownerCtx, c).CreateJournal(v1.CreateJournalArgs{
		Title:      "morning pages",
		Content:    "wrote three pages before sunrise",
		Visibility: types.VISIBILITY_PUBLIC,
	})
	if err != nil {
		t.Fatal(err)
	}
	note, err := v1.NewNoteLogic(authorCtx, c).AddNote(journal.ID, "this one resonates")
	if err != nil {
		t.Fatal(err)
	}
	return journal, note
}

func Test_StarNoteCountsOnce(t *testing.T) {
	c := setupTestCore(t)

	_, ownerCtx := registerTestUser(t, c, "owner")
	authorID, authorCtx := registerTestUser(t, c, "author")

	journal, note := publicJournalWithNote(t, c, ownerCtx, authorCtx)

	first, err := v1.NewNoteLogic(ownerCtx, c).StarNote(journal.ID, note.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, first.Note.Starred)
	assert.Equal(t, int64(1), first.TotalStars)
	assert.False(t, first.Unlocked)

	// Starring the same note again moves nothing.
	second, err := v1.NewNoteLogic(ownerCtx, c).StarNote(journal.ID, note.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, second.Note.Starred)
	assert.Equal(t, int64(1), second.TotalStars)
	assert.False(t, second.Unlocked)

	author, err := c.Store().UserStore().GetUser(authorCtx, c.DefaultAppid(), authorID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(1), author.TotalStars)
	assert.False(t, author.CanCreateSpace)

	// Exactly one star notification despite the repeated call.
	list, err := v1.NewNotificationLogic(authorCtx, c).ListNotifications()
	if err != nil {
		t.Fatal(err)
	}
	stars := 0
	for _, n := range list {
		if n.Type == types.NOTIFICATION_TYPE_STAR && n.NoteID == note.ID {
			stars++
			assert.Equal(t, journal.ID, n.JournalID)
		}
	}
	assert.Equal(t, 1, stars)
}

func Test_StarNoteMilestoneUnlock(t *testing.T) {
	c := setupTestCore(t)

	_, ownerCtx := registerTestUser(t, c, "owner")
	authorID, authorCtx := registerTestUser(t, c, "author")

	// Place the author one star short of the unlock threshold.
	if err := c.Store().UserStore().UpdateStarState(authorCtx, c.DefaultAppid(), authorID, types.SPACE_UNLOCK_STARS-1, false); err != nil {
		t.Fatal(err)
	}

	journal, note := publicJournalWithNote(t, c, ownerCtx, authorCtx)

	result, err := v1.NewNoteLogic(ownerCtx, c).StarNote(journal.ID, note.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, result.Unlocked)
	assert.Equal(t, int64(types.SPACE_UNLOCK_STARS), result.TotalStars)

	author, err := c.Store().UserStore().GetUser(authorCtx, c.DefaultAppid(), authorID)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, author.CanCreateSpace)

	list, err := v1.NewNotificationLogic(authorCtx, c).ListNotifications()
	if err != nil {
		t.Fatal(err)
	}
	var milestone *types.Notification
	for i, n := range list {
		if n.Type == types.NOTIFICATION_TYPE_MILESTONE {
			milestone = &list[i]
		}
	}
	if milestone == nil {
		t.Fatal("no milestone notification for the unlocking star")
	}
	assert.Equal(t, types.SYSTEM_ACTOR, milestone.ActorID)
	assert.Equal(t, journal.ID, milestone.JournalID)

	// The milestone resolves back to the journal whose star crossed the line.
	resolved, err := v1.NewNotificationLogic(authorCtx, c).ResolveJournal(milestone.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resolved == nil {
		t.Fatal("milestone notification resolved to no journal")
	}
	assert.Equal(t, journal.ID, resolved.ID)
}

func Test_StarNoteSelfRejected(t *testing.T) {
	c := setupTestCore(t)

	ownerID, ownerCtx := registerTestUser(t, c, "owner")

	journal, note := publicJournalWithNote(t, c, ownerCtx, ownerCtx)

	_, err := v1.NewNoteLogic(ownerCtx, c).StarNote(journal.ID, note.ID)
	assert.Error(t, err)

	owner, err := c.Store().UserStore().GetUser(ownerCtx, c.DefaultAppid(), ownerID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(0), owner.TotalStars)

	got, err := c.Store().NoteStore().Get(ownerCtx, journal.ID, note.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, got.Starred)
}
