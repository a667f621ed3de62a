package v1_test

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ripplelabs/ripple-api/internal/core"
	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/types"
)

func unlockSpaceCreation(t *testing.T, c *core.Core, userID string) {
	t.Helper()
	err := c.Store().UserStore().UpdateStarState(userContext(c, userID, ""), c.DefaultAppid(), userID, types.SPACE_UNLOCK_STARS, true)
	if err != nil {
		t.Fatal(err)
	}
}

func Test_CreateSpaceLockedUntilMilestone(t *testing.T) {
	c := setupTestCore(t)

	creatorID, creatorCtx := registerTestUser(t, c, "creator")

	_, err := v1.NewSpaceLogic(creatorCtx, c).CreateSpace("too early", "", "")
	assert.Error(t, err)

	unlockSpaceCreation(t, c, creatorID)

	space, err := v1.NewSpaceLogic(creatorCtx, c).CreateSpace("book circle", "slow readers", "")
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, space.InviteCode, types.INVITE_CODE_LENGTH)
	assert.Equal(t, creatorID, space.CreatedBy)
}

func Test_CreateSpaceSuppliedCodeConflict(t *testing.T) {
	c := setupTestCore(t)

	firstID, firstCtx := registerTestUser(t, c, "first")
	secondID, secondCtx := registerTestUser(t, c, "second")
	unlockSpaceCreation(t, c, firstID)
	unlockSpaceCreation(t, c, secondID)

	code := fmt.Sprintf("T%d", time.Now().UnixNano()%100000000000)

	space, err := v1.NewSpaceLogic(firstCtx, c).CreateSpace("first circle", "", code)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, code, space.InviteCode)

	// The same caller-picked code again hits the unique index and surfaces
	// as a conflict instead of being silently regenerated.
	_, err = v1.NewSpaceLogic(secondCtx, c).CreateSpace("second circle", "", code)
	assert.Error(t, err)
	var ce *errors.CustomizedError
	if assert.True(t, stderrors.As(err, &ce)) {
		assert.Equal(t, http.StatusConflict, ce.HTTPCode())
	}
}

func Test_JoinSpaceByCodeIdempotent(t *testing.T) {
	c := setupTestCore(t)

	creatorID, creatorCtx := registerTestUser(t, c, "creator")
	_, memberCtx := registerTestUser(t, c, "member")
	unlockSpaceCreation(t, c, creatorID)

	space, err := v1.NewSpaceLogic(creatorCtx, c).CreateSpace("book circle", "", "")
	if err != nil {
		t.Fatal(err)
	}

	joined, err := v1.NewSpaceLogic(memberCtx, c).JoinSpaceByCode(space.InviteCode)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, space.SpaceID, joined.SpaceID)

	// Redeeming the same code twice keeps a single membership row.
	again, err := v1.NewSpaceLogic(memberCtx, c).JoinSpaceByCode(space.InviteCode)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, space.SpaceID, again.SpaceID)

	total, err := c.Store().UserSpaceStore().TotalMembers(creatorCtx, space.SpaceID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(2), total)

	_, err = v1.NewSpaceLogic(memberCtx, c).JoinSpaceByCode(fmt.Sprintf("X%d", time.Now().UnixNano()%10000000000))
	assert.Error(t, err)
}

func Test_DeleteSpaceCascade(t *testing.T) {
	c := setupTestCore(t)

	creatorID, creatorCtx := registerTestUser(t, c, "creator")
	memberID, memberCtx := registerTestUser(t, c, "member")
	unlockSpaceCreation(t, c, creatorID)

	space, err := v1.NewSpaceLogic(creatorCtx, c).CreateSpace("book circle", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = v1.NewSpaceLogic(memberCtx, c).JoinSpaceByCode(space.InviteCode); err != nil {
		t.Fatal(err)
	}

	journal, err := v1.NewJournalLogic(memberCtx, c).CreateJournal(v1.CreateJournalArgs{
		Title:      "shared entry",
		Content:    "posted into the circle",
		Visibility: types.VISIBILITY_SPACE,
		SpaceID:    space.SpaceID,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Only the creator may tear the space down.
	err = v1.NewSpaceLogic(memberCtx, c).DeleteSpace(space.SpaceID)
	assert.Error(t, err)

	if err = v1.NewSpaceLogic(creatorCtx, c).DeleteSpace(space.SpaceID); err != nil {
		t.Fatal(err)
	}

	_, err = c.Store().SpaceStore().Get(creatorCtx, space.SpaceID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = c.Store().UserSpaceStore().Get(creatorCtx, memberID, space.SpaceID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Shared journals survive the cascade as private entries.
	detached, err := c.Store().JournalStore().Get(memberCtx, journal.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, types.VISIBILITY_PRIVATE, detached.Visibility)
	assert.Empty(t, detached.SpaceID)
}
