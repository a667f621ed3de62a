package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/types"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type NoteLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewNoteLogic(ctx context.Context, core *core.Core) *NoteLogic {
	return &NoteLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}
}

// AddNote leaves a comment on a readable journal. The note write and the
// owner's notification are separate operations, a failed notification never
// rolls back the note.
func (l *NoteLogic) AddNote(journalID, content string) (*types.Note, error) {
	user := l.GetUserInfo()

	journal, err := NewJournalLogic(l.ctx, l.core).GetJournal(journalID)
	if err != nil {
		return nil, errors.Trace("NoteLogic.AddNote", err)
	}

	author, err := l.core.Store().UserStore().GetUser(l.ctx, user.Appid, user.User)
	if err != nil {
		return nil, errors.New("NoteLogic.AddNote.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}

	note := types.Note{
		ID:           utils.GenSpecIDStr(),
		JournalID:    journalID,
		UserID:       author.ID,
		AuthorName:   author.Name,
		AuthorHandle: author.Handle,
		Content:      content,
		CreatedAt:    time.Now().Unix(),
	}

	if err = l.core.Store().NoteStore().Create(l.ctx, note); err != nil {
		return nil, errors.New("NoteLogic.AddNote.NoteStore.Create", i18n.ERROR_INTERNAL, err)
	}

	if journal.UserID != author.ID {
		if err = NewNotificationLogic(l.ctx, l.core).CreateNotification(types.Notification{
			UserID:    journal.UserID,
			Type:      types.NOTIFICATION_TYPE_COMMENT,
			ActorID:   author.ID,
			ActorName: author.Name,
			JournalID: journalID,
			NoteID:    note.ID,
		}); err != nil {
			slog.Error("failed to create comment notification", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		}
	}

	if tower := l.core.Srv().Tower(); tower != nil {
		tower.PublishNote(journalID, types.WS_EVENT_NOTE_PUBLISH, &note)
	}

	return &note, nil
}

func (l *NoteLogic) ListNotes(journalID string) ([]types.Note, error) {
	if _, err := NewJournalLogic(l.ctx, l.core).GetJournal(journalID); err != nil {
		return nil, errors.Trace("NoteLogic.ListNotes", err)
	}

	list, err := l.core.Store().NoteStore().List(l.ctx, journalID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("NoteLogic.ListNotes.NoteStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

type StarResult struct {
	Note       *types.Note `json:"note"`
	TotalStars int64       `json:"total_stars"`
	Unlocked   bool        `json:"unlocked"`
}

// StarNote lets the journal owner award a star to a note on their own entry.
// The star flag, the author's counter, the milestone flip and the notification
// rows commit together under serializable isolation, the whole body re-runs on
// conflict. Only the realtime publishes stay outside the transaction.
func (l *NoteLogic) StarNote(journalID, noteID string) (*StarResult, error) {
	user := l.GetUserInfo()

	journal, err := l.core.Store().JournalStore().Get(l.ctx, journalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("NoteLogic.StarNote.JournalStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("NoteLogic.StarNote.JournalStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if journal.UserID != user.User {
		return nil, errors.New("NoteLogic.StarNote.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	var (
		starred   *types.Note
		author    *types.User
		outcome   starOutcomeResult
		created   []types.Notification
		starredAt = time.Now().Unix()
	)

	actorName := journalActorName(l.ctx, l.core, user.Appid, user.User)

	err = l.core.Store().StrictTransaction(l.ctx, func(ctx context.Context) error {
		created = nil

		note, err := l.core.Store().NoteStore().Get(ctx, journalID, noteID)
		if err != nil {
			if err == sql.ErrNoRows {
				return errors.New("NoteLogic.StarNote.NoteStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
			}
			return errors.New("NoteLogic.StarNote.NoteStore.Get", i18n.ERROR_INTERNAL, err)
		}

		if note.UserID == user.User {
			return errors.New("NoteLogic.StarNote.self", i18n.ERROR_SELF_STAR, nil).Code(http.StatusBadRequest)
		}

		if author, err = l.core.Store().UserStore().GetUser(ctx, user.Appid, note.UserID); err != nil {
			return errors.New("NoteLogic.StarNote.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
		}

		if note.Starred {
			// Starring twice is a no-op, the counter moves at most once.
			starred = note
			outcome = starOutcomeResult{TotalStars: author.TotalStars}
			return nil
		}

		if err = l.core.Store().NoteStore().SetStarred(ctx, journalID, noteID, starredAt); err != nil {
			return errors.New("NoteLogic.StarNote.NoteStore.SetStarred", i18n.ERROR_INTERNAL, err)
		}

		outcome = starOutcome(author.TotalStars, author.CanCreateSpace)
		if err = l.core.Store().UserStore().UpdateStarState(ctx, author.Appid, author.ID, outcome.TotalStars, author.CanCreateSpace || outcome.Unlocked); err != nil {
			return errors.New("NoteLogic.StarNote.UserStore.UpdateStarState", i18n.ERROR_INTERNAL, err)
		}

		// The notification rows commit with the star itself, the author can
		// never hold a counted star without its notifications.
		created = starNotifications(journalID, noteID, user.User, actorName, author.ID, outcome.Unlocked, starredAt)
		for i := range created {
			created[i].ID = utils.GenSpecIDStr()
			if err = l.core.Store().NotificationStore().Create(ctx, created[i]); err != nil {
				return errors.New("NoteLogic.StarNote.NotificationStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}

		note.Starred = true
		note.StarredAt = starredAt
		starred = note
		outcome.Applied = true
		return nil
	})
	if err != nil {
		return nil, errors.Trace("NoteLogic.StarNote", err)
	}

	if outcome.Applied {
		if tower := l.core.Srv().Tower(); tower != nil {
			for i := range created {
				if err := tower.PublishNotification(created[i].UserID, &created[i]); err != nil {
					slog.Error("failed to publish star notification", slog.String("note_id", noteID), slog.String("error", err.Error()))
				}
			}
			tower.PublishNote(journalID, types.WS_EVENT_NOTE_STARRED, starred)
		}
	}

	return &StarResult{
		Note:       starred,
		TotalStars: outcome.TotalStars,
		Unlocked:   outcome.Unlocked,
	}, nil
}

func journalActorName(ctx context.Context, c *core.Core, appid, userID string) string {
	actor, err := c.Store().UserStore().GetUser(ctx, appid, userID)
	if err != nil {
		return ""
	}
	return actor.Name
}

// starNotifications builds the notification rows one accepted star writes:
// a milestone row first when this star unlocks space creation, then the star
// row itself. Both carry the journal so the recipient can jump back to it.
func starNotifications(journalID, noteID, actorID, actorName, authorID string, unlocked bool, now int64) []types.Notification {
	var list []types.Notification
	if unlocked {
		list = append(list, types.Notification{
			UserID:    authorID,
			Type:      types.NOTIFICATION_TYPE_MILESTONE,
			ActorID:   types.SYSTEM_ACTOR,
			ActorName: types.SYSTEM_ACTOR_NAME,
			JournalID: journalID,
			CreatedAt: now,
		})
	}
	return append(list, types.Notification{
		UserID:    authorID,
		Type:      types.NOTIFICATION_TYPE_STAR,
		ActorID:   actorID,
		ActorName: actorName,
		JournalID: journalID,
		NoteID:    noteID,
		CreatedAt: now,
	})
}

type starOutcomeResult struct {
	TotalStars int64
	Unlocked   bool
	Applied    bool
}

// starOutcome computes the counter after one new star and whether this star
// crosses the unlock threshold. The flag flips exactly once, an already
// unlocked author never reports another unlock.
func starOutcome(prevStars int64, canCreateSpace bool) starOutcomeResult {
	total := prevStars + 1
	return starOutcomeResult{
		TotalStars: total,
		Unlocked:   total >= types.SPACE_UNLOCK_STARS && !canCreateSpace,
	}
}
