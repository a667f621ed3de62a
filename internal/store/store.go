package store

import (
	"context"

	"github.com/ripplelabs/ripple-api/pkg/types"
)

type UserStore interface {
	Create(ctx context.Context, data types.User) error
	GetUser(ctx context.Context, appid, id string) (*types.User, error)
	GetByEmail(ctx context.Context, appid, email string) (*types.User, error)
	UpdateProfile(ctx context.Context, appid, id, name, email string) error
	UpdateStarState(ctx context.Context, appid, id string, totalStars int64, canCreateSpace bool) error
	ListUsers(ctx context.Context, opts types.ListUserOptions, page, pageSize uint64) ([]types.User, error)
}

type JournalStore interface {
	Create(ctx context.Context, data types.Journal) error
	Get(ctx context.Context, id string) (*types.Journal, error)
	Update(ctx context.Context, id string, args types.UpdateJournalArgs) error
	UpdateCover(ctx context.Context, id, coverURL string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts types.ListJournalOptions, page, pageSize uint64) ([]types.Journal, error)
	Total(ctx context.Context, opts types.ListJournalOptions) (int64, error)
	DetachSpace(ctx context.Context, spaceID string) error
}

type NoteStore interface {
	Create(ctx context.Context, data types.Note) error
	Get(ctx context.Context, journalID, noteID string) (*types.Note, error)
	SetStarred(ctx context.Context, journalID, noteID string, starredAt int64) error
	List(ctx context.Context, journalID string) ([]types.Note, error)
	DeleteAll(ctx context.Context, journalID string) error
}

type SpaceStore interface {
	Create(ctx context.Context, data types.Space) error
	Get(ctx context.Context, spaceID string) (*types.Space, error)
	GetByInviteCode(ctx context.Context, code string) (*types.Space, error)
	Delete(ctx context.Context, spaceID string) error
	List(ctx context.Context, spaceIDs []string, page, pageSize uint64) ([]types.Space, error)
}

type UserSpaceStore interface {
	Create(ctx context.Context, data types.UserSpace) error
	Get(ctx context.Context, userID, spaceID string) (*types.UserSpace, error)
	Delete(ctx context.Context, spaceID, userID string) error
	DeleteAll(ctx context.Context, spaceID string) error
	List(ctx context.Context, opts types.ListUserSpaceOptions, page, pageSize uint64) ([]types.UserSpace, error)
	ListSpaceUsers(ctx context.Context, spaceID string) ([]string, error)
	TotalMembers(ctx context.Context, spaceID string) (int64, error)
}

type NotificationStore interface {
	Create(ctx context.Context, data types.Notification) error
	Get(ctx context.Context, id string) (*types.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]types.Notification, error)
	MarkRead(ctx context.Context, id string) error
	UnreadTotal(ctx context.Context, userID string) (int64, error)
}
