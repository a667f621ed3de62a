package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/types"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type NotificationLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewNotificationLogic(ctx context.Context, core *core.Core) *NotificationLogic {
	return &NotificationLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}
}

// CreateNotification persists the notification and pushes it to the
// recipient's realtime topic. The push is best effort.
func (l *NotificationLogic) CreateNotification(data types.Notification) error {
	if data.ID == "" {
		data.ID = utils.GenSpecIDStr()
	}
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	if err := l.core.Store().NotificationStore().Create(l.ctx, data); err != nil {
		return errors.New("NotificationLogic.CreateNotification.NotificationStore.Create", i18n.ERROR_INTERNAL, err)
	}

	if tower := l.core.Srv().Tower(); tower != nil {
		if err := tower.PublishNotification(data.UserID, &data); err != nil {
			slog.Error("failed to publish notification", slog.String("user_id", data.UserID), slog.String("error", err.Error()))
		}
	}
	return nil
}

// ListNotifications returns the caller's notifications, newest first.
func (l *NotificationLogic) ListNotifications() ([]types.Notification, error) {
	user := l.GetUserInfo()

	list, err := l.core.Store().NotificationStore().ListByUser(l.ctx, user.User)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("NotificationLogic.ListNotifications.NotificationStore.ListByUser", i18n.ERROR_INTERNAL, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt > list[j].CreatedAt
	})
	return list, nil
}

func (l *NotificationLogic) UnreadCount() (int64, error) {
	user := l.GetUserInfo()
	total, err := l.core.Store().NotificationStore().UnreadTotal(l.ctx, user.User)
	if err != nil {
		return 0, errors.New("NotificationLogic.UnreadCount.NotificationStore.UnreadTotal", i18n.ERROR_INTERNAL, err)
	}
	return total, nil
}

func (l *NotificationLogic) MarkRead(id string) error {
	user := l.GetUserInfo()

	notification, err := l.core.Store().NotificationStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.New("NotificationLogic.MarkRead.NotificationStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return errors.New("NotificationLogic.MarkRead.NotificationStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if notification.UserID != user.User {
		return errors.New("NotificationLogic.MarkRead.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	if err = l.core.Store().NotificationStore().MarkRead(l.ctx, id); err != nil {
		return errors.New("NotificationLogic.MarkRead.NotificationStore.MarkRead", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// MarkAllRead marks every unread notification one by one. A failure stops the
// sweep and reports, already marked rows stay marked.
func (l *NotificationLogic) MarkAllRead() error {
	user := l.GetUserInfo()

	list, err := l.core.Store().NotificationStore().ListByUser(l.ctx, user.User)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("NotificationLogic.MarkAllRead.NotificationStore.ListByUser", i18n.ERROR_INTERNAL, err)
	}

	for _, v := range list {
		if v.Read {
			continue
		}
		if err = l.core.Store().NotificationStore().MarkRead(l.ctx, v.ID); err != nil {
			return errors.New("NotificationLogic.MarkAllRead.NotificationStore.MarkRead", i18n.ERROR_INTERNAL, err)
		}
	}
	return nil
}

// ResolveJournal looks up the journal a notification points at so the client
// can jump to it. A notification may outlive its journal, a missing entry
// resolves to nil rather than an error.
func (l *NotificationLogic) ResolveJournal(id string) (*types.Journal, error) {
	user := l.GetUserInfo()

	notification, err := l.core.Store().NotificationStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("NotificationLogic.ResolveJournal.NotificationStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("NotificationLogic.ResolveJournal.NotificationStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if notification.UserID != user.User {
		return nil, errors.New("NotificationLogic.ResolveJournal.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}
	if notification.JournalID == "" {
		return nil, nil
	}

	journal, err := l.core.Store().JournalStore().Get(l.ctx, notification.JournalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.New("NotificationLogic.ResolveJournal.JournalStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return journal, nil
}
