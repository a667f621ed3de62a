package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/ripplelabs/ripple-api/pkg/register"
	"github.com/ripplelabs/ripple-api/pkg/sqlstore"
	"github.com/ripplelabs/ripple-api/pkg/types"
)

func init() {
	register.RegisterFunc(RegisterKey{}, func(p *Provider) {
		p.Stores.NotificationStore = NewNotificationStore(p)
	})
}

// NotificationStore 处理rp_notification表的操作
type NotificationStore struct {
	sqlstore.CommonFields
}

// NewNotificationStore 创建新的NotificationStore实例
func NewNotificationStore(provider sqlstore.SqlProviderAchieve) *NotificationStore {
	repo := &NotificationStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_NOTIFICATION)
	repo.SetAllColumns("id", "user_id", "type", "actor_id", "actor_name", "journal_id", "note_id", "read", "created_at")
	return repo
}

// Create 创建新的通知
func (s *NotificationStore) Create(ctx context.Context, data types.Notification) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "type", "actor_id", "actor_name", "journal_id", "note_id", "read", "created_at").
		Values(data.ID, data.UserID, data.Type, data.ActorID, data.ActorName, data.JournalID, data.NoteID, data.Read, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

// Get 根据ID获取通知
func (s *NotificationStore) Get(ctx context.Context, id string) (*types.Notification, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.Notification
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByUser 获取用户全部通知，按创建时间倒序
func (s *NotificationStore) ListByUser(ctx context.Context, userID string) ([]types.Notification, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []types.Notification
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// MarkRead 将通知标记为已读
func (s *NotificationStore) MarkRead(ctx context.Context, id string) error {
	query := sq.Update(s.GetTable()).
		Set("read", true).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NotificationStore) UnreadTotal(ctx context.Context, userID string) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"user_id": userID, "read": false})

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, errorSqlBuild(err)
	}

	var res int64
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return 0, err
	}
	return res, nil
}
