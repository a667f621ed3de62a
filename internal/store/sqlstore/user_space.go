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
		p.Stores.UserSpaceStore = NewUserSpaceStore(p)
	})
}

// UserSpaceStore 处理rp_user_space表的操作
type UserSpaceStore struct {
	sqlstore.CommonFields
}

// NewUserSpaceStore 创建新的UserSpaceStore实例
func NewUserSpaceStore(provider sqlstore.SqlProviderAchieve) *UserSpaceStore {
	repo := &UserSpaceStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_USER_SPACE)
	repo.SetAllColumns("user_id", "space_id", "role", "created_at")
	return repo
}

// Create records a membership. Joining a space twice is a no-op, the
// membership key is (user_id, space_id).
func (s *UserSpaceStore) Create(ctx context.Context, data types.UserSpace) error {
	query := sq.Insert(s.GetTable()).
		Columns("user_id", "space_id", "role", "created_at").
		Values(data.UserID, data.SpaceID, data.Role, data.CreatedAt).
		Suffix("ON CONFLICT (user_id, space_id) DO NOTHING")

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

// Get 获取用户在空间中的成员记录
func (s *UserSpaceStore) Get(ctx context.Context, userID, spaceID string) (*types.UserSpace, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID, "space_id": spaceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.UserSpace
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete 移除空间成员
func (s *UserSpaceStore) Delete(ctx context.Context, spaceID, userID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"space_id": spaceID, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// DeleteAll 移除空间全部成员
func (s *UserSpaceStore) DeleteAll(ctx context.Context, spaceID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"space_id": spaceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List 分页获取成员记录
func (s *UserSpaceStore) List(ctx context.Context, opts types.ListUserSpaceOptions, page, pageSize uint64) ([]types.UserSpace, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != 0 || pageSize != 0 {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []types.UserSpace
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ListSpaceUsers 获取空间内全部成员的用户ID
func (s *UserSpaceStore) ListSpaceUsers(ctx context.Context, spaceID string) ([]string, error) {
	query := sq.Select("user_id").From(s.GetTable()).Where(sq.Eq{"space_id": spaceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []string
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *UserSpaceStore) TotalMembers(ctx context.Context, spaceID string) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"space_id": spaceID})

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
