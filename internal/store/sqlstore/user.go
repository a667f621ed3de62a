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
		p.Stores.UserStore = NewUserStore(p)
	})
}

// UserStore 处理rp_user表的操作
type UserStore struct {
	sqlstore.CommonFields
}

// NewUserStore 创建新的UserStore实例
func NewUserStore(provider sqlstore.SqlProviderAchieve) *UserStore {
	repo := &UserStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_USER)
	repo.SetAllColumns("id", "appid", "name", "handle", "avatar", "email", "password", "salt", "total_stars", "can_create_space", "updated_at", "created_at")
	return repo
}

// Create 创建新的用户
func (s *UserStore) Create(ctx context.Context, data types.User) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "appid", "name", "handle", "avatar", "email", "password", "salt", "total_stars", "can_create_space", "updated_at", "created_at").
		Values(data.ID, data.Appid, data.Name, data.Handle, data.Avatar, data.Email, data.Password, data.Salt, data.TotalStars, data.CanCreateSpace, data.UpdatedAt, data.CreatedAt)

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

// GetUser 根据ID获取用户
func (s *UserStore) GetUser(ctx context.Context, appid, id string) (*types.User, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"appid": appid, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.User
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByEmail 根据邮箱获取用户
func (s *UserStore) GetByEmail(ctx context.Context, appid, email string) (*types.User, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"appid": appid, "email": email})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.User
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateProfile 更新用户昵称与邮箱
func (s *UserStore) UpdateProfile(ctx context.Context, appid, id, name, email string) error {
	query := sq.Update(s.GetTable()).
		Set("name", name).
		Set("email", email).
		Set("updated_at", sq.Expr("EXTRACT(EPOCH FROM NOW())::bigint")).
		Where(sq.Eq{"appid": appid, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// UpdateStarState writes the star counter and the space unlock flag together.
// Callers run it inside the star transaction.
func (s *UserStore) UpdateStarState(ctx context.Context, appid, id string, totalStars int64, canCreateSpace bool) error {
	query := sq.Update(s.GetTable()).
		Set("total_stars", totalStars).
		Set("can_create_space", canCreateSpace).
		Where(sq.Eq{"appid": appid, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// ListUsers 分页获取用户列表
func (s *UserStore) ListUsers(ctx context.Context, opts types.ListUserOptions, page, pageSize uint64) ([]types.User, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable())
	if page != 0 || pageSize != 0 {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []types.User
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
