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
		p.Stores.SpaceStore = NewSpaceStore(p)
	})
}

// SpaceStore 处理rp_space表的操作
type SpaceStore struct {
	sqlstore.CommonFields
}

// NewSpaceStore 创建新的SpaceStore实例
func NewSpaceStore(provider sqlstore.SqlProviderAchieve) *SpaceStore {
	repo := &SpaceStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_SPACE)
	repo.SetAllColumns("space_id", "name", "description", "invite_code", "created_by", "created_at")
	return repo
}

// Create 创建新的空间；invite_code带唯一索引，冲突错误交由上层处理
func (s *SpaceStore) Create(ctx context.Context, data types.Space) error {
	query := sq.Insert(s.GetTable()).
		Columns("space_id", "name", "description", "invite_code", "created_by", "created_at").
		Values(data.SpaceID, data.Name, data.Description, data.InviteCode, data.CreatedBy, data.CreatedAt)

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

// Get 根据ID获取空间
func (s *SpaceStore) Get(ctx context.Context, spaceID string) (*types.Space, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"space_id": spaceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.Space
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByInviteCode 根据邀请码获取空间
func (s *SpaceStore) GetByInviteCode(ctx context.Context, code string) (*types.Space, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"invite_code": code})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.Space
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete 删除空间
func (s *SpaceStore) Delete(ctx context.Context, spaceID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"space_id": spaceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List 批量获取空间
func (s *SpaceStore) List(ctx context.Context, spaceIDs []string, page, pageSize uint64) ([]types.Space, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable())
	if len(spaceIDs) > 0 {
		query = query.Where(sq.Eq{"space_id": spaceIDs})
	}
	if page != 0 || pageSize != 0 {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []types.Space
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
