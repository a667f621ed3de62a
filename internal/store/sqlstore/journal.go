package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ripplelabs/ripple-api/pkg/register"
	"github.com/ripplelabs/ripple-api/pkg/sqlstore"
	"github.com/ripplelabs/ripple-api/pkg/types"
)

func init() {
	register.RegisterFunc(RegisterKey{}, func(p *Provider) {
		p.Stores.JournalStore = NewJournalStore(p)
	})
}

// JournalStore 处理rp_journal表的操作
type JournalStore struct {
	sqlstore.CommonFields
}

// NewJournalStore 创建新的JournalStore实例
func NewJournalStore(provider sqlstore.SqlProviderAchieve) *JournalStore {
	repo := &JournalStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_JOURNAL)
	repo.SetAllColumns("id", "user_id", "space_id", "title", "content", "content_type", "excerpt", "mood", "visibility", "tags", "cover_url", "updated_at", "created_at")
	return repo
}

// Create 创建新的日记
func (s *JournalStore) Create(ctx context.Context, data types.Journal) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "space_id", "title", "content", "content_type", "excerpt", "mood", "visibility", "tags", "cover_url", "updated_at", "created_at").
		Values(data.ID, data.UserID, data.SpaceID, data.Title, data.Content, data.ContentType, data.Excerpt, data.Mood, data.Visibility, data.Tags, data.CoverURL, data.UpdatedAt, data.CreatedAt)

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

// Get 根据ID获取日记
func (s *JournalStore) Get(ctx context.Context, id string) (*types.Journal, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.Journal
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Update 更新日记内容
func (s *JournalStore) Update(ctx context.Context, id string, args types.UpdateJournalArgs) error {
	query := sq.Update(s.GetTable()).
		Set("title", args.Title).
		Set("content", args.Content).
		Set("content_type", args.ContentType).
		Set("excerpt", args.Excerpt).
		Set("mood", args.Mood).
		Set("visibility", args.Visibility).
		Set("space_id", args.SpaceID).
		Set("tags", pq.StringArray(args.Tags)).
		Set("updated_at", sq.Expr("EXTRACT(EPOCH FROM NOW())::bigint")).
		Where(sq.Eq{"id": id})

	queryString, sqlArgs, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, sqlArgs...)
	return err
}

// UpdateCover 更新日记封面地址
func (s *JournalStore) UpdateCover(ctx context.Context, id, coverURL string) error {
	query := sq.Update(s.GetTable()).
		Set("cover_url", coverURL).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Delete 删除日记
func (s *JournalStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List 分页获取日记列表，按创建时间倒序
func (s *JournalStore) List(ctx context.Context, opts types.ListJournalOptions, page, pageSize uint64) ([]types.Journal, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != 0 || pageSize != 0 {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []types.Journal
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *JournalStore) Total(ctx context.Context, opts types.ListJournalOptions) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())

	opts.Apply(&query)

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

// DetachSpace removes the space binding from every journal that was shared to
// the given space. Shared-visibility entries fall back to private.
func (s *JournalStore) DetachSpace(ctx context.Context, spaceID string) error {
	query := sq.Update(s.GetTable()).
		Set("space_id", "").
		Set("visibility", types.VISIBILITY_PRIVATE).
		Where(sq.Eq{"space_id": spaceID, "visibility": types.VISIBILITY_SPACE})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
