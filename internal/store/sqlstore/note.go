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
		p.Stores.NoteStore = NewNoteStore(p)
	})
}

// NoteStore 处理rp_journal_note表的操作
type NoteStore struct {
	sqlstore.CommonFields
}

// NewNoteStore 创建新的NoteStore实例
func NewNoteStore(provider sqlstore.SqlProviderAchieve) *NoteStore {
	repo := &NoteStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_JOURNAL_NOTE)
	repo.SetAllColumns("id", "journal_id", "user_id", "author_name", "author_handle", "content", "starred", "starred_at", "created_at")
	return repo
}

// Create 创建新的评论
func (s *NoteStore) Create(ctx context.Context, data types.Note) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "journal_id", "user_id", "author_name", "author_handle", "content", "starred", "starred_at", "created_at").
		Values(data.ID, data.JournalID, data.UserID, data.AuthorName, data.AuthorHandle, data.Content, data.Starred, data.StarredAt, data.CreatedAt)

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

// Get 获取指定日记下的评论
func (s *NoteStore) Get(ctx context.Context, journalID, noteID string) (*types.Note, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"journal_id": journalID, "id": noteID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res types.Note
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetStarred marks the note starred. The starred flag never goes back to
// false, starring is one way.
func (s *NoteStore) SetStarred(ctx context.Context, journalID, noteID string, starredAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("starred", true).
		Set("starred_at", starredAt).
		Where(sq.Eq{"journal_id": journalID, "id": noteID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List 获取日记下全部评论，按创建时间正序
func (s *NoteStore) List(ctx context.Context, journalID string) ([]types.Note, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("created_at ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []types.Note
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteAll 删除日记下全部评论
func (s *NoteStore) DeleteAll(ctx context.Context, journalID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"journal_id": journalID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
