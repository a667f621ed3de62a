package types

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type Visibility string

const (
	VISIBILITY_PUBLIC  = Visibility("public")
	VISIBILITY_PRIVATE = Visibility("private")
	VISIBILITY_SPACE   = Visibility("space")
)

func VisibilityFromString(s string) Visibility {
	switch Visibility(s) {
	case VISIBILITY_PUBLIC, VISIBILITY_SPACE:
		return Visibility(s)
	default:
		return VISIBILITY_PRIVATE
	}
}

type JournalContentType string

const (
	JOURNAL_CONTENT_TYPE_TEXT   = JournalContentType("text")
	JOURNAL_CONTENT_TYPE_BLOCKS = JournalContentType("blocks")
)

const (
	DEFAULT_MOOD   = "Calm"
	EXCERPT_LENGTH = 150
	MAX_TAGS       = 5
	MAX_TAG_LENGTH = 24
)

type Journal struct {
	ID          string             `json:"id" db:"id"`
	UserID      string             `json:"user_id" db:"user_id"`
	SpaceID     string             `json:"space_id" db:"space_id"`
	Title       string             `json:"title" db:"title"`
	Content     string             `json:"content" db:"content"`
	ContentType JournalContentType `json:"content_type" db:"content_type"`
	Excerpt     string             `json:"excerpt" db:"excerpt"`
	Mood        string             `json:"mood" db:"mood"`
	Visibility  Visibility         `json:"visibility" db:"visibility"`
	Tags        pq.StringArray     `json:"tags" db:"tags"`
	CoverURL    string             `json:"cover_url" db:"cover_url"`
	UpdatedAt   int64              `json:"updated_at" db:"updated_at"`
	CreatedAt   int64              `json:"created_at" db:"created_at"`
}

type UpdateJournalArgs struct {
	Title       string
	Content     string
	ContentType JournalContentType
	Excerpt     string
	Mood        string
	Visibility  Visibility
	SpaceID     string
	Tags        []string
}

type ListJournalOptions struct {
	UserID     string
	SpaceID    string
	Visibility Visibility
	Tag        string
}

func (opts ListJournalOptions) Apply(query *sq.SelectBuilder) {
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.SpaceID != "" {
		*query = query.Where(sq.Eq{"space_id": opts.SpaceID})
	}
	if opts.Visibility != "" {
		*query = query.Where(sq.Eq{"visibility": opts.Visibility})
	}
	if opts.Tag != "" {
		*query = query.Where(sq.Expr("? = ANY(tags)", opts.Tag))
	}
}
