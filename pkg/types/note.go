package types

type Note struct {
	ID           string `json:"id" db:"id"`
	JournalID    string `json:"journal_id" db:"journal_id"`
	UserID       string `json:"user_id" db:"user_id"`
	AuthorName   string `json:"author_name" db:"author_name"`
	AuthorHandle string `json:"author_handle" db:"author_handle"`
	Content      string `json:"content" db:"content"`
	Starred      bool   `json:"starred" db:"starred"`
	StarredAt    int64  `json:"starred_at" db:"starred_at"`
	CreatedAt    int64  `json:"created_at" db:"created_at"`
}
