package types

import (
	sq "github.com/Masterminds/squirrel"
)

// SPACE_UNLOCK_STARS is the reputation threshold that unlocks space creation.
// Crossing it flips User.CanCreateSpace exactly once.
const SPACE_UNLOCK_STARS = 50

type User struct {
	ID             string `json:"id" db:"id"`
	Appid          string `json:"appid" db:"appid"`
	Name           string `json:"name" db:"name"`
	Handle         string `json:"handle" db:"handle"`
	Avatar         string `json:"avatar" db:"avatar"`
	Email          string `json:"email" db:"email"`
	Password       string `json:"-" db:"password"`
	Salt           string `json:"-" db:"salt"`
	TotalStars     int64  `json:"total_stars" db:"total_stars"`
	CanCreateSpace bool   `json:"can_create_space" db:"can_create_space"`
	UpdatedAt      int64  `json:"updated_at" db:"updated_at"`
	CreatedAt      int64  `json:"created_at" db:"created_at"`
}

type ListUserOptions struct {
	IDs   []string
	Email string
}

func (opts ListUserOptions) Apply(query *sq.SelectBuilder) {
	if len(opts.IDs) > 0 {
		*query = query.Where(sq.Eq{"id": opts.IDs})
	}
	if opts.Email != "" {
		*query = query.Where(sq.Eq{"email": opts.Email})
	}
}
