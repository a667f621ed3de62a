package types

import (
	sq "github.com/Masterminds/squirrel"
)

const INVITE_CODE_LENGTH = 6

type Space struct {
	SpaceID     string `json:"space_id" db:"space_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	InviteCode  string `json:"invite_code" db:"invite_code"`
	CreatedBy   string `json:"created_by" db:"created_by"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

type UserSpace struct {
	UserID    string `json:"user_id" db:"user_id"`
	SpaceID   string `json:"space_id" db:"space_id"`
	Role      string `json:"role" db:"role"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type UserSpaceDetail struct {
	SpaceID     string `json:"space_id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InviteCode  string `json:"invite_code"`
	Role        string `json:"role"`
	Members     int64  `json:"members"`
	CreatedAt   int64  `json:"created_at"`
}

type ListUserSpaceOptions struct {
	UserID  string
	SpaceID string
}

func (opts ListUserSpaceOptions) Apply(query *sq.SelectBuilder) {
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.SpaceID != "" {
		*query = query.Where(sq.Eq{"space_id": opts.SpaceID})
	}
}
