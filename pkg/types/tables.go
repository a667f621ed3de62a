package types

type Table string

func (t Table) Name() string {
	return string(t)
}

const (
	TABLE_USER         = Table("rp_user")
	TABLE_JOURNAL      = Table("rp_journal")
	TABLE_JOURNAL_NOTE = Table("rp_journal_note")
	TABLE_SPACE        = Table("rp_space")
	TABLE_USER_SPACE   = Table("rp_user_space")
	TABLE_NOTIFICATION = Table("rp_notification")
)
