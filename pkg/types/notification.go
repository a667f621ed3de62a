package types

type NotificationType string

const (
	NOTIFICATION_TYPE_COMMENT   = NotificationType("comment")
	NOTIFICATION_TYPE_STAR      = NotificationType("star")
	NOTIFICATION_TYPE_MILESTONE = NotificationType("milestone")
)

// SYSTEM_ACTOR is recorded as the acting user on notifications the service
// emits on its own behalf, such as milestone unlocks.
const (
	SYSTEM_ACTOR      = "system"
	SYSTEM_ACTOR_NAME = "System"
)

type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	ActorID   string           `json:"actor_id" db:"actor_id"`
	ActorName string           `json:"actor_name" db:"actor_name"`
	JournalID string           `json:"journal_id" db:"journal_id"`
	NoteID    string           `json:"note_id" db:"note_id"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt int64            `json:"created_at" db:"created_at"`
}
