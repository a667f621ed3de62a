package types

import "fmt"

type WsEventType string

const (
	WS_EVENT_NOTIFICATION    = WsEventType("notification")
	WS_EVENT_JOURNAL_PUBLISH = WsEventType("journal_publish")
	WS_EVENT_JOURNAL_UPDATE  = WsEventType("journal_update")
	WS_EVENT_NOTE_PUBLISH    = WsEventType("note_publish")
	WS_EVENT_NOTE_STARRED    = WsEventType("note_starred")
	WS_EVENT_OTHERS          = WsEventType("others")
)

// Topic layout for the realtime tower. Every feed view subscribes to exactly
// one of these; clients must unsubscribe when the view goes away.
func UserNotificationTopic(userID string) string {
	return fmt.Sprintf("/user/%s/notifications", userID)
}

func PublicFeedTopic() string {
	return "/feed/public"
}

func SpaceTopic(spaceID string) string {
	return fmt.Sprintf("/space/%s", spaceID)
}

func JournalTopic(journalID string) string {
	return fmt.Sprintf("/journal/%s", journalID)
}
