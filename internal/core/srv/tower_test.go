package srv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplelabs/ripple-api/pkg/types"
)

func TestTowerSubscribeUnsubscribe(t *testing.T) {
	tower := SetupTower()
	defer tower.Close()

	topic := types.PublicFeedTopic()
	assert.Equal(t, 0, tower.SubscriberCount(topic))

	ch := tower.Subscribe(topic)
	assert.Equal(t, 1, tower.SubscriberCount(topic))

	tower.Unsubscribe(topic, ch)
	assert.Equal(t, 0, tower.SubscriberCount(topic))
}

func TestTowerPublishDelivery(t *testing.T) {
	tower := SetupTower()
	defer tower.Close()

	topic := types.JournalTopic("j1")
	ch := tower.Subscribe(topic)
	defer tower.Unsubscribe(topic, ch)

	err := tower.PublishNote("j1", types.WS_EVENT_NOTE_PUBLISH, &types.Note{ID: "n1", JournalID: "j1"})
	require.NoError(t, err)

	select {
	case msg := <-ch:
		assert.Equal(t, "on_note", msg.Subject)
		assert.Equal(t, types.WS_EVENT_NOTE_PUBLISH, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestTowerTopicIsolation(t *testing.T) {
	tower := SetupTower()
	defer tower.Close()

	feedCh := tower.Subscribe(types.PublicFeedTopic())
	defer tower.Unsubscribe(types.PublicFeedTopic(), feedCh)
	spaceCh := tower.Subscribe(types.SpaceTopic("s1"))
	defer tower.Unsubscribe(types.SpaceTopic("s1"), spaceCh)

	err := tower.PublishJournal(types.SpaceTopic("s1"), types.WS_EVENT_JOURNAL_PUBLISH, &types.Journal{ID: "j1"})
	require.NoError(t, err)

	select {
	case <-spaceCh:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for space message")
	}

	select {
	case msg := <-feedCh:
		t.Fatalf("public feed received message for another topic: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTowerPublishDropsOnFullBuffer(t *testing.T) {
	tower := SetupTower()
	defer tower.Close()

	topic := types.UserNotificationTopic("u1")
	ch := tower.Subscribe(topic)
	defer tower.Unsubscribe(topic, ch)

	// Channel buffer is 64. Publishing past it must not block the loop.
	for i := 0; i < 70; i++ {
		err := tower.PublishNotification("u1", &types.Notification{ID: "n"})
		require.NoError(t, err)
	}
}

func TestTowerCloseClosesSubscribers(t *testing.T) {
	tower := SetupTower()

	topic := types.PublicFeedTopic()
	ch := tower.Subscribe(topic)
	require.Equal(t, 1, tower.SubscriberCount(topic))

	tower.Close()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "subscriber channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	assert.Equal(t, 0, tower.SubscriberCount(topic))
	// Safe no-op after close.
	assert.NoError(t, tower.PublishNotification("u1", &types.Notification{ID: "n"}))
}
