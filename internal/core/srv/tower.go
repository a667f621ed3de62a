package srv

import (
	"sync/atomic"

	"github.com/ripplelabs/ripple-api/pkg/types"
)

// PublishData is the wire envelope every realtime event carries.
type PublishData struct {
	Subject string            `json:"subject"`
	Version string            `json:"version"`
	Type    types.WsEventType `json:"type"`
	Data    any               `json:"data"`
}

type towerMessage struct {
	topic string
	data  PublishData
}

type subscribeReq struct {
	topic string
	ch    chan PublishData
}

type countReq struct {
	topic string
	resp  chan int
}

// Tower is the in-process topic hub behind the websocket endpoint. A single
// loop goroutine owns the topic/subscriber table, public methods talk to it
// through channels so no mutex is needed.
type Tower struct {
	subscribeCh   chan subscribeReq
	unsubscribeCh chan subscribeReq
	publishCh     chan towerMessage
	countReqCh    chan countReq

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

func SetupTower() *Tower {
	t := &Tower{
		subscribeCh:   make(chan subscribeReq),
		unsubscribeCh: make(chan subscribeReq),
		publishCh:     make(chan towerMessage, 256),
		countReqCh:    make(chan countReq),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go t.run()
	return t
}

func ApplyTower() ApplyFunc {
	return func(s *Srv) {
		s.tower = SetupTower()
	}
}

func (t *Tower) run() {
	defer close(t.stopped)

	topics := make(map[string]map[chan PublishData]struct{})

	for {
		select {
		case <-t.stopCh:
			for _, subs := range topics {
				for ch := range subs {
					close(ch)
				}
			}
			return

		case req := <-t.subscribeCh:
			subs := topics[req.topic]
			if subs == nil {
				subs = make(map[chan PublishData]struct{})
				topics[req.topic] = subs
			}
			subs[req.ch] = struct{}{}

		case req := <-t.unsubscribeCh:
			if subs, ok := topics[req.topic]; ok {
				if _, ok := subs[req.ch]; ok {
					delete(subs, req.ch)
					close(req.ch)
				}
				if len(subs) == 0 {
					delete(topics, req.topic)
				}
			}

		case msg := <-t.publishCh:
			for ch := range topics[msg.topic] {
				select {
				case ch <- msg.data:
				default:
					// 订阅方消费过慢，丢弃消息避免阻塞事件循环
				}
			}

		case req := <-t.countReqCh:
			req.resp <- len(topics[req.topic])
		}
	}
}

func (t *Tower) Close() {
	if t.closed.CompareAndSwap(false, true) {
		close(t.stopCh)
	}
	<-t.stopped
}

// Subscribe registers a listener on a topic and returns its channel.
func (t *Tower) Subscribe(topic string) chan PublishData {
	ch := make(chan PublishData, 64)
	if t.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case t.subscribeCh <- subscribeReq{topic: topic, ch: ch}:
	case <-t.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes the listener and closes its channel.
func (t *Tower) Unsubscribe(topic string, ch chan PublishData) {
	if t.closed.Load() {
		return
	}
	select {
	case t.unsubscribeCh <- subscribeReq{topic: topic, ch: ch}:
	case <-t.stopped:
	}
}

// SubscriberCount returns the number of listeners on a topic.
func (t *Tower) SubscriberCount(topic string) int {
	if t.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case t.countReqCh <- countReq{topic: topic, resp: resp}:
	case <-t.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-t.stopped:
		return 0
	}
}

func (t *Tower) publish(topic string, data PublishData) error {
	if t.closed.Load() {
		return nil
	}
	select {
	case t.publishCh <- towerMessage{topic: topic, data: data}:
	case <-t.stopped:
	}
	return nil
}

func (t *Tower) PublishNotification(userID string, data *types.Notification) error {
	return t.publish(types.UserNotificationTopic(userID), PublishData{
		Subject: "on_notification",
		Version: "v1",
		Type:    types.WS_EVENT_NOTIFICATION,
		Data:    data,
	})
}

func (t *Tower) PublishJournal(topic string, logic types.WsEventType, data *types.Journal) error {
	return t.publish(topic, PublishData{
		Subject: "on_journal",
		Version: "v1",
		Type:    logic,
		Data:    data,
	})
}

func (t *Tower) PublishNote(journalID string, logic types.WsEventType, data *types.Note) error {
	return t.publish(types.JournalTopic(journalID), PublishData{
		Subject: "on_note",
		Version: "v1",
		Type:    logic,
		Data:    data,
	})
}
