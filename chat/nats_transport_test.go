package chat

import (
	"encoding/json"
	"testing"

	"gamebot/common/log"

	"github.com/nats-io/nats.go"
)

func TestMain(m *testing.M) {
	log.InitLog("chat-test", "error")
	m.Run()
}

type captureHandler struct {
	msgs []*Message
}

func (h *captureHandler) HandleMessage(msg *Message, responder Responder) {
	h.msgs = append(h.msgs, msg)
}

func inboundData(t *testing.T, msg *Message) []byte {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestInboundFloodIsLimited(t *testing.T) {
	h := &captureHandler{}
	tr := NewNatsTransport("stub_game", h)

	data := inboundData(t, &Message{
		SenderEmail: "alice@example.com",
		Type:        TypeStream,
		Stream:      "games",
		Topic:       "table 1",
		Content:     "move 1",
	})
	for i := 0; i < 30; i++ {
		tr.onInbound(&nats.Msg{Data: data})
	}

	if len(h.msgs) == 0 {
		t.Fatal("the first messages of a burst must pass")
	}
	if len(h.msgs) >= 30 {
		t.Fatalf("expected the limiter to drop part of the flood, handled %d", len(h.msgs))
	}
}

func TestInboundEmptyContentStillDelivered(t *testing.T) {
	h := &captureHandler{}
	tr := NewNatsTransport("stub_game", h)

	// 空内容也要投递，引擎会回帮助文本
	data := inboundData(t, &Message{
		SenderEmail: "alice@example.com",
		Type:        TypeStream,
		Stream:      "games",
		Topic:       "table 1",
	})
	tr.onInbound(&nats.Msg{Data: data})
	if len(h.msgs) != 1 {
		t.Fatalf("expected the empty-content message to be handled, got %d", len(h.msgs))
	}
}

func TestInboundMissingSenderDropped(t *testing.T) {
	h := &captureHandler{}
	tr := NewNatsTransport("stub_game", h)

	data := inboundData(t, &Message{Type: TypeStream, Stream: "games", Topic: "table 1", Content: "start"})
	tr.onInbound(&nats.Msg{Data: data})
	if len(h.msgs) != 0 {
		t.Fatalf("a message without a sender must be dropped, got %d", len(h.msgs))
	}
}
