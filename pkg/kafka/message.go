package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is an event destined for the order-events topic. Key selects the
// partition, so keying by slot keeps per-slot ordering.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderOriginalTopic = "original-topic"
)

// MessageBuilder provides a fluent interface for building messages.
type MessageBuilder struct {
	msg Message
}

func NewMessage() *MessageBuilder {
	return &MessageBuilder{
		msg: Message{
			Headers:   make(map[string]string),
			Timestamp: time.Now(),
		},
	}
}

func (mb *MessageBuilder) WithKey(key string) *MessageBuilder {
	mb.msg.Key = key
	return mb
}

// WithValue JSON-encodes the payload. Marshal failures leave Value nil, which
// the producer rejects.
func (mb *MessageBuilder) WithValue(value any) *MessageBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		mb.msg.Value = nil
		return mb
	}
	mb.msg.Value = data
	return mb
}

func (mb *MessageBuilder) WithEventType(eventType string) *MessageBuilder {
	mb.msg.Headers[HeaderEventType] = eventType
	return mb
}

func (mb *MessageBuilder) WithSource(source string) *MessageBuilder {
	mb.msg.Headers[HeaderSource] = source
	return mb
}

func (mb *MessageBuilder) Build() Message {
	if mb.msg.Headers[HeaderEventID] == "" {
		mb.msg.Headers[HeaderEventID] = uuid.New().String()
	}
	if mb.msg.Headers[HeaderTimestamp] == "" {
		mb.msg.Headers[HeaderTimestamp] = mb.msg.Timestamp.Format(time.RFC3339)
	}
	return mb.msg
}

// DecodeValue decodes the message value into the provided struct.
func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}
