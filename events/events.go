package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/pgym_booking/calendar"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

func (m *Message) Decode(v interface{}) error {
	return json.Unmarshal(m.Data, v)
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url, nats.Name("pgym-booking"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	return n.conn.Publish(subject, payload)
}

func wrap(msg *nats.Msg) *Message {
	return &Message{
		Subject:   msg.Subject,
		Data:      msg.Data,
		Timestamp: time.Now(),
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
	}
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) { handler(wrap(msg)) })
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) { handler(wrap(msg)) })
	return err
}

func (n *NATSEventBus) Close() error {
	return n.conn.Drain()
}

const (
	BookingCreated  = "booking.created"
	BookingCanceled = "booking.canceled"
	ClassReminder   = "class.reminder"
	MagicLinkIssued = "auth.magic_link"
)

type BookingEvent struct {
	Invite     calendar.Invite `json:"invite"`
	SessionID  string          `json:"session_id"`
	MemberID   string          `json:"member_id"`
	SpotsLeft  int             `json:"spots_left"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type ReminderEvent struct {
	Invite calendar.Invite `json:"invite"`
}

type MagicLinkEvent struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Default is the bus handlers publish to. main replaces it with NATS when
// NATS_URL is set.
var Default EventBus = NewLocalBus()

// Emit publishes on Default and logs instead of failing the caller.
func Emit(ctx context.Context, subject string, data interface{}) {
	if err := Default.Publish(ctx, subject, data); err != nil {
		log.Printf("Failed to publish %s event: %v", subject, err)
	}
}
