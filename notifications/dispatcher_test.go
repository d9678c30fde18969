package notifications

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/pgym_booking/calendar"
	"github.com/anjiri1684/pgym_booking/events"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []Email
	done chan struct{}
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{done: make(chan struct{}, 8)}
}

func (f *fakeMailer) Send(_ context.Context, e Email) error {
	f.mu.Lock()
	f.sent = append(f.sent, e)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func message(t *testing.T, subject string, v interface{}) *events.Message {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &events.Message{Subject: subject, Data: data}
}

var fixedNow = time.Date(2030, time.March, 4, 7, 0, 0, 0, time.UTC)

func testInvite() calendar.Invite {
	return calendar.Invite{
		BookingID:     "b-7",
		Title:         "Personal",
		Coach:         "Mia",
		Start:         time.Date(2030, time.March, 4, 8, 0, 0, 0, time.UTC),
		End:           time.Date(2030, time.March, 4, 9, 0, 0, 0, time.UTC),
		Location:      "Pgym Studio",
		AttendeeName:  "Lena",
		AttendeeEmail: "lena@example.com",
	}
}

func newTestDispatcher(m Mailer) *Dispatcher {
	d := NewDispatcher(m)
	d.now = func() time.Time { return fixedNow }
	return d
}

func TestBookingCreatedSendsInviteWithICS(t *testing.T) {
	m := newFakeMailer()
	d := newTestDispatcher(m)

	err := d.HandleBookingCreated(message(t, events.BookingCreated, events.BookingEvent{Invite: testInvite()}))
	if err != nil {
		t.Fatalf("HandleBookingCreated: %v", err)
	}
	if len(m.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(m.sent))
	}
	e := m.sent[0]
	if e.ToEmail != "lena@example.com" || !strings.HasPrefix(e.Subject, "Booked: Personal") {
		t.Fatalf("unexpected email %+v", e)
	}
	if len(e.Attachments) != 1 || e.Attachments[0].Filename != "invite.ics" {
		t.Fatalf("expected invite.ics attachment, got %+v", e.Attachments)
	}
	if !strings.Contains(string(e.Attachments[0].Content), "METHOD:REQUEST") {
		t.Fatalf("attachment is not a calendar request")
	}
}

func TestBookingWithoutEmailIsSkipped(t *testing.T) {
	m := newFakeMailer()
	d := newTestDispatcher(m)
	inv := testInvite()
	inv.AttendeeEmail = ""

	if err := d.HandleBookingCreated(message(t, events.BookingCreated, events.BookingEvent{Invite: inv})); err != nil {
		t.Fatalf("HandleBookingCreated: %v", err)
	}
	if err := d.HandleClassReminder(message(t, events.ClassReminder, events.ReminderEvent{Invite: inv})); err != nil {
		t.Fatalf("HandleClassReminder: %v", err)
	}
	if len(m.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(m.sent))
	}
}

func TestMagicLinkEmailContainsLinkAndValidity(t *testing.T) {
	m := newFakeMailer()
	d := newTestDispatcher(m)

	ev := events.MagicLinkEvent{
		Email:     "noah@example.com",
		Name:      "Noah",
		Link:      "https://pgym.example/auth/magic/abc",
		ExpiresAt: fixedNow.Add(15 * time.Minute),
	}
	if err := d.HandleMagicLink(message(t, events.MagicLinkIssued, ev)); err != nil {
		t.Fatalf("HandleMagicLink: %v", err)
	}
	e := m.sent[0]
	if !strings.Contains(e.Text, ev.Link) || !strings.Contains(e.Text, "15 minutes") {
		t.Fatalf("unexpected text:\n%s", e.Text)
	}
}

func TestNilMailerIsANoop(t *testing.T) {
	d := newTestDispatcher(nil)
	err := d.HandleBookingCanceled(message(t, events.BookingCanceled, events.BookingEvent{Invite: testInvite()}))
	if err != nil {
		t.Fatalf("expected nil error without a mailer, got %v", err)
	}
}

func TestRegisterRoutesBusEventsToMailer(t *testing.T) {
	m := newFakeMailer()
	d := newTestDispatcher(m)
	bus := events.NewLocalBus()
	if err := d.Register(bus); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := bus.Publish(context.Background(), events.ClassReminder, events.ReminderEvent{Invite: testInvite()}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reminder email")
	}
	_ = bus.Close()

	m.mu.Lock()
	defer m.mu.Unlock()
	if got := m.sent[0].Subject; got != "Reminder: Your Class Starts in 1 Hour!" {
		t.Fatalf("unexpected subject %q", got)
	}
}
