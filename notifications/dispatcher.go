package notifications

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"github.com/anjiri1684/pgym_booking/events"
)

const queueGroup = "notifications"

// Dispatcher turns bus events into outgoing email.
type Dispatcher struct {
	mailer Mailer
	now    func() time.Time
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer, now: time.Now}
}

// Register subscribes the dispatcher to every subject it handles. With NATS the
// queue group makes sure only one instance mails each event.
func (d *Dispatcher) Register(bus events.Subscriber) error {
	handlers := map[string]func(*events.Message) error{
		events.BookingCreated:  d.HandleBookingCreated,
		events.BookingCanceled: d.HandleBookingCanceled,
		events.ClassReminder:   d.HandleClassReminder,
		events.MagicLinkIssued: d.HandleMagicLink,
	}
	for subject, handle := range handlers {
		handle := handle
		subject := subject
		err := bus.QueueSubscribe(subject, queueGroup, func(msg *events.Message) {
			if err := handle(msg); err != nil {
				log.Printf("🔥 Failed to handle %s event: %v", subject, err)
			}
		})
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
	}
	return nil
}

func (d *Dispatcher) send(email Email) error {
	if d.mailer == nil {
		log.Printf("Email client not initialized, skipping %q to %s", email.Subject, email.ToEmail)
		return nil
	}
	return d.mailer.Send(context.Background(), email)
}

func (d *Dispatcher) HandleBookingCreated(msg *events.Message) error {
	var ev events.BookingEvent
	if err := msg.Decode(&ev); err != nil {
		return err
	}
	inv := ev.Invite
	if inv.AttendeeEmail == "" {
		return nil
	}
	return d.send(Email{
		ToName:  inv.AttendeeName,
		ToEmail: inv.AttendeeEmail,
		Subject: fmt.Sprintf("Booked: %s on %s", inv.Title, inv.When()),
		Text:    inv.Text(),
		HTML:    "<pre>" + html.EscapeString(inv.Text()) + "</pre>",
		Attachments: []Attachment{{
			Filename: "invite.ics",
			Content:  []byte(inv.ICS(d.now())),
		}},
	})
}

func (d *Dispatcher) HandleBookingCanceled(msg *events.Message) error {
	var ev events.BookingEvent
	if err := msg.Decode(&ev); err != nil {
		return err
	}
	inv := ev.Invite
	if inv.AttendeeEmail == "" {
		return nil
	}
	text := fmt.Sprintf("Hi %s,\n\nyour booking for %s on %s has been canceled.\n", inv.AttendeeName, inv.Title, inv.When())
	return d.send(Email{
		ToName:  inv.AttendeeName,
		ToEmail: inv.AttendeeEmail,
		Subject: fmt.Sprintf("Canceled: %s on %s", inv.Title, inv.When()),
		Text:    text,
	})
}

func (d *Dispatcher) HandleClassReminder(msg *events.Message) error {
	var ev events.ReminderEvent
	if err := msg.Decode(&ev); err != nil {
		return err
	}
	inv := ev.Invite
	if inv.AttendeeEmail == "" {
		return nil
	}
	text := fmt.Sprintf("Hi %s,\n\nthis is a friendly reminder that %s starts at %s", inv.AttendeeName, inv.Title, inv.Start.Format("15:04"))
	if inv.Location != "" {
		text += " at " + inv.Location
	}
	text += ".\n"
	return d.send(Email{
		ToName:  inv.AttendeeName,
		ToEmail: inv.AttendeeEmail,
		Subject: "Reminder: Your Class Starts in 1 Hour!",
		Text:    text,
	})
}

func (d *Dispatcher) HandleMagicLink(msg *events.Message) error {
	var ev events.MagicLinkEvent
	if err := msg.Decode(&ev); err != nil {
		return err
	}
	minutes := int(ev.ExpiresAt.Sub(d.now()).Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	text := fmt.Sprintf("Hi %s,\n\nuse this link to sign in to Pgym: %s\nIt is valid for %d minutes and can be used once.\n", ev.Name, ev.Link, minutes)
	htmlBody := fmt.Sprintf("<p>Hi %s,</p><p><a href='%s'>Sign in to Pgym</a></p><p>This link is valid for %d minutes and can be used once.</p>",
		html.EscapeString(ev.Name), ev.Link, minutes)
	return d.send(Email{
		ToName:  ev.Name,
		ToEmail: ev.Email,
		Subject: "Your Pgym login link",
		Text:    text,
		HTML:    htmlBody,
	})
}
