// Package calendar renders booking invites as plain text and iCalendar.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//Pgym//Class Booking//EN"

// Invite is everything a notification needs to describe one booked class.
type Invite struct {
	BookingID      string    `json:"booking_id"`
	Title          string    `json:"title"`
	Coach          string    `json:"coach,omitempty"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Location       string    `json:"location,omitempty"`
	AttendeeName   string    `json:"attendee_name"`
	AttendeeEmail  string    `json:"attendee_email,omitempty"`
	OrganizerEmail string    `json:"organizer_email,omitempty"`
}

// When formats the class time in the invite's own timezone.
func (i Invite) When() string {
	return fmt.Sprintf("%s, %s-%s", i.Start.Format("Mon 02 Jan 2006"), i.Start.Format("15:04"), i.End.Format("15:04"))
}

func (i Invite) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", i.AttendeeName)
	fmt.Fprintf(&b, "you are booked for %s on %s", i.Title, i.When())
	if i.Coach != "" {
		fmt.Fprintf(&b, " with %s", i.Coach)
	}
	b.WriteString(".\n")
	if i.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", i.Location)
	}
	b.WriteString("\nSee you there!\n")
	return b.String()
}

func (i Invite) uid() string {
	if i.BookingID != "" {
		return i.BookingID + "@pgym"
	}
	return fmt.Sprintf("%d@pgym", i.Start.Unix())
}

// ICS renders a METHOD:REQUEST calendar with a single event.
func (i Invite) ICS(now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId(productID)

	event := cal.AddEvent(i.uid())
	event.SetCreatedTime(now)
	event.SetDtStampTime(now)
	event.SetStartAt(i.Start)
	event.SetEndAt(i.End)
	event.SetStatus(ics.ObjectStatusConfirmed)

	summary := i.Title
	if i.Coach != "" {
		summary = fmt.Sprintf("%s with %s", i.Title, i.Coach)
	}
	event.SetSummary(summary)
	if i.Location != "" {
		event.SetLocation(i.Location)
	}
	event.SetDescription(fmt.Sprintf("Booked for %s", i.AttendeeName))
	if i.OrganizerEmail != "" {
		event.SetOrganizer(i.OrganizerEmail, ics.WithCN("Pgym"))
	}
	if i.AttendeeEmail != "" {
		event.AddAttendee(i.AttendeeEmail,
			ics.CalendarUserTypeIndividual,
			ics.ParticipationStatusNeedsAction,
			ics.ParticipationRoleReqParticipant,
			ics.WithCN(i.AttendeeName),
			ics.WithRSVP(true),
		)
	}
	return cal.Serialize()
}
