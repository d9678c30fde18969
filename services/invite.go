package services

import (
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/anjiri1684/pgym_booking/calendar"
	"github.com/anjiri1684/pgym_booking/models"
)

// InviteFor describes a booking for calendar and notification rendering.
// Session and Member must be loaded.
func InviteFor(b models.Booking, loc *time.Location) calendar.Invite {
	s := b.ClassSession
	inv := calendar.Invite{
		BookingID:      b.ID.String(),
		Title:          s.Title,
		Start:          s.StartsAt(loc),
		End:            s.EndsAt(loc),
		AttendeeName:   b.Member.Name,
		OrganizerEmail: config.Config("EMAIL_SENDER"),
	}
	if s.Coach != nil {
		inv.Coach = *s.Coach
	}
	if s.Location != nil {
		inv.Location = *s.Location
	}
	if b.Member.Email != nil {
		inv.AttendeeEmail = *b.Member.Email
	}
	return inv
}
