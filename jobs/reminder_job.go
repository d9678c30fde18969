package jobs

import (
	"context"
	"log"
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/events"
	"github.com/anjiri1684/pgym_booking/services"
)

// SendClassReminders runs every five minutes and publishes a reminder for
// each booking whose class starts 60 to 65 minutes from now.
func SendClassReminders() {
	log.Println("Running job: SendClassReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)
	loc := config.Location()

	upcomingBookings, err := services.BookingsStartingBetween(database.DB, lowerBound, upperBound, loc)
	if err != nil {
		log.Printf("Error checking for upcoming classes: %v", err)
		return
	}

	for _, booking := range upcomingBookings {
		if booking.Member.Email == nil {
			continue
		}
		log.Printf("Sending reminder for booking ID: %s", booking.ID)
		events.Emit(context.Background(), events.ClassReminder, events.ReminderEvent{
			Invite: services.InviteFor(booking, loc),
		})
	}
}
