package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/pgym_booking/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Book reserves a seat on classID for the member described by identity and
// consumes one credit. Every check and write runs in a single transaction:
// the session row is locked first, then the member's latest purchase, so two
// attempts for the last seat or the last credit serialize and exactly one wins.
//
// A repeat booking reports ErrAlreadyBooked before credit is looked at, so a
// member who spent their last credit on this class is told they are booked
// rather than out of credit.
func Book(ctx context.Context, db *gorm.DB, identity MemberIdentity, classID uuid.UUID, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.ClassSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", classID).Error; err != nil {
			return notFound(err)
		}

		member, err := ResolveMember(tx, identity)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Booking{}).
			Where("member_id = ? AND class_session_id = ?", member.ID, session.ID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("checking existing booking: %w", err)
		}
		if existing > 0 {
			return ErrAlreadyBooked
		}

		purchase, err := latestPurchase(tx.Clauses(clause.Locking{Strength: "UPDATE"}), member.ID, now)
		if err != nil {
			return fmt.Errorf("loading credit package: %w", err)
		}
		if balanceOf(purchase, now) <= 0 {
			return ErrInsufficientCredit
		}

		var booked int64
		if err := tx.Model(&models.Booking{}).Where("class_session_id = ?", session.ID).Count(&booked).Error; err != nil {
			return fmt.Errorf("counting bookings: %w", err)
		}
		if booked >= int64(session.Capacity) {
			return ErrCapacityExceeded
		}

		booking = models.Booking{
			ID:             uuid.New(),
			MemberID:       member.ID,
			ClassSessionID: session.ID,
			CreatedAt:      now,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyBooked
			}
			return fmt.Errorf("creating booking: %w", err)
		}

		res := tx.Model(&models.PackagePurchase{}).
			Where("id = ? AND remaining > 0", purchase.ID).
			UpdateColumn("remaining", gorm.Expr("remaining - 1"))
		if res.Error != nil {
			return fmt.Errorf("consuming credit: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return ErrInsufficientCredit
		}

		booking.Member = *member
		booking.ClassSession = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel deletes a booking. Consumed credit is not restored.
func Cancel(ctx context.Context, db *gorm.DB, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Member").Preload("ClassSession").First(&booking, "id = ?", bookingID).Error; err != nil {
			return notFound(err)
		}
		res := tx.Where("id = ?", booking.ID).Delete(&models.Booking{})
		if res.Error != nil {
			return fmt.Errorf("deleting booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func GetBooking(db *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := db.Preload("Member").Preload("ClassSession").First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// MemberBookings lists a member's bookings, soonest class first.
func MemberBookings(db *gorm.DB, memberID uuid.UUID, from time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	q := db.Preload("ClassSession").
		Joins("JOIN class_sessions ON class_sessions.id = bookings.class_session_id").
		Where("bookings.member_id = ?", memberID).
		Order("class_sessions.date ASC, class_sessions.start_time ASC")
	if !from.IsZero() {
		q = q.Where("class_sessions.date >= ?", datatypes.Date(from))
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// IsBookingError reports whether err is one of the ledger's recoverable conditions.
func IsBookingError(err error) bool {
	for _, target := range []error{ErrInsufficientCredit, ErrCapacityExceeded, ErrAlreadyBooked, ErrNotFound, ErrMissingIdentity} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// BookingsStartingBetween returns bookings whose class starts in [from, to)
// when read in loc.
func BookingsStartingBetween(db *gorm.DB, from, to time.Time, loc *time.Location) ([]models.Booking, error) {
	from, to = from.In(loc), to.In(loc)
	var bookings []models.Booking
	err := db.Preload("Member").Preload("ClassSession").
		Joins("JOIN class_sessions ON class_sessions.id = bookings.class_session_id").
		Where("class_sessions.date BETWEEN ? AND ?", datatypes.Date(from), datatypes.Date(to)).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	out := bookings[:0]
	for _, b := range bookings {
		start := b.ClassSession.StartsAt(loc)
		if !start.Before(from) && start.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}
