package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/pgym_booking/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SpotsLeft never reports a negative number, even for an overbooked session.
func SpotsLeft(capacity int, booked int64) int {
	left := int64(capacity) - booked
	if left < 0 {
		return 0
	}
	return int(left)
}

type SessionView struct {
	models.ClassSession
	Booked    int  `json:"booked"`
	SpotsLeft int  `json:"spots_left"`
	Full      bool `json:"full"`
}

func newSessionView(s models.ClassSession, booked int64) SessionView {
	if booked > int64(s.Capacity) {
		log.Printf("🚨 Session %s (%s %s) is overbooked: %d bookings for capacity %d",
			s.ID, time.Time(s.Date).Format("2006-01-02"), s.StartTime, booked, s.Capacity)
	}
	left := SpotsLeft(s.Capacity, booked)
	return SessionView{ClassSession: s, Booked: int(booked), SpotsLeft: left, Full: left == 0}
}

func bookingCounts(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []struct {
		ClassSessionID uuid.UUID
		Booked         int64
	}
	err := db.Model(&models.Booking{}).
		Select("class_session_id, COUNT(*) AS booked").
		Where("class_session_id IN ?", ids).
		Group("class_session_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.ClassSessionID] = r.Booked
	}
	return counts, nil
}

// SessionsInRange lists every session dated between start and end inclusive,
// ordered by date and start time, with live booking counts.
func SessionsInRange(db *gorm.DB, start, end time.Time) ([]SessionView, error) {
	var sessions []models.ClassSession
	err := db.Where("date BETWEEN ? AND ?", datatypes.Date(start), datatypes.Date(end)).
		Order("date ASC, start_time ASC, title ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	ids := make([]uuid.UUID, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	counts, err := bookingCounts(db, ids)
	if err != nil {
		return nil, fmt.Errorf("counting bookings: %w", err)
	}

	views := make([]SessionView, len(sessions))
	for i, s := range sessions {
		views[i] = newSessionView(s, counts[s.ID])
	}
	return views, nil
}

func GetSessionView(db *gorm.DB, id uuid.UUID) (*SessionView, error) {
	var s models.ClassSession
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	counts, err := bookingCounts(db, []uuid.UUID{s.ID})
	if err != nil {
		return nil, err
	}
	v := newSessionView(s, counts[s.ID])
	return &v, nil
}

type SessionInput struct {
	Title     string
	Coach     *string
	Date      time.Time
	StartTime time.Duration
	EndTime   time.Duration
	Capacity  int
	Location  *string
}

func (in SessionInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidConfiguration)
	}
	if in.StartTime < 0 || in.EndTime > 24*time.Hour || in.StartTime >= in.EndTime {
		return fmt.Errorf("%w: session must end after it starts", ErrInvalidConfiguration)
	}
	if in.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidConfiguration)
	}
	return nil
}

func CreateSession(db *gorm.DB, in SessionInput) (*models.ClassSession, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s := models.ClassSession{
		ID:        uuid.New(),
		Title:     in.Title,
		Coach:     in.Coach,
		Date:      datatypes.Date(in.Date),
		StartTime: datatypes.Time(in.StartTime),
		EndTime:   datatypes.Time(in.EndTime),
		Capacity:  in.Capacity,
		Location:  in.Location,
	}
	if err := db.Create(&s).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: an identical session already exists", ErrInvalidConfiguration)
		}
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &s, nil
}

// UpdateSession replaces the editable fields. Capacity cannot drop below the
// number of bookings already taken.
func UpdateSession(ctx context.Context, db *gorm.DB, id uuid.UUID, in SessionInput) (*SessionView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var view *SessionView
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.ClassSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		var booked int64
		if err := tx.Model(&models.Booking{}).Where("class_session_id = ?", s.ID).Count(&booked).Error; err != nil {
			return err
		}
		if int64(in.Capacity) < booked {
			return fmt.Errorf("%w: %d members are already booked", ErrCapacityExceeded, booked)
		}

		s.Title = in.Title
		s.Coach = in.Coach
		s.Date = datatypes.Date(in.Date)
		s.StartTime = datatypes.Time(in.StartTime)
		s.EndTime = datatypes.Time(in.EndTime)
		s.Capacity = in.Capacity
		s.Location = in.Location
		if err := tx.Save(&s).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: an identical session already exists", ErrInvalidConfiguration)
			}
			return err
		}
		v := newSessionView(s, booked)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteSession removes the session's bookings and then the session itself in
// one transaction. It returns how many bookings were removed.
func DeleteSession(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	var removed int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.ClassSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		res := tx.Where("class_session_id = ?", s.ID).Delete(&models.Booking{})
		if res.Error != nil {
			return fmt.Errorf("deleting bookings: %w", res.Error)
		}
		removed = res.RowsAffected
		if err := tx.Delete(&s).Error; err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}
		return nil
	})
	return removed, err
}

func Roster(db *gorm.DB, sessionID uuid.UUID) ([]models.Booking, error) {
	if _, err := GetSessionView(db, sessionID); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err := db.Preload("Member").
		Where("class_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}
