package services

import (
	"errors"

	"github.com/anjiri1684/pgym_booking/schedule"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrInsufficientCredit   = errors.New("insufficient credit")
	ErrCapacityExceeded     = errors.New("class is full")
	ErrAlreadyBooked        = errors.New("member already booked this class")
	ErrInvalidConfiguration = schedule.ErrInvalidConfiguration
	ErrNotFound             = errors.New("not found")
	ErrMissingIdentity      = errors.New("a name or email is required")
	ErrInvalidToken         = errors.New("login link is invalid or expired")
	ErrRateLimited          = errors.New("too many requests")
)

// isUniqueViolation reports whether err is a unique constraint failure, either
// translated by gorm or raw from the postgres driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
