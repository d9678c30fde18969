package handlers

import (
	"fmt"
	"strings"
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, config.Location())
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func parseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	return id, err == nil
}

func today() time.Time {
	y, m, d := now().In(config.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, config.Location())
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
