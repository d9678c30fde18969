package jobs

import (
	"log"
	"time"

	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/services"
)

func PurgeMagicTokens() {
	removed, err := services.PurgeMagicTokens(database.DB, time.Now().Add(-24*time.Hour))
	if err != nil {
		log.Printf("Error purging magic tokens: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Purged %d expired magic tokens", removed)
	}
}
