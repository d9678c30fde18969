package jobs

import (
	"context"
	"log"
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/services"
)

// GeneratePersonalSlots keeps the Personal calendar filled for the configured
// horizon. Settings are read fresh on every run.
func GeneratePersonalSlots() {
	log.Println("Running job: GeneratePersonalSlots...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	settings, err := services.CurrentSnapshot(database.DB)
	if err != nil {
		log.Printf("🔥 Failed to load slot settings: %v", err)
		return
	}

	y, m, d := time.Now().In(config.Location()).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, config.Location())

	report, err := services.GeneratePersonalSlots(ctx, database.DB, settings, today)
	if err != nil {
		log.Printf("🔥 Slot generation failed after %d committed days: %v", report.Days, err)
		return
	}
	log.Printf("✅ Slot generation: %d created, %d already present over %d days", report.Created, report.Skipped, report.Days)
}
