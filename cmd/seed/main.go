package main

import (
	"log"
	"os"

	"chargeflow-be/internal/model"
	"chargeflow-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedNotificationTypes(db)
}

// seedNotificationTypes populates the registry mapping engine events to
// inbox notifications. Codes match the event types on the bus.
func seedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "PAYMENT_APPROVED",
			DisplayName: "Payment Approved",
			Template:    "Payment of {amount} was approved",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "PAYMENT_EXPIRED",
			DisplayName: "Payment Expired",
			Template:    "A pending payment expired without settlement",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "CAMPAIGN_EXECUTED",
			DisplayName: "Campaign Executed",
			Template:    "Campaign queued for {recipients} recipients",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "SCORE_BATCH_COMPLETED",
			DisplayName: "Risk Scores Recalculated",
			Template:    "Risk scores updated for {scored} clients ({failed} failed)",
			TargetType:  "SELF",
			IsActive:    true,
		},
	}

	for _, t := range types {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "template", "target_type", "is_active"}),
		}).Create(&t).Error
		if err != nil {
			log.Printf("Warn: Failed to seed notification type %s: %v", t.Code, err)
			continue
		}
		log.Printf("Seeded notification type: %s", t.Code)
	}

	log.Println("✅ Notification type seeding completed.")
}
