package main

import (
	"log"
	"os"

	"chargeflow-be/internal/model"
	"chargeflow-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status') THEN CREATE TYPE payment_status AS ENUM ('pending', 'approved', 'cancelled', 'failed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'message_status') THEN CREATE TYPE message_status AS ENUM ('pending', 'sent', 'failed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'campaign_status') THEN CREATE TYPE campaign_status AS ENUM ('draft', 'running', 'completed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'client_status') THEN CREATE TYPE client_status AS ENUM ('active', 'inactive', 'suspended'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'billing_period') THEN CREATE TYPE billing_period AS ENUM ('monthly', 'yearly'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN CREATE TYPE user_role AS ENUM ('user', 'admin'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Client{},
		&model.ClientInteraction{},
		&model.Payment{},
		&model.ClientPayment{},
		&model.ScheduledMessage{},
		&model.MessageTemplate{},
		&model.MessageHistory{},
		&model.Campaign{},
		&model.CampaignSend{},
		&model.SubscriptionPlan{},
		&model.UserSubscription{},
		&model.AppSetting{},
		&model.NotificationType{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Views & Functions
	log.Println("Step 3: Creating Views and Functions...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END; $$;`,

		// View: per-client payment performance, feeds risk scoring reviews
		`CREATE OR REPLACE VIEW client_payment_history AS
		 SELECT c.id AS client_id, c.user_id, c.name, c.risk_score,
		        COUNT(cp.id) FILTER (WHERE cp.status = 'approved') AS total_payments,
		        COUNT(cp.id) FILTER (WHERE cp.status = 'approved' AND cp.settled_at > cp.expires_at) AS late_payments,
		        COALESCE(AVG(
		            CASE WHEN cp.status = 'approved' AND cp.settled_at > cp.expires_at
		            THEN EXTRACT(EPOCH FROM cp.settled_at - cp.expires_at) / 86400
		            ELSE 0 END
		        ), 0) AS avg_delay_days,
		        EXTRACT(DAY FROM NOW() - c.created_at)::int AS client_age_days
		 FROM clients c
		 LEFT JOIN client_payments cp ON cp.client_id = c.id
		 WHERE c.deleted_at IS NULL
		 GROUP BY c.id;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
