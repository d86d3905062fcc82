package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dentchartzz/clinic-service/internal/db"
)

// schemaStatements create the clinic schema. Everything is idempotent so
// the seeder can run on every deploy.
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS clinic`,

	`CREATE TABLE IF NOT EXISTS clinic.user_profiles (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.patients (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		gender TEXT NOT NULL,
		date_of_birth DATE,
		phone TEXT NOT NULL,
		email TEXT,
		address TEXT NOT NULL,
		chief_complaint TEXT,
		medical_history TEXT,
		drug_allergies TEXT,
		previous_dental_work TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id) ON DELETE CASCADE,
		dentist_id UUID NOT NULL REFERENCES clinic.user_profiles(id),
		date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	)`,

	// One scheduled appointment per dentist slot. Cancelled and completed
	// rows do not block rebooking.
	`CREATE UNIQUE INDEX IF NOT EXISTS appointments_dentist_slot_idx
		ON clinic.appointments (dentist_id, date, start_time)
		WHERE status = 'scheduled'`,

	`CREATE TABLE IF NOT EXISTS clinic.teeth (
		id UUID PRIMARY KEY,
		number INTEGER NOT NULL UNIQUE,
		name TEXT NOT NULL,
		quadrant INTEGER NOT NULL,
		position INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.tooth_conditions (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.treatments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id) ON DELETE CASCADE,
		tooth_id UUID NOT NULL REFERENCES clinic.teeth(id),
		condition_id UUID NOT NULL REFERENCES clinic.tooth_conditions(id),
		appointment_id UUID REFERENCES clinic.appointments(id) ON DELETE SET NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'planned',
		cost NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (cost >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	)`,

	// History rows survive losing their appointment or dentist
	`CREATE TABLE IF NOT EXISTS clinic.treatment_history (
		id UUID PRIMARY KEY,
		treatment_id UUID NOT NULL REFERENCES clinic.treatments(id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		previous_status TEXT,
		appointment_id UUID REFERENCES clinic.appointments(id) ON DELETE SET NULL,
		dentist_id UUID REFERENCES clinic.user_profiles(id) ON DELETE SET NULL,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.payments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id) ON DELETE CASCADE,
		appointment_id UUID REFERENCES clinic.appointments(id) ON DELETE SET NULL,
		payment_date DATE NOT NULL,
		total_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		amount_paid NUMERIC(10,2) NOT NULL DEFAULT 0,
		payment_method TEXT NOT NULL,
		notes TEXT,
		created_by UUID REFERENCES clinic.user_profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.payment_items (
		id UUID PRIMARY KEY,
		payment_id UUID NOT NULL REFERENCES clinic.payments(id) ON DELETE CASCADE,
		treatment_id UUID REFERENCES clinic.treatments(id) ON DELETE SET NULL,
		description TEXT NOT NULL,
		amount NUMERIC(10,2) NOT NULL DEFAULT 0
	)`,
}

var quadrantNames = map[int]string{
	1: "Upper Right",
	2: "Upper Left",
	3: "Lower Left",
	4: "Lower Right",
}

var positionNames = []string{
	"Central Incisor",
	"Lateral Incisor",
	"Canine",
	"First Premolar",
	"Second Premolar",
	"First Molar",
	"Second Molar",
	"Third Molar",
}

var conditions = []struct {
	name        string
	description string
}{
	{"Caries", "Tooth decay requiring restorative treatment"},
	{"Filling", "Existing restoration in place"},
	{"Root Canal", "Endodontic treatment of the tooth pulp"},
	{"Crown", "Full coverage restoration"},
	{"Bridge", "Fixed prosthesis replacing a missing tooth"},
	{"Implant", "Osseointegrated replacement root"},
	{"Extraction", "Tooth removal indicated"},
	{"Missing", "Tooth absent from the arch"},
	{"Fracture", "Cracked or broken tooth structure"},
	{"Impacted", "Tooth blocked from erupting normally"},
}

func main() {
	log.Println("Clinic Seed Job - Starting")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Schema statement failed: %v", err)
		}
	}
	log.Println("✓ Schema is up to date")

	teethSeeded, err := seedTeeth(ctx, database)
	if err != nil {
		log.Fatalf("Failed to seed teeth: %v", err)
	}
	log.Printf("✓ Teeth seeded (%d new)", teethSeeded)

	conditionsSeeded, err := seedConditions(ctx, database)
	if err != nil {
		log.Fatalf("Failed to seed tooth conditions: %v", err)
	}
	log.Printf("✓ Tooth conditions seeded (%d new)", conditionsSeeded)

	log.Println("Seed Job - Finished")
}

// seedTeeth inserts the 32-tooth master data using double-digit numbering:
// quadrants 1-4, positions 1-8.
func seedTeeth(ctx context.Context, database *sql.DB) (int, error) {
	query := `
		INSERT INTO clinic.teeth (id, number, name, quadrant, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (number) DO NOTHING`

	seeded := 0
	for quadrant := 1; quadrant <= 4; quadrant++ {
		for position := 1; position <= 8; position++ {
			number := quadrant*10 + position
			name := fmt.Sprintf("%s %s", quadrantNames[quadrant], positionNames[position-1])

			result, err := database.ExecContext(ctx, query, uuid.New().String(), number, name, quadrant, position)
			if err != nil {
				return seeded, fmt.Errorf("tooth %d: %w", number, err)
			}
			if n, err := result.RowsAffected(); err == nil {
				seeded += int(n)
			}
		}
	}

	return seeded, nil
}

func seedConditions(ctx context.Context, database *sql.DB) (int, error) {
	query := `
		INSERT INTO clinic.tooth_conditions (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`

	seeded := 0
	for _, c := range conditions {
		result, err := database.ExecContext(ctx, query, uuid.New().String(), c.name, c.description)
		if err != nil {
			return seeded, fmt.Errorf("condition %s: %w", c.name, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			seeded += int(n)
		}
	}

	return seeded, nil
}
