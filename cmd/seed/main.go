package main

import (
	"ClinicFlow/database"
	"ClinicFlow/models"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Loads development fixtures: doctors, patients and an inventory catalog.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.InitDB(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}

	if err := gofakeit.Seed(time.Now().UnixNano()); err != nil {
		log.Fatalf("seed faker: %v", err)
	}

	specialties := []string{
		"General Practice", "Pediatrics", "Dermatology", "Cardiology", "Orthopedics",
	}
	for i := 0; i < 10; i++ {
		doctor := models.Doctor{
			ID:        uuid.New().String(),
			FullName:  gofakeit.Name(),
			Specialty: specialties[i%len(specialties)],
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
		}
		if err := db.Create(&doctor).Error; err != nil {
			log.Fatalf("seed doctor: %v", err)
		}
	}
	log.Println("seeded 10 doctors")

	for i := 0; i < 200; i++ {
		patient := models.Patient{
			ID:          uuid.New().String(),
			FullName:    gofakeit.Name(),
			Email:       gofakeit.Email(),
			Phone:       gofakeit.Phone(),
			DateOfBirth: gofakeit.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)).Format(models.DateLayout),
			Address:     gofakeit.Address().Address,
		}
		if err := db.Create(&patient).Error; err != nil {
			log.Fatalf("seed patient: %v", err)
		}
	}
	log.Println("seeded 200 patients")

	supplies := []struct {
		name     string
		category string
		price    string
		stock    int
		reorder  int
	}{
		{"Examination Gloves (box)", "Consumables", "8.50", 120, 20},
		{"Syringe 5ml", "Consumables", "0.35", 500, 100},
		{"Gauze Pads (pack)", "Consumables", "4.20", 80, 15},
		{"Paracetamol 500mg (strip)", "Medication", "1.10", 300, 50},
		{"Amoxicillin 250mg (strip)", "Medication", "2.75", 150, 30},
		{"Bandage Roll", "Consumables", "1.90", 60, 10},
		{"Consultation", models.CategoryService, "35.00", 0, 0},
		{"Follow-up Visit", models.CategoryService, "20.00", 0, 0},
	}
	for _, supply := range supplies {
		price, err := decimal.NewFromString(supply.price)
		if err != nil {
			log.Fatalf("parse price: %v", err)
		}
		item := models.InventoryItem{
			Name:           supply.name,
			Category:       supply.category,
			Description:    fmt.Sprintf("%s (%s)", supply.name, gofakeit.Company()),
			QuantityOnHand: supply.stock,
			ReorderLevel:   supply.reorder,
			UnitPrice:      price,
			SupplierInfo:   gofakeit.Company(),
		}
		if err := db.Create(&item).Error; err != nil {
			log.Fatalf("seed inventory item: %v", err)
		}
	}
	log.Printf("seeded %d inventory items", len(supplies))

	log.Println("seed complete")
}
