package main

import (
	"encoding/csv"
	"lms/config"
	"lms/database"
	"lms/models"
	"log"
	"os"
	"strconv"
	"strings"
)

// Imports a course catalog from Catalog.csv. Expected columns:
// instructor_username, category, title, description, price, duration
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("Catalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV file: %v", err)
	}

	db := database.Database.Db
	imported := 0

	for i, record := range records {
		if i == 0 {
			// Header row
			continue
		}
		if len(record) < 6 {
			log.Printf("Skipping row %d: expected 6 columns, got %d", i+1, len(record))
			continue
		}

		username := strings.TrimSpace(record[0])
		var instructor models.User
		if err := db.Where("username = ? AND role = ?", username, models.RoleTeacher).First(&instructor).Error; err != nil {
			log.Printf("Skipping row %d: instructor %q not found", i+1, username)
			continue
		}

		categoryTitle := strings.TrimSpace(record[1])
		var category models.Category
		if err := db.Where("title = ?", categoryTitle).First(&category).Error; err != nil {
			category = models.Category{Title: categoryTitle, IsActive: true}
			if err := db.Create(&category).Error; err != nil {
				log.Fatalf("Failed to create category %q: %v", categoryTitle, err)
			}
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil {
			log.Printf("Skipping row %d: bad price %q", i+1, record[4])
			continue
		}
		duration, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
		if err != nil {
			log.Printf("Skipping row %d: bad duration %q", i+1, record[5])
			continue
		}

		course := models.Course{
			Title:        strings.TrimSpace(record[2]),
			Description:  strings.TrimSpace(record[3]),
			Price:        price,
			Duration:     duration,
			CategoryID:   category.ID,
			InstructorID: instructor.ID,
			IsActive:     true,
		}

		var existing models.Course
		if err := db.Where("title = ? AND instructor_id = ?", course.Title, instructor.ID).First(&existing).Error; err == nil {
			log.Printf("Skipping row %d: course %q already exists", i+1, course.Title)
			continue
		}

		if err := db.Create(&course).Error; err != nil {
			log.Fatalf("Failed to create course %q: %v", course.Title, err)
		}
		imported++
	}

	log.Printf("Catalog import finished: %d courses created", imported)
}
