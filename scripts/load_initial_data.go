package main

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"os"

	"research-portal-backend/internal/config"
	"research-portal-backend/internal/database"
	"research-portal-backend/internal/database/models"
	"research-portal-backend/internal/timeslot"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type DepartmentData struct {
	Name       string `yaml:"name"`
	HeadEmail  string `yaml:"head_email"`
	CoordEmail string `yaml:"coord_email"`
	Password   string `yaml:"password,omitempty"`
}

type PresentationData struct {
	Presenter      string `yaml:"presenter"`
	Designation    string `yaml:"designation"`
	GuideName      string `yaml:"guide_name,omitempty"`
	Title          string `yaml:"title"`
	Abstract       string `yaml:"abstract,omitempty"`
	Date           string `yaml:"date"`
	Time           string `yaml:"time"`
	Duration       string `yaml:"duration"`
	Venue          string `yaml:"venue"`
	DepartmentName string `yaml:"department_name"`
}

type SubscriptionData struct {
	Email string `yaml:"email"`
}

type DepartmentsFile struct {
	Departments []DepartmentData `yaml:"departments"`
}

type PresentationsFile struct {
	Presentations []PresentationData `yaml:"presentations"`
}

type SubscriptionsFile struct {
	Subscriptions []SubscriptionData `yaml:"subscriptions"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseDriver, cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(driver, dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Configure database options to suppress verbose logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent, // Suppress all GORM logs including SQL queries and "record not found"
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(driver, dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	// Load all data from YAML files
	departments, err := loadDepartments(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}

	presentations, err := loadPresentations(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load presentations: %w", err)
	}

	subscriptions, err := loadSubscriptions(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}

	// Create departments first
	departmentMap := make(map[string]*models.Department)
	departmentCreated := 0
	for _, departmentData := range departments {
		department, created, err := createDepartment(db, departmentData)
		if err != nil {
			return fmt.Errorf("failed to create department %s: %w", departmentData.Name, err)
		}
		departmentMap[departmentData.Name] = department
		if created {
			departmentCreated++
		}
	}
	log.Printf("📋 Departments: %d created, %d total", departmentCreated, len(departments))

	// Create presentations
	presentationCreated := 0
	for _, presentationData := range presentations {
		_, created, err := createPresentation(db, presentationData, departmentMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create presentation %s: %v", presentationData.Title, err)
			continue // Continue with other presentations
		}
		if created {
			presentationCreated++
		}
	}
	log.Printf("📋 Presentations: %d created, %d total", presentationCreated, len(presentations))

	// Create subscriptions
	subscriptionCreated := 0
	for _, subscriptionData := range subscriptions {
		_, created, err := createSubscription(db, subscriptionData)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create subscription %s: %v", subscriptionData.Email, err)
			continue // Continue with other subscriptions
		}
		if created {
			subscriptionCreated++
		}
	}
	log.Printf("📋 Subscriptions: %d created, %d total", subscriptionCreated, len(subscriptions))

	return nil
}

func loadDepartments(dataDir string) ([]DepartmentData, error) {
	var allDepartments []DepartmentData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "departments") {
			var file DepartmentsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allDepartments = append(allDepartments, file.Departments...)
		}
		return nil
	})

	return allDepartments, err
}

func loadPresentations(dataDir string) ([]PresentationData, error) {
	var allPresentations []PresentationData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "presentations") {
			var file PresentationsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allPresentations = append(allPresentations, file.Presentations...)
		}
		return nil
	})

	return allPresentations, err
}

func loadSubscriptions(dataDir string) ([]SubscriptionData, error) {
	var allSubscriptions []SubscriptionData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "subscriptions") {
			var file SubscriptionsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allSubscriptions = append(allSubscriptions, file.Subscriptions...)
		}
		return nil
	})

	return allSubscriptions, err
}

func createDepartment(db *gorm.DB, departmentData DepartmentData) (*models.Department, bool, error) {
	var department models.Department
	if err := db.Where("name = ?", departmentData.Name).First(&department).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			department = models.Department{
				Name:       departmentData.Name,
				HeadEmail:  departmentData.HeadEmail,
				CoordEmail: departmentData.CoordEmail,
			}

			password := departmentData.Password
			if password == "" {
				password = "changeme123"
			}
			if err := department.SetPassword(password); err != nil {
				return nil, false, fmt.Errorf("failed to hash password: %w", err)
			}

			if err := db.Create(&department).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create department: %w", err)
			}
			return &department, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query department: %w", err)
		}
	}

	return &department, false, nil // created = false (existing)
}

func createPresentation(db *gorm.DB, presentationData PresentationData, departmentMap map[string]*models.Department) (*models.Presentation, bool, error) {
	department := departmentMap[presentationData.DepartmentName]
	if department == nil {
		return nil, false, fmt.Errorf("department %s not found for presentation %s", presentationData.DepartmentName, presentationData.Title)
	}

	date, err := time.Parse("2006-01-02", presentationData.Date)
	if err != nil {
		return nil, false, fmt.Errorf("invalid date %q: %w", presentationData.Date, err)
	}
	slotMinutes, ok := timeslot.Minutes(presentationData.Time)
	if !ok {
		return nil, false, fmt.Errorf("time %q is not on the booking grid", presentationData.Time)
	}
	designation := models.Designation(presentationData.Designation)
	if !designation.IsValid() {
		return nil, false, fmt.Errorf("invalid designation %q", presentationData.Designation)
	}
	duration := models.Duration(presentationData.Duration)
	if !duration.IsValid() {
		return nil, false, fmt.Errorf("invalid duration %q", presentationData.Duration)
	}

	// The slot is the natural key: one booking per date, start time and venue
	var presentation models.Presentation
	if err := db.Where("date = ? AND slot_minutes = ? AND venue = ?", date, slotMinutes, presentationData.Venue).First(&presentation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			presentation = models.Presentation{
				Presenter:    presentationData.Presenter,
				Designation:  designation,
				GuideName:    presentationData.GuideName,
				Title:        presentationData.Title,
				Abstract:     presentationData.Abstract,
				Date:         date,
				StartTime:    presentationData.Time,
				SlotMinutes:  slotMinutes,
				Duration:     duration,
				Venue:        presentationData.Venue,
				DepartmentID: department.ID,
			}

			if err := db.Create(&presentation).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create presentation: %w", err)
			}
			return &presentation, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query presentation: %w", err)
		}
	}

	return &presentation, false, nil // created = false (existing)
}

func createSubscription(db *gorm.DB, subscriptionData SubscriptionData) (*models.Subscription, bool, error) {
	var subscription models.Subscription
	if err := db.Where("email = ?", subscriptionData.Email).First(&subscription).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			subscription = models.Subscription{
				Email: subscriptionData.Email,
			}

			if err := db.Create(&subscription).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create subscription: %w", err)
			}
			return &subscription, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query subscription: %w", err)
		}
	}

	return &subscription, false, nil // created = false (existing)
}
