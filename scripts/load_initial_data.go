package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskboard-backend/internal/config"
	"taskboard-backend/internal/database"
	"taskboard-backend/internal/database/models"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name string `yaml:"name"`
}

type UserData struct {
	Email            string `yaml:"email"`
	Password         string `yaml:"password"`
	FullName         string `yaml:"full_name"`
	Role             string `yaml:"role"`
	OrganizationName string `yaml:"organization_name"`
	IsActive         *bool  `yaml:"is_active,omitempty"`
}

type ProjectData struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	OrganizationName string   `yaml:"organization_name"`
	CreatedByEmail   string   `yaml:"created_by_email,omitempty"`
	MemberEmails     []string `yaml:"member_emails,omitempty"`
}

type TaskData struct {
	Title         string `yaml:"title"`
	Description   string `yaml:"description,omitempty"`
	ProjectName   string `yaml:"project_name"`
	Status        string `yaml:"status,omitempty"`
	Priority      string `yaml:"priority,omitempty"`
	AssigneeEmail string `yaml:"assignee_email,omitempty"`
	DueDate       string `yaml:"due_date,omitempty"`
}

// SeedFile is the single YAML document holding all initial data
type SeedFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
	Users         []UserData         `yaml:"users"`
	Projects      []ProjectData      `yaml:"projects"`
	Tasks         []TaskData         `yaml:"tasks"`
}

func main() {
	log.Println("Loading initial data from YAML...")

	seedPath := "scripts/data/seed.yaml"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadSeedFile(db, seedPath); err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress GORM query logging during data loading
	opts := &database.Options{
		LogLevel: gormlogger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadSeedFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	orgsByName, err := loadOrganizations(db, seed.Organizations)
	if err != nil {
		return fmt.Errorf("load organizations: %w", err)
	}
	usersByEmail, err := loadUsers(db, seed.Users, orgsByName)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	projectsByName, err := loadProjects(db, seed.Projects, orgsByName, usersByEmail)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	if err := loadTasks(db, seed.Tasks, projectsByName, usersByEmail); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	return nil
}

func loadOrganizations(db *gorm.DB, data []OrganizationData) (map[string]*models.Organization, error) {
	result := make(map[string]*models.Organization, len(data))
	for _, entry := range data {
		var org models.Organization
		err := db.Where("name = ?", entry.Name).First(&org).Error
		switch {
		case err == nil:
			log.Printf("Organization %q already exists, skipping", entry.Name)
		case err == gorm.ErrRecordNotFound:
			org = models.Organization{Name: entry.Name}
			if err := db.Create(&org).Error; err != nil {
				return nil, err
			}
			log.Printf("Created organization %q", entry.Name)
		default:
			return nil, err
		}
		result[entry.Name] = &org
	}
	return result, nil
}

func loadUsers(db *gorm.DB, data []UserData, orgs map[string]*models.Organization) (map[string]*models.User, error) {
	result := make(map[string]*models.User, len(data))
	for _, entry := range data {
		org, ok := orgs[entry.OrganizationName]
		if !ok {
			return nil, fmt.Errorf("user %q references unknown organization %q", entry.Email, entry.OrganizationName)
		}

		var user models.User
		err := db.Where("email = ?", entry.Email).First(&user).Error
		switch {
		case err == nil:
			log.Printf("User %q already exists, skipping", entry.Email)
		case err == gorm.ErrRecordNotFound:
			hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("hash password for %q: %w", entry.Email, err)
			}
			active := true
			if entry.IsActive != nil {
				active = *entry.IsActive
			}
			user = models.User{
				Email:          entry.Email,
				PasswordHash:   string(hash),
				FullName:       entry.FullName,
				Role:           models.UserRole(entry.Role),
				IsActive:       active,
				OrganizationID: org.ID,
			}
			if err := db.Create(&user).Error; err != nil {
				return nil, err
			}
			log.Printf("Created user %q (%s)", entry.Email, entry.Role)
		default:
			return nil, err
		}
		result[entry.Email] = &user
	}
	return result, nil
}

func loadProjects(db *gorm.DB, data []ProjectData, orgs map[string]*models.Organization, users map[string]*models.User) (map[string]*models.Project, error) {
	result := make(map[string]*models.Project, len(data))
	for _, entry := range data {
		org, ok := orgs[entry.OrganizationName]
		if !ok {
			return nil, fmt.Errorf("project %q references unknown organization %q", entry.Name, entry.OrganizationName)
		}

		var project models.Project
		err := db.Where("name = ? AND organization_id = ?", entry.Name, org.ID).First(&project).Error
		switch {
		case err == nil:
			log.Printf("Project %q already exists, skipping", entry.Name)
		case err == gorm.ErrRecordNotFound:
			project = models.Project{
				Name:           entry.Name,
				Description:    entry.Description,
				OrganizationID: org.ID,
			}
			if creator, ok := users[entry.CreatedByEmail]; ok {
				project.CreatedByID = &creator.ID
			}
			if err := db.Create(&project).Error; err != nil {
				return nil, err
			}
			log.Printf("Created project %q", entry.Name)
		default:
			return nil, err
		}
		result[entry.Name] = &project

		for _, email := range entry.MemberEmails {
			member, ok := users[email]
			if !ok {
				return nil, fmt.Errorf("project %q references unknown member %q", entry.Name, email)
			}
			var existing models.ProjectMember
			err := db.Where("project_id = ? AND user_id = ?", project.ID, member.ID).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: member.ID}).Error; err != nil {
					return nil, err
				}
				log.Printf("Added %q to project %q", email, entry.Name)
			} else if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func loadTasks(db *gorm.DB, data []TaskData, projects map[string]*models.Project, users map[string]*models.User) error {
	for _, entry := range data {
		project, ok := projects[entry.ProjectName]
		if !ok {
			return fmt.Errorf("task %q references unknown project %q", entry.Title, entry.ProjectName)
		}

		var existing models.Task
		err := db.Where("title = ? AND project_id = ?", entry.Title, project.ID).First(&existing).Error
		if err == nil {
			log.Printf("Task %q already exists, skipping", entry.Title)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		status := models.TaskStatusTodo
		if entry.Status != "" {
			status = models.TaskStatus(entry.Status)
		}
		priority := models.TaskPriorityMedium
		if entry.Priority != "" {
			priority = models.TaskPriority(entry.Priority)
		}

		task := models.Task{
			Title:       entry.Title,
			Description: entry.Description,
			ProjectID:   project.ID,
			Status:      status,
			Priority:    priority,
		}
		if assignee, ok := users[entry.AssigneeEmail]; ok {
			task.AssigneeID = &assignee.ID
			task.CreatedByID = &assignee.ID
		}
		if entry.DueDate != "" {
			due, err := time.Parse("2006-01-02", entry.DueDate)
			if err != nil {
				return fmt.Errorf("task %q has invalid due_date %q: %w", entry.Title, entry.DueDate, err)
			}
			task.DueDate = &due
		}

		if err := db.Create(&task).Error; err != nil {
			return err
		}
		log.Printf("Created task %q in project %q", entry.Title, entry.ProjectName)
	}
	return nil
}
