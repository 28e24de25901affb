package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideahub/internal/config"
	"ideahub/internal/db"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

const bcryptCost = 10

type seedIdea struct {
	title            string
	problemStatement string
	solution         string
	targetMarket     string
	techStack        []string
	status           model.IdeaStatus
	comment          string
}

type seedFounder struct {
	name     string
	email    string
	password string
	ideas    []seedIdea
}

var demoFounders = []seedFounder{
	{
		name:     "Demo Founder",
		email:    "founder@ideahub.local",
		password: "founder123",
		ideas: []seedIdea{
			{
				title:            "Remote standup assistant",
				problemStatement: "Distributed teams lose time to synchronous standups across time zones.",
				solution:         "Async video check-ins with automatic summaries delivered to the team channel.",
				targetMarket:     "Remote-first software teams",
				techStack:        []string{"go", "react", "mysql"},
				status:           model.IdeaStatusPending,
			},
			{
				title:            "Freelance invoice autopilot",
				problemStatement: "Freelancers spend hours every month chasing invoices and reconciling payments.",
				solution:         "Generate, send and follow up invoices automatically from tracked work sessions.",
				targetMarket:     "Independent contractors",
				techStack:        []string{"go", "vue", "stripe"},
				status:           model.IdeaStatusApproved,
				comment:          "Clear pain point and a realistic first version.",
			},
		},
	},
	{
		name:     "Second Founder",
		email:    "founder2@ideahub.local",
		password: "founder123",
		ideas: []seedIdea{
			{
				title:            "AI pet translator",
				problemStatement: "Pet owners want to understand what their pets are feeling at any moment.",
				solution:         "A collar microphone feeding sounds through a model that labels the pet mood.",
				targetMarket:     "Pet owners",
				techStack:        []string{"python", "tensorflow"},
				status:           model.IdeaStatusRejected,
				comment:          "No defensible technology and no evidence of willingness to pay.",
			},
			{
				title:            "Neighborhood tool library",
				problemStatement: "Households buy power tools that sit unused for years after a single project.",
				solution:         "A lending marketplace with deposits and pickup lockers per neighborhood.",
				targetMarket:     "Urban homeowners",
				techStack:        []string{"go", "postgres", "flutter"},
				status:           model.IdeaStatusPending,
			},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Idea{}, &model.ReviewLog{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	ideaRepo := repository.NewIdeaRepository(gormDB)
	logRepo := repository.NewReviewLogRepository(gormDB)

	admin, _, err := ensureUser(ctx, userRepo, "Admin", cfg.SeedAdminEmail, cfg.SeedAdminPassword, model.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created := 0
	for _, sf := range demoFounders {
		founder, isNew, err := ensureUser(ctx, userRepo, sf.name, sf.email, sf.password, model.RoleFounder)
		if err != nil {
			log.Fatalf("Failed to seed founder %s: %v", sf.email, err)
		}
		// Ideas belong to a founder created on this run; an existing founder
		// already has them, so reruns stay idempotent.
		if !isNew {
			continue
		}

		for _, seed := range sf.ideas {
			idea := &model.Idea{
				FounderID:        founder.ID,
				Title:            seed.title,
				ProblemStatement: seed.problemStatement,
				Solution:         seed.solution,
				TargetMarket:     seed.targetMarket,
				TechStack:        seed.techStack,
				Status:           model.IdeaStatusPending,
			}
			if err := ideaRepo.Create(ctx, idea); err != nil {
				log.Fatalf("Failed to seed idea %q: %v", seed.title, err)
			}
			created++

			if seed.status == model.IdeaStatusPending {
				continue
			}

			// Decided demo ideas go through the same path as real decisions:
			// a guarded status update plus one review log entry.
			if _, err := ideaRepo.UpdateStatusIfPending(ctx, idea.ID, seed.status, seed.comment); err != nil {
				log.Fatalf("Failed to decide idea %q: %v", seed.title, err)
			}
			action := model.ReviewActionApproved
			if seed.status == model.IdeaStatusRejected {
				action = model.ReviewActionRejected
			}
			if err := logRepo.Create(ctx, &model.ReviewLog{
				IdeaID:  idea.ID,
				AdminID: admin.ID,
				Action:  action,
				Comment: seed.comment,
			}); err != nil {
				log.Fatalf("Failed to log decision for %q: %v", seed.title, err)
			}
		}
	}

	log.Printf("Seed complete: admin=%s founders=%d ideas=%d", admin.Email, len(demoFounders), created)
}

// ensureUser creates the user unless the email is already taken, which makes
// reruns of the seeder safe.
func ensureUser(ctx context.Context, repo repository.UserRepository, name, email, password string, role model.UserRole) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("User %s already exists, skipping", email)
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	log.Printf("Created %s user %s", role, email)
	return user, true, nil
}
