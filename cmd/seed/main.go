package main

import (
	"context"
	"log"
	"time"

	"drivingschool/internal/config"
	"drivingschool/internal/database"
	"drivingschool/internal/domain"
	"drivingschool/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the development database with the demo accounts, the lesson
// catalogue and a handful of bookings so every dashboard has content.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM enrollments")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	createUser(ctx, userRepo, "admin@test.com", "Admin123!", domain.RoleAdmin, "Alexandre", "Moreau")
	log.Println("Admin created: admin@test.com / Admin123!")

	student := createUser(ctx, userRepo, "student@test.com", "Student123!", domain.RoleStudent, "Lucas", "Bernard")
	log.Println("Student created: student@test.com / Student123!")

	instructors := []*domain.User{
		createUser(ctx, userRepo, "instructor@test.com", "Instructor123!", domain.RoleInstructor, "Sarah", "Dubois"),
		createUser(ctx, userRepo, "michel.chen@test.com", "Instructor123!", domain.RoleInstructor, "Michel", "Chen"),
		createUser(ctx, userRepo, "emma.martin@test.com", "Instructor123!", domain.RoleInstructor, "Emma", "Martin"),
	}
	log.Println("Instructor created: instructor@test.com / Instructor123!")

	// ================== CATALOGUE ==================
	// The catalogue is seeded idempotently: existing codes are kept so the
	// lesson-type IDs referenced by old bookings stay stable.
	log.Println("Creating lesson types...")
	lessonTypes := []domain.LessonType{
		{Code: "theory", Name: "Cours de code", Duration: 60, Price: 35},
		{Code: "practical", Name: "Leçon de conduite", Duration: 90, Price: 45},
		{Code: "highway", Name: "Conduite sur autoroute", Duration: 120, Price: 60},
		{Code: "parking", Name: "Manœuvres et stationnement", Duration: 60, Price: 40},
		{Code: "exam-prep", Name: "Préparation à l'examen", Duration: 120, Price: 70},
	}
	for i := range lessonTypes {
		exists, err := catalogRepo.ExistsLessonType(ctx, lessonTypes[i].Code)
		if err != nil {
			log.Fatal("lesson type seed failed:", err)
		}
		if exists {
			lt, err := catalogRepo.GetLessonTypeByCode(ctx, lessonTypes[i].Code)
			if err != nil {
				log.Fatal("lesson type seed failed:", err)
			}
			lessonTypes[i] = *lt
			continue
		}
		if err := catalogRepo.CreateLessonType(ctx, &lessonTypes[i]); err != nil {
			log.Fatal("lesson type seed failed:", err)
		}
	}

	log.Println("Creating training packages...")
	packages := []domain.TrainingPackage{
		{
			Code:  "classique",
			Name:  "Formule Classique",
			Price: 890,
			Features: []string{
				"20 heures de conduite",
				"Code en ligne illimité",
				"Accompagnement personnalisé",
			},
		},
		{
			Code:    "intensive",
			Name:    "Formule Intensive",
			Price:   1190,
			Popular: true,
			Features: []string{
				"30 heures de conduite",
				"Code en ligne illimité",
				"Stage code accéléré",
				"Présentation rapide à l'examen",
			},
		},
		{
			Code:  "premium",
			Name:  "Formule Premium",
			Price: 1490,
			Features: []string{
				"35 heures de conduite",
				"Code en ligne illimité",
				"Moniteur dédié",
				"Passage prioritaire à l'examen",
			},
		},
	}
	for i := range packages {
		exists, err := catalogRepo.ExistsTrainingPackage(ctx, packages[i].Code)
		if err != nil {
			log.Fatal("package seed failed:", err)
		}
		if exists {
			continue
		}
		if err := catalogRepo.CreateTrainingPackage(ctx, &packages[i]); err != nil {
			log.Fatal("package seed failed:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")
	// slot grids are computed in UTC, so the demo booking has to be too
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.UTC)

	practical := lessonTypes[1]
	booking := domain.Booking{
		StudentID:    student.ID,
		InstructorID: instructors[0].ID,
		LessonTypeID: practical.ID,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(practical.Duration) * time.Minute),
		Price:        practical.Price,
		Status:       domain.BookingConfirmed,
	}
	if err := bookingRepo.Create(ctx, &booking); err != nil {
		log.Fatal("booking seed failed:", err)
	}

	_ = notificationRepo.Create(ctx, &domain.Notification{
		UserID:  student.ID,
		Type:    domain.NotifBookingConfirmed,
		Title:   "Leçon confirmée",
		Message: "Votre leçon de conduite de demain à 10h00 est confirmée.",
	})

	_ = messageRepo.Create(ctx, &domain.Message{
		SenderID:   instructors[0].ID,
		ReceiverID: student.ID,
		Content:    "Bonjour Lucas, rendez-vous demain à 10h devant l'agence. Pensez à votre livret.",
	})

	log.Println("Seed completed.")
}

func createUser(ctx context.Context, repo *repository.UserRepository, email, password string, role domain.UserRole, firstName, lastName string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    firstName,
		LastName:     lastName,
		Status:       domain.StatusActive,
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal("user seed failed:", err)
	}
	return u
}
