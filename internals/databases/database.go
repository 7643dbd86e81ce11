package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	chatmodel "collabsphere_backend/internals/features/chat/model"
	classroommodel "collabsphere_backend/internals/features/classrooms/model"
	projectmodel "collabsphere_backend/internals/features/projects/model"
	rubricmodel "collabsphere_backend/internals/features/rubrics/model"
	submissionmodel "collabsphere_backend/internals/features/submissions/model"
	taskmodel "collabsphere_backend/internals/features/tasks/model"
	teammodel "collabsphere_backend/internals/features/teams/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	whiteboardmodel "collabsphere_backend/internals/features/whiteboard/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "disable")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=collabsphere",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer friendly
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates/updates every table. Order matters: referenced tables first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usermodel.UserModel{},
		&classroommodel.ClassroomModel{},
		&classroommodel.ClassroomStudentModel{},
		&projectmodel.ProjectModel{},
		&projectmodel.MilestoneModel{},
		&teammodel.TeamModel{},
		&teammodel.TeamMemberModel{},
		&taskmodel.TaskModel{},
		&submissionmodel.SubmissionModel{},
		&rubricmodel.RubricModel{},
		&rubricmodel.RubricCriteriaModel{},
		&rubricmodel.RubricScoreModel{},
		&chatmodel.MessageModel{},
		&whiteboardmodel.WhiteboardDataModel{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
