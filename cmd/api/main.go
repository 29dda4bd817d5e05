package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campusgear/internal/auth"
	"campusgear/internal/httpserver"
	"campusgear/internal/logger"
	"campusgear/internal/models"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Session{},
		&models.Equipment{}, &models.Reservation{}, &models.ReservationItem{},
		&models.Loan{}, &models.ServiceTicket{}, &models.TicketUpdate{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedRoles(db)
	seedBootstrapAdmin(db, lg)

	router := httpserver.NewRouter(db, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}

func seedRoles(db *gorm.DB) {
	for _, name := range []string{models.RoleStudent, models.RoleTechStaff, models.RoleSystemAdmin} {
		db.Exec("INSERT INTO roles(name) VALUES (?) ON CONFLICT DO NOTHING", name)
	}
}

// seedBootstrapAdmin guarantees one System Admin account exists so the
// staff-only surface is reachable on a fresh database.
func seedBootstrapAdmin(db *gorm.DB, lg *zap.SugaredLogger) {
	email := strings.ToLower(os.Getenv("BOOTSTRAP_ADMIN_EMAIL"))
	if email == "" {
		email = "admin@campusgear.local"
	}
	password := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	var count int64
	db.Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count)
	if count > 0 {
		return
	}
	var adminRole models.Role
	if err := db.First(&adminRole, "name = ?", models.RoleSystemAdmin).Error; err != nil {
		lg.Errorw("admin role missing", "error", err)
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		lg.Errorw("bootstrap admin hash failed", "error", err)
		return
	}
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     "System Admin",
		RoleID:       adminRole.ID,
		Status:       "active",
	}
	if err := db.Create(&u).Error; err != nil {
		lg.Errorw("bootstrap admin create failed", "error", err)
		return
	}
	lg.Infow("seeded bootstrap admin", "email", email)
}
