package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusgear/internal/auth"
	"campusgear/internal/models"
)

type registerReq struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // optional; default Student
}

func Register(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.FullName = strings.TrimSpace(req.FullName)
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.FullName == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "full name, email and password required", http.StatusBadRequest)
			return
		}

		roleName := req.Role
		switch roleName {
		case models.RoleStudent, models.RoleTechStaff, models.RoleSystemAdmin:
		default:
			roleName = models.RoleStudent
		}
		var role models.Role
		if err := db.First(&role, "name = ?", roleName).Error; err != nil {
			http.Error(w, "role not found", http.StatusInternalServerError)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		u := models.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: hash,
			FullName:     req.FullName,
			RoleID:       role.ID,
			Status:       "active",
		}
		if err := db.Create(&u).Error; err != nil {
			// duplicate email lands here as a unique violation
			http.Error(w, "email already registered", http.StatusBadRequest)
			return
		}
		lg.Infow("user registered", "email", u.Email, "role", roleName)
		respondJSON(w, map[string]any{"id": u.ID, "email": u.Email, "role": roleName})
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var u models.User
		if err := db.Preload("Role").First(&u, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		tok, jti, err := auth.Sign(u.ID, u.Role.Name)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		sess := models.Session{
			JTI:       jti,
			UserID:    u.ID,
			ExpiresAt: time.Now().Add(auth.SessionTTL()),
		}
		if err := db.Create(&sess).Error; err != nil {
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{"token": tok})
	}
}

func Logout(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		now := time.Now()
		_ = db.Model(&models.Session{}).Where("jti = ?", claims.JWTID).
			Update("revoked_at", &now).Error
		respondJSON(w, map[string]any{"ok": true})
	}
}

// Dashboard is the authenticated landing view: who you are and what you may
// do.
func Dashboard(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		var u models.User
		if err := db.Preload("Role").First(&u, "id = ?", claims.Subject).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]any{
			"id":        u.ID,
			"email":     u.Email,
			"full_name": u.FullName,
			"role":      u.Role.Name,
			"is_staff":  u.IsStaff(),
		})
	}
}
