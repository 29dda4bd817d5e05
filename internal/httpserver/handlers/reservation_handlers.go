package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusgear/internal/auth"
	"campusgear/internal/services/booking"
)

func ListReservations(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		reservations, err := booking.List(db, claims.Subject, claims.IsStaff())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, reservations)
	}
}

func ReservationsCalendar(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := booking.CalendarEvents(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"events": events})
	}
}

type createReservationReq struct {
	EquipmentIDs []int64   `json:"equipment_ids"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

func CreateReservation(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReservationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid date format", http.StatusBadRequest)
			return
		}
		claims := auth.FromContext(r.Context())
		res, err := booking.CreateReservation(db, claims.Subject, req.EquipmentIDs, req.StartDate, req.EndDate)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("reservation created", "id", res.ID, "user", claims.Subject, "items", len(req.EquipmentIDs))
		respondJSON(w, res)
	}
}

func GetReservation(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		claims := auth.FromContext(r.Context())
		res, err := booking.Get(db, id, claims.Subject, claims.IsStaff())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, res)
	}
}

func SetReservationStatus(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := booking.SetStatus(db, id, req.Status)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("reservation status set", "id", id, "status", res.Status)
		respondJSON(w, res)
	}
}
