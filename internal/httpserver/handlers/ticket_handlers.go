package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusgear/internal/auth"
	"campusgear/internal/services/ticketing"
)

func ListTickets(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		tickets, err := ticketing.List(db, claims.Subject, claims.IsStaff())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, tickets)
	}
}

type createTicketReq struct {
	EquipmentID int64   `json:"equipment_id"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

func CreateTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTicketReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		claims := auth.FromContext(r.Context())
		ticket, err := ticketing.Open(db, claims.Subject, claims.IsStaff(),
			req.EquipmentID, req.Severity, req.Description, req.AssignedTo)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("ticket opened", "id", ticket.ID, "equipment", ticket.EquipmentID, "severity", ticket.Severity)
		respondJSON(w, ticket)
	}
}

func GetTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		claims := auth.FromContext(r.Context())
		ticket, updates, err := ticketing.Get(db, id, claims.Subject, claims.IsStaff())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"ticket": ticket, "updates": updates})
	}
}

func AddTicketNote(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			Note string `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		claims := auth.FromContext(r.Context())
		update, err := ticketing.AddNote(db, id, claims.Subject, claims.IsStaff(), req.Note)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, update)
	}
}

type editTicketReq struct {
	Status     *string `json:"status,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

func EditTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req editTicketReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ticket, err := ticketing.Edit(db, id, req.Status, req.AssignedTo)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("ticket updated", "id", ticket.ID, "status", ticket.Status)
		respondJSON(w, ticket)
	}
}
