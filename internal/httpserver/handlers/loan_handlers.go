package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusgear/internal/services/lending"
)

func ListLoans(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loans, err := lending.List(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, loans)
	}
}

type createLoanReq struct {
	CheckedOutAt time.Time `json:"checked_out_at"`
	DueAt        time.Time `json:"due_at"`
}

func CreateLoan(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservationID, err := strconv.ParseInt(chi.URLParam(r, "reservationID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid reservation id", http.StatusBadRequest)
			return
		}
		var req createLoanReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid date/time format", http.StatusBadRequest)
			return
		}
		if req.CheckedOutAt.IsZero() || req.DueAt.IsZero() {
			http.Error(w, "checked-out and due dates are required", http.StatusBadRequest)
			return
		}
		loan, err := lending.Create(db, reservationID, req.CheckedOutAt, req.DueAt)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("loan created", "id", loan.ID, "reservation", reservationID, "due", loan.DueAt)
		respondJSON(w, loan)
	}
}

func ReturnLoan(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loanID, err := strconv.ParseInt(chi.URLParam(r, "loanID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid loan id", http.StatusBadRequest)
			return
		}
		loan, alreadyReturned, err := lending.Return(db, loanID, time.Now().UTC(), lending.RatePerDay())
		if err != nil {
			respondError(w, err)
			return
		}
		if alreadyReturned {
			respondJSON(w, map[string]any{"already_returned": true, "loan": loan})
			return
		}
		lg.Infow("loan returned", "id", loan.ID, "overdue_fee", loan.OverdueFee)
		respondJSON(w, loan)
	}
}
