package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusgear/internal/models"
)

type equipmentReq struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number"`
	Condition    string `json:"condition"`
	Location     string `json:"location"`
	DailyLimit   int    `json:"daily_limit"`
}

func (req *equipmentReq) normalize() (ok bool) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.SerialNumber = strings.TrimSpace(req.SerialNumber)
	req.Location = strings.TrimSpace(req.Location)
	req.Condition = strings.TrimSpace(req.Condition)
	if req.Condition == "" {
		req.Condition = "Good"
	}
	if req.DailyLimit < 1 {
		req.DailyLimit = 1
	}
	return req.Name != "" && req.Category != "" && req.SerialNumber != "" && req.Location != ""
}

func ListEquipment(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []models.Equipment
		if err := db.Order("id").Find(&items).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, items)
	}
}

func CreateEquipment(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req equipmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !req.normalize() {
			http.Error(w, "name, category, serial number, and location are required", http.StatusBadRequest)
			return
		}
		eq := models.Equipment{
			Name:         req.Name,
			Category:     req.Category,
			SerialNumber: req.SerialNumber,
			Condition:    req.Condition,
			Location:     req.Location,
			DailyLimit:   req.DailyLimit,
		}
		if err := db.Create(&eq).Error; err != nil {
			// duplicate serial number lands here as a unique violation
			http.Error(w, "serial number already in use", http.StatusBadRequest)
			return
		}
		lg.Infow("equipment added", "id", eq.ID, "serial", eq.SerialNumber)
		respondJSON(w, eq)
	}
}

func EditEquipment(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var eq models.Equipment
		if err := db.First(&eq, "id = ?", id).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		var req equipmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !req.normalize() {
			http.Error(w, "name, category, serial number, and location are required", http.StatusBadRequest)
			return
		}
		eq.Name = req.Name
		eq.Category = req.Category
		eq.SerialNumber = req.SerialNumber
		eq.Condition = req.Condition
		eq.Location = req.Location
		eq.DailyLimit = req.DailyLimit
		if err := db.Save(&eq).Error; err != nil {
			http.Error(w, "serial number already in use", http.StatusBadRequest)
			return
		}
		respondJSON(w, eq)
	}
}

func DeleteEquipment(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var eq models.Equipment
		if err := db.First(&eq, "id = ?", id).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err := db.Delete(&eq).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		lg.Infow("equipment deleted", "id", id)
		respondJSON(w, map[string]any{"deleted": true})
	}
}
