package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusgear/internal/models"
)

// ReservationsByEquipment feeds the dashboard chart: reservation-item counts
// grouped per equipment item, as parallel label/value arrays.
func ReservationsByEquipment(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []struct {
			Name  string
			Count int64
		}
		err := db.Model(&models.Equipment{}).
			Select("equipment.name AS name, COUNT(reservation_items.id) AS count").
			Joins("JOIN reservation_items ON reservation_items.equipment_id = equipment.id").
			Group("equipment.id, equipment.name").
			Order("equipment.id").
			Scan(&rows).Error
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		labels := make([]string, 0, len(rows))
		values := make([]int64, 0, len(rows))
		for _, row := range rows {
			labels = append(labels, row.Name)
			values = append(values, row.Count)
		}
		respondJSON(w, map[string]any{"labels": labels, "values": values})
	}
}
