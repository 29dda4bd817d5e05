package booking

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"campusgear/internal/models"
)

// blockingStatuses are the reservation states that consume capacity.
// Denied reservations never block a window.
var blockingStatuses = []string{models.ReservationPending, models.ReservationApproved}

// EquipmentAvailable reports whether booking the half-open window
// [start, end) would keep concurrent demand for the equipment within its
// daily limit. Two windows overlap iff existing.start < requested.end AND
// existing.end > requested.start, so back-to-back windows never conflict.
// An unknown equipment id fails closed.
func EquipmentAvailable(db *gorm.DB, equipmentID int64, start, end time.Time) (bool, error) {
	var eq models.Equipment
	if err := db.First(&eq, "id = ?", equipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	limit := eq.DailyLimit
	if limit < 1 {
		limit = 1
	}

	var overlapping int64
	err := db.Model(&models.ReservationItem{}).
		Joins("JOIN reservations ON reservations.id = reservation_items.reservation_id").
		Where("reservation_items.equipment_id = ?", equipmentID).
		Where("reservations.status IN ?", blockingStatuses).
		Where("reservations.start_date < ? AND reservations.end_date > ?", end, start).
		Count(&overlapping).Error
	if err != nil {
		return false, err
	}
	return overlapping < int64(limit), nil
}
