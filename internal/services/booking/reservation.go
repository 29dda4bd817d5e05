package booking

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgear/internal/models"
)

// CreateReservation books every requested item for [start, end) or nothing
// at all: the availability checks and the inserts run in one transaction,
// and a single unavailable item aborts the whole request with the names of
// every conflicting item.
func CreateReservation(db *gorm.DB, userID string, equipmentIDs []int64, start, end time.Time) (*models.Reservation, error) {
	if len(equipmentIDs) == 0 {
		return nil, ErrNoItems
	}
	if !end.After(start) {
		return nil, ErrBadWindow
	}

	var res models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		var unavailable []string
		for _, eid := range equipmentIDs {
			ok, err := EquipmentAvailable(tx, eid, start, end)
			if err != nil {
				return err
			}
			if !ok {
				unavailable = append(unavailable, equipmentLabel(tx, eid))
			}
		}
		if len(unavailable) > 0 {
			return &UnavailableError{Names: unavailable}
		}

		res = models.Reservation{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
			Status:    models.ReservationPending,
		}
		if err := tx.Create(&res).Error; err != nil {
			return err
		}
		for _, eid := range equipmentIDs {
			item := models.ReservationItem{ReservationID: res.ID, EquipmentID: eid}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func equipmentLabel(db *gorm.DB, equipmentID int64) string {
	var eq models.Equipment
	if err := db.First(&eq, "id = ?", equipmentID).Error; err != nil {
		return fmt.Sprintf("ID %d", equipmentID)
	}
	return eq.Name
}

// SetStatus applies a staff status decision. Pending may move to Approved or
// Denied; both of those are terminal. Re-asserting the current status is a
// no-op.
func SetStatus(db *gorm.DB, reservationID int64, status string) (*models.Reservation, error) {
	switch status {
	case models.ReservationPending, models.ReservationApproved, models.ReservationDenied:
	default:
		return nil, ErrBadStatus
	}

	var res models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res, "id = ?", reservationID).Error; err != nil {
			return err
		}
		if res.Status == status {
			return nil
		}
		if res.Status != models.ReservationPending {
			return ErrFinalStatus
		}
		res.Status = status
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns reservations visible to the caller: staff see everything,
// everyone else only their own.
func List(db *gorm.DB, userID string, staff bool) ([]models.Reservation, error) {
	q := db.Preload("Items.Equipment").Preload("User.Role").Order("start_date")
	if !staff {
		q = q.Where("user_id = ?", userID)
	}
	var out []models.Reservation
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one reservation for its owner or for staff.
func Get(db *gorm.DB, reservationID int64, userID string, staff bool) (*models.Reservation, error) {
	var res models.Reservation
	if err := db.Preload("Items.Equipment").Preload("User.Role").
		First(&res, "id = ?", reservationID).Error; err != nil {
		return nil, err
	}
	if !staff && res.UserID != userID {
		return nil, ErrForbidden
	}
	return &res, nil
}

// CalendarEvent is one reservation rendered for the calendar view.
type CalendarEvent struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Color string    `json:"color"`
}

func statusColor(status string) string {
	switch status {
	case models.ReservationApproved:
		return "#28a745"
	case models.ReservationPending:
		return "#ffc107"
	default:
		return "#dc3545"
	}
}

func CalendarEvents(db *gorm.DB) ([]CalendarEvent, error) {
	var reservations []models.Reservation
	if err := db.Preload("User").Order("start_date").Find(&reservations).Error; err != nil {
		return nil, err
	}
	events := make([]CalendarEvent, 0, len(reservations))
	for _, r := range reservations {
		events = append(events, CalendarEvent{
			Title: fmt.Sprintf("#%d - %s", r.ID, r.User.FullName),
			Start: r.StartDate,
			End:   r.EndDate,
			Color: statusColor(r.Status),
		})
	}
	return events, nil
}
