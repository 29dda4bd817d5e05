package lending

import (
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"campusgear/internal/models"
)

// ValidationError is a recoverable bad-request failure surfaced as HTTP 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrBadDueDate   = ValidationError("due date must be after the checked-out time")
	ErrDeniedRes    = ValidationError("cannot create a loan for a denied reservation")
	ErrAlreadyLoans = ValidationError("reservation already has a loan")
)

const defaultRatePerDay = 10

// RatePerDay is the overdue fee charged per whole day late, in currency
// units. One configured constant for the whole system.
func RatePerDay() int64 {
	if s := os.Getenv("OVERDUE_RATE_PER_DAY"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return defaultRatePerDay
}

// OverdueFee charges ratePerDay for each whole day the return date falls
// past the due date. Only the date components count: returning late on the
// due day itself costs nothing.
func OverdueFee(dueAt, returnedAt time.Time, ratePerDay int64) int64 {
	if !returnedAt.After(dueAt) {
		return 0
	}
	daysLate := dateOf(returnedAt).Sub(dateOf(dueAt)).Hours() / 24
	if daysLate < 1 {
		return 0
	}
	return ratePerDay * int64(daysLate)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create checks out an approved-track reservation as a loan. The reservation
// is marked Approved in the same transaction; a Denied reservation or one
// that already has a loan is rejected.
func Create(db *gorm.DB, reservationID int64, checkedOutAt, dueAt time.Time) (*models.Loan, error) {
	if !dueAt.After(checkedOutAt) {
		return nil, ErrBadDueDate
	}

	var loan models.Loan
	err := db.Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.First(&res, "id = ?", reservationID).Error; err != nil {
			return err
		}
		if res.Status == models.ReservationDenied {
			return ErrDeniedRes
		}
		var existing int64
		if err := tx.Model(&models.Loan{}).
			Where("reservation_id = ?", reservationID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyLoans
		}

		loan = models.Loan{
			ReservationID: reservationID,
			CheckedOutAt:  checkedOutAt,
			DueAt:         dueAt,
			OverdueFee:    0,
		}
		if err := tx.Create(&loan).Error; err != nil {
			return err
		}
		if res.Status != models.ReservationApproved {
			res.Status = models.ReservationApproved
			if err := tx.Save(&res).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Return marks a loan returned at now and finalizes its overdue fee.
// Returning an already-returned loan changes nothing and reports
// alreadyReturned instead of erroring.
func Return(db *gorm.DB, loanID int64, now time.Time, ratePerDay int64) (loan *models.Loan, alreadyReturned bool, err error) {
	var l models.Loan
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&l, "id = ?", loanID).Error; err != nil {
			return err
		}
		if l.ReturnedAt != nil {
			alreadyReturned = true
			return nil
		}
		l.ReturnedAt = &now
		l.OverdueFee = OverdueFee(l.DueAt, now, ratePerDay)
		return tx.Save(&l).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &l, alreadyReturned, nil
}

// List returns every loan with its reservation, newest loans last.
func List(db *gorm.DB) ([]models.Loan, error) {
	var loans []models.Loan
	err := db.Preload("Reservation.User.Role").Preload("Reservation.Items.Equipment").
		Order("id").Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}
