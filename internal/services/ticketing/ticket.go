package ticketing

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"campusgear/internal/models"
)

// ValidationError is a recoverable bad-request failure surfaced as HTTP 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrBadSeverity = ValidationError("invalid severity")
	ErrBadStatus   = ValidationError("invalid status")
	ErrEmptyNote   = ValidationError("note must not be empty")
)

// ErrForbidden marks an access attempt on a ticket the caller may not view.
var ErrForbidden = errors.New("not allowed to view this ticket")

func validSeverity(s string) bool {
	switch s {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case models.TicketOpen, models.TicketInProgress, models.TicketClosed:
		return true
	}
	return false
}

// Open files a new ticket against a piece of equipment. Anyone may open one;
// only staff may pre-assign it, a non-staff assignee request is ignored.
func Open(db *gorm.DB, actor string, staff bool, equipmentID int64, severity, description string, assignedTo *string) (*models.ServiceTicket, error) {
	if !validSeverity(severity) {
		return nil, ErrBadSeverity
	}
	var eq models.Equipment
	if err := db.First(&eq, "id = ?", equipmentID).Error; err != nil {
		return nil, err
	}
	if !staff {
		assignedTo = nil
	}

	ticket := models.ServiceTicket{
		EquipmentID: equipmentID,
		Severity:    severity,
		Status:      models.TicketOpen,
		Description: description,
		OpenedBy:    actor,
		AssignedTo:  assignedTo,
		OpenedAt:    time.Now().UTC(),
	}
	if err := db.Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List returns tickets visible to the caller, most recently opened first.
// Staff see everything, everyone else only the tickets they opened.
func List(db *gorm.DB, actor string, staff bool) ([]models.ServiceTicket, error) {
	q := db.Preload("Equipment").Order("opened_at desc")
	if !staff {
		q = q.Where("opened_by = ?", actor)
	}
	var out []models.ServiceTicket
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one ticket with its update thread (newest note first) for the
// opener or for staff.
func Get(db *gorm.DB, ticketID int64, actor string, staff bool) (*models.ServiceTicket, []models.TicketUpdate, error) {
	var ticket models.ServiceTicket
	if err := db.Preload("Equipment").First(&ticket, "id = ?", ticketID).Error; err != nil {
		return nil, nil, err
	}
	if !staff && ticket.OpenedBy != actor {
		return nil, nil, ErrForbidden
	}
	var updates []models.TicketUpdate
	if err := db.Where("ticket_id = ?", ticketID).
		Order("added_at desc").Find(&updates).Error; err != nil {
		return nil, nil, err
	}
	return &ticket, updates, nil
}

// AddNote appends one immutable update to the ticket's thread. Anyone who
// may view the ticket may write to it.
func AddNote(db *gorm.DB, ticketID int64, actor string, staff bool, note string) (*models.TicketUpdate, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrEmptyNote
	}
	var ticket models.ServiceTicket
	if err := db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		return nil, err
	}
	if !staff && ticket.OpenedBy != actor {
		return nil, ErrForbidden
	}
	update := models.TicketUpdate{
		TicketID:  ticketID,
		UpdatedBy: actor,
		Note:      note,
		AddedAt:   time.Now().UTC(),
	}
	if err := db.Create(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// Edit applies a staff status/assignment change. ClosedAt is stamped the
// first time the ticket reaches Closed and never touched again; a
// Closed -> Closed edit keeps the original timestamp.
func Edit(db *gorm.DB, ticketID int64, status *string, assignedTo *string) (*models.ServiceTicket, error) {
	if status != nil && !validStatus(*status) {
		return nil, ErrBadStatus
	}

	var ticket models.ServiceTicket
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, "id = ?", ticketID).Error; err != nil {
			return err
		}
		if status != nil {
			ticket.Status = *status
		}
		ticket.AssignedTo = assignedTo
		if ticket.Status == models.TicketClosed && ticket.ClosedAt == nil {
			now := time.Now().UTC()
			ticket.ClosedAt = &now
		}
		return tx.Save(&ticket).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
