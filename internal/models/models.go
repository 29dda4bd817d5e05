package models

import "time"

// Role names are a closed set; anything else entered at registration is
// coerced to Student.
const (
	RoleStudent     = "Student"
	RoleTechStaff   = "Tech Staff"
	RoleSystemAdmin = "System Admin"
)

// IsStaffRole is the single authorization predicate: Tech Staff and System
// Admin hold elevated privileges, everyone else does not.
func IsStaffRole(name string) bool {
	return name == RoleTechStaff || name == RoleSystemAdmin
}

const (
	ReservationPending  = "Pending"
	ReservationApproved = "Approved"
	ReservationDenied   = "Denied"
)

const (
	TicketOpen       = "Open"
	TicketInProgress = "In Progress"
	TicketClosed     = "Closed"
)

const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

type Role struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null;size:50" json:"name"`
}

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	RoleID       int       `gorm:"not null" json:"role_id"`
	Role         Role      `json:"role"`
	Status       string    `gorm:"not null;default:active;size:20" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) IsStaff() bool { return IsStaffRole(u.Role.Name) }

type Equipment struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Category     string `gorm:"not null;size:100" json:"category"`
	SerialNumber string `gorm:"uniqueIndex;not null;size:100" json:"serial_number"`
	Condition    string `gorm:"not null;default:Good;size:50" json:"condition"`
	Location     string `gorm:"not null;size:100" json:"location"`
	DailyLimit   int    `gorm:"not null;default:1" json:"daily_limit"`
}

// Reservation windows are half-open [StartDate, EndDate): a reservation
// ending exactly when another starts does not conflict with it.
type Reservation struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string            `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User              `json:"user"`
	StartDate time.Time         `gorm:"not null" json:"start_date"`
	EndDate   time.Time         `gorm:"not null" json:"end_date"`
	Status    string            `gorm:"not null;default:Pending;size:20" json:"status"`
	Items     []ReservationItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

type ReservationItem struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationID int64     `gorm:"index;not null" json:"reservation_id"`
	EquipmentID   int64     `gorm:"index;not null" json:"equipment_id"`
	Equipment     Equipment `json:"equipment"`
}

// Loan is Outstanding while ReturnedAt is nil and Returned afterwards.
// OverdueFee is finalized at return time and never recomputed.
type Loan struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationID int64       `gorm:"uniqueIndex;not null" json:"reservation_id"`
	Reservation   Reservation `json:"reservation"`
	CheckedOutAt  time.Time   `gorm:"not null" json:"checked_out_at"`
	DueAt         time.Time   `gorm:"not null" json:"due_at"`
	ReturnedAt    *time.Time  `json:"returned_at,omitempty"`
	OverdueFee    int64       `gorm:"not null;default:0" json:"overdue_fee"`
}

type ServiceTicket struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EquipmentID int64      `gorm:"index;not null" json:"equipment_id"`
	Equipment   Equipment  `json:"equipment"`
	Severity    string     `gorm:"not null;size:20" json:"severity"`
	Status      string     `gorm:"not null;default:Open;size:20" json:"status"`
	Description string     `json:"description"`
	OpenedBy    string     `gorm:"type:uuid;index;not null" json:"opened_by"`
	AssignedTo  *string    `gorm:"type:uuid" json:"assigned_to,omitempty"`
	OpenedAt    time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// TicketUpdate rows are append-only; they are never edited or deleted.
type TicketUpdate struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID  int64     `gorm:"index;not null" json:"ticket_id"`
	UpdatedBy string    `gorm:"type:uuid;not null" json:"updated_by"`
	Note      string    `gorm:"not null" json:"note"`
	AddedAt   time.Time `gorm:"not null" json:"added_at"`
}

type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string     `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
