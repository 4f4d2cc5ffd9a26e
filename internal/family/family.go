package family

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("profile already belongs to a family group")
	ErrCodeTaken  = errors.New("join code already in use")
	ErrValidation = errors.New("validation failed")
)

// ValidationError rejects input before any state changes. Field is empty when the
// problem is not attributable to a single input.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ValidationError) Unwrap() error        { return e.Err }

// Group is a household sharing budgets. OwnerID never changes after creation.
type Group struct {
	ID        int64
	Name      string
	Code      string
	OwnerID   uuid.UUID
	CreatedAt time.Time
}

// Profile is the per-user record. GroupID and IsAdmin are written together whenever
// the profile leaves a group.
type Profile struct {
	ID       int64
	UserID   uuid.UUID
	Username string // Loaded via JOIN
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Nickname string
	GroupID  *int64
	IsAdmin  bool
}

func (p *Profile) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}

	return p.Username
}

func (p *Profile) InGroup(groupID int64) bool {
	return p.GroupID != nil && *p.GroupID == groupID
}

// MemberView is the read model for one row of a member list.
type MemberView struct {
	ProfileID   int64
	Username    string
	DisplayName string
	Role        Role
	Income      decimal.Decimal
	Expenses    decimal.Decimal
}
