package family

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/hearth/internal/identity"
)

const maxNicknameLength = 50

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=family
type Repository interface {
	GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetProfileInGroup(ctx context.Context, profileID, groupID int64) (*Profile, error)
	// UpdateProfile writes only the set fields of upd and returns the stored row.
	UpdateProfile(ctx context.Context, profileID int64, upd ProfileUpdate) (*Profile, error)
	ListMembers(ctx context.Context, groupID int64) ([]*Profile, error)

	// AttachProfile sets the group only when the profile has none and clears
	// is_admin in the same statement. Returns ErrConflict when already attached.
	AttachProfile(ctx context.Context, profileID, groupID int64) error
	DetachProfile(ctx context.Context, profileID int64) error
	// RemoveFromGroup and SetAdmin return ErrNotFound when the profile is not
	// attached to groupID.
	RemoveFromGroup(ctx context.Context, profileID, groupID int64) error
	SetAdmin(ctx context.Context, profileID, groupID int64, isAdmin bool) error

	GetGroup(ctx context.Context, id int64) (*Group, error)
	GetGroupByCode(ctx context.Context, code string) (*Group, error)
	FirstOwnedGroup(ctx context.Context, ownerID uuid.UUID) (*Group, error)
	CodeExists(ctx context.Context, code string) (bool, error)

	BeginCreateGroup(ctx context.Context) (CreateGroupTx, error)
}

// CreateGroupTx inserts a group and attaches its owner atomically.
type CreateGroupTx interface {
	CreateGroup(ctx context.Context, g *Group) error
	AttachProfile(ctx context.Context, profileID, groupID int64) error
	Commit() error
	Rollback() error
}

// Directory resolves usernames through the identity provider.
type Directory interface {
	LookupUsername(ctx context.Context, username string) (uuid.UUID, error)
}

type Service struct {
	repo      Repository
	directory Directory
}

func NewService(repo Repository, directory Directory) *Service {
	return &Service{repo: repo, directory: directory}
}

// Overview is what a user sees about themselves: their profile, their group and role.
type Overview struct {
	Profile *Profile
	Group   *Group
	Role    Role
}

// GetOrCreateProfile returns the user's profile, creating an empty one on first access.
func (s *Service) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	return p, nil
}

func (s *Service) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	g, p, err := s.CurrentGroup(ctx, userID)
	if err != nil {
		return nil, err
	}

	ov := &Overview{Profile: p, Group: g}
	if g != nil {
		ov.Role = EffectiveRole(g, p)
	}

	return ov, nil
}

// CurrentGroup returns the group the user is attached to, or a nil group.
func (s *Service) CurrentGroup(ctx context.Context, userID uuid.UUID) (*Group, *Profile, error) {
	p, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if p.GroupID == nil {
		return nil, p, nil
	}

	g, err := s.repo.GetGroup(ctx, *p.GroupID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading group: %w", err)
	}

	return g, p, nil
}

// ProfileUpdate changes only the fields that are set. ExtraExpenses is added on
// top of the stored (or newly set) expenses in the same statement.
type ProfileUpdate struct {
	Nickname      *string
	Income        *decimal.Decimal
	Expenses      *decimal.Decimal
	ExtraExpenses decimal.Decimal
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*Profile, error) {
	if upd.Nickname != nil && utf8.RuneCountInString(*upd.Nickname) > maxNicknameLength {
		return nil, &ValidationError{Field: "nickname", Message: fmt.Sprintf("must be at most %d characters", maxNicknameLength)}
	}

	if upd.Income != nil {
		if err := CheckAmount("income", *upd.Income, MaxAmount); err != nil {
			return nil, err
		}
	}

	if upd.Expenses != nil {
		if err := CheckAmount("expenses", *upd.Expenses, MaxAmount); err != nil {
			return nil, err
		}
	}

	if err := CheckAmount("category_expenses", upd.ExtraExpenses, MaxAmount); err != nil {
		return nil, err
	}

	p, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	expenses := p.Expenses
	if upd.Expenses != nil {
		expenses = *upd.Expenses
	}

	if expenses.Add(upd.ExtraExpenses).GreaterThan(MaxAmount) {
		return nil, &ValidationError{Field: "expenses", Message: "must be at most " + MaxAmount.StringFixed(amountScale)}
	}

	updated, err := s.repo.UpdateProfile(ctx, p.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return updated, nil
}

// RequireManager returns the caller's group when they are its owner or an admin.
func (s *Service) RequireManager(ctx context.Context, userID uuid.UUID) (*Group, *Profile, error) {
	g, p, err := s.CurrentGroup(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if !AuthorizeManagement(p, g) {
		return nil, nil, ErrForbidden
	}

	return g, p, nil
}

// ManagedGroup is the group whose membership the user administers: their own group,
// or the first group they own when they are not attached anywhere.
func (s *Service) ManagedGroup(ctx context.Context, userID uuid.UUID) (*Group, *Profile, error) {
	g, p, err := s.CurrentGroup(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if g != nil {
		return g, p, nil
	}

	g, err = s.repo.FirstOwnedGroup(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, p, nil
		}

		return nil, nil, fmt.Errorf("loading owned group: %w", err)
	}

	return g, p, nil
}

func (s *Service) requireOwner(ctx context.Context, userID uuid.UUID) (*Group, *Profile, error) {
	g, p, err := s.ManagedGroup(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if RoleOf(g, userID) != RoleOwner {
		slog.Debug("member management denied", "user_id", userID)
		return nil, nil, ErrForbidden
	}

	return g, p, nil
}

func (s *Service) lookupUser(ctx context.Context, username string) (uuid.UUID, error) {
	id, err := s.directory.LookupUsername(ctx, username)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
		}

		return uuid.Nil, fmt.Errorf("looking up user: %w", err)
	}

	return id, nil
}
