package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/hearth/internal/family"
)

const maxNameLength = 100

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget

// Every method takes the caller's group id; rows of other groups are invisible.
type Repository interface {
	ListCategories(ctx context.Context, groupID int64) ([]*Category, error)
	GetOrCreateCategory(ctx context.Context, groupID int64, name string) (*Category, error)
	SetCategoryLimit(ctx context.Context, groupID, id int64, limit *decimal.Decimal) error
	DeleteCategory(ctx context.Context, groupID, id int64) error

	ListGoals(ctx context.Context, groupID int64) ([]*Goal, error)
	CreateGoal(ctx context.Context, goal *Goal) error
	DeleteGoal(ctx context.Context, groupID, id int64) error
}

// Membership is the slice of the family service that decides who may write.
type Membership interface {
	CurrentGroup(ctx context.Context, userID uuid.UUID) (*family.Group, *family.Profile, error)
	RequireManager(ctx context.Context, userID uuid.UUID) (*family.Group, *family.Profile, error)
}

type Service struct {
	repo    Repository
	members Membership
}

func NewService(repo Repository, members Membership) *Service {
	return &Service{repo: repo, members: members}
}

// Categories lists the caller's group categories by name. No group, no categories.
func (s *Service) Categories(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	g, _, err := s.members.CurrentGroup(ctx, userID)
	if err != nil || g == nil {
		return nil, err
	}

	return s.repo.ListCategories(ctx, g.ID)
}

// CreateCategory returns the existing category when the name is already used.
func (s *Service) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	g, _, err := s.members.RequireManager(ctx, userID)
	if err != nil {
		return nil, err
	}

	name, err = validName(name)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetOrCreateCategory(ctx, g.ID, name)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	slog.Info("category saved", "group_id", g.ID, "category_id", c.ID)

	return c, nil
}

// SetLimit sets or, with a nil limit, clears a category's budget limit.
func (s *Service) SetLimit(ctx context.Context, userID uuid.UUID, categoryID int64, limit *decimal.Decimal) error {
	g, _, err := s.members.RequireManager(ctx, userID)
	if err != nil {
		return err
	}

	if limit != nil {
		if err := family.CheckAmount("limit", *limit, family.MaxAmount); err != nil {
			return err
		}
	}

	return s.repo.SetCategoryLimit(ctx, g.ID, categoryID, limit)
}

func (s *Service) DeleteCategory(ctx context.Context, userID uuid.UUID, categoryID int64) error {
	g, _, err := s.members.RequireManager(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.DeleteCategory(ctx, g.ID, categoryID)
}

// Goals lists the caller's group goals oldest first.
func (s *Service) Goals(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	g, _, err := s.members.CurrentGroup(ctx, userID)
	if err != nil || g == nil {
		return nil, err
	}

	return s.repo.ListGoals(ctx, g.ID)
}

func (s *Service) CreateGoal(ctx context.Context, userID uuid.UUID, name string, target decimal.Decimal) (*Goal, error) {
	g, _, err := s.members.RequireManager(ctx, userID)
	if err != nil {
		return nil, err
	}

	name, err = validName(name)
	if err != nil {
		return nil, err
	}

	if !target.IsPositive() {
		return nil, &family.ValidationError{Field: "target_amount", Message: "must be greater than zero"}
	}

	if err := family.CheckAmount("target_amount", target, family.MaxGoalAmount); err != nil {
		return nil, err
	}

	goal := &Goal{GroupID: g.ID, Name: name, TargetAmount: target}
	if err := s.repo.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	return goal, nil
}

func (s *Service) DeleteGoal(ctx context.Context, userID uuid.UUID, goalID int64) error {
	g, _, err := s.members.RequireManager(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.DeleteGoal(ctx, g.ID, goalID)
}

// CategoryExpenses totals spending entered per category. Only positive amounts for
// categories of the caller's own group count; anything else is ignored. A caller
// without a group gets zero.
func (s *Service) CategoryExpenses(ctx context.Context, userID uuid.UUID, amounts map[int64]decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	if len(amounts) == 0 {
		return total, nil
	}

	for _, amount := range amounts {
		if amount.IsPositive() {
			if err := family.CheckAmount("category_expenses", amount, family.MaxAmount); err != nil {
				return total, err
			}
		}
	}

	g, _, err := s.members.CurrentGroup(ctx, userID)
	if err != nil || g == nil {
		return total, err
	}

	categories, err := s.repo.ListCategories(ctx, g.ID)
	if err != nil {
		return total, fmt.Errorf("listing categories: %w", err)
	}

	for _, c := range categories {
		if amount, ok := amounts[c.ID]; ok && amount.IsPositive() {
			total = total.Add(amount)
		}
	}

	return total, nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &family.ValidationError{Field: "name", Message: "is required"}
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return "", &family.ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}

	return name, nil
}
