package family

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxGroupNameLength = 100
	maxCodeLength      = 32
	generatedCodeLen   = 8
	codeAttempts       = 5
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// CreateGroup registers a new group owned by ownerID and attaches the owner to it.
// An empty code is replaced by a generated one.
func (s *Service) CreateGroup(ctx context.Context, ownerID uuid.UUID, name, code string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}

	if utf8.RuneCountInString(name) > maxGroupNameLength {
		return nil, &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", maxGroupNameLength)}
	}

	p, err := s.GetOrCreateProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if !CanJoinOrCreate(p) {
		return nil, alreadyInGroup(ErrConflict)
	}

	if code == "" {
		code, err = s.generateCode(ctx)
		if err != nil {
			return nil, err
		}
	} else if err := s.checkCode(ctx, code); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginCreateGroup(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create group: %w", err)
	}
	defer tx.Rollback()

	g := &Group{Name: name, Code: code, OwnerID: ownerID}
	if err := tx.CreateGroup(ctx, g); err != nil {
		if errors.Is(err, ErrCodeTaken) {
			return nil, codeTaken()
		}

		return nil, fmt.Errorf("create group: %w", err)
	}

	if err := tx.AttachProfile(ctx, p.ID, g.ID); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, alreadyInGroup(err)
		}

		return nil, fmt.Errorf("attach owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create group: %w", err)
	}

	p.GroupID = &g.ID
	p.IsAdmin = false

	slog.Info("group created", "group_id", g.ID, "owner_id", ownerID)

	return g, nil
}

// FindByCode looks a group up by exact, case-sensitive code.
func (s *Service) FindByCode(ctx context.Context, code string) (*Group, error) {
	g, err := s.repo.GetGroupByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: no family group with code %q", ErrNotFound, code)
		}

		return nil, fmt.Errorf("finding group: %w", err)
	}

	return g, nil
}

func (s *Service) checkCode(ctx context.Context, code string) error {
	if len(code) > maxCodeLength || !codePattern.MatchString(code) {
		return &ValidationError{Field: "code", Message: fmt.Sprintf("must be 1 to %d letters or digits", maxCodeLength)}
	}

	exists, err := s.repo.CodeExists(ctx, code)
	if err != nil {
		return fmt.Errorf("checking code: %w", err)
	}

	if exists {
		return codeTaken()
	}

	return nil
}

func (s *Service) generateCode(ctx context.Context) (string, error) {
	for range codeAttempts {
		code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:generatedCodeLen])

		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("checking code: %w", err)
		}

		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("no free join code after %d attempts", codeAttempts)
}

func codeTaken() *ValidationError {
	return &ValidationError{Field: "code", Message: "This code is already in use", Err: ErrCodeTaken}
}

func alreadyInGroup(err error) *ValidationError {
	return &ValidationError{Message: "You are already in a family group. Leave it before joining another.", Err: err}
}
