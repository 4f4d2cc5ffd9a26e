package family

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/hearth/internal/family"
)

type groupResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type profileResponse struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	Nickname    string          `json:"nickname"`
	DisplayName string          `json:"display_name"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Group       *groupResponse  `json:"group"`
	Role        family.Role     `json:"role,omitempty"`
}

type memberResponse struct {
	ProfileID   int64           `json:"profile_id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Role        family.Role     `json:"role"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
}

type membersResponse struct {
	Group   *groupResponse   `json:"group"`
	Members []memberResponse `json:"members"`
}

// manageResponse echoes the action and the member list after it was applied.
type manageResponse struct {
	Action string `json:"action"`
	Added  *bool  `json:"added,omitempty"`
	membersResponse
}

func toGroupResponse(g *family.Group) *groupResponse {
	if g == nil {
		return nil
	}

	return &groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Code:      g.Code,
		OwnerID:   g.OwnerID,
		CreatedAt: g.CreatedAt,
	}
}

func toProfileResponse(p *family.Profile, g *family.Group, role family.Role) *profileResponse {
	return &profileResponse{
		ID:          p.ID,
		Username:    p.Username,
		Nickname:    p.Nickname,
		DisplayName: p.DisplayName(),
		Income:      p.Income,
		Expenses:    p.Expenses,
		Group:       toGroupResponse(g),
		Role:        role,
	}
}

func toMembersResponse(g *family.Group, views []family.MemberView) membersResponse {
	members := make([]memberResponse, len(views))
	for i, v := range views {
		members[i] = memberResponse{
			ProfileID:   v.ProfileID,
			Username:    v.Username,
			DisplayName: v.DisplayName,
			Role:        v.Role,
			Income:      v.Income,
			Expenses:    v.Expenses,
		}
	}

	return membersResponse{Group: toGroupResponse(g), Members: members}
}
