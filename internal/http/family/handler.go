package family

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/hearth/internal/budget"
	"github.com/MrJamesThe3rd/hearth/internal/family"
	"github.com/MrJamesThe3rd/hearth/internal/http/middleware"
	"github.com/MrJamesThe3rd/hearth/internal/http/respond"
)

type Handler struct {
	svc    *family.Service
	budget *budget.Service
}

func NewHandler(svc *family.Service, budgetSvc *budget.Service) *Handler {
	return &Handler{svc: svc, budget: budgetSvc}
}

// ProfileRoutes is mounted at /profile.
func (h *Handler) ProfileRoutes(r chi.Router) {
	r.Get("/", h.getProfile)
	r.Patch("/", h.updateProfile)
}

// Routes is mounted at /group.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.createGroup)
	r.Post("/join", h.join)
	r.Post("/leave", h.leave)
	r.Get("/members", h.members)
	r.Delete("/members/{profileID}", h.removeMember)
	r.Get("/manage", h.managed)
	r.Post("/manage", h.manage)
}

func caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "authentication required")
	}

	return id, ok
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

func (h *Handler) writeOverview(w http.ResponseWriter, r *http.Request, userID uuid.UUID, status int) {
	ov, err := h.svc.Overview(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, status, toProfileResponse(ov.Profile, ov.Group, ov.Role))
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	h.writeOverview(w, r, userID, http.StatusOK)
}

type updateProfileRequest struct {
	Nickname         *string                   `json:"nickname,omitempty"`
	Income           *decimal.Decimal          `json:"income,omitempty"`
	Expenses         *decimal.Decimal          `json:"expenses,omitempty"`
	CategoryExpenses map[int64]decimal.Decimal `json:"category_expenses,omitempty"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Nickname != nil {
		req.Nickname = new(strings.TrimSpace(*req.Nickname))
	}

	extra, err := h.budget.CategoryExpenses(r.Context(), userID, req.CategoryExpenses)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	_, err = h.svc.UpdateProfile(r.Context(), userID, family.ProfileUpdate{
		Nickname:      req.Nickname,
		Income:        req.Income,
		Expenses:      req.Expenses,
		ExtraExpenses: extra,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.writeOverview(w, r, userID, http.StatusOK)
}

type createGroupRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req createGroupRequest
	if !decode(w, r, &req) {
		return
	}

	g, err := h.svc.CreateGroup(r.Context(), userID, req.Name, strings.TrimSpace(req.Code))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toGroupResponse(g))
}

type joinRequest struct {
	Code string `json:"code"`
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req joinRequest
	if !decode(w, r, &req) {
		return
	}

	g, err := h.svc.JoinByCode(r.Context(), userID, strings.TrimSpace(req.Code))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toGroupResponse(g))
}

func (h *Handler) leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Leave(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toProfileResponse(p, nil, ""))
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	g, views, err := h.svc.Members(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMembersResponse(g, views))
}

func (h *Handler) managed(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	g, views, err := h.svc.ManagedMembers(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMembersResponse(g, views))
}

type manageRequest struct {
	Action          string `json:"action"`
	Username        string `json:"username"`
	MemberProfileID int64  `json:"member_profile_id"`
}

func (h *Handler) manage(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req manageRequest
	if !decode(w, r, &req) {
		return
	}

	resp := manageResponse{Action: req.Action}

	var err error

	switch req.Action {
	// A missing member_profile_id changes nothing; the list is still returned.
	case "remove":
		if req.MemberProfileID != 0 {
			_, err = h.svc.RemoveMember(r.Context(), userID, req.MemberProfileID)
		}
	case "promote", "demote":
		if req.MemberProfileID != 0 {
			_, err = h.svc.SetRole(r.Context(), userID, req.MemberProfileID, req.Action == "promote")
		}
	case "add":
		var added bool
		_, added, err = h.svc.AddByUsername(r.Context(), userID, req.Username)
		resp.Added = &added
	default:
		err = &family.ValidationError{Field: "action", Message: "must be one of add, remove, promote, demote"}
	}

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	g, views, err := h.svc.ManagedMembers(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp.membersResponse = toMembersResponse(g, views)

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	profileID, err := strconv.ParseInt(chi.URLParam(r, "profileID"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	if _, err := h.svc.RemoveMember(r.Context(), userID, profileID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
