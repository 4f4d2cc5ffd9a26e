package budget

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/hearth/internal/budget"
	"github.com/MrJamesThe3rd/hearth/internal/family"
	"github.com/MrJamesThe3rd/hearth/internal/http/middleware"
	"github.com/MrJamesThe3rd/hearth/internal/http/respond"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

// CategoryRoutes is mounted at /categories.
func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Post("/", h.createCategory)
	r.Put("/{id}/limit", h.setLimit)
	r.Delete("/{id}", h.deleteCategory)
}

// GoalRoutes is mounted at /goals.
func (h *Handler) GoalRoutes(r chi.Router) {
	r.Get("/", h.listGoals)
	r.Post("/", h.createGoal)
	r.Delete("/{id}", h.deleteGoal)
}

type categoryResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	BudgetLimit *decimal.Decimal `json:"budget_limit"`
}

type goalResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toCategoryResponse(c *budget.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, BudgetLimit: c.BudgetLimit}
}

func toGoalResponse(g *budget.Goal) goalResponse {
	return goalResponse{ID: g.ID, Name: g.Name, TargetAmount: g.TargetAmount, CreatedAt: g.CreatedAt}
}

func caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "authentication required")
	}

	return id, ok
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}

	return id, true
}

// parseAmount accepts a decimal string. An empty string yields nil.
func parseAmount(field, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &family.ValidationError{Field: field, Message: "must be a number"}
	}

	return &d, nil
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	categories, err := h.svc.Categories(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), userID, req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toCategoryResponse(c))
}

type setLimitRequest struct {
	Limit string `json:"limit"`
}

func (h *Handler) setLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req setLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	limit, err := parseAmount("limit", req.Limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.SetLimit(r.Context(), userID, id, limit); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), userID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.Goals(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toGoalResponse(g)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"target_amount"`
}

func (h *Handler) createGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := parseAmount("target_amount", req.TargetAmount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if target == nil {
		respond.Error(w, r, &family.ValidationError{Field: "target_amount", Message: "is required"})
		return
	}

	goal, err := h.svc.CreateGoal(r.Context(), userID, req.Name, *target)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toGoalResponse(goal))
}

func (h *Handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteGoal(r.Context(), userID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
