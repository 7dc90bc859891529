package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/dto"
	"github.com/mkhalinin/payactiv/internal/service/ledgerservice"
	"github.com/mkhalinin/payactiv/internal/service/submissionservice"
	"github.com/mkhalinin/payactiv/internal/service/userservice"
	"github.com/mkhalinin/payactiv/pkg/auth"
	"github.com/mkhalinin/payactiv/pkg/utils"
)

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) (map[string]domain.User, error)
	Create(ctx context.Context, user *domain.User, actingAdminID, ip string) (*domain.User, error)
	UpdateField(ctx context.Context, id, field string, value any, actingAdminID, ip string) error
	Delete(ctx context.Context, id, actingAdminID, ip string) error
}

type LedgerService interface {
	Credit(ctx context.Context, targetID string, amount float64, note, actingAdminID, ip string) (float64, error)
	Debit(ctx context.Context, targetID string, amount float64, note, actingAdminID, ip string) (float64, error)
	AllTransactions(ctx context.Context) ([]domain.Transaction, error)
}

type SubmissionService interface {
	ListGiftCards(ctx context.Context) ([]domain.Submission, error)
	ListPayments(ctx context.Context) ([]domain.Submission, error)
	Approve(ctx context.Context, key, actingAdminID, ip string) error
	Reject(ctx context.Context, key, reason, actingAdminID, ip string) error
}

type AuditService interface {
	History(ctx context.Context) ([]domain.AdminLogEntry, error)
}

type AdminHandler struct {
	userService       UserService
	ledgerService     LedgerService
	submissionService SubmissionService
	auditService      AuditService
}

func New(userService UserService, ledgerService LedgerService, submissionService SubmissionService, auditService AuditService) *AdminHandler {
	return &AdminHandler{
		userService:       userService,
		ledgerService:     ledgerService,
		submissionService: submissionService,
		auditService:      auditService,
	}
}

func actingAdmin(r *http.Request) string {
	id, _ := r.Context().Value(auth.UserIDKey).(string)
	return id
}

// Stats godoc
//
//	@Summary		Platform statistics
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.StatsResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	txs, err := h.ledgerService.AllTransactions(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	subs, err := h.submissionService.ListGiftCards(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	stats := dto.StatsResponseDTO{
		TotalUsers:        len(users),
		TotalTransactions: len(txs),
	}
	for _, u := range users {
		stats.TotalBalance += u.Balance
		if u.Activated {
			stats.ActivatedUsers++
		}
	}
	for _, s := range subs {
		if s.Status == submissionservice.StatusPending {
			stats.PendingSubmissions++
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// ListUsers godoc
//
//	@Summary		List all users
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]domain.User
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// CreateUser godoc
//
//	@Summary		Create a user with any role and starting balance
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateUserRequestDTO	true	"New user payload"
//	@Success		200		{object}	domain.User
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"Email already registered"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users [post]
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	hash, err := (&auth.HashService{}).HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid password")
		return
	}
	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		Balance:  req.Balance,
	}
	created, err := h.userService.Create(r.Context(), user, actingAdmin(r), r.RemoteAddr)
	if err != nil {
		if errors.Is(err, userservice.ErrDuplicateEmail) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, created)
}

// Credit godoc
//
//	@Summary		Credit a user's balance
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Target user id"
//	@Param			request	body		dto.BalanceChangeRequestDTO	true	"Credit payload"
//	@Success		200		{object}	dto.BalanceChangeResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users/{id}/credit [post]
func (h *AdminHandler) Credit(w http.ResponseWriter, r *http.Request) {
	h.changeBalance(w, r, h.ledgerService.Credit)
}

// Debit godoc
//
//	@Summary		Debit a user's balance
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Target user id"
//	@Param			request	body		dto.BalanceChangeRequestDTO	true	"Debit payload"
//	@Success		200		{object}	dto.BalanceChangeResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users/{id}/debit [post]
func (h *AdminHandler) Debit(w http.ResponseWriter, r *http.Request) {
	h.changeBalance(w, r, h.ledgerService.Debit)
}

func (h *AdminHandler) changeBalance(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, targetID string, amount float64, note, actingAdminID, ip string) (float64, error)) {
	targetID := chi.URLParam(r, "id")

	var req dto.BalanceChangeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	balance, err := op(r.Context(), targetID, req.Amount, req.Note, actingAdmin(r), r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ledgerservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, userservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceChangeResponseDTO{Balance: balance})
}

// UpdateUser godoc
//
//	@Summary		Overwrite one field on a user record
//	@Description	id, created and createdBy are immutable; any other field is overwritten as given
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Target user id"
//	@Param			request	body		dto.UpdateUserRequestDTO	true	"Field update payload"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Restricted field"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	var req dto.UpdateUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Field == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.userService.UpdateField(r.Context(), targetID, req.Field, req.Value, actingAdmin(r), r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrRestrictedField):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, userservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "User updated"})
}

// DeleteUser godoc
//
//	@Summary		Delete a user
//	@Description	Admin accounts are protected, only the acting admin can delete their own
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Target user id"
//	@Success		200	{object}	utils.Response
//	@Failure		403	{object}	utils.Response	"Protected admin account"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	err := h.userService.Delete(r.Context(), targetID, actingAdmin(r), r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrProtectedAdmin):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, userservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "User deleted"})
}

// ListSubmissions godoc
//
//	@Summary		List activation submissions
//	@Description	Gift-card submissions awaiting or past review, plus settled USDT/card payments
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string][]domain.Submission
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/submissions [get]
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	giftCards, err := h.submissionService.ListGiftCards(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	payments, err := h.submissionService.ListPayments(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string][]domain.Submission{
		"giftCards": giftCards,
		"payments":  payments,
	})
}

// ApproveSubmission godoc
//
//	@Summary		Approve a pending gift-card submission
//	@Description	Activates the user and completes the matching pending fee transaction
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			key	path		string	true	"Submission timestamp or user id"
//	@Success		200	{object}	utils.Response
//	@Failure		404	{object}	utils.Response	"Submission not found"
//	@Failure		409	{object}	utils.Response	"Submission already resolved"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/submissions/{key}/approve [post]
func (h *AdminHandler) ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	err := h.submissionService.Approve(r.Context(), key, actingAdmin(r), r.RemoteAddr)
	if err != nil {
		h.respondSubmissionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Submission approved"})
}

// RejectSubmission godoc
//
//	@Summary		Reject a pending gift-card submission
//	@Description	Leaves the user and the fee transaction untouched
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			key		path		string					true	"Submission timestamp or user id"
//	@Param			request	body		dto.RejectRequestDTO	true	"Rejection payload"
//	@Success		200		{object}	utils.Response
//	@Failure		404		{object}	utils.Response	"Submission not found"
//	@Failure		409		{object}	utils.Response	"Submission already resolved"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/submissions/{key}/reject [post]
func (h *AdminHandler) RejectSubmission(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req dto.RejectRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.submissionService.Reject(r.Context(), key, req.Reason, actingAdmin(r), r.RemoteAddr)
	if err != nil {
		h.respondSubmissionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Submission rejected"})
}

func (h *AdminHandler) respondSubmissionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionservice.ErrSubmissionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, submissionservice.ErrAlreadyResolved):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// AuditLog godoc
//
//	@Summary		Admin action history
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		domain.AdminLogEntry
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/audit [get]
func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.auditService.History(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch audit log")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
