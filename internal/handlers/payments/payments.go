package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/dto"
	"github.com/mkhalinin/payactiv/pkg/auth"
	"github.com/mkhalinin/payactiv/pkg/uploads"
	"github.com/mkhalinin/payactiv/pkg/utils"
	"github.com/mkhalinin/payactiv/pkg/validate"
)

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

type LedgerService interface {
	Transactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

type SubmissionService interface {
	SubmitGiftCard(ctx context.Context, userID string, images []string) (*domain.Submission, error)
	SubmitUSDT(ctx context.Context, userID, txid string) (*domain.Submission, error)
	SubmitCard(ctx context.Context, userID, cardNumber string) (*domain.Submission, error)
}

type PaymentHandler struct {
	userService       UserService
	ledgerService     LedgerService
	submissionService SubmissionService
	uploadStorage     *uploads.Storage
}

func New(userService UserService, ledgerService LedgerService, submissionService SubmissionService, uploadStorage *uploads.Storage) *PaymentHandler {
	return &PaymentHandler{
		userService:       userService,
		ledgerService:     ledgerService,
		submissionService: submissionService,
		uploadStorage:     uploadStorage,
	}
}

// Dashboard godoc
//
//	@Summary		Get the user dashboard
//	@Description	Current balance, activation state and transaction history for the authenticated user
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/dashboard [get]
func (h *PaymentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	txs, err := h.ledgerService.Transactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DashboardResponseDTO{
		Name:         user.Name,
		Email:        user.Email,
		Balance:      user.Balance,
		Activated:    user.Activated,
		Transactions: toTransactionDTOs(txs),
	})
}

// Transactions godoc
//
//	@Summary		Get transaction history
//	@Description	Ledger entries where the authenticated user is a party
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *PaymentHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	txs, err := h.ledgerService.Transactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

// SubmitGiftCard godoc
//
//	@Summary		Submit a gift-card activation payment
//	@Description	Upload evidence images (5MB each) and queue the submission for admin review
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			mpfd
//	@Produce		json
//	@Param			images	formData	file	true	"Evidence images"
//	@Success		200		{object}	dto.SubmissionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid upload"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		413		{object}	utils.Response	"File too large"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/giftcard [post]
func (h *PaymentHandler) SubmitGiftCard(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	if err := r.ParseMultipartForm(uploads.MaxFileSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one evidence image is required")
		return
	}

	names := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload")
			return
		}
		name, err := h.uploadStorage.Save(file, header)
		file.Close()
		if err != nil {
			if errors.Is(err, uploads.ErrFileTooLarge) {
				utils.RespondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store upload")
			return
		}
		names = append(names, name)
	}

	sub, err := h.submissionService.SubmitGiftCard(r.Context(), userID, names)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SubmissionResponseDTO{
		Message:       "Submission received and pending review",
		ActivationFee: sub.ActivationFee,
		Status:        sub.Status,
	})
}

// SubmitUSDT godoc
//
//	@Summary		Submit a USDT activation payment
//	@Description	Record the transfer txid; the activation fee settles immediately
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.USDTPaymentRequestDTO	true	"USDT payment payload"
//	@Success		200		{object}	dto.SubmissionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/usdt [post]
func (h *PaymentHandler) SubmitUSDT(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.USDTPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TxID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.submissionService.SubmitUSDT(r.Context(), userID, req.TxID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SubmissionResponseDTO{
		Message:       "Payment recorded, account activated",
		ActivationFee: sub.ActivationFee,
		Status:        sub.Status,
	})
}

// SubmitCard godoc
//
//	@Summary		Submit a card activation payment
//	@Description	Validate the card number and settle the activation fee immediately
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CardPaymentRequestDTO	true	"Card payment payload"
//	@Success		200		{object}	dto.SubmissionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Invalid card number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/card [post]
func (h *PaymentHandler) SubmitCard(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.CardPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validate.IsCardNumber(req.Number) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid card number")
		return
	}

	sub, err := h.submissionService.SubmitCard(r.Context(), userID, req.Number)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SubmissionResponseDTO{
		Message:       "Payment recorded, account activated",
		ActivationFee: sub.ActivationFee,
		Status:        sub.Status,
	})
}

func toTransactionDTOs(txs []domain.Transaction) []dto.TransactionDTO {
	result := make([]dto.TransactionDTO, len(txs))
	for i, tx := range txs {
		result[i] = dto.TransactionDTO{
			Type:          tx.Type,
			From:          tx.From,
			To:            tx.To,
			FromName:      tx.FromName,
			ToName:        tx.ToName,
			Amount:        tx.Amount,
			Note:          tx.Note,
			Timestamp:     tx.Timestamp,
			Status:        tx.Status,
			PaymentMethod: tx.PaymentMethod,
		}
	}
	return result
}
