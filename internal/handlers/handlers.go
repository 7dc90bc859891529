package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mkhalinin/payactiv/docs"
	adminhandlers "github.com/mkhalinin/payactiv/internal/handlers/admin"
	authhandlers "github.com/mkhalinin/payactiv/internal/handlers/auth"
	paymenthandlers "github.com/mkhalinin/payactiv/internal/handlers/payments"
	"github.com/mkhalinin/payactiv/internal/service"
	"github.com/mkhalinin/payactiv/pkg/auth"
	"github.com/mkhalinin/payactiv/pkg/uploads"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	Transactions(w http.ResponseWriter, r *http.Request)
	SubmitGiftCard(w http.ResponseWriter, r *http.Request)
	SubmitUSDT(w http.ResponseWriter, r *http.Request)
	SubmitCard(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
	Credit(w http.ResponseWriter, r *http.Request)
	Debit(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
	ListSubmissions(w http.ResponseWriter, r *http.Request)
	ApproveSubmission(w http.ResponseWriter, r *http.Request)
	RejectSubmission(w http.ResponseWriter, r *http.Request)
	AuditLog(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	PaymentHandler PaymentHandler
	AdminHandler   AdminHandler
}

func New(s *service.Services, uploadStorage *uploads.Storage) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		PaymentHandler: paymenthandlers.New(s.UserService, s.LedgerService, s.SubmissionService, uploadStorage),
		AdminHandler:   adminhandlers.New(s.UserService, s.LedgerService, s.SubmissionService, s.AuditService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/dashboard", h.PaymentHandler.Dashboard)
			r.Get("/transactions", h.PaymentHandler.Transactions)
			r.Route("/payments", func(r chi.Router) {
				r.Post("/giftcard", h.PaymentHandler.SubmitGiftCard)
				r.Post("/usdt", h.PaymentHandler.SubmitUSDT)
				r.Post("/card", h.PaymentHandler.SubmitCard)
			})
		})
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware, auth.AdminMiddleware)
		r.Get("/stats", h.AdminHandler.Stats)
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListUsers)
			r.Post("/", h.AdminHandler.CreateUser)
			r.Post("/{id}/credit", h.AdminHandler.Credit)
			r.Post("/{id}/debit", h.AdminHandler.Debit)
			r.Patch("/{id}", h.AdminHandler.UpdateUser)
			r.Delete("/{id}", h.AdminHandler.DeleteUser)
		})
		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListSubmissions)
			r.Post("/{key}/approve", h.AdminHandler.ApproveSubmission)
			r.Post("/{key}/reject", h.AdminHandler.RejectSubmission)
		})
		r.Get("/audit", h.AdminHandler.AuditLog)
	})

	return r
}
