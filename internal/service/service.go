package service

import (
	"github.com/mkhalinin/payactiv/internal/repo"
	"github.com/mkhalinin/payactiv/internal/service/auditservice"
	"github.com/mkhalinin/payactiv/internal/service/authservice"
	"github.com/mkhalinin/payactiv/internal/service/ledgerservice"
	"github.com/mkhalinin/payactiv/internal/service/submissionservice"
	"github.com/mkhalinin/payactiv/internal/service/userservice"
	pkgauth "github.com/mkhalinin/payactiv/pkg/auth"
)

type Services struct {
	AuthService       *authservice.Service
	UserService       *userservice.Service
	LedgerService     *ledgerservice.Service
	AuditService      *auditservice.Service
	SubmissionService *submissionservice.Service
}

func New(repo *repo.Repositories) *Services {
	auditService := auditservice.New(repo.AuditRepo)
	userService := userservice.New(repo.UserRepo, auditService)
	ledgerService := ledgerservice.New(repo.UserRepo, repo.TransactionRepo, auditService)
	submissionService := submissionservice.New(repo.SubmissionRepo, repo.UserRepo, repo.TransactionRepo, ledgerService, auditService)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:       authService,
		UserService:       userService,
		LedgerService:     ledgerService,
		AuditService:      auditService,
		SubmissionService: submissionService,
	}
}
