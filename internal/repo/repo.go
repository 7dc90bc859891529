package repo

import (
	auditrepo "github.com/mkhalinin/payactiv/internal/repo/audit-repo"
	submissionrepo "github.com/mkhalinin/payactiv/internal/repo/submission-repo"
	transactionrepo "github.com/mkhalinin/payactiv/internal/repo/transaction-repo"
	userrepo "github.com/mkhalinin/payactiv/internal/repo/user-repo"
	"github.com/mkhalinin/payactiv/internal/store"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	TransactionRepo *transactionrepo.Repository
	AuditRepo       *auditrepo.Repository
	SubmissionRepo  *submissionrepo.Repository
}

func New(s *store.Store) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(s),
		TransactionRepo: transactionrepo.New(s),
		AuditRepo:       auditrepo.New(s),
		SubmissionRepo:  submissionrepo.New(s),
	}
}
