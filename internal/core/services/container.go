package services

import (
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebooks/ledger_backend/internal/core/ports/services"
)

// container wires concrete services over a repository provider.
type container struct {
	accountSvc portssvc.AccountSvcFacade
	journalSvc portssvc.JournalSvcFacade
	postingSvc portssvc.PostingSvcFacade
	closingSvc portssvc.ClosingSvcFacade
}

// NewServiceContainer builds the full service graph from repositories.
func NewServiceContainer(repos portsrepo.RepositoryProvider, retainedEarningsCode string) portssvc.ServiceProvider {
	accountSvc := NewAccountService(repos.AccountRepo())
	journalSvc := NewJournalService(repos.JournalRepo(), accountSvc)
	postingSvc := NewPostingService(repos.JournalRepo(), repos.PeriodRepo())
	closingSvc := NewClosingService(repos.PeriodRepo(), repos.ClosingRepo(), retainedEarningsCode)

	return &container{
		accountSvc: accountSvc,
		journalSvc: journalSvc,
		postingSvc: postingSvc,
		closingSvc: closingSvc,
	}
}

func (c *container) AccountSvc() portssvc.AccountSvcFacade { return c.accountSvc }
func (c *container) JournalSvc() portssvc.JournalSvcFacade { return c.journalSvc }
func (c *container) PostingSvc() portssvc.PostingSvcFacade { return c.postingSvc }
func (c *container) ClosingSvc() portssvc.ClosingSvcFacade { return c.closingSvc }
