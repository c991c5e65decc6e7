package pgsql

import (
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// repositoryProvider bundles the concrete pgsql repositories.
type repositoryProvider struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	journalRepo portsrepo.JournalRepository
	periodRepo  portsrepo.PeriodRepository
	closingRepo portsrepo.ClosingRepository
}

func (p *repositoryProvider) AccountRepo() portsrepo.AccountRepositoryWithTx { return p.accountRepo }
func (p *repositoryProvider) JournalRepo() portsrepo.JournalRepository       { return p.journalRepo }
func (p *repositoryProvider) PeriodRepo() portsrepo.PeriodRepository         { return p.periodRepo }
func (p *repositoryProvider) ClosingRepo() portsrepo.ClosingRepository       { return p.closingRepo }

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	periodRepo := newPgxPeriodRepository(dbPool)
	closingRepo := newPgxClosingRepository(dbPool, accountRepo, journalRepo)

	return &repositoryProvider{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		periodRepo:  periodRepo,
		closingRepo: closingRepo,
	}
}
