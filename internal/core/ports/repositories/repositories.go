package repositories

// RepositoryProvider bundles every repository the service layer needs.
// Concrete database packages implement it and hand it to the service
// container at startup.
type RepositoryProvider interface {
	AccountRepo() AccountRepositoryWithTx
	JournalRepo() JournalRepository
	PeriodRepo() PeriodRepository
	ClosingRepo() ClosingRepository
}
