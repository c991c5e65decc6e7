package services

// ServiceProvider bundles every service facade for handler registration.
type ServiceProvider interface {
	AccountSvc() AccountSvcFacade
	JournalSvc() JournalSvcFacade
	PostingSvc() PostingSvcFacade
	ClosingSvc() ClosingSvcFacade
}
