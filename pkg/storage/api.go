package storage

// ApiStore defines the complete set of non-privileged operations needed by
// the API. It composes the narrow interfaces to provide one clear boundary
// for the API's data access.
type ApiStore interface {
	AccountStore
	AuctionStore
	AllowanceStore
	LedgerReader
}
