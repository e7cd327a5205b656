package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./shelfshare.db"

	// DefaultBorrowLimit is the maximum number of concurrent borrows per user
	DefaultBorrowLimit = 3
)
