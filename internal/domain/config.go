package domain

// StoreConfig holds record storage naming, not exposed to clients.
type StoreConfig struct {
	Database   string
	Collection string
	KeyPrefix  string
}

// DefaultStoreConfig returns the names used when configuration leaves them empty.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Database:   "cancerDB",
		Collection: "diagnosis",
		KeyPrefix:  "cancerdx:",
	}
}
