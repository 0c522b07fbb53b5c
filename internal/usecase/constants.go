package usecase

import "time"

const (
	// accountNumberAttempts bounds how many times account creation is
	// retried when the generated account number collides.
	accountNumberAttempts = 5

	// transferTimeout caps how long a single transfer attempt may hold
	// its row locks.
	transferTimeout = 10 * time.Second

	// transactionCacheTTL is how long reference-number lookups are
	// cached. Entries are immutable, so staleness is not a concern.
	transactionCacheTTL = 10 * time.Minute
)
