package usecase

import "time"

const (
	// OperationTimeout caps how long a single statement operation may hold
	// its database transaction.
	OperationTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long replay responses for mutating requests
	// stay available.
	IdempotencyKeyTTL = 24 * time.Hour

	// BalanceCacheTTL is how long a derived balance stays cached. Kept short:
	// the cache is also invalidated on every write for the involved owners.
	BalanceCacheTTL = 30 * time.Second
)
