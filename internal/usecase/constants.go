package usecase

import "time"

const (
	// BalanceCacheTTL is how long a cached account balance stays valid.
	// Mutations invalidate the key eagerly; the TTL only bounds staleness
	// when an invalidation is lost.
	BalanceCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

// balanceCacheKey namespaces cached balances by account.
func balanceCacheKey(accountID string) string {
	return "balance:" + accountID
}
