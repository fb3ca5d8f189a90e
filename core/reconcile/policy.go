package reconcile

import "time"

// FetchPolicy decides whether a run attempts remote reconciliation.
type FetchPolicy func() bool

// Always fetches on every run.
func Always() FetchPolicy {
	return func() bool { return true }
}

// Never trusts the local store unconditionally.
func Never() FetchPolicy {
	return func() bool { return false }
}

// Fixed returns a policy with a constant answer.
func Fixed(fetch bool) FetchPolicy {
	return func() bool { return fetch }
}

// StaleAfter fetches when the local value is absent or was last updated more
// than ttl ago. A non-positive ttl always fetches.
func StaleAfter(ttl time.Duration, lastUpdated func() (time.Time, bool)) FetchPolicy {
	return staleAfter(ttl, lastUpdated, time.Now)
}

func staleAfter(ttl time.Duration, lastUpdated func() (time.Time, bool), now func() time.Time) FetchPolicy {
	return func() bool {
		if ttl <= 0 {
			return true
		}
		updated, ok := lastUpdated()
		if !ok {
			return true
		}
		return now().Sub(updated) > ttl
	}
}
