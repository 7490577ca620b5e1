package ledger

import "sync"

// accountLocks hands out one mutex per account. Holding an account's mutex is
// what makes the read-check-write in the mutator atomic with respect to every
// other mutation on the same account.
type accountLocks struct {
	mapMu sync.Mutex             // protects muMap itself
	muMap map[string]*sync.Mutex // one lock per account ID
}

func newAccountLocks() *accountLocks {
	return &accountLocks{muMap: make(map[string]*sync.Mutex)}
}

func (l *accountLocks) get(accountID string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[accountID]; !exists {
		l.muMap[accountID] = &sync.Mutex{}
	}
	return l.muMap[accountID]
}

// lockPair locks both accounts' mutexes in ascending account-ID order, the
// one total order used everywhere, so two transfers over the same pair of
// accounts in opposite directions cannot deadlock. The returned function
// releases both.
func (l *accountLocks) lockPair(a, b string) (unlock func()) {
	first, second := l.get(a), l.get(b)
	if a > b {
		first, second = second, first
	}
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
