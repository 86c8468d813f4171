package domain

import "fmt"

// AuthorityKind distinguishes who signs off a transfer.
type AuthorityKind int

const (
	// AuthorityParticipant is the initiating participant moving its own funds.
	AuthorityParticipant AuthorityKind = iota
	// AuthorityPool is the capability of a pool to move funds out of its
	// custody account.
	AuthorityPool
)

// Authority is the token presented to the ledger to authorize a transfer.
type Authority struct {
	Kind AuthorityKind
	// Participant identity or pool key, depending on Kind.
	ID string
}

// ParticipantAuthority returns the authority of the given participant.
func ParticipantAuthority(owner string) Authority {
	return Authority{AuthorityParticipant, owner}
}

// PoolAuthority returns the signing capability scoped to the pool with the
// given key.
func PoolAuthority(poolKey string) Authority {
	return Authority{AuthorityPool, poolKey}
}

// CanMove returns whether the authority is allowed to debit the given
// account.
func (a Authority) CanMove(account string) bool {
	if len(a.ID) <= 0 {
		return false
	}
	switch a.Kind {
	case AuthorityParticipant:
		return account == a.ID
	case AuthorityPool:
		return account == CustodyAccount(a.ID)
	default:
		return false
	}
}

func (a Authority) String() string {
	if a.Kind == AuthorityPool {
		return fmt.Sprintf("pool(%s)", a.ID)
	}
	return fmt.Sprintf("participant(%s)", a.ID)
}

// Transfer is a single movement of value the ledger has to execute.
type Transfer struct {
	From      string
	To        string
	Asset     string
	Amount    uint64
	Authority Authority
}

// CustodyAccount returns the ledger account holding the reserves of the pool
// with the given key.
func CustodyAccount(poolKey string) string {
	return poolCustodyPrefix + poolKey
}

type transfers []Transfer

// add appends a transfer unless it moves nothing.
func (t transfers) add(
	from, to, asset string, amount uint64, authority Authority,
) transfers {
	if amount == 0 {
		return t
	}
	return append(t, Transfer{from, to, asset, amount, authority})
}
