package domain

import "errors"

var (
	// ErrNotFound: the referenced product or record has no ledger entry.
	ErrNotFound = errors.New("not found on ledger")
	// ErrNoSigner: the gateway holds no key for the claimed signer address.
	ErrNoSigner = errors.New("no signer for address")
	// ErrReverted: the contract rejected the transaction. The revert reason,
	// when recoverable, is wrapped alongside.
	ErrReverted = errors.New("transaction reverted")
	// ErrUnavailable: the chain endpoint cannot be reached.
	ErrUnavailable = errors.New("chain unavailable")
	// ErrConsumerGrant: Consumer is implicit and never granted.
	ErrConsumerGrant = errors.New("consumer role cannot be granted")
)
