// Package event defines the observable side effects of campaign operations.
//
// Off-ledger snapshot tooling reconstructs the balance set at close time by
// replaying Transfer events, so every mint, burn, and transfer must be
// recorded. Mints use token.ZeroAddress as the source and burns use it as
// the destination.
package event

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/token"
)

// Event is an observable side effect of a campaign operation.
type Event interface {
	// Name returns the event's wire name.
	Name() string
}

// Transfer records a tracking-token movement. Quantities are token units,
// not base currency.
type Transfer struct {
	From   token.Address
	To     token.Address
	Tokens *uint256.Int
}

func (Transfer) Name() string { return "Transfer" }

// Withdraw records the issuer collecting the custodied raise.
type Withdraw struct {
	To     token.Address
	Amount *uint256.Int
}

func (Withdraw) Name() string { return "Withdraw" }

// Refund records a holder exiting a cancelled campaign.
type Refund struct {
	Holder token.Address
	Tokens *uint256.Int
	Amount *uint256.Int
}

func (Refund) Name() string { return "Refund" }

// RecoupmentDeposit records a distribution round being opened under a root.
type RecoupmentDeposit struct {
	Root   [32]byte
	Amount *uint256.Int
}

func (RecoupmentDeposit) Name() string { return "RecoupmentDeposit" }

// RecoupmentWithdraw records a leaf being paid out under a root.
type RecoupmentWithdraw struct {
	Root   [32]byte
	Leaf   [32]byte
	Amount *uint256.Int
}

func (RecoupmentWithdraw) Name() string { return "RecoupmentWithdraw" }

// Recorder receives events as they are emitted.
type Recorder interface {
	Record(e Event)
}

// Discard is a Recorder that drops everything.
type Discard struct{}

func (Discard) Record(Event) {}

// MemRecorder keeps an ordered in-memory event log.
type MemRecorder struct {
	mu     sync.Mutex
	events []Event
}

// NewMemRecorder creates an empty in-memory recorder.
func NewMemRecorder() *MemRecorder {
	return &MemRecorder{}
}

// Record appends the event to the log.
func (r *MemRecorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the log in emission order.
func (r *MemRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns all logged events with the given name, in order.
func (r *MemRecorder) Named(name string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}
