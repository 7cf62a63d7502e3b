package funding

import (
	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/access"
	"github.com/raisefund/libraise-go/asset"
	"github.com/raisefund/libraise-go/event"
	"github.com/raisefund/libraise-go/recoupment"
	"github.com/raisefund/libraise-go/token"
)

// State is a campaign's full serializable snapshot: everything needed to
// rebuild it except the external capabilities (payment asset, access
// control, event recorder), which are reattached on restore.
type State struct {
	Name              string
	Symbol            string
	Address           token.Address
	Price             *uint256.Int
	ReturnBasisPoints uint64
	Status            Status
	TotalRaised       *uint256.Int
	Balances          []token.Entry
	Rounds            []recoupment.RoundState
}

// State exports the campaign for persistence.
func (c *Campaign) State() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &State{
		Name:              c.params.Name,
		Symbol:            c.params.Symbol,
		Address:           c.params.Address,
		Price:             c.params.Price.Clone(),
		ReturnBasisPoints: c.params.ReturnBasisPoints,
		Status:            c.status,
		TotalRaised:       c.totalRaised.Clone(),
		Balances:          c.ledger.Entries(),
		Rounds:            c.recoup.Export(),
	}
}

// RestoreCampaign rebuilds a campaign from a persisted state, reattaching
// the external capabilities.
func RestoreCampaign(s *State, payment asset.Asset, acl access.Controller, rec event.Recorder) (*Campaign, error) {
	c, err := NewCampaign(Params{
		Name:              s.Name,
		Symbol:            s.Symbol,
		Address:           s.Address,
		Payment:           payment,
		Price:             s.Price,
		ReturnBasisPoints: s.ReturnBasisPoints,
	}, acl, rec)
	if err != nil {
		return nil, err
	}

	ledger, err := token.NewLedgerFromEntries(s.Balances)
	if err != nil {
		return nil, err
	}
	if err := c.recoup.Restore(s.Rounds); err != nil {
		return nil, err
	}
	c.ledger = ledger
	c.status = s.Status
	if s.TotalRaised != nil {
		c.totalRaised = s.TotalRaised.Clone()
	}
	return c, nil
}
