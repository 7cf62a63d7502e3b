package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/funding"
	"github.com/raisefund/libraise-go/merkle"
	"github.com/raisefund/libraise-go/recoupment"
	"github.com/raisefund/libraise-go/token"
)

// Binary layout, all integers big-endian:
//
//	version(1)
//	address(20) status(1) price(32) returnBPS(8) totalRaised(32)
//	name:    len(u16) bytes
//	symbol:  len(u16) bytes
//	balances: count(u32), then per entry address(20) amount(32)
//	rounds:   count(u32), then per round root(32) deposited(32)
//	          claimed count(u32) and 32 bytes per claimed leaf
const codecVersion = 1

// EncodeState serializes a campaign state.
func EncodeState(s *funding.State) ([]byte, error) {
	if s == nil {
		return nil, ErrNilState
	}
	if len(s.Name) > math.MaxUint16 || len(s.Symbol) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: name or symbol too long", ErrCorrupt)
	}
	if len(s.Balances) > math.MaxUint32 || len(s.Rounds) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: too many entries", ErrCorrupt)
	}

	var buf []byte
	buf = append(buf, codecVersion)
	buf = append(buf, s.Address[:]...)
	buf = append(buf, byte(s.Status))
	buf = appendAmount(buf, s.Price)
	buf = binary.BigEndian.AppendUint64(buf, s.ReturnBasisPoints)
	buf = appendAmount(buf, s.TotalRaised)

	buf = binary.BigEndian.AppendUint16(buf, uint16(len(s.Name)))
	buf = append(buf, s.Name...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(s.Symbol)))
	buf = append(buf, s.Symbol...)

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s.Balances)))
	for _, e := range s.Balances {
		buf = append(buf, e.Address[:]...)
		buf = appendAmount(buf, e.Amount)
	}

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s.Rounds)))
	for _, r := range s.Rounds {
		if len(r.Claimed) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: too many claimed leaves", ErrCorrupt)
		}
		buf = append(buf, r.Root[:]...)
		buf = appendAmount(buf, r.Deposited)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Claimed)))
		for _, leaf := range r.Claimed {
			buf = append(buf, leaf[:]...)
		}
	}

	return buf, nil
}

// DecodeState deserializes a campaign state.
func DecodeState(data []byte) (*funding.State, error) {
	r := &reader{data: data}

	version, err := r.byte()
	if err != nil {
		return nil, err
	}
	if version != codecVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrCorrupt, version)
	}

	s := &funding.State{}
	addr, err := r.take(token.AddressSize)
	if err != nil {
		return nil, err
	}
	copy(s.Address[:], addr)

	status, err := r.byte()
	if err != nil {
		return nil, err
	}
	s.Status = funding.Status(status)

	if s.Price, err = r.amount(); err != nil {
		return nil, err
	}
	if s.ReturnBasisPoints, err = r.uint64(); err != nil {
		return nil, err
	}
	if s.TotalRaised, err = r.amount(); err != nil {
		return nil, err
	}
	if s.Name, err = r.string16(); err != nil {
		return nil, err
	}
	if s.Symbol, err = r.string16(); err != nil {
		return nil, err
	}

	balanceCount, err := r.uint32()
	if err != nil {
		return nil, err
	}
	s.Balances = make([]token.Entry, 0, balanceCount)
	for i := uint32(0); i < balanceCount; i++ {
		var e token.Entry
		raw, err := r.take(token.AddressSize)
		if err != nil {
			return nil, err
		}
		copy(e.Address[:], raw)
		if e.Amount, err = r.amount(); err != nil {
			return nil, err
		}
		s.Balances = append(s.Balances, e)
	}

	roundCount, err := r.uint32()
	if err != nil {
		return nil, err
	}
	s.Rounds = make([]recoupment.RoundState, 0, roundCount)
	for i := uint32(0); i < roundCount; i++ {
		var round recoupment.RoundState
		raw, err := r.take(merkle.HashSize)
		if err != nil {
			return nil, err
		}
		copy(round.Root[:], raw)
		if round.Deposited, err = r.amount(); err != nil {
			return nil, err
		}
		claimedCount, err := r.uint32()
		if err != nil {
			return nil, err
		}
		for j := uint32(0); j < claimedCount; j++ {
			raw, err := r.take(merkle.HashSize)
			if err != nil {
				return nil, err
			}
			var leaf merkle.Hash
			copy(leaf[:], raw)
			round.Claimed = append(round.Claimed, leaf)
		}
		s.Rounds = append(s.Rounds, round)
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, r.remaining())
	}
	return s, nil
}

func appendAmount(buf []byte, v *uint256.Int) []byte {
	if v == nil {
		v = new(uint256.Int)
	}
	b := v.Bytes32()
	return append(buf, b[:]...)
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) take(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrCorrupt, n, r.remaining())
	}
	out := r.data[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) amount() (*uint256.Int, error) {
	b, err := r.take(32)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(b), nil
}

func (r *reader) string16() (string, error) {
	b, err := r.take(2)
	if err != nil {
		return "", err
	}
	raw, err := r.take(int(binary.BigEndian.Uint16(b)))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
