package invite

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dropforge/libdrop-go/pricing"
	"github.com/dropforge/libdrop-go/token"
)

const (
	// price(8)+start(8)+end(8)+limit(8)+max_supply(8)+unit_size(8)+
	// token(20)+flags(1)+reserve(8)+interval(8)+delta(8)+num_tiers(2)
	inviteHeaderSize = 9*8 + token.AddressLen + 1 + 2
	bonusTierSize    = 16 // num_mints(8) + num_bonus(8)

	flagBlacklist = 0x01
)

// SerializeInvite encodes an Invite to binary format for persistence.
func SerializeInvite(inv *Invite) ([]byte, error) {
	if len(inv.BonusTiers) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d bonus tiers", ErrInvalidInviteData, len(inv.BonusTiers))
	}
	buf := make([]byte, inviteHeaderSize+bonusTierSize*len(inv.BonusTiers))
	offset := 0

	for _, v := range []uint64{inv.Price, uint64(inv.Start), uint64(inv.End), inv.Limit, inv.MaxSupply, inv.UnitSize} {
		binary.BigEndian.PutUint64(buf[offset:offset+8], v)
		offset += 8
	}

	copy(buf[offset:offset+token.AddressLen], inv.TokenAddress[:])
	offset += token.AddressLen

	if inv.IsBlacklist {
		buf[offset] = flagBlacklist
	}
	offset++

	for _, v := range []uint64{inv.ReservePrice, inv.Interval, inv.Delta} {
		binary.BigEndian.PutUint64(buf[offset:offset+8], v)
		offset += 8
	}

	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(inv.BonusTiers)))
	offset += 2

	for _, tier := range inv.BonusTiers {
		binary.BigEndian.PutUint64(buf[offset:offset+8], tier.NumMints)
		offset += 8
		binary.BigEndian.PutUint64(buf[offset:offset+8], tier.NumBonusMints)
		offset += 8
	}

	return buf, nil
}

// DeserializeInvite decodes binary data into an Invite.
func DeserializeInvite(data []byte) (*Invite, error) {
	if len(data) < inviteHeaderSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidInviteData, len(data))
	}
	offset := 0

	inv := &Invite{}
	inv.Price = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	inv.Start = int64(binary.BigEndian.Uint64(data[offset : offset+8]))
	offset += 8
	inv.End = int64(binary.BigEndian.Uint64(data[offset : offset+8]))
	offset += 8
	inv.Limit = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	inv.MaxSupply = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	inv.UnitSize = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8

	copy(inv.TokenAddress[:], data[offset:offset+token.AddressLen])
	offset += token.AddressLen

	inv.IsBlacklist = data[offset]&flagBlacklist != 0
	offset++

	inv.ReservePrice = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	inv.Interval = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	inv.Delta = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8

	numTiers := int(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2

	expected := inviteHeaderSize + bonusTierSize*numTiers
	if len(data) < expected {
		return nil, fmt.Errorf("%w: expected %d bytes for %d tiers, got %d",
			ErrInvalidInviteData, expected, numTiers, len(data))
	}

	if numTiers > 0 {
		inv.BonusTiers = make([]pricing.BonusTier, numTiers)
		for i := 0; i < numTiers; i++ {
			inv.BonusTiers[i].NumMints = binary.BigEndian.Uint64(data[offset : offset+8])
			offset += 8
			inv.BonusTiers[i].NumBonusMints = binary.BigEndian.Uint64(data[offset : offset+8])
			offset += 8
		}
	}

	return inv, nil
}
