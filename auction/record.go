// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"encoding/binary"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/tokenid"
)

// State - auction cycle state
type State byte

// a record cycles OPEN -> CLOSED and may be reopened by its owner
const (
	StateOpen   State = 0
	StateClosed State = 1
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Record - auction state for one token
//
// while OPEN the price only rises and the end time is fixed; the
// record survives closure so the owner can reopen a fresh cycle
type Record struct {
	Id      tokenid.TokenId
	Bidder  account.Name
	Price   currency.Amount
	EndTime int64
	State   State
	BidTime int64
}

// structure of the packed auction record
const (
	auctionIdStart  = 0
	auctionIdFinish = auctionIdStart + tokenid.TokenIdLength

	bidderStart  = auctionIdFinish
	bidderFinish = bidderStart + 8

	priceSymbolStart  = bidderFinish
	priceSymbolFinish = priceSymbolStart + currency.SymbolLength

	priceQuantityStart  = priceSymbolFinish
	priceQuantityFinish = priceQuantityStart + 8

	endTimeStart  = priceQuantityFinish
	endTimeFinish = endTimeStart + 8

	stateStart  = endTimeFinish
	stateFinish = stateStart + 1

	bidTimeStart  = stateFinish
	bidTimeFinish = bidTimeStart + 8

	auctionRecordLength = bidTimeFinish
)

// Pack - pack the auction record to its storage bytes
func (r Record) Pack() []byte {
	buffer := make([]byte, auctionRecordLength)

	copy(buffer[auctionIdStart:auctionIdFinish], r.Id.Bytes())
	copy(buffer[bidderStart:bidderFinish], r.Bidder.Bytes())
	copy(buffer[priceSymbolStart:priceSymbolFinish], r.Price.Symbol.Bytes())
	binary.BigEndian.PutUint64(buffer[priceQuantityStart:priceQuantityFinish], uint64(r.Price.Quantity))
	binary.BigEndian.PutUint64(buffer[endTimeStart:endTimeFinish], uint64(r.EndTime))
	buffer[stateStart] = byte(r.State)
	binary.BigEndian.PutUint64(buffer[bidTimeStart:bidTimeFinish], uint64(r.BidTime))

	return buffer
}

// RecordFromBytes - unpack a stored auction record
func RecordFromBytes(buffer []byte) (*Record, error) {
	if auctionRecordLength != len(buffer) {
		return nil, fault.NotAuctionRecord
	}

	id, err := tokenid.TokenIdFromBytes(buffer[auctionIdStart:auctionIdFinish])
	if nil != err {
		return nil, fault.NotAuctionRecord
	}
	symbol, err := currency.SymbolFromBytes(buffer[priceSymbolStart:priceSymbolFinish])
	if nil != err {
		return nil, fault.NotAuctionRecord
	}

	return &Record{
		Id:     id,
		Bidder: account.NameFromValue(binary.BigEndian.Uint64(buffer[bidderStart:bidderFinish])),
		Price: currency.NewAmount(
			int64(binary.BigEndian.Uint64(buffer[priceQuantityStart:priceQuantityFinish])),
			symbol),
		EndTime: int64(binary.BigEndian.Uint64(buffer[endTimeStart:endTimeFinish])),
		State:   State(buffer[stateStart]),
		BidTime: int64(binary.BigEndian.Uint64(buffer[bidTimeStart:bidTimeFinish])),
	}, nil
}
