// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"encoding/binary"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/fault"
)

// TokenType - discriminator between fungible coins and tokens
type TokenType int

// possible currency types
const (
	Fungible    TokenType = 0
	NonFungible TokenType = 1
)

// IsValid - accept only the two defined types
func (t TokenType) IsValid() bool {
	return Fungible == t || NonFungible == t
}

// Record - one currency, keyed in storage by its symbol
//
// invariants maintained by the ledger package:
//   supply == sum of all balances (token holdings are mirrored as balances)
//   issued never decreases
//   when not infinite: issued stays strictly below maximum supply
type Record struct {
	Issuer        account.Name
	Symbol        Symbol
	Supply        int64
	Issued        int64
	MaximumSupply int64
	Infinite      bool
	Typ           TokenType
}

// structure of the packed record
const (
	issuerStart  = 0
	issuerFinish = issuerStart + 8

	symbolStart  = issuerFinish
	symbolFinish = symbolStart + SymbolLength

	supplyStart  = symbolFinish
	supplyFinish = supplyStart + 8

	issuedStart  = supplyFinish
	issuedFinish = issuedStart + 8

	maximumStart  = issuedFinish
	maximumFinish = maximumStart + 8

	flagsStart  = maximumFinish
	flagsFinish = flagsStart + 1

	typeStart  = flagsFinish
	typeFinish = typeStart + 1

	recordLength = typeFinish
)

// Pack - pack the record to its storage bytes
func (r Record) Pack() []byte {
	buffer := make([]byte, recordLength)

	copy(buffer[issuerStart:issuerFinish], r.Issuer.Bytes())
	copy(buffer[symbolStart:symbolFinish], r.Symbol.Bytes())
	binary.BigEndian.PutUint64(buffer[supplyStart:supplyFinish], uint64(r.Supply))
	binary.BigEndian.PutUint64(buffer[issuedStart:issuedFinish], uint64(r.Issued))
	binary.BigEndian.PutUint64(buffer[maximumStart:maximumFinish], uint64(r.MaximumSupply))
	if r.Infinite {
		buffer[flagsStart] = 0x01
	}
	buffer[typeStart] = byte(r.Typ)

	return buffer
}

// RecordFromBytes - unpack a stored currency record
func RecordFromBytes(buffer []byte) (*Record, error) {
	if recordLength != len(buffer) {
		return nil, fault.NotCurrencyRecord
	}

	symbol, err := SymbolFromBytes(buffer[symbolStart:symbolFinish])
	if nil != err {
		return nil, fault.NotCurrencyRecord
	}

	r := &Record{
		Issuer:        account.NameFromValue(binary.BigEndian.Uint64(buffer[issuerStart:issuerFinish])),
		Symbol:        symbol,
		Supply:        int64(binary.BigEndian.Uint64(buffer[supplyStart:supplyFinish])),
		Issued:        int64(binary.BigEndian.Uint64(buffer[issuedStart:issuedFinish])),
		MaximumSupply: int64(binary.BigEndian.Uint64(buffer[maximumStart:maximumFinish])),
		Infinite:      0 != buffer[flagsStart]&0x01,
		Typ:           TokenType(buffer[typeStart]),
	}
	if !r.Typ.IsValid() {
		return nil, fault.NotCurrencyRecord
	}
	return r, nil
}
