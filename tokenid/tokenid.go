// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenid

import (
	"encoding/binary"
	"math/bits"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/fault"
)

// TokenId - the local sequence number of a token
//
// assigned monotonically by the registry and never reused
type TokenId uint64

// TokenIdLength - byte size of a packed token id
const TokenIdLength = 8

// Bytes - 8 byte big endian rendering for index keys
func (id TokenId) Bytes() []byte {
	buffer := make([]byte, TokenIdLength)
	binary.BigEndian.PutUint64(buffer, uint64(id))
	return buffer
}

// TokenIdFromBytes - decode an 8 byte key back to a token id
func TokenIdFromBytes(buffer []byte) (TokenId, error) {
	if TokenIdLength != len(buffer) {
		return 0, fault.NotTokenRecord
	}
	return TokenId(binary.BigEndian.Uint64(buffer)), nil
}

// GlobalId - 128 bit identifier unique across all deployments
//
// high 64 bits are the issuing ledger account's identity value,
// low 64 bits are the local token id; the derivation is a pure
// function so identical (authority, id) pairs always yield the
// same global id and different authorities can never collide
type GlobalId struct {
	hi uint64
	lo uint64
}

// GlobalIdLength - byte size of a packed global id
const GlobalIdLength = 16

// NewGlobalId - derive the global id for a token
func NewGlobalId(authority account.Name, id TokenId) GlobalId {
	return GlobalId{
		hi: authority.Value(),
		lo: uint64(id),
	}
}

// Authority - recover the issuing authority from a global id
func (g GlobalId) Authority() account.Name {
	return account.NameFromValue(g.hi)
}

// TokenId - recover the local token id from a global id
func (g GlobalId) TokenId() TokenId {
	return TokenId(g.lo)
}

// IsZero - check for the zero id
func (g GlobalId) IsZero() bool {
	return 0 == g.hi && 0 == g.lo
}

// Bytes - 16 byte big endian rendering for index keys
func (g GlobalId) Bytes() []byte {
	buffer := make([]byte, GlobalIdLength)
	binary.BigEndian.PutUint64(buffer[:8], g.hi)
	binary.BigEndian.PutUint64(buffer[8:], g.lo)
	return buffer
}

// GlobalIdFromBytes - decode a 16 byte key back to a global id
func GlobalIdFromBytes(buffer []byte) (GlobalId, error) {
	if GlobalIdLength != len(buffer) {
		return GlobalId{}, fault.NotTokenRecord
	}
	return GlobalId{
		hi: binary.BigEndian.Uint64(buffer[:8]),
		lo: binary.BigEndian.Uint64(buffer[8:]),
	}, nil
}

// String - decimal digit string, most significant digit first
//
// used to embed a master token reference in a layer token URI
func (g GlobalId) String() string {
	if g.IsZero() {
		return "0"
	}

	// maximum of 39 decimal digits for a 128 bit value
	buffer := make([]byte, 0, 39)

	hi := g.hi
	lo := g.lo
	for 0 != hi || 0 != lo {
		qhi := hi / 10
		qlo, r := bits.Div64(hi%10, lo, 10)
		buffer = append(buffer, byte('0'+r))
		hi = qhi
		lo = qlo
	}

	// digits were produced least significant first
	for i, j := 0, len(buffer)-1; i < j; i, j = i+1, j-1 {
		buffer[i], buffer[j] = buffer[j], buffer[i]
	}
	return string(buffer)
}

// GlobalIdFromString - parse a decimal digit string
func GlobalIdFromString(s string) (GlobalId, error) {
	if "" == s || len(s) > 39 {
		return GlobalId{}, fault.NotTokenRecord
	}

	g := GlobalId{}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return GlobalId{}, fault.NotTokenRecord
		}

		// multiply accumulator by ten, rejecting 128 bit overflow
		carryHi, loTimes10 := bits.Mul64(g.lo, 10)
		overflow, hiTimes10 := bits.Mul64(g.hi, 10)
		hi, carry := bits.Add64(hiTimes10, carryHi, 0)
		if 0 != overflow || 0 != carry {
			return GlobalId{}, fault.NotTokenRecord
		}

		// add the next digit
		lo, carry := bits.Add64(loTimes10, uint64(c-'0'), 0)
		hi, carry = bits.Add64(hi, 0, carry)
		if 0 != carry {
			return GlobalId{}, fault.NotTokenRecord
		}
		g.hi = hi
		g.lo = lo
	}
	return g, nil
}
