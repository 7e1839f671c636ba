// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"encoding/binary"

	"github.com/artmark-inc/artmarkd/fault"
)

// Symbol - a currency symbol code
//
// one to seven characters "A" to "Z"; all token currencies are whole
// number (zero display precision) so no precision is carried here
type Symbol string

// MaxSymbolLength - limit from the host symbol scheme
const MaxSymbolLength = 7

// SymbolLength - byte size of a packed symbol code
const SymbolLength = 8

// SymbolFromString - validate a string as a symbol code
func SymbolFromString(s string) (Symbol, error) {
	if "" == s || len(s) > MaxSymbolLength {
		return "", fault.InvalidSymbolName
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return "", fault.InvalidSymbolName
		}
	}
	return Symbol(s), nil
}

// IsValid - check the symbol obeys the encoding rules
func (s Symbol) IsValid() bool {
	_, err := SymbolFromString(string(s))
	return nil == err
}

// Value - pack the symbol code into a uint64
//
// first character in the most significant byte, zero padded, so that
// numeric order matches lexical order and no code is a prefix of another
func (s Symbol) Value() uint64 {
	value := uint64(0)
	for i := 0; i < MaxSymbolLength; i += 1 {
		c := byte(0)
		if i < len(s) {
			c = s[i]
		}
		value = value<<8 | uint64(c)
	}
	return value << 8
}

// Bytes - 8 byte big endian rendering for index keys
func (s Symbol) Bytes() []byte {
	buffer := make([]byte, SymbolLength)
	binary.BigEndian.PutUint64(buffer, s.Value())
	return buffer
}

// SymbolFromBytes - decode an 8 byte key back to a symbol code
func SymbolFromBytes(buffer []byte) (Symbol, error) {
	if SymbolLength != len(buffer) {
		return "", fault.InvalidSymbolName
	}
	code := make([]byte, 0, MaxSymbolLength)
	for _, c := range buffer {
		if 0 == c {
			break
		}
		code = append(code, c)
	}
	return SymbolFromString(string(code))
}

// String - the symbol text
func (s Symbol) String() string {
	return string(s)
}
