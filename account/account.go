// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/binary"
	"strings"

	"github.com/artmark-inc/artmarkd/fault"
)

// Name - an account name on the ledger
//
// a name is 1 to 12 characters from the set "a-z", "1-5" and ".",
// must not begin or end with a dot and packs losslessly into a
// 64 bit value that orders the same way as the text
type Name string

// limits from the host naming scheme
const (
	MinNameLength = 1
	MaxNameLength = 12
)

// character value table: "." = 0, "1".."5" = 1..5, "a".."z" = 6..31
const nameCharacters = ".12345abcdefghijklmnopqrstuvwxyz"

// NameFromString - validate a string as an account name
func NameFromString(s string) (Name, error) {
	if len(s) < MinNameLength || len(s) > MaxNameLength {
		return "", fault.InvalidAccountName
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return "", fault.InvalidAccountName
	}
	for _, c := range s {
		if !strings.ContainsRune(nameCharacters, c) {
			return "", fault.InvalidAccountName
		}
	}
	return Name(s), nil
}

// IsValid - check the name obeys the encoding rules
func (n Name) IsValid() bool {
	_, err := NameFromString(string(n))
	return nil == err
}

// Value - pack the name into its 64 bit identity value
//
// five bits per character, first character in the most significant
// position so that numeric order matches lexical order
func (n Name) Value() uint64 {
	value := uint64(0)
	for i := 0; i < MaxNameLength; i += 1 {
		c := uint64(0)
		if i < len(n) {
			c = uint64(strings.IndexByte(nameCharacters, n[i]))
		}
		value |= c << uint(64-5*(i+1))
	}
	return value
}

// NameFromValue - unpack a 64 bit identity value back to its name
func NameFromValue(value uint64) Name {
	buffer := make([]byte, 0, MaxNameLength)
	for i := 0; i < MaxNameLength; i += 1 {
		c := (value >> uint(64-5*(i+1))) & 0x1f
		buffer = append(buffer, nameCharacters[c])
	}
	return Name(strings.TrimRight(string(buffer), "."))
}

// Bytes - 8 byte big endian rendering of the identity value for index keys
func (n Name) Bytes() []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n.Value())
	return buffer
}

// String - the name text
func (n Name) String() string {
	return string(n)
}
