// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/tokenid"
)

func TestGlobalIdDerivation(t *testing.T) {
	authority := account.Name("artmark")

	g := tokenid.NewGlobalId(authority, 7)
	assert.Equal(t, authority, g.Authority(), "authority decode")
	assert.Equal(t, tokenid.TokenId(7), g.TokenId(), "token id decode")

	// same inputs must derive the same id, no lookup involved
	assert.Equal(t, g, tokenid.NewGlobalId(authority, 7), "derivation is pure")
}

func TestGlobalIdNoCollisionAcrossAuthorities(t *testing.T) {
	a := tokenid.NewGlobalId("artmark", 1)
	b := tokenid.NewGlobalId("othermark", 1)
	assert.NotEqual(t, a, b, "identical local ids under different authorities must differ")
}

func TestGlobalIdBytesRoundTrip(t *testing.T) {
	g := tokenid.NewGlobalId("artmark", 90125)

	buffer := g.Bytes()
	assert.Equal(t, tokenid.GlobalIdLength, len(buffer), "packed length")

	decoded, err := tokenid.GlobalIdFromBytes(buffer)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, g, decoded, "round trip")

	_, err = tokenid.GlobalIdFromBytes(buffer[:15])
	assert.NotNil(t, err, "short buffer must fail")
}

func TestGlobalIdDecimalString(t *testing.T) {
	zero := tokenid.GlobalId{}
	assert.Equal(t, "0", zero.String(), "zero renders as single digit")

	// low word only: decimal equals the token id
	low := tokenid.NewGlobalId("", 90125)
	assert.Equal(t, "90125", low.String(), "low word decimal")

	testData := []struct {
		authority account.Name
		id        tokenid.TokenId
	}{
		{"artmark", 0},
		{"artmark", 1},
		{"artmark", 18446744073709551615},
		{"zzzzzzzzzzzz", 90125},
		{"a", 12},
	}

	for i, item := range testData {
		g := tokenid.NewGlobalId(item.authority, item.id)
		parsed, err := tokenid.GlobalIdFromString(g.String())
		assert.Nil(t, err, "%d: parse error", i)
		assert.Equal(t, g, parsed, "%d: decimal round trip", i)
	}
}

func TestGlobalIdFromStringRejects(t *testing.T) {
	invalid := []string{
		"",
		"12a4",
		"-1",
		"1234567890123456789012345678901234567890", // 40 digits

		// 39 digit values above 2^128-1 must fail, not wrap
		"340282366920938463463374607431768211456",
		"999999999999999999999999999999999999999",
	}
	for i, s := range invalid {
		_, err := tokenid.GlobalIdFromString(s)
		assert.NotNil(t, err, "%d: %q must be rejected", i, s)
	}

	// the largest 128 bit value still parses
	maximum, err := tokenid.GlobalIdFromString("340282366920938463463374607431768211455")
	assert.Nil(t, err, "maximum value rejected")
	assert.Equal(t, "340282366920938463463374607431768211455", maximum.String(), "maximum round trip")
}
