// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/fault"
)

func TestNameValidation(t *testing.T) {
	testData := []struct {
		name string
		ok   bool
	}{
		{"alice", true},
		{"a", true},
		{"artist.one", true},
		{"abcde12345ab", true},
		{"artmark", true},
		{"", false},
		{"abcde12345abc", false}, // 13 characters
		{"Alice", false},
		{"alice0", false},
		{"alice-bob", false},
		{".alice", false},
		{"alice.", false},
	}

	for i, item := range testData {
		name, err := account.NameFromString(item.name)
		if item.ok {
			assert.Nil(t, err, "%d: unexpected error for %q", i, item.name)
			assert.Equal(t, item.name, name.String(), "%d: name text", i)
		} else {
			assert.Equal(t, fault.InvalidAccountName, err, "%d: expected invalid name for %q", i, item.name)
		}
	}
}

func TestNameValueRoundTrip(t *testing.T) {
	names := []string{"a", "alice", "artist.one", "zzzzzzzzzzzz", "m", "panda.hero"}

	for i, s := range names {
		name, err := account.NameFromString(s)
		assert.Nil(t, err, "%d: name error", i)
		assert.Equal(t, name, account.NameFromValue(name.Value()), "%d: round trip", i)
	}
}

// value order must match text order so that owner index scans
// return names in a stable lexical order
func TestNameValueOrdering(t *testing.T) {
	ordered := []account.Name{"a", "alice", "b.ob", "bob", "carol"}

	previous := uint64(0)
	for i, name := range ordered {
		v := name.Value()
		if i > 0 && v <= previous {
			t.Errorf("%d: value order broken: %q (%d) after %d", i, name, v, previous)
		}
		previous = v
	}
}

func TestNameValueDistinct(t *testing.T) {
	a := account.Name("alice").Value()
	b := account.Name("aliceb").Value()
	assert.NotEqual(t, a, b, "distinct names must have distinct values")
}
