// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/storage"
)

const (
	testingDirName = "testing"
)

var store *storage.Store

func TestMain(m *testing.M) {
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	var err error
	store, err = storage.InitialiseMemory()
	if nil != err {
		fmt.Fprintf(os.Stderr, "storage initialise error: %s\n", err)
		os.Exit(1)
	}

	rc := m.Run()

	store.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func TestTransactionCommit(t *testing.T) {
	pool := store.Pool.Currencies

	trx := store.NewTransaction()
	trx.Put(pool, []byte("key-one"), []byte("data-one"))
	trx.PutN(pool, []byte("key-two"), 90125)

	// staged writes are not yet visible on the pool
	assert.Nil(t, pool.Get([]byte("key-one")), "uncommitted write must not be visible")

	// but are visible through the transaction
	assert.Equal(t, []byte("data-one"), trx.Get(pool, []byte("key-one")), "staged read")
	n, found := trx.GetN(pool, []byte("key-two"))
	assert.True(t, found, "staged counter read")
	assert.Equal(t, uint64(90125), n, "staged counter value")

	err := trx.Commit()
	assert.Nil(t, err, "commit error")

	assert.Equal(t, []byte("data-one"), pool.Get([]byte("key-one")), "committed value")
	n, found = pool.GetN([]byte("key-two"))
	assert.True(t, found, "committed counter")
	assert.Equal(t, uint64(90125), n, "committed counter value")
}

func TestTransactionAbort(t *testing.T) {
	pool := store.Pool.Tokens

	trx := store.NewTransaction()
	trx.Put(pool, []byte("discard"), []byte("me"))
	trx.Abort()

	assert.Nil(t, pool.Get([]byte("discard")), "aborted write must not reach the database")
	assert.False(t, pool.Has([]byte("discard")), "aborted key must not exist")
}

func TestTransactionStagedDelete(t *testing.T) {
	pool := store.Pool.Balances

	trx := store.NewTransaction()
	trx.Put(pool, []byte("balance"), []byte{0, 0, 0, 0, 0, 0, 0, 5})
	assert.Nil(t, trx.Commit(), "commit error")

	trx = store.NewTransaction()
	trx.Delete(pool, []byte("balance"))

	// the staged delete hides the committed value inside the transaction
	assert.Nil(t, trx.Get(pool, []byte("balance")), "staged delete must hide value")
	assert.False(t, trx.Has(pool, []byte("balance")), "staged delete must hide key")

	// committed state is unchanged until commit
	assert.True(t, pool.Has([]byte("balance")), "committed value still present")

	assert.Nil(t, trx.Commit(), "commit error")
	assert.False(t, pool.Has([]byte("balance")), "delete was committed")
}

func TestCursorFetch(t *testing.T) {
	pool := store.Pool.OwnerTokens

	trx := store.NewTransaction()
	expected := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	// store in scrambled order, fetch must come back sorted
	for _, k := range []string{"delta", "alpha", "echo", "charlie", "bravo"} {
		trx.Put(pool, []byte(k), []byte("v-"+k))
	}
	assert.Nil(t, trx.Commit(), "commit error")

	cursor := pool.NewFetchCursor()
	elements, err := cursor.Fetch(100)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, len(expected), len(elements), "element count")
	for i, e := range elements {
		assert.Equal(t, expected[i], string(e.Key), "%d: key order", i)
		assert.Equal(t, "v-"+expected[i], string(e.Value), "%d: value", i)
	}
}

func TestCursorFetchPaged(t *testing.T) {
	pool := store.Pool.SymbolTokens

	trx := store.NewTransaction()
	for i := 0; i < 5; i += 1 {
		trx.Put(pool, []byte{byte(i)}, []byte{byte(i)})
	}
	assert.Nil(t, trx.Commit(), "commit error")

	cursor := pool.NewFetchCursor()

	first, err := cursor.Fetch(2)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 2, len(first), "first page count")

	second, err := cursor.Fetch(100)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 3, len(second), "second page count")
	assert.Equal(t, []byte{2}, second[0].Key, "pages must not overlap")
}

// pools must be isolated: the same key in two pools is two records
func TestPoolIsolation(t *testing.T) {
	trx := store.NewTransaction()
	trx.Put(store.Pool.Auctions, []byte("shared"), []byte("auction"))
	trx.Put(store.Pool.BidQualifications, []byte("shared"), []byte("credit"))
	assert.Nil(t, trx.Commit(), "commit error")

	assert.Equal(t, []byte("auction"), store.Pool.Auctions.Get([]byte("shared")), "auction pool value")
	assert.Equal(t, []byte("credit"), store.Pool.BidQualifications.Get([]byte("shared")), "qualification pool value")
}

func TestLastElement(t *testing.T) {
	pool := store.Pool.ControlTokens

	_, found := pool.LastElement()
	assert.False(t, found, "empty pool has no last element")

	trx := store.NewTransaction()
	trx.Put(pool, []byte{0x01}, []byte("first"))
	trx.Put(pool, []byte{0x07}, []byte("last"))
	assert.Nil(t, trx.Commit(), "commit error")

	e, found := pool.LastElement()
	assert.True(t, found, "last element present")
	assert.Equal(t, []byte{0x07}, e.Key, "last key")
	assert.Equal(t, []byte("last"), e.Value, "last value")
}
