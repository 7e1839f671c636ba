// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Transaction - a staged multi-pool update
//
// each ledger operation validates, stages every mutation through one
// transaction and commits once; an abort leaves the database untouched
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transactionData struct {
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixed := pool.prefixKey(key)
	t.cache.Set(dbPut, string(prefixed), value)
	t.batch.Put(prefixed, value)
}

func (t *transactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(pool, key, buffer)
}

func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	prefixed := pool.prefixKey(key)
	t.cache.Set(dbDelete, string(prefixed), nil)
	t.batch.Delete(prefixed)
}

// Get - staged value if this transaction wrote the key, else committed value
func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	prefixed := pool.prefixKey(key)
	value, present, staged := t.cache.Get(string(prefixed))
	if staged {
		if !present {
			return nil // staged delete
		}
		return value
	}
	return pool.Get(key)
}

func (t *transactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(pool, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("transaction.GetN truncated record for: %x: %s", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func (t *transactionData) Has(pool *PoolHandle, key []byte) bool {
	return nil != t.Get(pool, key)
}

// Commit - write every staged mutation in one batch
func (t *transactionData) Commit() error {
	err := t.db.Write(t.batch, nil)
	t.reset()
	return err
}

// Abort - discard all staged mutations
func (t *transactionData) Abort() {
	t.reset()
}

func (t *transactionData) reset() {
	t.batch.Reset()
	t.cache.Clear()
}
