// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
)

// Pools - the set of tables
//
// note all fields must be exported or the initialisation will panic
type Pools struct {
	Currencies        *PoolHandle `prefix:"S"`
	Balances          *PoolHandle `prefix:"Q"`
	Tokens            *PoolHandle `prefix:"T"`
	TokenGlobalId     *PoolHandle `prefix:"U"`
	OwnerTokens       *PoolHandle `prefix:"L"`
	SymbolTokens      *PoolHandle `prefix:"Y"`
	ControlTokens     *PoolHandle `prefix:"C"`
	MasterTokens      *PoolHandle `prefix:"M"`
	Auctions          *PoolHandle `prefix:"A"`
	BidQualifications *PoolHandle `prefix:"B"`
	Counters          *PoolHandle `prefix:"N"`
}

// Store - a single database and its pools
//
// every ledger operation runs against exactly one Store passed in
// explicitly; there is no process-wide store
type Store struct {
	sync.RWMutex
	Pool Pools

	db  *leveldb.DB
	log *logger.L
}

// Initialise - open the database and populate the pool handles
func Initialise(database string) (*Store, error) {
	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return nil, err
	}
	return newStore(db)
}

// InitialiseMemory - an in-memory database for testing
func InitialiseMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newStore(db)
}

func newStore(db *leveldb.DB) (*Store, error) {
	store := &Store{
		db:  db,
		log: logger.New("storage"),
	}

	// this will be a struct type
	poolType := reflect.TypeOf(store.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&store.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			database: db,
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	return store, nil
}

// Finalise - close the database
func (s *Store) Finalise() {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return
	}
	_ = s.db.Close()
	s.db = nil
}

// NewTransaction - begin a staged all-or-nothing update
//
// reads through the transaction observe its own staged writes;
// nothing reaches the database until Commit
func (s *Store) NewTransaction() Transaction {
	return &transactionData{
		db:    s.db,
		batch: new(leveldb.Batch),
		cache: newCache(),
	}
}
