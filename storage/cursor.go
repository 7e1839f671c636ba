// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to a specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count elements starting from the cursor position
//
// the cursor advances past the returned elements so successive calls
// walk the whole range
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, nil
	}
	if nil == cursor.pool.database {
		return nil, nil
	}

	iter := cursor.pool.database.NewIterator(&cursor.maxRange, nil)
	defer iter.Release()

	results := make([]Element, 0, count)
	n := 0
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{
			Key:   dataKey,
			Value: dataValue,
		})

		// advance start past the last key returned
		cursor.maxRange.Start = incrementKey(key)

		n += 1
		if n >= count {
			break iterating
		}
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}
	return results, nil
}

// next possible key after the given one
func incrementKey(key []byte) []byte {
	next := make([]byte, len(key), len(key)+1)
	copy(next, key)
	return append(next, 0x00)
}
