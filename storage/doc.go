// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++        = concatenation of byte data
// 3. id        = token local id as big endian uint64 (8 bytes)
// 4. uuid      = token global id as big endian uint128 (16 bytes)
// 5. owner     = account identity value as big endian uint64 (8 bytes)
// 6. symbol    = symbol code value as big endian uint64 (8 bytes)
// 7. *others*  = byte values of various length
//
// Currencies:
//
//   S ++ symbol           - currency record
//                           data: issuer ++ symbol ++ supply ++ issued ++ maximum ++ flags ++ type
//
// Balances:
//
//   Q ++ owner ++ symbol  - balance quantity for each owner (deleted if value becomes zero)
//                           data: quantity
//
// Tokens:
//
//   T ++ id               - token record
//                           data: packed token data
//   U ++ uuid             - global id index
//                           data: id
//   L ++ owner ++ id      - list of owned tokens
//                           data: uuid
//   Y ++ symbol ++ id     - list of tokens issued under a symbol
//                           data: uuid
//
// Control tokens:
//
//   C ++ id               - control token record
//                           data: packed control token data
//   M ++ master ++ id     - layer tokens of a master token
//                           data: uuid
//
// Auctions:
//
//   A ++ id               - auction record (reused across auction cycles)
//                           data: packed auction data
//   B ++ owner            - remaining bid qualification credits (never deleted)
//                           data: count
//
// Counters:
//
//   N ++ "tokenid"        - next token local id
//                           data: count
package storage
