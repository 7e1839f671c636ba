// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - atomic counter for tracking open RPC connections
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned integer with atomic operations
//
// the zero value is ready to use
type Counter uint64

// Increment - add 1 and return the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract 1 and return the new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - the current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - true if the current value is zero
func (c *Counter) IsZero() bool {
	return 0 == atomic.LoadUint64((*uint64)(c))
}
