// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/artmark-inc/artmarkd/fault"
)

// delay a request according to the handler's rate limiter
func rateLimit(limiter *rate.Limiter) error {
	return reserve(limiter, 1)
}

// delay a request that consumes count units, e.g. one per
// collaborator on an artwork mint
//
// an out of range count is still charged as a single request so a
// flood of invalid calls does not bypass the limiter
func rateLimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := reserve(limiter, 1); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return reserve(limiter, count)
}

func reserve(limiter *rate.Limiter, count int) error {
	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
