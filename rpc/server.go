// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/counter"
)

// create an RPC server instance with all handlers registered
func createServer(log *logger.L, version string, count *counter.Counter, handles Handles) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(newCurrency(log, handles))
	_ = server.Register(newToken(log, handles))
	_ = server.Register(newArtwork(log, handles))
	_ = server.Register(newAuction(log, handles))
	_ = server.Register(newNode(log, start, version, count))

	return server
}
