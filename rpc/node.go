// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/counter"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for the RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	counter *counter.Counter
}

func newNode(log *logger.L, start time.Time, version string, count *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		counter: count,
	}
}

// ---

// InfoArguments - no arguments
type InfoArguments struct {
}

// InfoReply - basic daemon information
type InfoReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Connections uint64 `json:"connections"`
}

// Info - return daemon version and uptime
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {
	if err := rateLimit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Connections = node.counter.Uint64()
	return nil
}
