// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
//
// standard golang RPC services can only handle GOB encoded requests
// this used a JSON encoder based from the net/rpc/jsonrpc package
// to allow clients from other languages to access the daemon
package rpc
