// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/artwork"
	"github.com/artmark-inc/artmarkd/auction"
	"github.com/artmark-inc/artmarkd/counter"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/ledger"
	"github.com/artmark-inc/artmarkd/registry"
	"github.com/artmark-inc/artmarkd/storage"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
	minBandwidth       = 1000000 // 1Mbps
)

// Configuration - configuration file data for RPC setup
type Configuration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64  `gluamapper:"bandwidth" json:"bandwidth"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Handles - the subsystems the RPC handlers operate on
type Handles struct {
	Store    *storage.Store
	Ledger   *ledger.Ledger
	Registry *registry.Registry
	Artwork  *artwork.Artwork
	Auction  *auction.Auction
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners       []net.Listener
	connectionCount counter.Counter

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC listeners
func Initialise(configuration *Configuration, version string, handles Handles) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return fault.MissingParameters
	}
	if configuration.Bandwidth <= minBandwidth { // fail if < 1Mbps
		log.Errorf("invalid %s bandwidth: %f bps < 1Mbps", logName, configuration.Bandwidth)
		return fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return fault.MissingParameters
	}

	tlsConfiguration, fin, err := getCertificate(log, logName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", logName, fin)

	// validate all listen addresses
	ipType, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return err
	}

	server := createServer(log, version, &globalData.connectionCount, handles)

	for i, listen := range configuration.Listen {
		log.Infof("starting RPC server: %s", listen)
		l, err := tls.Listen(ipType[i], listen, tlsConfiguration)
		if nil != err {
			log.Errorf("rpc server listen error: %s", err)
			return err
		}
		globalData.listeners = append(globalData.listeners, l)

		go doServeRPC(l, server, configuration.MaximumConnections, log, &globalData.connectionCount)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, l := range globalData.listeners {
		_ = l.Close()
	}
	globalData.listeners = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func doServeRPC(listen net.Listener, server *rpc.Server, maximumConnections uint64, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			log.Errorf("rpc.server terminated: accept error: %s", err)
			break
		}
		if count.Increment() <= maximumConnections {
			go func() {
				server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				count.Decrement()
			}()
		} else {
			count.Decrement()
			_ = conn.Close()
		}
	}
	_ = listen.Close()
	log.Error("RPC accept terminated")
}

func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			addrs[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			listen = "::"
			parsed[i] = "tcp"
		} else if '[' == listen[0] {
			listen = strings.Split(listen[1:], "]:")[0]
			parsed[i] = "tcp6"
		} else {
			listen = strings.Split(listen, ":")[0]
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(listen); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
