// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/artwork"
	"github.com/artmark-inc/artmarkd/auction"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/host"
	"github.com/artmark-inc/artmarkd/ledger"
	"github.com/artmark-inc/artmarkd/registry"
	"github.com/artmark-inc/artmarkd/rpc"
	"github.com/artmark-inc/artmarkd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Ledger", theConfiguration.Ledger)

	// validate the ledger section
	operator, err := account.NameFromString(theConfiguration.Ledger.Operator)
	if nil != err {
		log.Criticalf("invalid operator: %q  error: %s", theConfiguration.Ledger.Operator, err)
		exitwithstatus.Message("invalid operator: %q  error: %s", theConfiguration.Ledger.Operator, err)
	}
	artSymbol, err := currency.SymbolFromString(theConfiguration.Ledger.ArtSymbol)
	if nil != err {
		exitwithstatus.Message("invalid art symbol: %q  error: %s", theConfiguration.Ledger.ArtSymbol, err)
	}
	bidSymbol, err := currency.SymbolFromString(theConfiguration.Ledger.BidSymbol)
	if nil != err {
		exitwithstatus.Message("invalid bid symbol: %q  error: %s", theConfiguration.Ledger.BidSymbol, err)
	}
	qualificationSymbol, err := currency.SymbolFromString(theConfiguration.Ledger.QualificationSymbol)
	if nil != err {
		exitwithstatus.Message("invalid qualification symbol: %q  error: %s", theConfiguration.Ledger.QualificationSymbol, err)
	}

	// start the data storage
	log.Info("initialise storage")
	store, err := storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Finalise()

	// assemble the ledger stack
	environment := host.NewTrusted()
	theLedger := ledger.New(environment, operator, store)
	theRegistry := registry.New(environment, theLedger, store)
	theArtwork := artwork.New(environment, theLedger, theRegistry, store, artSymbol)
	theAuction := auction.New(environment, theLedger, theRegistry, store, auction.Settings{
		BidSymbol:            bidSymbol,
		QualificationSymbol:  qualificationSymbol,
		QualificationMinimum: theConfiguration.Ledger.QualificationMinimum,
		RefundFailedBids:     theConfiguration.Ledger.RefundFailedBids,
	})

	// first run: register the configured currencies
	err = ensureCurrency(theLedger, operator, artSymbol, currency.NonFungible)
	if nil != err {
		log.Criticalf("create currency: %s error: %s", artSymbol, err)
		exitwithstatus.Message("create currency: %s error: %s", artSymbol, err)
	}
	err = ensureCurrency(theLedger, operator, bidSymbol, currency.Fungible)
	if nil != err {
		log.Criticalf("create currency: %s error: %s", bidSymbol, err)
		exitwithstatus.Message("create currency: %s error: %s", bidSymbol, err)
	}
	err = ensureCurrency(theLedger, operator, qualificationSymbol, currency.Fungible)
	if nil != err {
		log.Criticalf("create currency: %s error: %s", qualificationSymbol, err)
		exitwithstatus.Message("create currency: %s error: %s", qualificationSymbol, err)
	}

	// certificate and key are stored as file names in the
	// configuration, the rpc system wants the PEM contents
	certificatePEM, err := ioutil.ReadFile(theConfiguration.ClientRPC.Certificate)
	if nil != err {
		exitwithstatus.Message("certificate: %q read error: %s", theConfiguration.ClientRPC.Certificate, err)
	}
	privateKeyPEM, err := ioutil.ReadFile(theConfiguration.ClientRPC.PrivateKey)
	if nil != err {
		exitwithstatus.Message("private key: %q read error: %s", theConfiguration.ClientRPC.PrivateKey, err)
	}
	theConfiguration.ClientRPC.Certificate = string(certificatePEM)
	theConfiguration.ClientRPC.PrivateKey = string(privateKeyPEM)

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, rpc.Handles{
		Store:    store,
		Ledger:   theLedger,
		Registry: theRegistry,
		Artwork:  theArtwork,
		Auction:  theAuction,
	})
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// register a currency on first run, infinite supply
func ensureCurrency(l *ledger.Ledger, operator account.Name, symbol currency.Symbol, typ currency.TokenType) error {
	_, err := l.Currency(symbol)
	if nil == err {
		return nil // already registered
	}
	if fault.CurrencyDoesNotExist != err {
		return err
	}
	return l.CreateCurrency(operator, currency.NewAmount(0, symbol), typ)
}
