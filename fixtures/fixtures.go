// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test helpers
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// LedgerName - the ledger operator account used by tests
const LedgerName = account.Name("artmark")

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Payment - one outbound payment recorded by the test environment
type Payment struct {
	From   account.Name
	To     account.Name
	Amount currency.Amount
	Memo   string
}

// Environment - scriptable host environment
//
// the zero value approves everything, believes every valid name exists
// and keeps time at zero; tests adjust the fields they care about
type Environment struct {
	Authorized map[account.Name]bool // nil means authorise everyone
	Missing    map[account.Name]bool // accounts reported as non-existent
	Time       int64
	Notified   []account.Name
	Payments   []Payment
}

func (e *Environment) AccountExists(name account.Name) bool {
	if e.Missing[name] {
		return false
	}
	return name.IsValid()
}

func (e *Environment) RequireAuthorization(name account.Name) error {
	if nil == e.Authorized || e.Authorized[name] {
		return nil
	}
	return fault.NotAuthorised
}

func (e *Environment) Notify(name account.Name) {
	e.Notified = append(e.Notified, name)
}

func (e *Environment) CurrentTime() int64 {
	return e.Time
}

func (e *Environment) SendPayment(from account.Name, to account.Name, quantity currency.Amount, memo string) {
	e.Payments = append(e.Payments, Payment{
		From:   from,
		To:     to,
		Amount: quantity,
		Memo:   memo,
	})
}
