// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
)

// TrustedEnvironment - the environment used by the daemon
//
// transport level authentication already happened before a request
// reaches the ledger, so authorization always succeeds here; identity
// is name validity; notifications and payments are logged for the
// operator's payment channel to pick up
type TrustedEnvironment struct {
	log   *logger.L
	clock func() int64
}

// NewTrusted - environment backed by the wall clock
func NewTrusted() *TrustedEnvironment {
	return &TrustedEnvironment{
		log: logger.New("host"),
		clock: func() int64 {
			return time.Now().Unix()
		},
	}
}

// AccountExists - any validly formed name exists
func (e *TrustedEnvironment) AccountExists(name account.Name) bool {
	return name.IsValid()
}

// RequireAuthorization - approved upstream
func (e *TrustedEnvironment) RequireAuthorization(name account.Name) error {
	e.log.Debugf("authorise: %s", name)
	return nil
}

// Notify - log the reference
func (e *TrustedEnvironment) Notify(name account.Name) {
	e.log.Infof("notify: %s", name)
}

// CurrentTime - wall clock seconds
func (e *TrustedEnvironment) CurrentTime() int64 {
	return e.clock()
}

// SendPayment - log the outbound payment
func (e *TrustedEnvironment) SendPayment(from account.Name, to account.Name, quantity currency.Amount, memo string) {
	e.log.Infof("payment: %s -> %s  %s  memo: %q", from, to, quantity, memo)
}
