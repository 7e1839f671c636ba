// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package host - the external collaborators the ledger depends on
//
// identity, authorization, notification delivery, time and payment
// transport are supplied by the execution environment; the ledger only
// states which account must have approved an operation and who is to
// be notified or paid
package host

import (
	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
)

// Environment - collaborator interface
type Environment interface {

	// AccountExists - identity check
	AccountExists(name account.Name) bool

	// RequireAuthorization - fails the whole request unless the named
	// authority approved it
	RequireAuthorization(name account.Name) error

	// Notify - best effort information that an account was referenced;
	// delivery failure is the collaborator's concern
	Notify(name account.Name)

	// CurrentTime - seconds, monotonic within one request
	CurrentTime() int64

	// SendPayment - fire and forget outbound currency payment
	SendPayment(from account.Name, to account.Name, quantity currency.Amount, memo string)
}
