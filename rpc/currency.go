// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/ledger"
)

const (
	rateLimitCurrency = 200
	rateBurstCurrency = 100
)

// Currency - type for the RPC
type Currency struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *ledger.Ledger
}

func newCurrency(log *logger.L, handles Handles) *Currency {
	return &Currency{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCurrency, rateBurstCurrency),
		Ledger:  handles.Ledger,
	}
}

// ---

// CurrencyCreateArguments - arguments for creating a currency
type CurrencyCreateArguments struct {
	Issuer        string `json:"issuer"`
	MaximumSupply string `json:"maximumSupply"`
	TokenType     uint64 `json:"tokenType"`
}

// CurrencyCreateReply - result of creating a currency
type CurrencyCreateReply struct {
	Symbol string `json:"symbol"`
}

// Create - register a new currency symbol
func (c *Currency) Create(arguments *CurrencyCreateArguments, reply *CurrencyCreateReply) error {
	if err := rateLimit(c.Limiter); nil != err {
		return err
	}
	log := c.Log
	log.Infof("Currency.Create: %+v", arguments)

	issuer, err := account.NameFromString(arguments.Issuer)
	if nil != err {
		return err
	}
	maximumSupply, err := currency.AmountFromString(arguments.MaximumSupply)
	if nil != err {
		return err
	}

	err = c.Ledger.CreateCurrency(issuer, maximumSupply, currency.TokenType(arguments.TokenType))
	if nil != err {
		return err
	}

	reply.Symbol = maximumSupply.Symbol.String()
	return nil
}

// ---

// CurrencyStatusArguments - currency identification
type CurrencyStatusArguments struct {
	Symbol string `json:"symbol"`
}

// CurrencyStatusReply - the current supply state of a currency
type CurrencyStatusReply struct {
	Issuer        string `json:"issuer"`
	Symbol        string `json:"symbol"`
	Supply        int64  `json:"supply"`
	Issued        int64  `json:"issued"`
	MaximumSupply int64  `json:"maximumSupply"`
	Infinite      bool   `json:"infinite"`
	TokenType     uint64 `json:"tokenType"`
}

// Status - read the supply record of a currency
func (c *Currency) Status(arguments *CurrencyStatusArguments, reply *CurrencyStatusReply) error {
	if err := rateLimit(c.Limiter); nil != err {
		return err
	}

	symbol, err := currency.SymbolFromString(arguments.Symbol)
	if nil != err {
		return err
	}

	record, err := c.Ledger.Currency(symbol)
	if nil != err {
		return err
	}

	reply.Issuer = record.Issuer.String()
	reply.Symbol = record.Symbol.String()
	reply.Supply = record.Supply
	reply.Issued = record.Issued
	reply.MaximumSupply = record.MaximumSupply
	reply.Infinite = record.Infinite
	reply.TokenType = uint64(record.Typ)
	return nil
}

// ---

// CurrencyBalanceArguments - owner and symbol to query
type CurrencyBalanceArguments struct {
	Owner  string `json:"owner"`
	Symbol string `json:"symbol"`
}

// CurrencyBalanceReply - balance result
type CurrencyBalanceReply struct {
	Balance string `json:"balance"`
}

// Balance - read the balance of an account for one currency
func (c *Currency) Balance(arguments *CurrencyBalanceArguments, reply *CurrencyBalanceReply) error {
	if err := rateLimit(c.Limiter); nil != err {
		return err
	}

	owner, err := account.NameFromString(arguments.Owner)
	if nil != err {
		return err
	}
	symbol, err := currency.SymbolFromString(arguments.Symbol)
	if nil != err {
		return err
	}

	reply.Balance = c.Ledger.Balance(owner, symbol).String()
	return nil
}

// ---

// CurrencyAuditArguments - currency to audit
type CurrencyAuditArguments struct {
	Symbol string `json:"symbol"`
}

// CurrencyAuditReply - audit outcome
type CurrencyAuditReply struct {
	Ok bool `json:"ok"`
}

// Audit - verify supply conservation for one currency
func (c *Currency) Audit(arguments *CurrencyAuditArguments, reply *CurrencyAuditReply) error {
	if err := rateLimit(c.Limiter); nil != err {
		return err
	}
	log := c.Log
	log.Infof("Currency.Audit: %+v", arguments)

	symbol, err := currency.SymbolFromString(arguments.Symbol)
	if nil != err {
		return err
	}

	err = c.Ledger.Audit(symbol)
	if nil != err {
		return err
	}

	reply.Ok = true
	return nil
}
