// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the supply and balance ledger
//
// tracks one currency record per symbol and one balance record per
// owner and symbol, maintaining for every currency:
//
//   supply == sum of balances
//
// every outstanding token is mirrored by one unit of its owner's
// balance, so for a non-fungible currency the symbol index count must
// also equal the supply
//
// all mutations are staged through a storage transaction supplied by
// the caller so that multi-step operations commit or abort as a whole
package ledger

import (
	"encoding/binary"
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/host"
	"github.com/artmark-inc/artmarkd/storage"
)

// Ledger - supply and balance operations over one store
type Ledger struct {
	log      *logger.L
	env      host.Environment
	operator account.Name
	store    *storage.Store
}

// New - a ledger bound to its store and host environment
//
// operator is the ledger's own account: the authority for currency
// creation and the payer of auction settlements
func New(env host.Environment, operator account.Name, store *storage.Store) *Ledger {
	return &Ledger{
		log:      logger.New("ledger"),
		env:      env,
		operator: operator,
		store:    store,
	}
}

// Operator - the ledger's own account
func (l *Ledger) Operator() account.Name {
	return l.operator
}

// balance records are keyed owner ++ symbol
func balanceKey(owner account.Name, symbol currency.Symbol) []byte {
	return append(owner.Bytes(), symbol.Bytes()...)
}

// CreateCurrency - register a new currency record
//
// a maximum supply quantity of zero means infinite supply
func (l *Ledger) CreateCurrency(issuer account.Name, maximumSupply currency.Amount, typ currency.TokenType) error {
	if err := l.env.RequireAuthorization(l.operator); nil != err {
		return err
	}
	if !l.env.AccountExists(issuer) {
		return fault.AccountDoesNotExist
	}
	if !maximumSupply.Symbol.IsValid() || maximumSupply.Quantity < 0 {
		return fault.InvalidSymbolName
	}
	if !typ.IsValid() {
		return fault.InvalidTokenType
	}

	key := maximumSupply.Symbol.Bytes()
	if l.store.Pool.Currencies.Has(key) {
		return fault.CurrencyAlreadyExists
	}

	record := currency.Record{
		Issuer:        issuer,
		Symbol:        maximumSupply.Symbol,
		Supply:        0,
		Issued:        0,
		MaximumSupply: maximumSupply.Quantity,
		Infinite:      0 == maximumSupply.Quantity,
		Typ:           typ,
	}

	trx := l.store.NewTransaction()
	trx.Put(l.store.Pool.Currencies, key, record.Pack())
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("create currency: %s  issuer: %s  maximum: %d  infinite: %v",
		record.Symbol, issuer, record.MaximumSupply, record.Infinite)
	return nil
}

// Currency - fetch a currency record
func (l *Ledger) Currency(symbol currency.Symbol) (*currency.Record, error) {
	packed := l.store.Pool.Currencies.Get(symbol.Bytes())
	if nil == packed {
		return nil, fault.CurrencyDoesNotExist
	}
	return currency.RecordFromBytes(packed)
}

// Issuer - the issuing authority of a currency
func (l *Ledger) Issuer(symbol currency.Symbol) (account.Name, error) {
	record, err := l.Currency(symbol)
	if nil != err {
		return "", err
	}
	return record.Issuer, nil
}

// fetch the currency record through a transaction
func (l *Ledger) currencyTx(trx storage.Transaction, symbol currency.Symbol) (*currency.Record, error) {
	packed := trx.Get(l.store.Pool.Currencies, symbol.Bytes())
	if nil == packed {
		return nil, fault.CurrencyDoesNotExist
	}
	return currency.RecordFromBytes(packed)
}

// IncreaseSupply - record newly issued quantity
//
// increments both issued and supply; for a finite currency the issued
// total must stay strictly below the maximum supply, so the final unit
// of a finite maximum can never be issued (preserved host behaviour)
func (l *Ledger) IncreaseSupply(trx storage.Transaction, quantity currency.Amount) error {
	if quantity.Quantity <= 0 {
		return fault.SupplyMustBePositive
	}

	record, err := l.currencyTx(trx, quantity.Symbol)
	if nil != err {
		return err
	}

	if record.Issued > math.MaxInt64-quantity.Quantity {
		return fault.MaximumSupplyExceeded
	}
	if !record.Infinite && record.Issued+quantity.Quantity >= record.MaximumSupply {
		return fault.MaximumSupplyExceeded
	}

	record.Issued += quantity.Quantity
	record.Supply += quantity.Quantity
	trx.Put(l.store.Pool.Currencies, quantity.Symbol.Bytes(), record.Pack())
	return nil
}

// DecreaseSupply - record burnt quantity
//
// decrements supply only, issued is monotonic
func (l *Ledger) DecreaseSupply(trx storage.Transaction, quantity currency.Amount) error {
	record, err := l.currencyTx(trx, quantity.Symbol)
	if nil != err {
		return err
	}
	if record.Supply < quantity.Quantity {
		return fault.InsufficientSupply
	}

	record.Supply -= quantity.Quantity
	trx.Put(l.store.Pool.Currencies, quantity.Symbol.Bytes(), record.Pack())
	return nil
}

// Credit - add quantity to an owner's balance, creating the record on
// first credit
func (l *Ledger) Credit(trx storage.Transaction, owner account.Name, quantity currency.Amount) {
	key := balanceKey(owner, quantity.Symbol)
	balance, _ := trx.GetN(l.store.Pool.Balances, key)
	trx.PutN(l.store.Pool.Balances, key, balance+uint64(quantity.Quantity))
}

// Debit - subtract quantity from an owner's balance
//
// the record is deleted when the balance reaches exactly zero; a
// balance record exists if and only if its amount is positive
func (l *Ledger) Debit(trx storage.Transaction, owner account.Name, quantity currency.Amount) error {
	key := balanceKey(owner, quantity.Symbol)
	balance, found := trx.GetN(l.store.Pool.Balances, key)
	if !found {
		return fault.NotBalanceRecord
	}
	if balance < uint64(quantity.Quantity) {
		return fault.OverdrawnBalance
	}

	if balance == uint64(quantity.Quantity) {
		trx.Delete(l.store.Pool.Balances, key)
	} else {
		trx.PutN(l.store.Pool.Balances, key, balance-uint64(quantity.Quantity))
	}
	return nil
}

// Balance - current balance, zero when no record exists
func (l *Ledger) Balance(owner account.Name, symbol currency.Symbol) currency.Amount {
	balance, _ := l.store.Pool.Balances.GetN(balanceKey(owner, symbol))
	return currency.NewAmount(int64(balance), symbol)
}

// Audit - verify the conservation invariant for one currency
//
// supply must equal the sum of all balances: a token mint credits its
// owner one unit, so for a non-fungible currency the balance rows are
// the token holdings and the symbol index must in turn hold exactly
// one entry per unit of supply
func (l *Ledger) Audit(symbol currency.Symbol) error {
	record, err := l.Currency(symbol)
	if nil != err {
		return err
	}

	balances := int64(0)

	// balance keys are owner ++ symbol so the whole pool is scanned
	// and filtered on the symbol suffix
	symbolBytes := symbol.Bytes()
	cursor := l.store.Pool.Balances.NewFetchCursor()
scanning:
	for {
		elements, err := cursor.Fetch(100)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			break scanning
		}
		for _, e := range elements {
			n := len(e.Key)
			if n >= currency.SymbolLength && string(e.Key[n-currency.SymbolLength:]) == string(symbolBytes) {
				balances += int64(binary.BigEndian.Uint64(e.Value))
			}
		}
	}

	if record.Supply != balances {
		l.log.Criticalf("audit: %s  supply: %d  balances: %d", symbol, record.Supply, balances)
		return fault.ProcessError("supply conservation violated")
	}

	if currency.NonFungible != record.Typ {
		return nil
	}

	// each symbol index entry is one token of quantity one
	tokens := int64(0)
	cursor = l.store.Pool.SymbolTokens.NewFetchCursor().Seek(symbolBytes)
counting:
	for {
		elements, err := cursor.Fetch(100)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			break counting
		}
		for _, e := range elements {
			if len(e.Key) < currency.SymbolLength || string(e.Key[:currency.SymbolLength]) != string(symbolBytes) {
				break counting
			}
			tokens += 1
		}
	}

	if record.Supply != tokens {
		l.log.Criticalf("audit: %s  supply: %d  tokens: %d", symbol, record.Supply, tokens)
		return fault.ProcessError("supply conservation violated")
	}
	return nil
}
