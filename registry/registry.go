// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the token table and its secondary indexes
//
// one record per minted asset, locatable by local id, by global id,
// by owner and by symbol; every mutation updates the primary record
// and all affected indexes inside one storage transaction
package registry

import (
	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/constants"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/host"
	"github.com/artmark-inc/artmarkd/ledger"
	"github.com/artmark-inc/artmarkd/storage"
	"github.com/artmark-inc/artmarkd/tokenid"
)

// counter record holding the next local id
var tokenCounterKey = []byte("tokenid")

// Cascade - cleanup hook run while a token is being burnt
//
// subsystems holding per-token rows register so that burn removes
// their state in the same transaction as the token itself
type Cascade interface {
	TokenBurnt(trx storage.Transaction, id tokenid.TokenId)
}

// Registry - token operations over one store
type Registry struct {
	log      *logger.L
	env      host.Environment
	ledger   *ledger.Ledger
	store    *storage.Store
	cascades []Cascade
}

// New - a registry bound to its ledger and store
func New(env host.Environment, l *ledger.Ledger, store *storage.Store) *Registry {
	return &Registry{
		log:    logger.New("registry"),
		env:    env,
		ledger: l,
		store:  store,
	}
}

// AttachCascade - register a burn cleanup hook
func (r *Registry) AttachCascade(c Cascade) {
	r.cascades = append(r.cascades, c)
}

// Mint - create one unit of a non-fungible currency
//
// allocates the next local id, derives the global id from the ledger
// operator, writes the token and all indexes, then increases supply
// and credits the owner; the caller owns the transaction so several
// mints can share one commit
func (r *Registry) Mint(trx storage.Transaction, to account.Name, symbol currency.Symbol, uri string, memo string) (tokenid.GlobalId, error) {
	if !r.env.AccountExists(to) {
		return tokenid.GlobalId{}, fault.AccountDoesNotExist
	}
	if !symbol.IsValid() {
		return tokenid.GlobalId{}, fault.InvalidSymbolName
	}
	if len(memo) > constants.MaximumMemoLength {
		return tokenid.GlobalId{}, fault.MemoTooLong
	}

	packed := trx.Get(r.store.Pool.Currencies, symbol.Bytes())
	if nil == packed {
		return tokenid.GlobalId{}, fault.CurrencyDoesNotExist
	}
	record, err := currency.RecordFromBytes(packed)
	if nil != err {
		return tokenid.GlobalId{}, err
	}
	if currency.NonFungible != record.Typ {
		return tokenid.GlobalId{}, fault.NotFungibleCurrency
	}
	if err := r.env.RequireAuthorization(record.Issuer); nil != err {
		return tokenid.GlobalId{}, err
	}

	quantity := currency.NewAmount(1, symbol)
	if err := r.ledger.IncreaseSupply(trx, quantity); nil != err {
		return tokenid.GlobalId{}, err
	}

	// next local id, monotonic and never reused
	next, _ := trx.GetN(r.store.Pool.Counters, tokenCounterKey)
	id := tokenid.TokenId(next)
	trx.PutN(r.store.Pool.Counters, tokenCounterKey, next+1)

	globalId := tokenid.NewGlobalId(r.ledger.Operator(), id)
	if trx.Has(r.store.Pool.TokenGlobalId, globalId.Bytes()) {
		return tokenid.GlobalId{}, fault.AlreadyInitialised
	}

	token := Token{
		Id:          id,
		GlobalId:    globalId,
		Owner:       to,
		Payer:       to,
		Value:       quantity,
		Fingerprint: Fingerprint(uri),
		URI:         uri,
	}

	trx.Put(r.store.Pool.Tokens, id.Bytes(), token.Pack())
	trx.PutN(r.store.Pool.TokenGlobalId, globalId.Bytes(), uint64(id))
	trx.Put(r.store.Pool.OwnerTokens, ownerIndexKey(to, id), globalId.Bytes())
	trx.Put(r.store.Pool.SymbolTokens, symbolIndexKey(symbol, id), globalId.Bytes())

	r.ledger.Credit(trx, to, quantity)

	r.log.Infof("mint: %s  id: %d  owner: %s  uri: %q", globalId, id, to, uri)
	return globalId, nil
}

// Transfer - move a token between accounts
//
// owner change, both balances and the owner index mutate in one
// transaction; a failed precondition stages nothing
func (r *Registry) Transfer(trx storage.Transaction, from account.Name, to account.Name, globalId tokenid.GlobalId, memo string) error {
	if from == to {
		return fault.TransferToSelf
	}
	if err := r.env.RequireAuthorization(from); nil != err {
		return err
	}
	if !r.env.AccountExists(to) {
		return fault.AccountDoesNotExist
	}
	if len(memo) > constants.MaximumMemoLength {
		return fault.MemoTooLong
	}

	return r.convey(trx, from, to, globalId)
}

// Award - settlement transfer without sender authorization
//
// the auction subsystem has already established the right to move the
// token when it closes a cycle; all other callers use Transfer
func (r *Registry) Award(trx storage.Transaction, from account.Name, to account.Name, globalId tokenid.GlobalId) error {
	if from == to {
		return fault.TransferToSelf
	}
	if !r.env.AccountExists(to) {
		return fault.AccountDoesNotExist
	}
	return r.convey(trx, from, to, globalId)
}

func (r *Registry) convey(trx storage.Transaction, from account.Name, to account.Name, globalId tokenid.GlobalId) error {
	token, err := r.fetch(trx, globalId)
	if nil != err {
		return err
	}
	if token.Owner != from {
		return fault.NotTokenOwner
	}

	r.env.Notify(from)
	r.env.Notify(to)

	token.Owner = to
	trx.Put(r.store.Pool.Tokens, token.Id.Bytes(), token.Pack())
	trx.Delete(r.store.Pool.OwnerTokens, ownerIndexKey(from, token.Id))
	trx.Put(r.store.Pool.OwnerTokens, ownerIndexKey(to, token.Id), globalId.Bytes())

	if err := r.ledger.Debit(trx, from, token.Value); nil != err {
		return err
	}
	r.ledger.Credit(trx, to, token.Value)

	r.log.Infof("transfer: %s  from: %s  to: %s", globalId, from, to)
	return nil
}

// Burn - destroy a token
//
// removes the record, every index entry and, through the registered
// cascades, any control token or auction row, then debits the owner
// and decreases supply
func (r *Registry) Burn(trx storage.Transaction, owner account.Name, globalId tokenid.GlobalId, memo string) error {
	if err := r.env.RequireAuthorization(owner); nil != err {
		return err
	}
	if len(memo) > constants.MaximumMemoLength {
		return fault.MemoTooLong
	}

	token, err := r.fetch(trx, globalId)
	if nil != err {
		return err
	}
	if token.Owner != owner {
		return fault.NotTokenOwner
	}

	trx.Delete(r.store.Pool.Tokens, token.Id.Bytes())
	trx.Delete(r.store.Pool.TokenGlobalId, globalId.Bytes())
	trx.Delete(r.store.Pool.OwnerTokens, ownerIndexKey(owner, token.Id))
	trx.Delete(r.store.Pool.SymbolTokens, symbolIndexKey(token.Value.Symbol, token.Id))

	for _, c := range r.cascades {
		c.TokenBurnt(trx, token.Id)
	}

	if err := r.ledger.Debit(trx, owner, token.Value); nil != err {
		return err
	}
	if err := r.ledger.DecreaseSupply(trx, token.Value); nil != err {
		return err
	}

	r.log.Infof("burn: %s  owner: %s", globalId, owner)
	return nil
}

// SetPayer - re-attribute a token's storage cost
//
// no business field changes; the debit/credit pair on identical
// values asserts that the payer's balance record really exists
func (r *Registry) SetPayer(trx storage.Transaction, payer account.Name, id tokenid.TokenId) error {
	if err := r.env.RequireAuthorization(payer); nil != err {
		return err
	}

	packed := trx.Get(r.store.Pool.Tokens, id.Bytes())
	if nil == packed {
		return fault.TokenDoesNotExist
	}
	token, err := TokenFromBytes(packed)
	if nil != err {
		return err
	}
	if token.Owner != payer {
		return fault.NotTokenOwner
	}

	r.env.Notify(payer)

	token.Payer = payer
	trx.Put(r.store.Pool.Tokens, id.Bytes(), token.Pack())

	if err := r.ledger.Debit(trx, payer, token.Value); nil != err {
		return err
	}
	r.ledger.Credit(trx, payer, token.Value)
	return nil
}

// transaction-scoped token fetch by global id
func (r *Registry) fetch(trx storage.Transaction, globalId tokenid.GlobalId) (*Token, error) {
	id, found := trx.GetN(r.store.Pool.TokenGlobalId, globalId.Bytes())
	if !found {
		return nil, fault.TokenDoesNotExist
	}
	packed := trx.Get(r.store.Pool.Tokens, tokenid.TokenId(id).Bytes())
	if nil == packed {
		return nil, fault.TokenDoesNotExist
	}
	return TokenFromBytes(packed)
}

// TokenById - committed token record by local id
func (r *Registry) TokenById(id tokenid.TokenId) (*Token, error) {
	packed := r.store.Pool.Tokens.Get(id.Bytes())
	if nil == packed {
		return nil, fault.TokenDoesNotExist
	}
	return TokenFromBytes(packed)
}

// TokenByGlobalId - committed token record by global id
func (r *Registry) TokenByGlobalId(globalId tokenid.GlobalId) (*Token, error) {
	id, found := r.store.Pool.TokenGlobalId.GetN(globalId.Bytes())
	if !found {
		return nil, fault.TokenDoesNotExist
	}
	return r.TokenById(tokenid.TokenId(id))
}

// OwnerOf - current owner of a token
func (r *Registry) OwnerOf(globalId tokenid.GlobalId) (account.Name, error) {
	token, err := r.TokenByGlobalId(globalId)
	if nil != err {
		return "", err
	}
	return token.Owner, nil
}

// TokensByOwner - global ids of all tokens held by an account, in
// local id order
func (r *Registry) TokensByOwner(owner account.Name) ([]tokenid.GlobalId, error) {
	return r.scanIndex(r.store.Pool.OwnerTokens, owner.Bytes())
}

// TokensBySymbol - global ids of all outstanding tokens of a symbol,
// in local id order
func (r *Registry) TokensBySymbol(symbol currency.Symbol) ([]tokenid.GlobalId, error) {
	return r.scanIndex(r.store.Pool.SymbolTokens, symbol.Bytes())
}

func (r *Registry) scanIndex(pool *storage.PoolHandle, prefix []byte) ([]tokenid.GlobalId, error) {
	ids := []tokenid.GlobalId{}
	cursor := pool.NewFetchCursor().Seek(prefix)
scanning:
	for {
		elements, err := cursor.Fetch(100)
		if nil != err {
			return nil, err
		}
		if 0 == len(elements) {
			break scanning
		}
		for _, e := range elements {
			if len(e.Key) < len(prefix) || string(e.Key[:len(prefix)]) != string(prefix) {
				break scanning
			}
			globalId, err := tokenid.GlobalIdFromBytes(e.Value)
			if nil != err {
				return nil, err
			}
			ids = append(ids, globalId)
		}
	}
	return ids, nil
}

func ownerIndexKey(owner account.Name, id tokenid.TokenId) []byte {
	return append(owner.Bytes(), id.Bytes()...)
}

func symbolIndexKey(symbol currency.Symbol, id tokenid.TokenId) []byte {
	return append(symbol.Bytes(), id.Bytes()...)
}
