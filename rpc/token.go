// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/registry"
	"github.com/artmark-inc/artmarkd/storage"
	"github.com/artmark-inc/artmarkd/tokenid"
)

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// Token - type for the RPC
type Token struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Store    *storage.Store
	Registry *registry.Registry
}

func newToken(log *logger.L, handles Handles) *Token {
	return &Token{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitToken, rateBurstToken),
		Store:    handles.Store,
		Registry: handles.Registry,
	}
}

// ---

// TokenMintArguments - arguments for minting a single token
type TokenMintArguments struct {
	To     string `json:"to"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
	Memo   string `json:"memo"`
}

// TokenMintReply - the id of the newly minted token
type TokenMintReply struct {
	TokenId string `json:"tokenId"`
}

// Mint - issue one non-fungible token
func (t *Token) Mint(arguments *TokenMintArguments, reply *TokenMintReply) error {
	if err := rateLimit(t.Limiter); nil != err {
		return err
	}
	log := t.Log
	log.Infof("Token.Mint: %+v", arguments)

	to, err := account.NameFromString(arguments.To)
	if nil != err {
		return err
	}
	symbol, err := currency.SymbolFromString(arguments.Symbol)
	if nil != err {
		return err
	}

	trx := t.Store.NewTransaction()
	globalId, err := t.Registry.Mint(trx, to, symbol, arguments.URI, arguments.Memo)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.TokenId = globalId.String()
	return nil
}

// ---

// TokenTransferArguments - arguments for a token transfer
type TokenTransferArguments struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenId string `json:"tokenId"`
	Memo    string `json:"memo"`
}

// TokenTransferReply - the new owner after transfer
type TokenTransferReply struct {
	Owner string `json:"owner"`
}

// Transfer - move a token to a new owner
func (t *Token) Transfer(arguments *TokenTransferArguments, reply *TokenTransferReply) error {
	if err := rateLimit(t.Limiter); nil != err {
		return err
	}
	log := t.Log
	log.Infof("Token.Transfer: %+v", arguments)

	from, err := account.NameFromString(arguments.From)
	if nil != err {
		return err
	}
	to, err := account.NameFromString(arguments.To)
	if nil != err {
		return err
	}
	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	trx := t.Store.NewTransaction()
	err = t.Registry.Transfer(trx, from, to, globalId, arguments.Memo)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Owner = to.String()
	return nil
}

// ---

// TokenBurnArguments - arguments for destroying a token
type TokenBurnArguments struct {
	Owner   string `json:"owner"`
	TokenId string `json:"tokenId"`
	Memo    string `json:"memo"`
}

// TokenBurnReply - burn confirmation
type TokenBurnReply struct {
	Burnt bool `json:"burnt"`
}

// Burn - remove a token from circulation
func (t *Token) Burn(arguments *TokenBurnArguments, reply *TokenBurnReply) error {
	if err := rateLimit(t.Limiter); nil != err {
		return err
	}
	log := t.Log
	log.Infof("Token.Burn: %+v", arguments)

	owner, err := account.NameFromString(arguments.Owner)
	if nil != err {
		return err
	}
	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	trx := t.Store.NewTransaction()
	err = t.Registry.Burn(trx, owner, globalId, arguments.Memo)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Burnt = true
	return nil
}

// ---

// TokenSetPayerArguments - arguments for changing the RAM payer
type TokenSetPayerArguments struct {
	Payer   string `json:"payer"`
	TokenId string `json:"tokenId"`
}

// TokenSetPayerReply - the payer now recorded on the token
type TokenSetPayerReply struct {
	Payer string `json:"payer"`
}

// SetPayer - record the token owner as its storage payer
func (t *Token) SetPayer(arguments *TokenSetPayerArguments, reply *TokenSetPayerReply) error {
	if err := rateLimit(t.Limiter); nil != err {
		return err
	}
	log := t.Log
	log.Infof("Token.SetPayer: %+v", arguments)

	payer, err := account.NameFromString(arguments.Payer)
	if nil != err {
		return err
	}
	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	trx := t.Store.NewTransaction()
	err = t.Registry.SetPayer(trx, payer, globalId.TokenId())
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Payer = payer.String()
	return nil
}

// ---

// TokenGetArguments - token identification
type TokenGetArguments struct {
	TokenId string `json:"tokenId"`
}

// TokenGetReply - all stored fields of a token
type TokenGetReply struct {
	TokenId     string `json:"tokenId"`
	Owner       string `json:"owner"`
	Payer       string `json:"payer"`
	Value       string `json:"value"`
	Fingerprint string `json:"fingerprint"`
	URI         string `json:"uri"`
}

// Get - read one token record
func (t *Token) Get(arguments *TokenGetArguments, reply *TokenGetReply) error {
	if err := rateLimit(t.Limiter); nil != err {
		return err
	}

	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	token, err := t.Registry.TokenByGlobalId(globalId)
	if nil != err {
		return err
	}

	reply.TokenId = token.GlobalId.String()
	reply.Owner = token.Owner.String()
	reply.Payer = token.Payer.String()
	reply.Value = token.Value.String()
	reply.Fingerprint = hex.EncodeToString(token.Fingerprint[:])
	reply.URI = token.URI
	return nil
}

// ---

// TokenListArguments - select tokens by owner or by symbol
type TokenListArguments struct {
	Owner  string `json:"owner"`
	Symbol string `json:"symbol"`
}

// TokenListReply - matching token ids
type TokenListReply struct {
	TokenIds []string `json:"tokenIds"`
}

// List - enumerate tokens held by an owner or issued under a symbol
func (t *Token) List(arguments *TokenListArguments, reply *TokenListReply) error {
	if err := rateLimit(t.Limiter); nil != err {
		return err
	}

	var ids []tokenid.GlobalId
	var err error

	switch {
	case "" != arguments.Owner:
		owner, e := account.NameFromString(arguments.Owner)
		if nil != e {
			return e
		}
		ids, err = t.Registry.TokensByOwner(owner)
	case "" != arguments.Symbol:
		symbol, e := currency.SymbolFromString(arguments.Symbol)
		if nil != e {
			return e
		}
		ids, err = t.Registry.TokensBySymbol(symbol)
	default:
		return fault.MissingParameters
	}
	if nil != err {
		return err
	}

	reply.TokenIds = make([]string, len(ids))
	for i, id := range ids {
		reply.TokenIds[i] = id.String()
	}
	return nil
}
