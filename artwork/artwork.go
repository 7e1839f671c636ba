// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package artwork - layered artworks and their levers
//
// a master token anchors a composite artwork; each collaborator holds
// a layer token whose bounded numeric levers the owner may adjust
// after a one-time setup
package artwork

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/host"
	"github.com/artmark-inc/artmarkd/ledger"
	"github.com/artmark-inc/artmarkd/registry"
	"github.com/artmark-inc/artmarkd/storage"
	"github.com/artmark-inc/artmarkd/tokenid"
)

// Artwork - lever and linkage operations over one store
type Artwork struct {
	log      *logger.L
	env      host.Environment
	ledger   *ledger.Ledger
	registry *registry.Registry
	store    *storage.Store
	symbol   currency.Symbol
}

// New - an artwork subsystem minting under the given symbol
//
// registers itself as a burn cascade so that destroying a token also
// removes its control record and master index entry
func New(env host.Environment, l *ledger.Ledger, r *registry.Registry, store *storage.Store, symbol currency.Symbol) *Artwork {
	a := &Artwork{
		log:      logger.New("artwork"),
		env:      env,
		ledger:   l,
		registry: r,
		store:    store,
		symbol:   symbol,
	}
	r.AttachCascade(a)
	return a
}

// content locator conventions carried over from the host deployment
func (a *Artwork) masterURI(uri string) string {
	return fmt.Sprintf("mobius://crypto.art/%s/master?ipfs=%s", a.symbol, uri)
}

func (a *Artwork) layerURI(master tokenid.GlobalId) string {
	return fmt.Sprintf("mobius://crypto.art/%s/layer?master=%s", a.symbol, master)
}

// MintArtwork - mint a master token and one layer token per collaborator
//
// the master's control record is complete immediately (no levers); the
// layer records await Setup; all mints commit together or not at all
func (a *Artwork) MintArtwork(to account.Name, uri string, collaborators []account.Name) (tokenid.GlobalId, []tokenid.GlobalId, error) {
	issuer, err := a.ledger.Issuer(a.symbol)
	if nil != err {
		return tokenid.GlobalId{}, nil, err
	}
	if err := a.env.RequireAuthorization(issuer); nil != err {
		return tokenid.GlobalId{}, nil, err
	}

	trx := a.store.NewTransaction()

	master, err := a.registry.Mint(trx, to, a.symbol, a.masterURI(uri), "")
	if nil != err {
		trx.Abort()
		return tokenid.GlobalId{}, nil, err
	}
	masterId := master.TokenId()
	control := ControlToken{
		Id:      masterId,
		Master:  masterId,
		IsSetup: true,
	}
	trx.Put(a.store.Pool.ControlTokens, masterId.Bytes(), control.Pack())

	layers := make([]tokenid.GlobalId, 0, len(collaborators))
	for _, collaborator := range collaborators {
		layer, err := a.registry.Mint(trx, collaborator, a.symbol, a.layerURI(master), "")
		if nil != err {
			trx.Abort()
			return tokenid.GlobalId{}, nil, err
		}
		layerId := layer.TokenId()
		control := ControlToken{
			Id:      layerId,
			Master:  masterId,
			IsSetup: false,
		}
		trx.Put(a.store.Pool.ControlTokens, layerId.Bytes(), control.Pack())
		trx.Put(a.store.Pool.MasterTokens, masterIndexKey(masterId, layerId), layer.Bytes())
		layers = append(layers, layer)
	}

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return tokenid.GlobalId{}, nil, err
	}

	a.log.Infof("mint artwork: master: %s  layers: %d  artist: %s", master, len(layers), to)
	return master, layers, nil
}

// Setup - one-time lever configuration of a layer token
//
// values are recorded verbatim; ranges are only enforced from Update
// onwards
func (a *Artwork) Setup(globalId tokenid.GlobalId, minValues []int64, maxValues []int64, currentValues []int64) error {
	owner, err := a.registry.OwnerOf(globalId)
	if nil != err {
		return err
	}
	if err := a.env.RequireAuthorization(owner); nil != err {
		return err
	}
	if len(minValues) != len(maxValues) || len(maxValues) != len(currentValues) {
		return fault.LengthMismatch
	}

	trx := a.store.NewTransaction()
	control, err := a.fetch(trx, globalId.TokenId())
	if nil != err {
		trx.Abort()
		return err
	}
	if control.IsSetup {
		trx.Abort()
		return fault.ControlTokenAlreadySetup
	}

	control.IsSetup = true
	control.MinValues = minValues
	control.MaxValues = maxValues
	control.CurrentValues = currentValues
	trx.Put(a.store.Pool.ControlTokens, control.Id.Bytes(), control.Pack())

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}
	a.log.Infof("setup: %s  levers: %d", globalId, control.LeverCount())
	return nil
}

// Update - adjust lever values within their configured ranges
//
// all updates validate against a working copy before anything is
// written, so one bad value rejects the whole batch
func (a *Artwork) Update(globalId tokenid.GlobalId, leverIds []uint64, newValues []int64) error {
	owner, err := a.registry.OwnerOf(globalId)
	if nil != err {
		return err
	}
	if err := a.env.RequireAuthorization(owner); nil != err {
		return err
	}
	if len(leverIds) != len(newValues) {
		return fault.LengthMismatch
	}

	trx := a.store.NewTransaction()
	control, err := a.fetch(trx, globalId.TokenId())
	if nil != err {
		trx.Abort()
		return err
	}
	if !control.IsSetup {
		trx.Abort()
		return fault.ControlTokenNotSetup
	}

	values := make([]int64, len(control.CurrentValues))
	copy(values, control.CurrentValues)

	for i, leverId := range leverIds {
		if leverId >= uint64(control.LeverCount()) {
			trx.Abort()
			return fault.LeverIdOutOfRange
		}
		v := newValues[i]
		if v < control.MinValues[leverId] || v > control.MaxValues[leverId] {
			trx.Abort()
			return fault.LeverValueOutOfRange
		}
		values[leverId] = v
	}

	control.CurrentValues = values
	trx.Put(a.store.Pool.ControlTokens, control.Id.Bytes(), control.Pack())

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// ControlTokenOf - committed control record of a token
func (a *Artwork) ControlTokenOf(globalId tokenid.GlobalId) (*ControlToken, error) {
	packed := a.store.Pool.ControlTokens.Get(globalId.TokenId().Bytes())
	if nil == packed {
		return nil, fault.ControlTokenDoesNotExist
	}
	return ControlTokenFromBytes(packed)
}

// MasterOf - global id of the master anchoring a token's artwork
//
// a master token reports itself
func (a *Artwork) MasterOf(globalId tokenid.GlobalId) (tokenid.GlobalId, error) {
	control, err := a.ControlTokenOf(globalId)
	if nil != err {
		return tokenid.GlobalId{}, err
	}
	token, err := a.registry.TokenById(control.Master)
	if nil != err {
		return tokenid.GlobalId{}, err
	}
	return token.GlobalId, nil
}

// LayersOf - global ids of all layer tokens of a master, in mint order
func (a *Artwork) LayersOf(master tokenid.GlobalId) ([]tokenid.GlobalId, error) {
	prefix := master.TokenId().Bytes()
	layers := []tokenid.GlobalId{}
	cursor := a.store.Pool.MasterTokens.NewFetchCursor().Seek(prefix)
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
			layers = append(layers, globalId)
		}
	}
	return layers, nil
}

// TokenBurnt - burn cascade: drop the control record and the master
// index entry of the burnt token
func (a *Artwork) TokenBurnt(trx storage.Transaction, id tokenid.TokenId) {
	packed := trx.Get(a.store.Pool.ControlTokens, id.Bytes())
	if nil == packed {
		return
	}
	control, err := ControlTokenFromBytes(packed)
	if nil != err {
		a.log.Errorf("burn cascade: corrupt control record for id: %d", id)
		return
	}
	trx.Delete(a.store.Pool.ControlTokens, id.Bytes())
	trx.Delete(a.store.Pool.MasterTokens, masterIndexKey(control.Master, id))
}

func (a *Artwork) fetch(trx storage.Transaction, id tokenid.TokenId) (*ControlToken, error) {
	packed := trx.Get(a.store.Pool.ControlTokens, id.Bytes())
	if nil == packed {
		return nil, fault.ControlTokenDoesNotExist
	}
	return ControlTokenFromBytes(packed)
}

func masterIndexKey(master tokenid.TokenId, layer tokenid.TokenId) []byte {
	return append(master.Bytes(), layer.Bytes()...)
}
