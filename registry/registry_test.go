// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/fixtures"
	"github.com/artmark-inc/artmarkd/ledger"
	"github.com/artmark-inc/artmarkd/registry"
	"github.com/artmark-inc/artmarkd/storage"
	"github.com/artmark-inc/artmarkd/tokenid"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

var artSymbol = currency.Symbol("ART")

type testSetup struct {
	env      *fixtures.Environment
	store    *storage.Store
	ledger   *ledger.Ledger
	registry *registry.Registry
}

func setup(t *testing.T) *testSetup {
	env := &fixtures.Environment{}
	store, err := storage.InitialiseMemory()
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	t.Cleanup(store.Finalise)

	l := ledger.New(env, fixtures.LedgerName, store)
	r := registry.New(env, l, store)

	err = l.CreateCurrency("alice", currency.NewAmount(1000, artSymbol), currency.NonFungible)
	if nil != err {
		t.Fatalf("create currency error: %s", err)
	}
	return &testSetup{
		env:      env,
		store:    store,
		ledger:   l,
		registry: r,
	}
}

func (s *testSetup) mint(t *testing.T, to account.Name, uri string) tokenid.GlobalId {
	trx := s.store.NewTransaction()
	globalId, err := s.registry.Mint(trx, to, artSymbol, uri, "")
	if nil != err {
		trx.Abort()
		t.Fatalf("mint error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return globalId
}

func TestMint(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://master")

	// the global id decodes to the minting authority and first local id
	assert.Equal(t, fixtures.LedgerName, globalId.Authority(), "wrong authority")
	assert.Equal(t, tokenid.TokenId(0), globalId.TokenId(), "wrong local id")

	token, err := s.registry.TokenByGlobalId(globalId)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, account.Name("bob"), token.Owner, "wrong owner")
	assert.Equal(t, account.Name("bob"), token.Payer, "wrong payer")
	assert.Equal(t, int64(1), token.Value.Quantity, "value quantity")
	assert.Equal(t, artSymbol, token.Value.Symbol, "value symbol")
	assert.Equal(t, "ipfs://master", token.URI, "wrong uri")
	assert.Equal(t, registry.Fingerprint("ipfs://master"), token.Fingerprint, "wrong fingerprint")

	assert.Equal(t, int64(1), s.ledger.Balance("bob", artSymbol).Quantity, "owner balance")
	assert.Nil(t, s.ledger.Audit(artSymbol), "conservation broken")

	// local ids are sequential
	second := s.mint(t, "bob", "ipfs://second")
	assert.Equal(t, tokenid.TokenId(1), second.TokenId(), "second local id")
}

// one mint leaves supply == owner balance == symbol index count; a
// symbol index entry lost outside the registry is an audit violation
func TestAuditSymbolIndex(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://audited")
	assert.Equal(t, int64(1), s.ledger.Balance("bob", artSymbol).Quantity, "owner balance")
	assert.Nil(t, s.ledger.Audit(artSymbol), "conserved state flagged")

	trx := s.store.NewTransaction()
	trx.Delete(s.store.Pool.SymbolTokens, append(artSymbol.Bytes(), globalId.TokenId().Bytes()...))
	assert.Nil(t, trx.Commit(), "commit error")

	assert.NotNil(t, s.ledger.Audit(artSymbol), "index mismatch not detected")
}

func TestMintRejects(t *testing.T) {
	s := setup(t)

	trx := s.store.NewTransaction()
	defer trx.Abort()

	_, err := s.registry.Mint(trx, "bob", currency.Symbol("XYZ"), "u", "")
	assert.Equal(t, fault.CurrencyDoesNotExist, err, "unknown currency accepted")

	_, err = s.registry.Mint(trx, "bob", artSymbol, "u", strings.Repeat("m", 257))
	assert.Equal(t, fault.MemoTooLong, err, "oversize memo accepted")

	s.env.Missing = map[account.Name]bool{"ghost": true}
	_, err = s.registry.Mint(trx, "ghost", artSymbol, "u", "")
	assert.Equal(t, fault.AccountDoesNotExist, err, "missing account accepted")
}

func TestMintFungibleCurrency(t *testing.T) {
	s := setup(t)

	eos := currency.Symbol("EOS")
	err := s.ledger.CreateCurrency("eosio", currency.NewAmount(0, eos), currency.Fungible)
	assert.Nil(t, err, "create error")

	trx := s.store.NewTransaction()
	defer trx.Abort()
	_, err = s.registry.Mint(trx, "bob", eos, "u", "")
	assert.Equal(t, fault.NotFungibleCurrency, err, "fungible currency minted as token")
}

func TestTransfer(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://master")

	trx := s.store.NewTransaction()
	err := s.registry.Transfer(trx, "bob", "carol", globalId, "a gift")
	assert.Nil(t, err, "transfer error")
	assert.Nil(t, trx.Commit(), "commit error")

	owner, err := s.registry.OwnerOf(globalId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, account.Name("carol"), owner, "owner unchanged")

	assert.Equal(t, int64(0), s.ledger.Balance("bob", artSymbol).Quantity, "sender balance")
	assert.Equal(t, int64(1), s.ledger.Balance("carol", artSymbol).Quantity, "receiver balance")

	// both parties were notified
	assert.Equal(t, []account.Name{"bob", "carol"}, s.env.Notified, "notifications")

	carols, err := s.registry.TokensByOwner("carol")
	assert.Nil(t, err, "index error")
	assert.Equal(t, []tokenid.GlobalId{globalId}, carols, "receiver index")

	bobs, err := s.registry.TokensByOwner("bob")
	assert.Nil(t, err, "index error")
	assert.Equal(t, 0, len(bobs), "sender index not cleared")

	assert.Nil(t, s.ledger.Audit(artSymbol), "conservation broken")
}

func TestTransferRejects(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://master")

	trx := s.store.NewTransaction()
	defer trx.Abort()

	err := s.registry.Transfer(trx, "bob", "bob", globalId, "")
	assert.Equal(t, fault.TransferToSelf, err, "self transfer accepted")

	err = s.registry.Transfer(trx, "carol", "dave", globalId, "")
	assert.Equal(t, fault.NotTokenOwner, err, "non-owner transfer accepted")

	err = s.registry.Transfer(trx, "bob", "carol", tokenid.NewGlobalId("other", 9), "")
	assert.Equal(t, fault.TokenDoesNotExist, err, "phantom token transferred")

	err = s.registry.Transfer(trx, "bob", "carol", globalId, strings.Repeat("m", 257))
	assert.Equal(t, fault.MemoTooLong, err, "oversize memo accepted")
}

// a transfer whose destination check fails must leave the whole state
// untouched once the transaction is aborted
func TestTransferAtomicity(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://master")

	s.env.Missing = map[account.Name]bool{"ghost": true}

	trx := s.store.NewTransaction()
	err := s.registry.Transfer(trx, "bob", "ghost", globalId, "")
	assert.Equal(t, fault.AccountDoesNotExist, err, "missing destination accepted")
	trx.Abort()

	owner, err := s.registry.OwnerOf(globalId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, account.Name("bob"), owner, "owner mutated by failed transfer")
	assert.Equal(t, int64(1), s.ledger.Balance("bob", artSymbol).Quantity, "balance mutated by failed transfer")

	bobs, err := s.registry.TokensByOwner("bob")
	assert.Nil(t, err, "index error")
	assert.Equal(t, []tokenid.GlobalId{globalId}, bobs, "index mutated by failed transfer")
}

// mint, transfer away and back restores the post-mint state exactly
func TestTransferRoundTrip(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://master")

	trx := s.store.NewTransaction()
	assert.Nil(t, s.registry.Transfer(trx, "bob", "carol", globalId, ""), "transfer error")
	assert.Nil(t, trx.Commit(), "commit error")

	trx = s.store.NewTransaction()
	assert.Nil(t, s.registry.Transfer(trx, "carol", "bob", globalId, ""), "transfer error")
	assert.Nil(t, trx.Commit(), "commit error")

	owner, err := s.registry.OwnerOf(globalId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, account.Name("bob"), owner, "owner not restored")
	assert.Equal(t, int64(1), s.ledger.Balance("bob", artSymbol).Quantity, "balance not restored")
	assert.Equal(t, int64(0), s.ledger.Balance("carol", artSymbol).Quantity, "intermediate balance kept")
	assert.Nil(t, s.ledger.Audit(artSymbol), "conservation broken")
}

type burntRecorder struct {
	ids []tokenid.TokenId
}

func (b *burntRecorder) TokenBurnt(trx storage.Transaction, id tokenid.TokenId) {
	b.ids = append(b.ids, id)
}

func TestBurn(t *testing.T) {
	s := setup(t)

	recorder := &burntRecorder{}
	s.registry.AttachCascade(recorder)

	globalId := s.mint(t, "bob", "ipfs://master")

	trx := s.store.NewTransaction()
	err := s.registry.Burn(trx, "bob", globalId, "goodbye")
	assert.Nil(t, err, "burn error")
	assert.Nil(t, trx.Commit(), "commit error")

	_, err = s.registry.TokenByGlobalId(globalId)
	assert.Equal(t, fault.TokenDoesNotExist, err, "token survived burn")

	assert.Equal(t, int64(0), s.ledger.Balance("bob", artSymbol).Quantity, "balance survived burn")

	record, err := s.ledger.Currency(artSymbol)
	assert.Nil(t, err, "currency error")
	assert.Equal(t, int64(0), record.Supply, "supply survived burn")
	assert.Equal(t, int64(1), record.Issued, "issued must be monotonic")

	assert.Equal(t, []tokenid.TokenId{globalId.TokenId()}, recorder.ids, "cascade not run")
	assert.Nil(t, s.ledger.Audit(artSymbol), "conservation broken")

	// a later mint must not reuse the burnt local id
	second := s.mint(t, "bob", "ipfs://second")
	assert.Equal(t, tokenid.TokenId(1), second.TokenId(), "local id reused")
}

func TestBurnRejects(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://master")

	trx := s.store.NewTransaction()
	defer trx.Abort()

	err := s.registry.Burn(trx, "carol", globalId, "")
	assert.Equal(t, fault.NotTokenOwner, err, "non-owner burn accepted")

	err = s.registry.Burn(trx, "bob", tokenid.NewGlobalId("other", 9), "")
	assert.Equal(t, fault.TokenDoesNotExist, err, "phantom token burnt")
}

func TestSetPayer(t *testing.T) {
	s := setup(t)

	globalId := s.mint(t, "bob", "ipfs://master")

	trx := s.store.NewTransaction()
	assert.Nil(t, s.registry.Transfer(trx, "bob", "carol", globalId, ""), "transfer error")
	assert.Nil(t, trx.Commit(), "commit error")

	token, err := s.registry.TokenByGlobalId(globalId)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, account.Name("bob"), token.Payer, "payer changed by transfer")

	trx = s.store.NewTransaction()
	err = s.registry.SetPayer(trx, "carol", token.Id)
	assert.Nil(t, err, "set payer error")
	assert.Nil(t, trx.Commit(), "commit error")

	token, err = s.registry.TokenByGlobalId(globalId)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, account.Name("carol"), token.Payer, "payer not updated")
	assert.Equal(t, account.Name("carol"), token.Owner, "owner changed")
	assert.Equal(t, int64(1), s.ledger.Balance("carol", artSymbol).Quantity, "balance changed")

	// only the current owner may take over payment
	trx = s.store.NewTransaction()
	err = s.registry.SetPayer(trx, "bob", token.Id)
	assert.Equal(t, fault.NotTokenOwner, err, "non-owner payer accepted")
	trx.Abort()
}

func TestTokensBySymbol(t *testing.T) {
	s := setup(t)

	first := s.mint(t, "bob", "u1")
	second := s.mint(t, "carol", "u2")

	ids, err := s.registry.TokensBySymbol(artSymbol)
	assert.Nil(t, err, "index error")
	assert.Equal(t, []tokenid.GlobalId{first, second}, ids, "symbol index")
}
