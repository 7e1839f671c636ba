// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/auction"
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

var (
	artSymbol = currency.Symbol("ART")
	bidSymbol = currency.Symbol("EOS")
	pdhSymbol = currency.Symbol("PDH")
)

func eos(quantity int64) currency.Amount {
	return currency.NewAmount(quantity, bidSymbol)
}

func pdh(quantity int64) currency.Amount {
	return currency.NewAmount(quantity, pdhSymbol)
}

type testSetup struct {
	env      *fixtures.Environment
	store    *storage.Store
	ledger   *ledger.Ledger
	registry *registry.Registry
	auction  *auction.Auction
	token    tokenid.GlobalId
}

func setupWith(t *testing.T, refund bool) *testSetup {
	env := &fixtures.Environment{}
	store, err := storage.InitialiseMemory()
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	t.Cleanup(store.Finalise)

	l := ledger.New(env, fixtures.LedgerName, store)
	r := registry.New(env, l, store)
	a := auction.New(env, l, r, store, auction.Settings{
		BidSymbol:            bidSymbol,
		QualificationSymbol:  pdhSymbol,
		QualificationMinimum: 10,
		RefundFailedBids:     refund,
	})

	err = l.CreateCurrency("issuer", currency.NewAmount(1000, artSymbol), currency.NonFungible)
	if nil != err {
		t.Fatalf("create currency error: %s", err)
	}

	trx := store.NewTransaction()
	token, err := r.Mint(trx, "seller", artSymbol, "ipfs://art", "")
	if nil != err {
		t.Fatalf("mint error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}

	return &testSetup{
		env:      env,
		store:    store,
		ledger:   l,
		registry: r,
		auction:  a,
		token:    token,
	}
}

func setup(t *testing.T) *testSetup {
	return setupWith(t, false)
}

func (s *testSetup) qualify(t *testing.T, bidder account.Name, times int) {
	for i := 0; i < times; i += 1 {
		if err := s.auction.GrantQualification(bidder, pdh(11)); nil != err {
			t.Fatalf("qualification error: %s", err)
		}
	}
}

func TestOpen(t *testing.T) {
	s := setup(t)

	err := s.auction.Open("seller", s.token, eos(10), 1000)
	assert.Nil(t, err, "open error")

	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, auction.StateOpen, record.State, "not open")
	assert.Equal(t, account.Name("seller"), record.Bidder, "reserve holder")
	assert.Equal(t, eos(10), record.Price, "reserve price")
	assert.Equal(t, int64(1000), record.EndTime, "deadline")
}

func TestOpenRejects(t *testing.T) {
	s := setup(t)

	err := s.auction.Open("stranger", s.token, eos(10), 1000)
	assert.Equal(t, fault.NotTokenOwner, err, "non-owner open accepted")

	err = s.auction.Open("seller", s.token, eos(0), 1000)
	assert.Equal(t, fault.MinimumPriceRequired, err, "zero reserve accepted")

	err = s.auction.Open("seller", s.token, currency.NewAmount(10, artSymbol), 1000)
	assert.Equal(t, fault.InvalidCurrencyForBid, err, "wrong currency accepted")

	err = s.auction.Open("seller", tokenid.NewGlobalId("other", 9), eos(10), 1000)
	assert.Equal(t, fault.TokenDoesNotExist, err, "phantom token auctioned")
}

// re-opening an active auction is ignored, not an error
func TestOpenWhileOpenIsNoOp(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(11)), "bid error")

	err := s.auction.Open("seller", s.token, eos(50), 9999)
	assert.Nil(t, err, "reopen of open auction errored")

	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, eos(11), record.Price, "active auction was reset")
	assert.Equal(t, account.Name("alice"), record.Bidder, "active bidder was reset")
	assert.Equal(t, int64(1000), record.EndTime, "deadline was reset")
}

func TestBid(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 2)
	s.env.Time = 100

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")

	err := s.auction.Bid("alice", s.token, eos(11))
	assert.Nil(t, err, "bid error")

	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, account.Name("alice"), record.Bidder, "bidder not recorded")
	assert.Equal(t, eos(11), record.Price, "price not recorded")
	assert.Equal(t, int64(100), record.BidTime, "bid time not recorded")

	credits, found := s.auction.QualificationOf("alice")
	assert.True(t, found, "qualification record gone")
	assert.Equal(t, uint64(1), credits, "credit not consumed")
}

func TestBidRequiresQualification(t *testing.T) {
	s := setup(t)
	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")

	err := s.auction.Bid("alice", s.token, eos(11))
	assert.Equal(t, fault.MissingBidQualification, err, "unqualified bid accepted")

	s.qualify(t, "alice", 1)
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(11)), "bid error")

	// the single credit is spent
	err = s.auction.Bid("alice", s.token, eos(12))
	assert.Equal(t, fault.NoBidCreditRemaining, err, "spent-out bidder accepted")

	credits, found := s.auction.QualificationOf("alice")
	assert.True(t, found, "zero credit record deleted")
	assert.Equal(t, uint64(0), credits, "credits")
}

// default mode: a failed bid still spends its credit
func TestFailedBidConsumesCredit(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 1)
	s.qualify(t, "bob", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(11)), "bid error")

	err := s.auction.Bid("bob", s.token, eos(10))
	assert.Equal(t, fault.BidTooLow, err, "low bid accepted")

	credits, _ := s.auction.QualificationOf("bob")
	assert.Equal(t, uint64(0), credits, "failed bid kept its credit")
}

// strict mode: the credit consumption rolls back on failure
func TestFailedBidRefundedInStrictMode(t *testing.T) {
	s := setupWith(t, true)
	s.qualify(t, "alice", 1)
	s.qualify(t, "bob", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(11)), "bid error")

	err := s.auction.Bid("bob", s.token, eos(10))
	assert.Equal(t, fault.BidTooLow, err, "low bid accepted")

	credits, _ := s.auction.QualificationOf("bob")
	assert.Equal(t, uint64(1), credits, "failed bid spent its credit in strict mode")
}

func TestBidRejects(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 10)

	err := s.auction.Bid("alice", s.token, eos(11))
	assert.Equal(t, fault.AuctionDoesNotExist, err, "bid without auction accepted")

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")

	err = s.auction.Bid("alice", s.token, currency.NewAmount(11, artSymbol))
	assert.Equal(t, fault.InvalidCurrencyForBid, err, "wrong currency accepted")

	err = s.auction.Bid("alice", s.token, eos(10))
	assert.Equal(t, fault.BidTooLow, err, "equal price accepted")

	s.env.Time = 1001
	err = s.auction.Bid("alice", s.token, eos(11))
	assert.Equal(t, fault.AuctionHasExpired, err, "late bid accepted")
}

// a seller must not be able to outbid the real bidders: a winning
// self-bid would void the auction at settlement time
func TestBidByOwnerRejected(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 1)
	s.qualify(t, "seller", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(11)), "bid error")

	err := s.auction.Bid("seller", s.token, eos(12))
	assert.Equal(t, fault.BidderIsOwner, err, "self-bid accepted")

	// alice's bid stands and the auction still settles
	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, account.Name("alice"), record.Bidder, "top bidder displaced")
	assert.Equal(t, eos(11), record.Price, "top price displaced")

	assert.Nil(t, s.auction.AcceptBid(s.token), "accept error")
	owner, err := s.registry.OwnerOf(s.token)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, account.Name("alice"), owner, "token not conveyed")
}

func TestAcceptBid(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 1)
	s.env.Time = 100

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(11)), "bid error")

	err := s.auction.AcceptBid(s.token)
	assert.Nil(t, err, "accept error")

	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, auction.StateClosed, record.State, "not closed")
	assert.Equal(t, int64(100), record.EndTime, "end time not clamped to acceptance")

	owner, err := s.registry.OwnerOf(s.token)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, account.Name("alice"), owner, "token not conveyed")

	// the seller was paid the closing price before the token moved
	assert.Equal(t, 1, len(s.env.Payments), "payment count")
	payment := s.env.Payments[0]
	assert.Equal(t, fixtures.LedgerName, payment.From, "payment source")
	assert.Equal(t, account.Name("seller"), payment.To, "payment target")
	assert.Equal(t, eos(11), payment.Amount, "payment amount")

	assert.Nil(t, s.ledger.Audit(artSymbol), "conservation broken")

	// settlement is final for this cycle
	err = s.auction.AcceptBid(s.token)
	assert.Equal(t, fault.AuctionHasClosed, err, "second settlement accepted")
}

// a settlement that cannot stage the award must not pay the seller,
// the auction stays open and a later retry pays exactly once
func TestAcceptBidAbortedPaysNothing(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(11)), "bid error")

	s.env.Missing = map[account.Name]bool{"alice": true}
	err := s.auction.AcceptBid(s.token)
	assert.Equal(t, fault.AccountDoesNotExist, err, "award to missing account accepted")

	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, auction.StateOpen, record.State, "aborted settlement closed the auction")
	assert.Equal(t, 0, len(s.env.Payments), "aborted settlement paid the seller")

	owner, err := s.registry.OwnerOf(s.token)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, account.Name("seller"), owner, "token moved by aborted settlement")

	// retry once the account resolves again
	s.env.Missing = nil
	assert.Nil(t, s.auction.AcceptBid(s.token), "accept error")
	assert.Equal(t, 1, len(s.env.Payments), "payment count")
	assert.Equal(t, account.Name("seller"), s.env.Payments[0].To, "payment target")
}

func TestAcceptBidWithoutBid(t *testing.T) {
	s := setup(t)
	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")

	// the reserve holder is not a real bid
	err := s.auction.AcceptBid(s.token)
	assert.Equal(t, fault.NoBidToAccept, err, "reserve accepted as bid")
}

func TestFinalizeExpired(t *testing.T) {
	s := setup(t)
	s.qualify(t, "carol", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("carol", s.token, eos(15)), "bid error")

	// too early
	err := s.auction.FinalizeExpired("carol", s.token)
	assert.Equal(t, fault.AuctionNotExpired, err, "early finalize accepted")

	s.env.Time = 1001

	// only the top bidder may force settlement
	err = s.auction.FinalizeExpired("dave", s.token)
	assert.Equal(t, fault.NotTopBidder, err, "stranger finalize accepted")

	err = s.auction.FinalizeExpired("carol", s.token)
	assert.Nil(t, err, "finalize error")

	owner, err := s.registry.OwnerOf(s.token)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, account.Name("carol"), owner, "token not conveyed")

	assert.Equal(t, 1, len(s.env.Payments), "payment count")
	assert.Equal(t, account.Name("seller"), s.env.Payments[0].To, "payment target")
	assert.Equal(t, eos(15), s.env.Payments[0].Amount, "payment amount")
}

// both settlement paths stay open after the deadline until one of
// them consumes the CLOSED transition
func TestAcceptStillPossibleAfterDeadline(t *testing.T) {
	s := setup(t)
	s.qualify(t, "carol", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("carol", s.token, eos(15)), "bid error")

	s.env.Time = 2000
	assert.Nil(t, s.auction.AcceptBid(s.token), "late accept error")

	err := s.auction.FinalizeExpired("carol", s.token)
	assert.Equal(t, fault.AuctionHasClosed, err, "second settlement path accepted")
}

func TestReopen(t *testing.T) {
	s := setup(t)
	s.qualify(t, "alice", 1)
	s.qualify(t, "bob", 1)

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Bid("alice", s.token, eos(20)), "bid error")
	assert.Nil(t, s.auction.AcceptBid(s.token), "accept error")

	// the new owner reopens with a lower reserve
	s.env.Time = 5000
	err := s.auction.Open("alice", s.token, eos(5), 1000)
	assert.Nil(t, err, "reopen error")

	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, auction.StateOpen, record.State, "not reopened")
	assert.Equal(t, account.Name("alice"), record.Bidder, "bidder not reset to owner")
	assert.Equal(t, eos(5), record.Price, "price not reset")
	assert.Equal(t, int64(6000), record.EndTime, "fresh deadline not assigned")

	// a bid below the previous closing price but above the new reserve
	assert.Nil(t, s.auction.Bid("bob", s.token, eos(6)), "bid error")
}

func TestGrantQualification(t *testing.T) {
	s := setup(t)

	err := s.auction.GrantQualification("alice", pdh(10))
	assert.Equal(t, fault.QualificationBelowMinimum, err, "threshold amount accepted")

	err = s.auction.GrantQualification("alice", eos(100))
	assert.Equal(t, fault.InvalidCurrencyForBid, err, "wrong currency accepted")

	assert.Nil(t, s.auction.GrantQualification("alice", pdh(11)), "grant error")
	assert.Nil(t, s.auction.GrantQualification("alice", pdh(50)), "grant error")

	credits, found := s.auction.QualificationOf("alice")
	assert.True(t, found, "no qualification record")
	assert.Equal(t, uint64(2), credits, "credits")
}

func TestPaymentNotification(t *testing.T) {
	s := setup(t)
	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")

	// payments to someone else, from ourselves or in an unknown
	// currency are ignored without error
	assert.Nil(t, s.auction.PaymentNotification("alice", "stranger", eos(11), "bid:"+s.token.String()), "foreign recipient errored")
	assert.Nil(t, s.auction.PaymentNotification(fixtures.LedgerName, fixtures.LedgerName, eos(11), "refund"), "self payment errored")
	assert.Nil(t, s.auction.PaymentNotification("alice", fixtures.LedgerName, currency.NewAmount(11, currency.Symbol("XYZ")), "bid:1"), "unknown currency errored")
	assert.Nil(t, s.auction.PaymentNotification("alice", fixtures.LedgerName, eos(11), "thanks"), "chatty memo errored")

	// a funding payment grants a credit
	err := s.auction.PaymentNotification("alice", fixtures.LedgerName, pdh(11), "")
	assert.Nil(t, err, "funding dispatch error")
	credits, _ := s.auction.QualificationOf("alice")
	assert.Equal(t, uint64(1), credits, "credit not granted")

	// a bid payment places the bid
	err = s.auction.PaymentNotification("alice", fixtures.LedgerName, eos(11), "bid:"+s.token.String())
	assert.Nil(t, err, "bid dispatch error")

	record, err := s.auction.AuctionOf(s.token)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, account.Name("alice"), record.Bidder, "bid not placed")

	// bid failures do surface to the host
	s.qualify(t, "bob", 1)
	err = s.auction.PaymentNotification("bob", fixtures.LedgerName, eos(11), "bid:"+s.token.String())
	assert.Equal(t, fault.BidTooLow, err, "low bid dispatch accepted")
}

func TestPurgeAll(t *testing.T) {
	s := setup(t)

	trx := s.store.NewTransaction()
	second, err := s.registry.Mint(trx, "seller", artSymbol, "ipfs://two", "")
	assert.Nil(t, err, "mint error")
	assert.Nil(t, trx.Commit(), "commit error")

	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")
	assert.Nil(t, s.auction.Open("seller", second, eos(10), 1000), "open error")

	s.env.Authorized = map[account.Name]bool{"seller": true}
	err = s.auction.PurgeAll()
	assert.Equal(t, fault.NotAuthorised, err, "unprivileged purge accepted")

	s.env.Authorized = nil
	assert.Nil(t, s.auction.PurgeAll(), "purge error")

	_, err = s.auction.AuctionOf(s.token)
	assert.Equal(t, fault.AuctionDoesNotExist, err, "record survived purge")
	_, err = s.auction.AuctionOf(second)
	assert.Equal(t, fault.AuctionDoesNotExist, err, "record survived purge")
}

// burning a token under auction removes the auction record
func TestBurnCascade(t *testing.T) {
	s := setup(t)
	assert.Nil(t, s.auction.Open("seller", s.token, eos(10), 1000), "open error")

	trx := s.store.NewTransaction()
	assert.Nil(t, s.registry.Burn(trx, "seller", s.token, ""), "burn error")
	assert.Nil(t, trx.Commit(), "commit error")

	_, err := s.auction.AuctionOf(s.token)
	assert.Equal(t, fault.AuctionDoesNotExist, err, "auction survived burn")
}
