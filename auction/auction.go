// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auction - sealed ascending price auctions over tokens
//
// any token owner can open a time boxed auction in the bid currency;
// bids arrive as payment notifications and each consumes one
// qualification credit earned by funding in a separate currency;
// settlement pays the seller and conveys the token in one step
package auction

import (
	"strings"

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

// memo prefix dispatching a payment to an auction bid
const bidMemoPrefix = "bid:"

// Settings - auction subsystem configuration
type Settings struct {
	BidSymbol            currency.Symbol // settlement currency
	QualificationSymbol  currency.Symbol // funding currency for bid credits
	QualificationMinimum int64           // funding must exceed this amount
	RefundFailedBids     bool            // return the credit when a bid fails validation
}

// Auction - auction and qualification operations over one store
type Auction struct {
	log      *logger.L
	env      host.Environment
	ledger   *ledger.Ledger
	registry *registry.Registry
	store    *storage.Store
	settings Settings
}

// New - an auction subsystem with the given settings
//
// registers itself as a burn cascade so a burnt token cannot leave a
// live auction behind
func New(env host.Environment, l *ledger.Ledger, r *registry.Registry, store *storage.Store, settings Settings) *Auction {
	a := &Auction{
		log:      logger.New("auction"),
		env:      env,
		ledger:   l,
		registry: r,
		store:    store,
		settings: settings,
	}
	r.AttachCascade(a)
	return a
}

// Open - open a new auction cycle, or reopen a closed one
//
// the owner holds the reserve: bidder is reset to the owner at the
// minimum price; reopening an already open auction is a no-op
func (a *Auction) Open(owner account.Name, globalId tokenid.GlobalId, minPrice currency.Amount, duration int64) error {
	if err := a.env.RequireAuthorization(owner); nil != err {
		return err
	}
	holder, err := a.registry.OwnerOf(globalId)
	if nil != err {
		return err
	}
	if holder != owner {
		return fault.NotTokenOwner
	}
	if minPrice.Quantity <= 0 {
		return fault.MinimumPriceRequired
	}
	if minPrice.Symbol != a.settings.BidSymbol {
		return fault.InvalidCurrencyForBid
	}

	id := globalId.TokenId()

	trx := a.store.NewTransaction()
	packed := trx.Get(a.store.Pool.Auctions, id.Bytes())
	if nil != packed {
		record, err := RecordFromBytes(packed)
		if nil != err {
			trx.Abort()
			return err
		}
		if StateOpen == record.State {
			trx.Abort()
			a.log.Infof("open: %s already open, ignored", globalId)
			return nil
		}
	}

	record := Record{
		Id:      id,
		Bidder:  owner,
		Price:   minPrice,
		EndTime: a.env.CurrentTime() + duration,
		State:   StateOpen,
		BidTime: 0,
	}
	trx.Put(a.store.Pool.Auctions, id.Bytes(), record.Pack())
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	a.log.Infof("open: %s  reserve: %s  end: %d", globalId, minPrice, record.EndTime)
	return nil
}

// Bid - place a bid on an open auction
//
// one qualification credit is consumed before any validation runs, so
// in the default mode a failed bid still spends a credit; with
// RefundFailedBids set the consumption rolls back on failure
func (a *Auction) Bid(bidder account.Name, globalId tokenid.GlobalId, price currency.Amount) error {
	id := globalId.TokenId()

	trx := a.store.NewTransaction()

	credits, found := trx.GetN(a.store.Pool.BidQualifications, bidder.Bytes())
	if !found {
		trx.Abort()
		return fault.MissingBidQualification
	}
	if 0 == credits {
		trx.Abort()
		return fault.NoBidCreditRemaining
	}
	trx.PutN(a.store.Pool.BidQualifications, bidder.Bytes(), credits-1)

	if err := a.placeBid(trx, bidder, id, price); nil != err {
		if a.settings.RefundFailedBids {
			trx.Abort()
		} else if e := trx.Commit(); nil != e {
			trx.Abort()
			return e
		}
		a.log.Warnf("bid: %s  bidder: %s  rejected: %s", globalId, bidder, err)
		return err
	}

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}
	a.log.Infof("bid: %s  bidder: %s  price: %s", globalId, bidder, price)
	return nil
}

func (a *Auction) placeBid(trx storage.Transaction, bidder account.Name, id tokenid.TokenId, price currency.Amount) error {
	packed := trx.Get(a.store.Pool.Auctions, id.Bytes())
	if nil == packed {
		return fault.AuctionDoesNotExist
	}
	record, err := RecordFromBytes(packed)
	if nil != err {
		return err
	}
	if StateOpen != record.State {
		return fault.AuctionHasClosed
	}
	now := a.env.CurrentTime()
	if now > record.EndTime {
		return fault.AuctionHasExpired
	}

	// the seller cannot outbid: a winning self-bid would make the
	// auction unsettleable while genuine bidders lose their credits
	token, err := a.registry.TokenById(id)
	if nil != err {
		return err
	}
	if bidder == token.Owner {
		return fault.BidderIsOwner
	}
	if price.Symbol != a.settings.BidSymbol {
		return fault.InvalidCurrencyForBid
	}
	if price.Quantity <= record.Price.Quantity {
		return fault.BidTooLow
	}

	record.Bidder = bidder
	record.Price = price
	record.BidTime = now
	trx.Put(a.store.Pool.Auctions, id.Bytes(), record.Pack())
	return nil
}

// AcceptBid - the owner accepts the current top bid
//
// closes the cycle, pays the pre-transfer owner and conveys the token
// to the winning bidder; payment goes out before ownership changes
func (a *Auction) AcceptBid(globalId tokenid.GlobalId) error {
	token, err := a.registry.TokenByGlobalId(globalId)
	if nil != err {
		return err
	}
	if err := a.env.RequireAuthorization(token.Owner); nil != err {
		return err
	}
	return a.settle(token, globalId)
}

// FinalizeExpired - the top bidder forces settlement after the deadline
//
// identical settlement to AcceptBid, reachable without seller action
// once the deadline has lapsed
func (a *Auction) FinalizeExpired(bidder account.Name, globalId tokenid.GlobalId) error {
	if err := a.env.RequireAuthorization(bidder); nil != err {
		return err
	}
	token, err := a.registry.TokenByGlobalId(globalId)
	if nil != err {
		return err
	}

	record, err := a.AuctionOf(globalId)
	if nil != err {
		return err
	}
	if StateOpen != record.State {
		return fault.AuctionHasClosed
	}
	if record.Bidder != bidder {
		return fault.NotTopBidder
	}
	if a.env.CurrentTime() <= record.EndTime {
		return fault.AuctionNotExpired
	}
	return a.settle(token, globalId)
}

func (a *Auction) settle(token *registry.Token, globalId tokenid.GlobalId) error {
	id := token.Id

	trx := a.store.NewTransaction()
	packed := trx.Get(a.store.Pool.Auctions, id.Bytes())
	if nil == packed {
		trx.Abort()
		return fault.AuctionDoesNotExist
	}
	record, err := RecordFromBytes(packed)
	if nil != err {
		trx.Abort()
		return err
	}
	if StateOpen != record.State {
		trx.Abort()
		return fault.AuctionHasClosed
	}
	if record.Bidder == token.Owner {
		trx.Abort()
		return fault.NoBidToAccept
	}

	now := a.env.CurrentTime()
	if record.EndTime > now {
		record.EndTime = now
	}
	record.State = StateClosed
	trx.Put(a.store.Pool.Auctions, id.Bytes(), record.Pack())

	if err := a.registry.Award(trx, token.Owner, record.Bidder, globalId); nil != err {
		trx.Abort()
		return err
	}

	// seller proceeds go out only after the award has staged cleanly,
	// the payment is irreversible while the transaction can still abort
	operator := a.ledger.Operator()
	if token.Owner != operator {
		a.env.SendPayment(operator, token.Owner, record.Price, "sold: "+globalId.String())
	}

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}
	a.log.Infof("settled: %s  winner: %s  price: %s", globalId, record.Bidder, record.Price)
	return nil
}

// GrantQualification - earn one bid credit from a funding payment
//
// the counter is created at one or incremented; it is never deleted,
// a spent-out bidder keeps a zero credit record
func (a *Auction) GrantQualification(bidder account.Name, funding currency.Amount) error {
	if funding.Symbol != a.settings.QualificationSymbol {
		return fault.InvalidCurrencyForBid
	}
	if funding.Quantity <= a.settings.QualificationMinimum {
		return fault.QualificationBelowMinimum
	}

	trx := a.store.NewTransaction()
	credits, _ := trx.GetN(a.store.Pool.BidQualifications, bidder.Bytes())
	trx.PutN(a.store.Pool.BidQualifications, bidder.Bytes(), credits+1)
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	a.log.Infof("qualification: %s  credits: %d", bidder, credits+1)
	return nil
}

// QualificationOf - remaining bid credits of an account
func (a *Auction) QualificationOf(bidder account.Name) (uint64, bool) {
	return a.store.Pool.BidQualifications.GetN(bidder.Bytes())
}

// AuctionOf - committed auction record of a token
func (a *Auction) AuctionOf(globalId tokenid.GlobalId) (*Record, error) {
	packed := a.store.Pool.Auctions.Get(globalId.TokenId().Bytes())
	if nil == packed {
		return nil, fault.AuctionDoesNotExist
	}
	return RecordFromBytes(packed)
}

// PaymentNotification - dispatch an inbound payment event
//
// payments not addressed to the ledger, self payments and unknown
// currencies are logged and ignored so unrelated transfers never
// abort; a recognised bid or funding payment is then processed and
// its own failures do surface
func (a *Auction) PaymentNotification(payer account.Name, to account.Name, quantity currency.Amount, memo string) error {
	operator := a.ledger.Operator()
	if to != operator {
		a.log.Debugf("payment to %s ignored: not this ledger", to)
		return nil
	}
	if payer == operator {
		a.log.Debugf("own outbound payment ignored: %s", memo)
		return nil
	}

	switch quantity.Symbol {
	case a.settings.BidSymbol:
		if !strings.HasPrefix(memo, bidMemoPrefix) {
			a.log.Infof("payment from %s ignored: memo %q", payer, memo)
			return nil
		}
		globalId, err := tokenid.GlobalIdFromString(memo[len(bidMemoPrefix):])
		if nil != err {
			return err
		}
		return a.Bid(payer, globalId, quantity)

	case a.settings.QualificationSymbol:
		return a.GrantQualification(payer, quantity)

	default:
		a.log.Infof("payment from %s ignored: currency %s", payer, quantity.Symbol)
		return nil
	}
}

// PurgeAll - administrative removal of every auction record
func (a *Auction) PurgeAll() error {
	if err := a.env.RequireAuthorization(a.ledger.Operator()); nil != err {
		return err
	}

	trx := a.store.NewTransaction()
	count := 0
	cursor := a.store.Pool.Auctions.NewFetchCursor()
scanning:
	for {
		elements, err := cursor.Fetch(100)
		if nil != err {
			trx.Abort()
			return err
		}
		if 0 == len(elements) {
			break scanning
		}
		for _, e := range elements {
			trx.Delete(a.store.Pool.Auctions, e.Key)
			count += 1
		}
	}
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	a.log.Warnf("purged %d auction records", count)
	return nil
}

// TokenBurnt - burn cascade: drop the token's auction record
func (a *Auction) TokenBurnt(trx storage.Transaction, id tokenid.TokenId) {
	trx.Delete(a.store.Pool.Auctions, id.Bytes())
}
