// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/auction"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/tokenid"
)

const (
	rateLimitAuction = 200
	rateBurstAuction = 100
)

// Auction - type for the RPC
type Auction struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Auction *auction.Auction
}

func newAuction(log *logger.L, handles Handles) *Auction {
	return &Auction{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAuction, rateBurstAuction),
		Auction: handles.Auction,
	}
}

// ---

// AuctionOpenArguments - arguments for opening a sealed auction
type AuctionOpenArguments struct {
	Owner        string `json:"owner"`
	TokenId      string `json:"tokenId"`
	MinimumPrice string `json:"minimumPrice"`
	Duration     int64  `json:"duration"`
}

// AuctionOpenReply - the auction deadline after opening
type AuctionOpenReply struct {
	EndTime int64 `json:"endTime"`
}

// Open - put a token up for auction
func (a *Auction) Open(arguments *AuctionOpenArguments, reply *AuctionOpenReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Auction.Open: %+v", arguments)

	owner, err := account.NameFromString(arguments.Owner)
	if nil != err {
		return err
	}
	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}
	minimumPrice, err := currency.AmountFromString(arguments.MinimumPrice)
	if nil != err {
		return err
	}

	err = a.Auction.Open(owner, globalId, minimumPrice, arguments.Duration)
	if nil != err {
		return err
	}

	record, err := a.Auction.AuctionOf(globalId)
	if nil != err {
		return err
	}
	reply.EndTime = record.EndTime
	return nil
}

// ---

// AuctionBidArguments - arguments for a direct bid
type AuctionBidArguments struct {
	Bidder  string `json:"bidder"`
	TokenId string `json:"tokenId"`
	Price   string `json:"price"`
}

// AuctionBidReply - the leading price after the bid
type AuctionBidReply struct {
	Price string `json:"price"`
}

// Bid - place a bid on an open auction
func (a *Auction) Bid(arguments *AuctionBidArguments, reply *AuctionBidReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Auction.Bid: %+v", arguments)

	bidder, err := account.NameFromString(arguments.Bidder)
	if nil != err {
		return err
	}
	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}
	price, err := currency.AmountFromString(arguments.Price)
	if nil != err {
		return err
	}

	err = a.Auction.Bid(bidder, globalId, price)
	if nil != err {
		return err
	}

	reply.Price = price.String()
	return nil
}

// ---

// AuctionAcceptArguments - the auctioned token
type AuctionAcceptArguments struct {
	TokenId string `json:"tokenId"`
}

// AuctionAcceptReply - settlement result
type AuctionAcceptReply struct {
	Owner string `json:"owner"`
	Price string `json:"price"`
}

// Accept - the owner accepts the current top bid
func (a *Auction) Accept(arguments *AuctionAcceptArguments, reply *AuctionAcceptReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Auction.Accept: %+v", arguments)

	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	err = a.Auction.AcceptBid(globalId)
	if nil != err {
		return err
	}

	record, err := a.Auction.AuctionOf(globalId)
	if nil != err {
		return err
	}
	reply.Owner = record.Bidder.String()
	reply.Price = record.Price.String()
	return nil
}

// ---

// AuctionFinalizeArguments - the winning bidder claims after the deadline
type AuctionFinalizeArguments struct {
	Bidder  string `json:"bidder"`
	TokenId string `json:"tokenId"`
}

// AuctionFinalizeReply - settlement result
type AuctionFinalizeReply struct {
	Owner string `json:"owner"`
	Price string `json:"price"`
}

// Finalize - the top bidder settles an expired auction
func (a *Auction) Finalize(arguments *AuctionFinalizeArguments, reply *AuctionFinalizeReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Auction.Finalize: %+v", arguments)

	bidder, err := account.NameFromString(arguments.Bidder)
	if nil != err {
		return err
	}
	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	err = a.Auction.FinalizeExpired(bidder, globalId)
	if nil != err {
		return err
	}

	record, err := a.Auction.AuctionOf(globalId)
	if nil != err {
		return err
	}
	reply.Owner = record.Bidder.String()
	reply.Price = record.Price.String()
	return nil
}

// ---

// AuctionPaymentArguments - an incoming currency transfer notification
type AuctionPaymentArguments struct {
	Payer  string `json:"payer"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Memo   string `json:"memo"`
}

// AuctionPaymentReply - dispatch confirmation
type AuctionPaymentReply struct {
	Accepted bool `json:"accepted"`
}

// Payment - dispatch an incoming payment to bidding or qualification
func (a *Auction) Payment(arguments *AuctionPaymentArguments, reply *AuctionPaymentReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Auction.Payment: %+v", arguments)

	payer, err := account.NameFromString(arguments.Payer)
	if nil != err {
		return err
	}
	to, err := account.NameFromString(arguments.To)
	if nil != err {
		return err
	}
	quantity, err := currency.AmountFromString(arguments.Amount)
	if nil != err {
		return err
	}

	err = a.Auction.PaymentNotification(payer, to, quantity, arguments.Memo)
	if nil != err {
		return err
	}

	reply.Accepted = true
	return nil
}

// ---

// AuctionStatusArguments - auction identification
type AuctionStatusArguments struct {
	TokenId string `json:"tokenId"`
}

// AuctionStatusReply - the current auction state of one token
type AuctionStatusReply struct {
	Bidder  string `json:"bidder"`
	Price   string `json:"price"`
	EndTime int64  `json:"endTime"`
	State   string `json:"state"`
	BidTime int64  `json:"bidTime"`
}

// Status - read the auction record of a token
func (a *Auction) Status(arguments *AuctionStatusArguments, reply *AuctionStatusReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	record, err := a.Auction.AuctionOf(globalId)
	if nil != err {
		return err
	}

	reply.Bidder = record.Bidder.String()
	reply.Price = record.Price.String()
	reply.EndTime = record.EndTime
	reply.State = record.State.String()
	reply.BidTime = record.BidTime
	return nil
}

// ---

// AuctionCreditsArguments - bidder identification
type AuctionCreditsArguments struct {
	Bidder string `json:"bidder"`
}

// AuctionCreditsReply - remaining bid credits
type AuctionCreditsReply struct {
	Credits   uint64 `json:"credits"`
	Qualified bool   `json:"qualified"`
}

// Credits - read the bid qualification of an account
func (a *Auction) Credits(arguments *AuctionCreditsArguments, reply *AuctionCreditsReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	bidder, err := account.NameFromString(arguments.Bidder)
	if nil != err {
		return err
	}

	reply.Credits, reply.Qualified = a.Auction.QualificationOf(bidder)
	return nil
}

// ---

// AuctionPurgeArguments - no arguments
type AuctionPurgeArguments struct {
}

// AuctionPurgeReply - purge confirmation
type AuctionPurgeReply struct {
	Done bool `json:"done"`
}

// Purge - operator removal of all auction records
func (a *Auction) Purge(arguments *AuctionPurgeArguments, reply *AuctionPurgeReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Auction.Purge: %+v", arguments)

	err := a.Auction.PurgeAll()
	if nil != err {
		return err
	}

	reply.Done = true
	return nil
}
