// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorizationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AccountDoesNotExist          = NotFoundError("account does not exist")
	AlreadyInitialised           = ProcessError("already initialised")
	AuctionDoesNotExist          = NotFoundError("auction does not exist")
	AuctionHasClosed             = InvalidError("auction has closed")
	AuctionHasExpired            = InvalidError("auction deadline has passed")
	AuctionNotExpired            = InvalidError("auction deadline has not passed")
	BidTooLow                    = InvalidError("bid price must exceed current price")
	BidderIsOwner                = AuthorizationError("owner cannot bid on own auction")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ControlTokenAlreadySetup     = InvalidError("control token was already setup")
	ControlTokenDoesNotExist     = NotFoundError("control token does not exist")
	ControlTokenNotSetup         = InvalidError("control token is not setup")
	CurrencyAlreadyExists        = ExistsError("currency with symbol already exists")
	CurrencyDoesNotExist         = NotFoundError("currency with symbol does not exist")
	InsufficientSupply           = InvalidError("currency supply is not enough")
	InvalidAccountName           = InvalidError("invalid account name")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCurrencyForBid        = InvalidError("wrong currency for bid")
	InvalidIpAddress             = InvalidError("invalid ip address")
	InvalidStructPointer         = ProcessError("invalid struct pointer")
	InvalidStructure             = InvalidError("invalid structure")
	InvalidSymbolName            = InvalidError("invalid symbol name")
	InvalidTokenType             = InvalidError("invalid token type")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	LengthMismatch               = InvalidError("value arrays must be of equal length")
	LeverIdOutOfRange            = InvalidError("lever id out of range")
	LeverValueOutOfRange         = InvalidError("new value outside lever range")
	MaximumSupplyExceeded        = InvalidError("quantity would exceed maximum supply")
	MemoTooLong                  = InvalidError("memo has more than 256 bytes")
	MinimumPriceRequired         = InvalidError("minimum price must be positive")
	MissingBidQualification      = NotFoundError("no bid qualification record")
	MissingParameters            = InvalidError("missing parameters")
	NoBidCreditRemaining         = InvalidError("no bid credits remaining")
	NoBidToAccept                = InvalidError("auction has no bid to accept")
	NotAuthorised                = AuthorizationError("not authorised")
	NotAuctionRecord             = ProcessError("not an auction record")
	NotBalanceRecord             = NotFoundError("no balance record found")
	NotControlTokenRecord        = ProcessError("not a control token record")
	NotCurrencyRecord            = ProcessError("not a currency record")
	NotFungibleCurrency          = InvalidError("currency is fungible, cannot mint as token")
	NotInitialised               = ProcessError("not initialised")
	NotTokenOwner                = AuthorizationError("account does not own token")
	NotTokenRecord               = ProcessError("not a token record")
	NotTopBidder                 = AuthorizationError("account is not the top bidder")
	OverdrawnBalance             = InvalidError("overdrawn balance")
	QualificationBelowMinimum    = InvalidError("funding amount below qualification minimum")
	RateLimiting                 = InvalidError("rate limiting active")
	SupplyMustBePositive         = InvalidError("must issue positive quantity")
	SymbolMismatch               = InvalidError("currency symbols do not match")
	TokenDoesNotExist            = NotFoundError("token does not exist")
	TransferToSelf               = InvalidError("cannot transfer to self")
	WrongNetworkForConnection    = InvalidError("wrong network for connection")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// IsErrAuthorization - determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
