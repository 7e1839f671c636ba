// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/currency"
	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/tokenid"
)

// FingerprintLength - size of a content locator fingerprint
const FingerprintLength = 32

// Token - one minted asset
//
// the local id is assigned sequentially and never reused; the global
// id and value symbol are immutable after mint; only the owner and
// payer fields ever change
type Token struct {
	Id          tokenid.TokenId
	GlobalId    tokenid.GlobalId
	Owner       account.Name
	Payer       account.Name
	Value       currency.Amount
	Fingerprint [FingerprintLength]byte
	URI         string
}

// structure of the packed token record
const (
	idStart  = 0
	idFinish = idStart + tokenid.TokenIdLength

	uuidStart  = idFinish
	uuidFinish = uuidStart + tokenid.GlobalIdLength

	ownerStart  = uuidFinish
	ownerFinish = ownerStart + 8

	payerStart  = ownerFinish
	payerFinish = payerStart + 8

	valueSymbolStart  = payerFinish
	valueSymbolFinish = valueSymbolStart + currency.SymbolLength

	valueQuantityStart  = valueSymbolFinish
	valueQuantityFinish = valueQuantityStart + 8

	fingerprintStart  = valueQuantityFinish
	fingerprintFinish = fingerprintStart + FingerprintLength

	uriLengthStart  = fingerprintFinish
	uriLengthFinish = uriLengthStart + 2

	uriStart = uriLengthFinish
)

// Fingerprint - the stored digest of a content locator
func Fingerprint(uri string) [FingerprintLength]byte {
	return sha3.Sum256([]byte(uri))
}

// Pack - pack the token to its storage bytes
func (t Token) Pack() []byte {
	buffer := make([]byte, uriStart+len(t.URI))

	copy(buffer[idStart:idFinish], t.Id.Bytes())
	copy(buffer[uuidStart:uuidFinish], t.GlobalId.Bytes())
	copy(buffer[ownerStart:ownerFinish], t.Owner.Bytes())
	copy(buffer[payerStart:payerFinish], t.Payer.Bytes())
	copy(buffer[valueSymbolStart:valueSymbolFinish], t.Value.Symbol.Bytes())
	binary.BigEndian.PutUint64(buffer[valueQuantityStart:valueQuantityFinish], uint64(t.Value.Quantity))
	copy(buffer[fingerprintStart:fingerprintFinish], t.Fingerprint[:])
	binary.BigEndian.PutUint16(buffer[uriLengthStart:uriLengthFinish], uint16(len(t.URI)))
	copy(buffer[uriStart:], t.URI)

	return buffer
}

// TokenFromBytes - unpack a stored token record
func TokenFromBytes(buffer []byte) (*Token, error) {
	if len(buffer) < uriStart {
		return nil, fault.NotTokenRecord
	}

	id, err := tokenid.TokenIdFromBytes(buffer[idStart:idFinish])
	if nil != err {
		return nil, fault.NotTokenRecord
	}
	globalId, err := tokenid.GlobalIdFromBytes(buffer[uuidStart:uuidFinish])
	if nil != err {
		return nil, fault.NotTokenRecord
	}
	symbol, err := currency.SymbolFromBytes(buffer[valueSymbolStart:valueSymbolFinish])
	if nil != err {
		return nil, fault.NotTokenRecord
	}

	uriLength := int(binary.BigEndian.Uint16(buffer[uriLengthStart:uriLengthFinish]))
	if uriStart+uriLength != len(buffer) {
		return nil, fault.NotTokenRecord
	}

	t := &Token{
		Id:       id,
		GlobalId: globalId,
		Owner:    account.NameFromValue(binary.BigEndian.Uint64(buffer[ownerStart:ownerFinish])),
		Payer:    account.NameFromValue(binary.BigEndian.Uint64(buffer[payerStart:payerFinish])),
		Value: currency.NewAmount(
			int64(binary.BigEndian.Uint64(buffer[valueQuantityStart:valueQuantityFinish])),
			symbol),
		URI: string(buffer[uriStart:]),
	}
	copy(t.Fingerprint[:], buffer[fingerprintStart:fingerprintFinish])

	return t, nil
}
