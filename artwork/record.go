// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package artwork

import (
	"encoding/binary"

	"github.com/artmark-inc/artmarkd/fault"
	"github.com/artmark-inc/artmarkd/tokenid"
)

// ControlToken - lever state attached to one token
//
// a master token references itself; a layer token references its
// master; once IsSetup is true the three value slices have equal
// length and min <= current <= max holds for every lever
type ControlToken struct {
	Id            tokenid.TokenId
	Master        tokenid.TokenId
	IsSetup       bool
	MinValues     []int64
	MaxValues     []int64
	CurrentValues []int64
}

// LeverCount - number of configured levers
func (c *ControlToken) LeverCount() int {
	return len(c.CurrentValues)
}

// structure of the packed control token record
const (
	controlIdStart  = 0
	controlIdFinish = controlIdStart + tokenid.TokenIdLength

	controlMasterStart  = controlIdFinish
	controlMasterFinish = controlMasterStart + tokenid.TokenIdLength

	controlFlagsStart  = controlMasterFinish
	controlFlagsFinish = controlFlagsStart + 1

	controlCountStart  = controlFlagsFinish
	controlCountFinish = controlCountStart + 8

	controlValuesStart = controlCountFinish
)

// Pack - pack the control token to its storage bytes
func (c ControlToken) Pack() []byte {
	count := len(c.CurrentValues)
	buffer := make([]byte, controlValuesStart+3*8*count)

	copy(buffer[controlIdStart:controlIdFinish], c.Id.Bytes())
	copy(buffer[controlMasterStart:controlMasterFinish], c.Master.Bytes())
	if c.IsSetup {
		buffer[controlFlagsStart] = 0x01
	}
	binary.BigEndian.PutUint64(buffer[controlCountStart:controlCountFinish], uint64(count))

	offset := controlValuesStart
	for _, values := range [][]int64{c.MinValues, c.MaxValues, c.CurrentValues} {
		for _, v := range values {
			binary.BigEndian.PutUint64(buffer[offset:offset+8], uint64(v))
			offset += 8
		}
	}
	return buffer
}

// ControlTokenFromBytes - unpack a stored control token record
func ControlTokenFromBytes(buffer []byte) (*ControlToken, error) {
	if len(buffer) < controlValuesStart {
		return nil, fault.NotControlTokenRecord
	}

	count := int(binary.BigEndian.Uint64(buffer[controlCountStart:controlCountFinish]))
	if controlValuesStart+3*8*count != len(buffer) {
		return nil, fault.NotControlTokenRecord
	}

	id, err := tokenid.TokenIdFromBytes(buffer[controlIdStart:controlIdFinish])
	if nil != err {
		return nil, fault.NotControlTokenRecord
	}
	master, err := tokenid.TokenIdFromBytes(buffer[controlMasterStart:controlMasterFinish])
	if nil != err {
		return nil, fault.NotControlTokenRecord
	}

	c := &ControlToken{
		Id:      id,
		Master:  master,
		IsSetup: 0 != buffer[controlFlagsStart]&0x01,
	}

	offset := controlValuesStart
	for _, values := range []*[]int64{&c.MinValues, &c.MaxValues, &c.CurrentValues} {
		*values = make([]int64, count)
		for i := 0; i < count; i += 1 {
			(*values)[i] = int64(binary.BigEndian.Uint64(buffer[offset : offset+8]))
			offset += 8
		}
	}
	return c, nil
}
