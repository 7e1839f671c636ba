// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/artmark-inc/artmarkd/rpc"
)

// GetInfo - request status from artmarkd
func (client *Client) GetInfo() (*rpc.InfoReply, error) {
	var reply rpc.InfoReply
	if err := client.client.Call("Node.Info", rpc.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
