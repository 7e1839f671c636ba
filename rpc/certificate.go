// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// build a TLS configuration from PEM certificate and key contents
//
// also returns the SHA3-256 fingerprint of the DER certificate so
// clients can pin the self signed certificate, equivalent to:
//
//   openssl x509 -outform DER -in rpc.crt | sha3sum -a 256
func getCertificate(log *logger.L, name string, certificatePEM string, keyPEM string) (*tls.Config, [32]byte, error) {
	keyPair, err := tls.X509KeyPair([]byte(certificatePEM), []byte(keyPEM))
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, [32]byte{}, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{keyPair},
	}

	return tlsConfiguration, sha3.Sum256(keyPair.Certificate[0]), nil
}
