/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Command dagjose encodes, decodes and inspects DAG-JOSE blocks.
package main

import (
	"os"

	"github.com/trustbloc/dag-jose-go/cmd/dagjose/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
