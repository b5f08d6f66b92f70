/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/dagjosehandler"
)

func newEncodeCmd() *cobra.Command {
	var (
		from  string
		asHex bool
	)

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JOSE value as a DAG-JOSE block",
		Long: `Encode reads a JOSE value and writes the DAG-JOSE block.

The input is DAG-JSON by default; use --from compact or --from general for
the JOSE compact and JSON serializations.

Examples:
  dagjose encode jws.json > jws.block
  echo -n "$JWS" | dagjose encode --from compact --hex`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			if from == dagjosehandler.FromCompact {
				input = []byte(strings.TrimSpace(string(input)))
			}

			value, err := dagjosehandler.ParseJose(from, input)
			if err != nil {
				return err
			}

			block, err := dagjose.Marshal(value)
			if err != nil {
				return err
			}

			if asHex {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(block))

				return err
			}

			_, err = cmd.OutOrStdout().Write(block)

			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", dagjosehandler.FromDAGJSON, "Input format: dag-json, compact or general")
	cmd.Flags().BoolVar(&asHex, "hex", false, "Write the block as hex")

	return cmd
}
