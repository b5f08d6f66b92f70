/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustbloc/dag-jose-go/pkg/restapi/dagjosehandler"
)

var decodeViews = map[string]string{
	"dag-json": dagjosehandler.ViewJose,
	"node":     dagjosehandler.ViewNode,
	"general":  dagjosehandler.ViewGeneral,
	"compact":  dagjosehandler.ViewCompact,
}

func newDecodeCmd() *cobra.Command {
	var (
		to    string
		asHex bool
	)

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a DAG-JOSE block",
		Long: `Decode reads a DAG-JOSE block and prints it.

--to selects the rendering: dag-json (the JOSE value with its link), node
(the raw block as DAG-JSON), general (JOSE JSON serialization) or compact.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, ok := decodeViews[to]
			if !ok {
				return fmt.Errorf("unsupported output format [%s]", to)
			}

			block, err := readBlock(cmd, args, asHex)
			if err != nil {
				return err
			}

			_, data, err := dagjosehandler.Render(view, block)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "dag-json", "Output format: dag-json, node, general or compact")
	cmd.Flags().BoolVar(&asHex, "hex", false, "Read the block as hex")

	return cmd
}
