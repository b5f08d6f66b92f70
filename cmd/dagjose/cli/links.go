/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustbloc/dag-jose-go/pkg/cidutil"
	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/dagjosehandler"
)

func newLinksCmd() *cobra.Command {
	var (
		base  string
		asHex bool
	)

	cmd := &cobra.Command{
		Use:   "links [file]",
		Short: "List the CIDs a DAG-JOSE block references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := readBlock(cmd, args, asHex)
			if err != nil {
				return err
			}

			response, err := dagjosehandler.Links(block, base)
			if err != nil {
				return err
			}

			for _, link := range response.Links {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), link); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Multibase for printed CIDs, e.g. base58btc")
	cmd.Flags().BoolVar(&asHex, "hex", false, "Read the block as hex")

	return cmd
}

func newCIDCmd() *cobra.Command {
	var (
		base  string
		asHex bool
	)

	cmd := &cobra.Command{
		Use:   "cid [file]",
		Short: "Print the CID of a DAG-JOSE block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := readBlock(cmd, args, asHex)
			if err != nil {
				return err
			}

			c, err := dagjose.CID(block)
			if err != nil {
				return err
			}

			s, err := cidutil.Format(c, base)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)

			return err
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Multibase for the printed CID, e.g. base58btc")
	cmd.Flags().BoolVar(&asHex, "hex", false, "Read the block as hex")

	return cmd
}
