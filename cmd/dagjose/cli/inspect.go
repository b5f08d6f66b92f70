/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/trustbloc/dag-jose-go/pkg/codec/dagcbor"
	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
	"github.com/trustbloc/dag-jose-go/pkg/jws"
)

func newInspectCmd() *cobra.Command {
	var asHex bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Describe a DAG-JOSE block",
		Long: `Inspect prints the block CID, the JOSE variant, the protected headers and
the CBOR diagnostic notation of a DAG-JOSE block.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := readBlock(cmd, args, asHex)
			if err != nil {
				return err
			}

			return inspect(cmd.OutOrStdout(), block)
		},
	}

	cmd.Flags().BoolVar(&asHex, "hex", false, "Read the block as hex")

	return cmd
}

func inspect(w io.Writer, block []byte) error {
	value, err := dagjose.Unmarshal(block)
	if err != nil {
		return err
	}

	c, err := dagjose.CID(block)
	if err != nil {
		return err
	}

	diag, err := dagcbor.Diagnose(block)
	if err != nil {
		return err
	}

	p := &printer{w: w}
	p.printf("cid:     %s\n", c)
	p.printf("size:    %d\n", len(block))

	switch v := value.(type) {
	case *dagjose.JSONWebSignature:
		link, err := v.Link()
		if err != nil {
			return err
		}

		p.printf("variant: JWS\n")
		p.printf("link:    %s\n", link)

		for i := range v.Signatures {
			headers, err := v.Signatures[i].ProtectedHeaders()
			if err != nil {
				return err
			}

			p.printf("signature %d:\n", i)
			p.headers(headers)
		}
	case *dagjose.JSONWebEncryption:
		headers, err := v.ProtectedHeaders()
		if err != nil {
			return err
		}

		p.printf("variant: JWE\n")
		p.printf("recipients: %d\n", len(v.Recipients))
		p.headers(headers)
	}

	p.printf("diagnostic: %s\n", diag)

	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// headers prints the registered parameters first, then any others sorted by name.
func (p *printer) headers(headers jws.Headers) {
	registered := []struct {
		name  string
		key   string
		value func() (string, bool)
	}{
		{"algorithm", jws.HeaderAlgorithm, headers.Algorithm},
		{"encryption", jws.HeaderEncryption, headers.Encryption},
		{"key id", jws.HeaderKeyID, headers.KeyID},
		{"type", jws.HeaderType, headers.Type},
		{"content type", jws.HeaderContentType, headers.ContentType},
	}

	seen := make(map[string]bool, len(registered))

	for _, r := range registered {
		if v, ok := r.value(); ok {
			p.printf("  %s: %s\n", r.name, v)

			seen[r.key] = true
		}
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	for _, k := range keys {
		p.printf("  %s: %v\n", k, headers[k])
	}
}
