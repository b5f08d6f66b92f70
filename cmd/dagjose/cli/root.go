/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the dagjose command-line interface.
package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.uber.org/zap/zapcore"

	"github.com/trustbloc/dag-jose-go/cmd/dagjose/cli/config"
	"github.com/trustbloc/dag-jose-go/pkg/compression"
	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
	dagjoselog "github.com/trustbloc/dag-jose-go/pkg/log"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	stdinName         = "-"
	inputEncodingFlag = "input-encoding"
)

var codings = compression.New(compression.WithDefaultAlgorithms(0))

type rootOptions struct {
	configFile string
	viper      *viper.Viper
	config     *config.Config
	logger     *log.Log
}

// NewRootCmd returns the dagjose command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{viper: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "dagjose",
		Short: "Encode, decode and inspect DAG-JOSE blocks",
		Long: `dagjose converts JOSE values (JWS and JWE) to and from DAG-JOSE blocks,
the canonical DAG-CBOR representation identified by multicodec 0x85.

Configuration is read from --config, then DAGJOSE_* environment variables.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "Path to a config file (yaml, json or toml)")
	flags.String("log-spec", "", "Log levels, e.g. dag-jose=debug:info")
	flags.String("log-encoding", "", "Log encoding: console or json")
	flags.String(inputEncodingFlag, compression.Identity, "Content coding of the input: identity or gzip")

	must(o.viper.BindPFlag(config.KeyLogSpec, flags.Lookup("log-spec")))
	must(o.viper.BindPFlag(config.KeyLogEncoding, flags.Lookup("log-encoding")))

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newLinksCmd(),
		newCIDCmd(),
		newInspectCmd(),
		newServeCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}

	return err
}

func (o *rootOptions) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(o.viper, o.configFile)
	if err != nil {
		return err
	}

	if cfg.Log.Spec != "" {
		if err := dagjoselog.SetSpec(cfg.Log.Spec); err != nil {
			return fmt.Errorf("invalid log spec: %w", err)
		}
	}

	encoding, err := parseLogEncoding(cfg.Log.Encoding)
	if err != nil {
		return err
	}

	out := zapcore.AddSync(cmd.ErrOrStderr())

	o.config = cfg
	o.logger = log.New("dag-jose-cli", log.WithStdOut(out), log.WithStdErr(out), log.WithEncoding(encoding))

	return nil
}

// parseLogEncoding maps a configured encoding name to a log encoding. An empty name selects console.
func parseLogEncoding(name string) (log.Encoding, error) {
	switch strings.ToLower(name) {
	case "", log.Console:
		return log.Console, nil
	case log.JSON:
		return log.JSON, nil
	default:
		return "", fmt.Errorf("invalid log encoding '%s'", name)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// formatError converts codec errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, dagjose.ErrNotJWS):
		return fmt.Sprintf("Error: not a JWS: %v", err)
	case errors.Is(err, dagjose.ErrNotJWE):
		return fmt.Sprintf("Error: not a JWE: %v", err)
	case errors.Is(err, dagjose.ErrInvalidCID):
		return fmt.Sprintf("Error: payload is not a CID: %v", err)
	case errors.Is(err, dagjose.ErrInvalidBase64URL):
		return fmt.Sprintf("Error: invalid base64url: %v", err)
	case errors.Is(err, dagjose.ErrCodec):
		return fmt.Sprintf("Error: malformed data: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// readInput reads the named file, or stdin when the name is empty or "-",
// and removes the content coding given by --input-encoding.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if len(args) == 0 || args[0] == stdinName {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}

	if err != nil {
		return nil, err
	}

	var coding string
	if f := cmd.Flag(inputEncodingFlag); f != nil {
		coding = f.Value.String()
	}

	return codings.Decompress(coding, data)
}

// readBlock reads a block, hex decoding it when asHex is set.
func readBlock(cmd *cobra.Command, args []string, asHex bool) ([]byte, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	if !asHex {
		return data, nil
	}

	block, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}

	return block, nil
}
