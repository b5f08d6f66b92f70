/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"
)

func TestStandardFields(t *testing.T) {
	const module = "test_module"

	c := testCID(t)

	t.Run("json fields", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		logger.Info("Some message",
			WithURIString("https://example.com/dag-jose/encode"), WithCodec(0x85), WithCID(c),
			WithSize(1234), WithVariant("jws"), WithTotal(2), WithLinks(c, c),
			WithView("node"), WithKind("NotJWS"),
		)

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, `Some message`, l.Msg)
		require.Equal(t, module, l.Logger)
		require.Equal(t, "https://example.com/dag-jose/encode", l.URI)
		require.Equal(t, "0x85", l.Codec)
		require.Equal(t, c.String(), l.CID)
		require.Equal(t, 1234, l.Size)
		require.Equal(t, "jws", l.Variant)
		require.Equal(t, 2, l.Total)
		require.Equal(t, []string{c.String(), c.String()}, l.Links)
		require.Equal(t, "node", l.View)
		require.Equal(t, "NotJWS", l.Kind)
	})

	t.Run("module level", func(t *testing.T) {
		const levelModule = "level_module"

		stdOut := newMockWriter()

		logger := log.New(levelModule, log.WithStdOut(stdOut), log.WithEncoding(log.JSON),
			log.WithFields(WithVariant("jwe")))

		log.SetLevel(levelModule, log.ERROR)
		require.False(t, logger.IsEnabled(log.INFO))

		logger.Debug("dropped", WithSize(1))
		require.Empty(t, stdOut.String())

		log.SetLevel(levelModule, log.DEBUG)
		require.True(t, logger.IsEnabled(log.DEBUG))

		logger.Debug("kept", WithSize(2))

		l := unmarshalLogData(t, stdOut.Bytes())
		require.Equal(t, "kept", l.Msg)
		require.Equal(t, "jwe", l.Variant)
		require.Equal(t, 2, l.Size)
	})
}

type logData struct {
	Level  string `json:"level"`
	Time   string `json:"ts"`
	Logger string `json:"logger"`
	Msg    string `json:"msg"`

	URI     string   `json:"uri"`
	Codec   string   `json:"codec"`
	CID     string   `json:"cid"`
	Size    int      `json:"size"`
	Variant string   `json:"variant"`
	Total   int      `json:"total"`
	Links   []string `json:"links"`
	View    string   `json:"view"`
	Kind    string   `json:"kind"`
}

func unmarshalLogData(t *testing.T, b []byte) *logData {
	t.Helper()

	l := &logData{}

	require.NoError(t, json.Unmarshal(b, l))

	return l
}

func testCID(t *testing.T) cid.Cid {
	t.Helper()

	mh, err := multihash.Sum([]byte("content"), multihash.SHA2_256, -1)
	require.NoError(t, err)

	return cid.NewCidV1(cid.Raw, mh)
}

type mockWriter struct {
	*bytes.Buffer
}

func (m *mockWriter) Sync() error {
	return nil
}

func newMockWriter() *mockWriter {
	return &mockWriter{Buffer: bytes.NewBuffer(nil)}
}
