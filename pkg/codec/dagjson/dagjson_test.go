/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	t.Run("numbers kept as text", func(t *testing.T) {
		v, err := DecodeValue([]byte(`{"a":[1,2.5,"x",true,null]}`))
		require.NoError(t, err)

		m, ok := v.(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, []interface{}{Number("1"), Number("2.5"), "x", true, nil}, m["a"])
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := DecodeValue([]byte(`{} {}`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unexpected data")
	})

	t.Run("trailing whitespace", func(t *testing.T) {
		_, err := DecodeValue([]byte("\"a\"\n"))
		require.NoError(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeValue([]byte(`{"a":`))
		require.Error(t, err)
	})
}

func TestMarshal(t *testing.T) {
	b, err := Marshal(map[string]string{"b": "2", "a": "1"})
	require.NoError(t, err)
	require.Equal(t, `{"a":"1","b":"2"}`, string(b))

	var m map[string]string
	require.NoError(t, Unmarshal(b, &m))
	require.Equal(t, "1", m["a"])
}
