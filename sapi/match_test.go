package sapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEndpoint(t *testing.T) {
	t.Run("literal segments", func(t *testing.T) {
		endpoint := &Endpoint{Path: "deposit/list", Method: MethodGet}

		params, ok := matchEndpoint(endpoint, []string{"deposit", "list"})
		require.True(t, ok)
		assert.Empty(t, params)

		_, ok = matchEndpoint(endpoint, []string{"deposit", "other"})
		assert.False(t, ok)
	})

	t.Run("placeholder extraction", func(t *testing.T) {
		endpoint := &Endpoint{Path: "{address}/balance", Method: MethodGet}

		params, ok := matchEndpoint(endpoint, []string{"ABC123", "balance"})
		require.True(t, ok)
		assert.Equal(t, PathParams{"address": "ABC123"}, params)
	})

	t.Run("multiple placeholders", func(t *testing.T) {
		endpoint := &Endpoint{Path: "{hash}/tx/{index}", Method: MethodGet}

		params, ok := matchEndpoint(endpoint, []string{"deadbeef", "tx", "7"})
		require.True(t, ok)
		assert.Equal(t, PathParams{"hash": "deadbeef", "index": "7"}, params)
	})

	t.Run("trailing slash tolerated", func(t *testing.T) {
		endpoint := &Endpoint{Path: "{address}/balance", Method: MethodGet}

		params, ok := matchEndpoint(endpoint, []string{"ABC123", "balance", ""})
		require.True(t, ok)
		assert.Equal(t, "ABC123", params["address"])
	})

	t.Run("length mismatch fails", func(t *testing.T) {
		endpoint := &Endpoint{Path: "{address}/balance", Method: MethodGet}

		_, ok := matchEndpoint(endpoint, []string{"ABC123"})
		assert.False(t, ok)

		_, ok = matchEndpoint(endpoint, []string{"ABC123", "balance", "extra"})
		assert.False(t, ok)

		// the extra segment must be empty, not arbitrary
		_, ok = matchEndpoint(endpoint, []string{"ABC123", "balance", "x"})
		assert.False(t, ok)
	})

	t.Run("literals are case sensitive", func(t *testing.T) {
		endpoint := &Endpoint{Path: "balance", Method: MethodGet}

		_, ok := matchEndpoint(endpoint, []string{"Balance"})
		assert.False(t, ok)
	})

	t.Run("root endpoint", func(t *testing.T) {
		endpoint := &Endpoint{Path: "", Method: MethodGet}

		params, ok := matchEndpoint(endpoint, nil)
		require.True(t, ok)
		assert.Empty(t, params)

		_, ok = matchEndpoint(endpoint, []string{""})
		assert.True(t, ok)

		_, ok = matchEndpoint(endpoint, []string{"x"})
		assert.False(t, ok)

		_, ok = matchEndpoint(endpoint, []string{"", ""})
		assert.False(t, ok)
	})

	t.Run("lone brace segment is a literal", func(t *testing.T) {
		endpoint := &Endpoint{Path: "{/x", Method: MethodGet}

		_, ok := matchEndpoint(endpoint, []string{"anything", "x"})
		assert.False(t, ok)

		params, ok := matchEndpoint(endpoint, []string{"{", "x"})
		require.True(t, ok)
		assert.Empty(t, params)
	})

	t.Run("empty placeholder name", func(t *testing.T) {
		endpoint := &Endpoint{Path: "{}/x", Method: MethodGet}

		params, ok := matchEndpoint(endpoint, []string{"value", "x"})
		require.True(t, ok)
		assert.Equal(t, "value", params[""])
	})
}

func TestParseMethod(t *testing.T) {
	assert.Equal(t, MethodGet, ParseMethod("GET"))
	assert.Equal(t, MethodPost, ParseMethod("POST"))
	assert.Equal(t, MethodOptions, ParseMethod("OPTIONS"))
	assert.Equal(t, MethodUnknown, ParseMethod("PATCH"))
	assert.Equal(t, MethodUnknown, ParseMethod("get"))

	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "UNKNOWN", MethodUnknown.String())
}
