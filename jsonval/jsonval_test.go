package jsonval

import (
	"testing"

	"github.com/ArcherBullseye/Core-Smart/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKinds(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		v, err := Parse([]byte(`{"a": 1, "b": "two", "c": true, "d": null, "e": [1, 2], "f": {}}`))
		require.NoError(t, err)

		assert.Equal(t, KindObject, v.Kind())
		assert.Equal(t, 6, v.Len())
		assert.Equal(t, KindNumber, v.Get("a").Kind())
		assert.Equal(t, KindString, v.Get("b").Kind())
		assert.Equal(t, KindBool, v.Get("c").Kind())
		assert.Equal(t, KindNull, v.Get("d").Kind())
		assert.Equal(t, KindArray, v.Get("e").Kind())
		assert.Equal(t, KindObject, v.Get("f").Kind())
	})

	t.Run("array", func(t *testing.T) {
		v, err := Parse([]byte(`[1, "two", false]`))
		require.NoError(t, err)

		assert.Equal(t, KindArray, v.Kind())
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, KindNumber, v.At(0).Kind())
		assert.Equal(t, "two", v.At(1).Str())
		assert.Equal(t, KindBool, v.At(2).Kind())
		assert.Nil(t, v.At(3))
	})

	t.Run("scalars", func(t *testing.T) {
		v, err := Parse([]byte(`"hello"`))
		require.NoError(t, err)
		assert.Equal(t, "hello", v.Str())

		v, err = Parse([]byte(`true`))
		require.NoError(t, err)
		assert.True(t, v.Bool())

		v, err = Parse([]byte(`null`))
		require.NoError(t, err)
		assert.Equal(t, KindNull, v.Kind())
	})
}

func TestParseNumberFidelity(t *testing.T) {
	v, err := Parse([]byte(`{"amount": 0.00000001, "big": 12345678901234567890}`))
	require.NoError(t, err)

	f, err := v.Get("amount").Float64()
	require.NoError(t, err)
	assert.InDelta(t, 0.00000001, f, 1e-12)

	// too large for int64, the textual form must survive
	assert.Equal(t, "12345678901234567890", v.Get("big").Number().String())

	_, err = v.Get("big").Int64()
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		_, err := Parse([]byte(`{"a": `))
		require.Error(t, err)

		var sErr *errors.Error
		require.True(t, errors.As(err, &sErr), "parse failures carry a typed error")
		assert.Equal(t, errors.ERR_INVALID_ARGUMENT, sErr.Code())
		assert.NotEmpty(t, sErr.Message())
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := Parse([]byte(`{} trailing`))
		require.Error(t, err)
		assert.IsType(t, &TrailingDataError{}, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse([]byte(``))
		require.Error(t, err)
	})
}

func TestObjectKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
}

func TestMarshalJSON(t *testing.T) {
	in := `{"z":1,"a":"x","n":null,"arr":[true,{"k":2}]}`

	v, err := Parse([]byte(in))
	require.NoError(t, err)

	out, err := v.MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t, in, string(out))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Null", KindNull.String())
	assert.Equal(t, "Bool", KindBool.String())
	assert.Equal(t, "Number", KindNumber.String())
	assert.Equal(t, "String", KindString.String())
	assert.Equal(t, "Array", KindArray.String())
	assert.Equal(t, "Object", KindObject.String())
	assert.Equal(t, "Invalid", KindInvalid.String())
}

func TestNilValueAccessors(t *testing.T) {
	var v *Value

	assert.Equal(t, KindInvalid, v.Kind())
	assert.False(t, v.Exists("a"))
	assert.Nil(t, v.Get("a"))
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, "", v.Str())
}
