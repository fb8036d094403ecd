package sapi

import (
	"testing"

	"github.com/ArcherBullseye/Core-Smart/jsonval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *jsonval.Value {
	t.Helper()

	v, err := jsonval.Parse([]byte(s))
	require.NoError(t, err)

	return v
}

func TestParameterBaseCheck(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		body := mustParse(t, `{}`)

		result := parameterBaseCheck(body, BodyParameter{Key: "address", Validator: StringValidator{}})
		assert.Equal(t, CodeParameterMissing, result.Code)
		assert.Equal(t, "Parameter missing: address", result.Message)
	})

	t.Run("missing optional", func(t *testing.T) {
		body := mustParse(t, `{}`)

		result := parameterBaseCheck(body, BodyParameter{Key: "address", Validator: StringValidator{}, Optional: true})
		assert.True(t, result.Valid())
	})

	t.Run("wrong kind", func(t *testing.T) {
		body := mustParse(t, `{"address": 5}`)

		result := parameterBaseCheck(body, BodyParameter{Key: "address", Validator: StringValidator{}})
		assert.Equal(t, CodeInvalidType, result.Code)
		assert.Equal(t, "Invalid type for key: address -- expected String", result.Message)
	})

	t.Run("matching kind", func(t *testing.T) {
		body := mustParse(t, `{"amount": 1.5}`)

		result := parameterBaseCheck(body, BodyParameter{Key: "amount", Validator: AmountValidator{}})
		assert.True(t, result.Valid())
	})
}

func TestCheckBodyParametersReportsEveryViolation(t *testing.T) {
	body := mustParse(t, `{"amount": "not a number"}`)

	params := []BodyParameter{
		{Key: "from", Validator: StringValidator{}},
		{Key: "to", Validator: StringValidator{}},
		{Key: "amount", Validator: AmountValidator{}},
	}

	results := checkBodyParameters(body, params)

	require.Len(t, results, 3, "two missing keys and one wrong-typed key must yield three results")
	assert.Equal(t, CodeParameterMissing, results[0].Code)
	assert.Equal(t, CodeParameterMissing, results[1].Code)
	assert.Equal(t, CodeInvalidType, results[2].Code)
}

func TestCheckBodyParametersSemanticCheck(t *testing.T) {
	body := mustParse(t, `{"amount": -3}`)

	results := checkBodyParameters(body, []BodyParameter{
		{Key: "amount", Validator: AmountValidator{}},
	})

	require.Len(t, results, 1)
	assert.Equal(t, CodeNumberOutOfRange, results[0].Code)
}

func TestCheckBodyParametersValidBody(t *testing.T) {
	body := mustParse(t, `{"from": "a", "to": "b", "amount": 0.5}`)

	results := checkBodyParameters(body, []BodyParameter{
		{Key: "from", Validator: StringValidator{}},
		{Key: "to", Validator: StringValidator{}},
		{Key: "amount", Validator: AmountValidator{}},
	})

	assert.Empty(t, results)
}

func TestHexHashValidator(t *testing.T) {
	v := HexHashValidator{}

	assert.Equal(t, jsonval.KindString, v.Kind())

	hash := mustParse(t, `"9d45ad79ad3c6baecae872c0e35022d60c3bbbd024ccce06690321ece15ea995"`)
	assert.True(t, v.Validate("hash", hash).Valid())

	short := mustParse(t, `"abc123"`)
	result := v.Validate("hash", short)
	assert.Equal(t, CodeInvalidFormat, result.Code)

	nonHex := mustParse(t, `"zz45ad79ad3c6baecae872c0e35022d60c3bbbd024ccce06690321ece15ea995"`)
	assert.False(t, v.Validate("hash", nonHex).Valid())
}

func TestIntRangeValidator(t *testing.T) {
	v := IntRangeValidator{Min: 1, Max: 100}

	assert.True(t, v.Validate("n", mustParse(t, `50`)).Valid())
	assert.Equal(t, CodeNumberOutOfRange, v.Validate("n", mustParse(t, `0`)).Code)
	assert.Equal(t, CodeNumberOutOfRange, v.Validate("n", mustParse(t, `101`)).Code)
	assert.Equal(t, CodeInvalidFormat, v.Validate("n", mustParse(t, `1.5`)).Code)
}

func TestUIntRangeValidator(t *testing.T) {
	v := UIntRangeValidator{Min: 0, Max: 10}

	assert.True(t, v.Validate("n", mustParse(t, `0`)).Valid())
	assert.True(t, v.Validate("n", mustParse(t, `10`)).Valid())
	assert.Equal(t, CodeNumberOutOfRange, v.Validate("n", mustParse(t, `11`)).Code)
	assert.Equal(t, CodeInvalidFormat, v.Validate("n", mustParse(t, `-1`)).Code)
}

func TestArrayValidator(t *testing.T) {
	v := ArrayValidator{MinLen: 1, MaxLen: 2}

	assert.True(t, v.Validate("list", mustParse(t, `[1]`)).Valid())
	assert.False(t, v.Validate("list", mustParse(t, `[]`)).Valid())
	assert.False(t, v.Validate("list", mustParse(t, `[1, 2, 3]`)).Valid())

	unbounded := ArrayValidator{}
	assert.True(t, unbounded.Validate("list", mustParse(t, `[1, 2, 3]`)).Valid())
}
