package sapi

import (
	"fmt"
	"regexp"

	"github.com/ArcherBullseye/Core-Smart/jsonval"
)

// Code enumerates validation outcomes. Endpoint groups may extend the set
// with their own codes starting at CodeCustomBase.
type Code int

const (
	CodeValid Code = iota
	CodeUndefined
	CodeParameterMissing
	CodeInvalidType
	CodeNumberOutOfRange
	CodeInvalidFormat

	CodeCustomBase Code = 1000
)

// Result is one validation outcome, serialized into error response arrays.
type Result struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (r Result) Valid() bool {
	return r.Code == CodeValid
}

// Valid is the successful Result.
var Valid = Result{Code: CodeValid}

// Validator checks one body parameter. Kind declares the expected JSON kind,
// verified before Validate is called; Validate adds the semantic check.
type Validator interface {
	Kind() jsonval.Kind
	Validate(key string, value *jsonval.Value) Result
}

// BodyParameter declares one expected key of a request body.
type BodyParameter struct {
	Key       string
	Validator Validator
	Optional  bool
}

// parameterBaseCheck verifies presence and JSON kind of a single declared
// parameter.
func parameterBaseCheck(body *jsonval.Value, param BodyParameter) Result {
	key := param.Key

	if !body.Exists(key) {
		if param.Optional {
			return Valid
		}

		return Result{Code: CodeParameterMissing, Message: "Parameter missing: " + key}
	}

	if body.Get(key).Kind() != param.Validator.Kind() {
		return Result{
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("Invalid type for key: %s -- expected %s", key, param.Validator.Kind()),
		}
	}

	return Valid
}

// checkBodyParameters runs every declared parameter check and returns all
// violations. It never stops at the first failure, so a client sees every
// problem in one round trip.
func checkBodyParameters(body *jsonval.Value, params []BodyParameter) []Result {
	var results []Result

	for _, param := range params {
		result := parameterBaseCheck(body, param)

		if !result.Valid() {
			results = append(results, result)
		} else if body.Exists(param.Key) {
			if result = param.Validator.Validate(param.Key, body.Get(param.Key)); !result.Valid() {
				results = append(results, result)
			}
		}
	}

	return results
}

// StringValidator accepts any JSON string.
type StringValidator struct{}

func (StringValidator) Kind() jsonval.Kind { return jsonval.KindString }

func (StringValidator) Validate(_ string, _ *jsonval.Value) Result { return Valid }

// BoolValidator accepts any JSON bool.
type BoolValidator struct{}

func (BoolValidator) Kind() jsonval.Kind { return jsonval.KindBool }

func (BoolValidator) Validate(_ string, _ *jsonval.Value) Result { return Valid }

var hexHashRE = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// HexHashValidator accepts a 64 character hex string, the text form of a
// block or transaction hash.
type HexHashValidator struct{}

func (HexHashValidator) Kind() jsonval.Kind { return jsonval.KindString }

func (HexHashValidator) Validate(key string, value *jsonval.Value) Result {
	if !hexHashRE.MatchString(value.Str()) {
		return Result{
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("Invalid hash format for key: %s -- expected 64 character hex string", key),
		}
	}

	return Valid
}

// IntRangeValidator accepts a JSON number that is an integer within
// [Min, Max].
type IntRangeValidator struct {
	Min int64
	Max int64
}

func (IntRangeValidator) Kind() jsonval.Kind { return jsonval.KindNumber }

func (v IntRangeValidator) Validate(key string, value *jsonval.Value) Result {
	n, err := value.Int64()
	if err != nil {
		return Result{
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("Invalid integer for key: %s", key),
		}
	}

	if n < v.Min || n > v.Max {
		return Result{
			Code:    CodeNumberOutOfRange,
			Message: fmt.Sprintf("Value out of range for key: %s -- expected %d to %d", key, v.Min, v.Max),
		}
	}

	return Valid
}

// UIntRangeValidator accepts a JSON number that is a non-negative integer
// within [Min, Max].
type UIntRangeValidator struct {
	Min uint64
	Max uint64
}

func (UIntRangeValidator) Kind() jsonval.Kind { return jsonval.KindNumber }

func (v UIntRangeValidator) Validate(key string, value *jsonval.Value) Result {
	n, err := value.Int64()
	if err != nil || n < 0 {
		return Result{
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("Invalid unsigned integer for key: %s", key),
		}
	}

	if uint64(n) < v.Min || uint64(n) > v.Max {
		return Result{
			Code:    CodeNumberOutOfRange,
			Message: fmt.Sprintf("Value out of range for key: %s -- expected %d to %d", key, v.Min, v.Max),
		}
	}

	return Valid
}

// AmountValidator accepts a positive JSON number.
type AmountValidator struct{}

func (AmountValidator) Kind() jsonval.Kind { return jsonval.KindNumber }

func (AmountValidator) Validate(key string, value *jsonval.Value) Result {
	f, err := value.Float64()
	if err != nil || f <= 0 {
		return Result{
			Code:    CodeNumberOutOfRange,
			Message: fmt.Sprintf("Invalid amount for key: %s -- expected a number greater than zero", key),
		}
	}

	return Valid
}

// ArrayValidator accepts a JSON array with an element count within
// [MinLen, MaxLen]. MaxLen 0 means unbounded.
type ArrayValidator struct {
	MinLen int
	MaxLen int
}

func (ArrayValidator) Kind() jsonval.Kind { return jsonval.KindArray }

func (v ArrayValidator) Validate(key string, value *jsonval.Value) Result {
	n := value.Len()

	if n < v.MinLen || (v.MaxLen > 0 && n > v.MaxLen) {
		return Result{
			Code:    CodeNumberOutOfRange,
			Message: fmt.Sprintf("Invalid number of elements for key: %s", key),
		}
	}

	return Valid
}
