// Package jsonval models a parsed JSON document as a tagged-union value.
// Request bodies are decoded into a Value tree so that endpoint parameter
// validators can inspect the kind of every field before the handler runs.
package jsonval

import (
	"encoding/json"
	"io"

	"github.com/ArcherBullseye/Core-Smart/errors"
	jsoniter "github.com/json-iterator/go"
)

var jsonCfg = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind is the JSON value kind tag.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Invalid"
	}
}

// Value is one JSON value. The zero value is the invalid value.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []*Value
	obj  map[string]*Value
	keys []string
}

// Null is the shared JSON null value, used as the body for endpoints that
// declare no body root.
var Null = &Value{kind: KindNull}

func (v *Value) Kind() Kind {
	if v == nil {
		return KindInvalid
	}

	return v.kind
}

// Exists reports whether key is present. False for non-objects.
func (v *Value) Exists(key string) bool {
	if v.Kind() != KindObject {
		return false
	}

	_, ok := v.obj[key]

	return ok
}

// Get returns the value stored under key, or nil.
func (v *Value) Get(key string) *Value {
	if v.Kind() != KindObject {
		return nil
	}

	return v.obj[key]
}

// Keys returns the object keys in document order.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}

	return v.keys
}

// Len returns the number of elements of an array or keys of an object.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.keys)
	default:
		return 0
	}
}

// At returns array element i, or nil if out of range.
func (v *Value) At(i int) *Value {
	if v.Kind() != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}

	return v.arr[i]
}

func (v *Value) Bool() bool {
	if v.Kind() != KindBool {
		return false
	}

	return v.b
}

func (v *Value) Number() json.Number {
	if v.Kind() != KindNumber {
		return ""
	}

	return v.num
}

func (v *Value) Float64() (float64, error) {
	return v.Number().Float64()
}

func (v *Value) Int64() (int64, error) {
	return v.Number().Int64()
}

// Str returns the string value of a KindString value, else "".
func (v *Value) Str() string {
	if v.Kind() != KindString {
		return ""
	}

	return v.str
}

// Interface converts the value back to the native Go representation, with
// numbers as json.Number.
func (v *Value) Interface() interface{} {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}

		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.obj[k].Interface()
		}

		return out
	default:
		return nil
	}
}

func (v *Value) MarshalJSON() ([]byte, error) {
	stream := jsonCfg.BorrowStream(nil)
	defer jsonCfg.ReturnStream(stream)

	v.writeTo(stream)

	if stream.Error != nil {
		return nil, stream.Error
	}

	buf := stream.Buffer()
	out := make([]byte, len(buf))
	copy(out, buf)

	return out, nil
}

func (v *Value) writeTo(stream *jsoniter.Stream) {
	switch v.Kind() {
	case KindNull:
		stream.WriteNil()
	case KindBool:
		stream.WriteBool(v.b)
	case KindNumber:
		stream.WriteRaw(v.num.String())
	case KindString:
		stream.WriteString(v.str)
	case KindArray:
		stream.WriteArrayStart()

		for i, e := range v.arr {
			if i > 0 {
				stream.WriteMore()
			}

			e.writeTo(stream)
		}

		stream.WriteArrayEnd()
	case KindObject:
		stream.WriteObjectStart()

		for i, k := range v.keys {
			if i > 0 {
				stream.WriteMore()
			}

			stream.WriteObjectField(k)
			v.obj[k].writeTo(stream)
		}

		stream.WriteObjectEnd()
	default:
		stream.WriteNil()
	}
}

// Parse decodes a complete JSON document. Trailing non-whitespace after the
// first value is an error. Malformed documents are reported as
// invalid-argument errors carrying the parser diagnostic as the message.
func Parse(data []byte) (*Value, error) {
	iter := jsoniter.ParseBytes(jsonCfg, data)

	v := readValue(iter)

	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.NewInvalidArgumentError(iter.Error.Error())
	}

	// A fully consumed document leaves the iterator at EOF; anything else,
	// token or garbage, is trailing data.
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue || iter.Error == nil {
		return nil, &TrailingDataError{}
	}

	if iter.Error != io.EOF {
		return nil, errors.NewInvalidArgumentError(iter.Error.Error())
	}

	return v, nil
}

// TrailingDataError is returned by Parse when the document continues after
// the first JSON value.
type TrailingDataError struct{}

func (*TrailingDataError) Error() string {
	return "unexpected trailing data after JSON value"
}

func readValue(iter *jsoniter.Iterator) *Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return &Value{kind: KindNull}
	case jsoniter.BoolValue:
		return &Value{kind: KindBool, b: iter.ReadBool()}
	case jsoniter.NumberValue:
		return &Value{kind: KindNumber, num: iter.ReadNumber()}
	case jsoniter.StringValue:
		return &Value{kind: KindString, str: iter.ReadString()}
	case jsoniter.ArrayValue:
		v := &Value{kind: KindArray}

		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			v.arr = append(v.arr, readValue(iter))
			return iter.Error == nil
		})

		return v
	case jsoniter.ObjectValue:
		v := &Value{kind: KindObject, obj: map[string]*Value{}}

		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			if _, exists := v.obj[field]; !exists {
				v.keys = append(v.keys, field)
			}

			v.obj[field] = readValue(iter)

			return iter.Error == nil
		})

		return v
	default:
		iter.ReportError("readValue", "invalid JSON value")
		return nil
	}
}
