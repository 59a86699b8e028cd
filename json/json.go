// Wrap json library to control encoding of records.

package json

import (
	"encoding/base64"
	"time"

	"github.com/Velocidex/json"
	"github.com/Velocidex/ordereddict"
	"github.com/shopspring/decimal"
)

// Records are ordered dicts - emit keys in column order.
func MarshalJSONDict(v interface{}, opts *json.EncOpts) ([]byte, error) {
	self, ok := v.(*ordereddict.Dict)
	if !ok || self == nil {
		return nil, json.EncoderCallbackSkip
	}

	result := []byte{'{'}
	for idx, k := range self.Keys() {
		if idx > 0 {
			result = append(result, ',')
		}

		k_escaped, err := json.MarshalWithOptions(k, opts)
		if err != nil {
			return nil, err
		}
		result = append(result, k_escaped...)
		result = append(result, ':')

		value, _ := self.Get(k)
		v_bytes, err := json.MarshalWithOptions(value, opts)
		if err != nil {
			v_bytes = []byte("null")
		}
		result = append(result, v_bytes...)
	}
	result = append(result, '}')
	return result, nil
}

// Decimals are written as bare JSON numbers so precision is kept.
func MarshalDecimal(v interface{}, opts *json.EncOpts) ([]byte, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return []byte(t.String()), nil
	case *decimal.Decimal:
		if t == nil {
			return []byte("null"), nil
		}
		return []byte(t.String()), nil
	}
	return nil, json.EncoderCallbackSkip
}

func MarshalTime(v interface{}, opts *json.EncOpts) ([]byte, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, json.EncoderCallbackSkip
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

func MarshalBytes(v interface{}, opts *json.EncOpts) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, json.EncoderCallbackSkip
	}
	if b == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + base64.StdEncoding.EncodeToString(b) + `"`), nil
}

func init() {
	RegisterCustomEncoder(ordereddict.NewDict(), MarshalJSONDict)
	RegisterCustomEncoder(decimal.Decimal{}, MarshalDecimal)
	RegisterCustomEncoder(&decimal.Decimal{}, MarshalDecimal)
	RegisterCustomEncoder(time.Time{}, MarshalTime)
	RegisterCustomEncoder([]byte{}, MarshalBytes)
}
