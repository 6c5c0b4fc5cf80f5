// Package json implements encoding and decoding of JSON as defined in RFC 7159,
// backed by json-iterator and compatible with encoding/json.
package json

import (
	jsoniter "github.com/json-iterator/go"
)

var std = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal marshal v to bytes
var Marshal = std.Marshal

// RawMessage is a raw encoded JSON value
type RawMessage = jsoniter.RawMessage

// Unmarshal unmarshal standard json, comments are not allowed
func Unmarshal(data []byte, v interface{}) error {
	return std.Unmarshal(data, v)
}
