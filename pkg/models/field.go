package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a row id in a request body. It decodes from a JSON number or a numeric string.
type ID uint

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := data
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}

	v, err := strconv.ParseUint(string(bytes.TrimSpace(raw)), 10, 0)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = ID(v)
	return nil
}

// NullString is an optional string that remembers whether it was supplied.
// A supplied null has Set true and a nil Value; it encodes as null.
// An unsupplied field is dropped by the omitzero tag.
type NullString struct {
	Value *string
	Set   bool
}

// Supplied returns a NullString that is present with the given value.
func Supplied(v *string) NullString {
	return NullString{Value: v, Set: true}
}

func (n NullString) IsZero() bool {
	return !n.Set
}

func (n NullString) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
