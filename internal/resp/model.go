package resp

import (
	"strconv"
)

const (
	TypeSimpleString = '+'
	TypeError        = '-'
	TypeInteger      = ':'
	TypeBulkString   = '$'
	TypeArray        = '*'
)

const (
	// MaxBulkLength is the largest bulk string payload accepted from the wire (proto-max-bulk-len)
	MaxBulkLength = 512 * 1024 * 1024
	// MaxArrayLength is the largest element count accepted in an array header
	MaxArrayLength = 1024 * 1024
)

var (
	crlf          = []byte("\r\n")
	nullBulkBytes = []byte("$-1\r\n")
	nullArrBytes  = []byte("*-1\r\n")
)

// Value is a single decoded or encodable RESP datum
type Value struct {
	Str     []byte  // SimpleString, Error, BulkString
	Array   []Value // Array
	Integer int64   // Integer
	Type    byte
	Null    bool // For nil BulkString and nil Array
}

// IsNull reports whether v is a nil bulk string or nil array
func (v Value) IsNull() bool {
	return v.Null
}

// IsError reports whether v is an error reply
func (v Value) IsError() bool {
	return v.Type == TypeError
}

// IsArray reports whether v is an array, nil or not
func (v Value) IsArray() bool {
	return v.Type == TypeArray
}

func (v Value) isText() bool {
	return v.Type == TypeSimpleString || v.Type == TypeBulkString || v.Type == TypeError
}

// String returns the textual content of v.
// Null values and arrays yield "", integers their decimal form
func (v Value) String() string {
	if v.Null {
		return ""
	}

	switch v.Type {
	case TypeInteger:
		return strconv.FormatInt(v.Integer, 10)
	case TypeSimpleString, TypeError, TypeBulkString:
		return string(v.Str)
	}

	return ""
}

// Int returns the integer content of v. Text that is not a valid integer
// literal yields 0; use ParseInt to tell the two apart
func (v Value) Int() int64 {
	n, _ := v.ParseInt() //nolint:errcheck
	return n
}

// ParseInt is the strict form of Int
func (v Value) ParseInt() (int64, error) {
	if v.Type == TypeInteger {
		return v.Integer, nil
	}

	if v.Null || !v.isText() {
		return 0, ErrNotInteger
	}

	n, err := strconv.ParseInt(string(v.Str), 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}

	return n, nil
}

// Bool interprets v the way Redis replies encode flags: "OK", "1" and nonzero integers are true
func (v Value) Bool() bool {
	if v.Null {
		return false
	}

	switch v.Type {
	case TypeInteger:
		return v.Integer != 0
	case TypeSimpleString, TypeBulkString:
		s := string(v.Str)
		return s == "OK" || s == "1"
	}

	return false
}

// Err returns the server error carried by v, or nil when v is not an error reply
func (v Value) Err() error {
	if v.Type != TypeError {
		return nil
	}
	return &ServerError{Message: string(v.Str)}
}
