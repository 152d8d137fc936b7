package resp

// MakeSimpleString construct SimpleString Value from string
func MakeSimpleString(s string) Value {
	return Value{
		Type: TypeSimpleString,
		Str:  []byte(s),
	}
}

// MakeError construct Error Value from string
func MakeError(s string) Value {
	return Value{
		Type: TypeError,
		Str:  []byte(s),
	}
}

// MakeBulkString construct BulkString Value from string
func MakeBulkString(s string) Value {
	return MakeBulkBytes([]byte(s))
}

// MakeBulkBytes construct BulkString Value from raw bytes without copying
func MakeBulkBytes(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{
		Type: TypeBulkString,
		Str:  b,
	}
}

// MakeNullBulkString construct nil BulkString Value
func MakeNullBulkString() Value {
	return Value{
		Type: TypeBulkString,
		Null: true,
	}
}

// MakeInteger construct Integer Value from int64
func MakeInteger(n int64) Value {
	return Value{
		Type:    TypeInteger,
		Integer: n,
	}
}

// MakeArray creates a standard RESP array containing the provided elements
func MakeArray(values []Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{
		Type:  TypeArray,
		Array: values,
	}
}

// MakeNullArray construct nil Array Value
func MakeNullArray() Value {
	return Value{
		Type: TypeArray,
		Null: true,
	}
}
