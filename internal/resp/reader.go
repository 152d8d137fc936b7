package resp

import (
	"bytes"
	"strconv"
)

// Decode parses the first frame of buf, which is assumed to hold at least one
// complete frame, and returns it with the number of bytes consumed.
// Malformed input never aborts the parse: the offending frame, or array element,
// decodes to an Error value whose text starts with "ERR protocol error:"
func Decode(buf []byte) (Value, int) {
	d := decoder{buf: buf}
	v := d.value()
	return v, d.pos
}

type decoder struct {
	buf []byte
	pos int
}

// line returns the bytes up to the next CRLF and moves past it
func (d *decoder) line() ([]byte, bool) {
	i := bytes.Index(d.buf[d.pos:], crlf)
	if i < 0 {
		return nil, false
	}

	l := d.buf[d.pos : d.pos+i]
	d.pos += i + len(crlf)
	return l, true
}

func (d *decoder) value() Value {
	if d.pos >= len(d.buf) {
		return makeProtocolError("unexpected end of input")
	}

	prefix := d.buf[d.pos]
	d.pos++

	line, ok := d.line()
	if !ok {
		d.pos = len(d.buf)
		return makeProtocolError("missing CRLF after %q header", prefix)
	}

	switch prefix {
	case TypeSimpleString, TypeError:
		return Value{Type: prefix, Str: bytes.Clone(line)}

	case TypeInteger:
		n, err := parseInteger(line)
		if err != nil {
			return makeProtocolError("invalid integer %q", line)
		}
		return MakeInteger(n)

	case TypeBulkString:
		n, err := parseLength(line, MaxBulkLength)
		if err != nil {
			return makeProtocolError("invalid bulk length %q", line)
		}
		if n == -1 {
			return MakeNullBulkString()
		}
		return d.bulk(n)

	case TypeArray:
		n, err := parseLength(line, MaxArrayLength)
		if err != nil {
			return makeProtocolError("invalid multibulk length %q", line)
		}
		if n == -1 {
			return MakeNullArray()
		}
		return d.array(n)
	}

	return makeProtocolError("unknown reply type %q", prefix)
}

// bulk reads a payload of n bytes plus the trailing CRLF
func (d *decoder) bulk(n int) Value {
	if len(d.buf)-d.pos < n+len(crlf) {
		d.pos = len(d.buf)
		return makeProtocolError("unexpected end of bulk string")
	}

	data := d.buf[d.pos : d.pos+n]
	terminated := bytes.Equal(d.buf[d.pos+n:d.pos+n+len(crlf)], crlf)
	d.pos += n + len(crlf)

	if !terminated {
		return makeProtocolError("bulk string not terminated by CRLF")
	}

	return MakeBulkBytes(bytes.Clone(data))
}

// array reads n elements, each recursively
func (d *decoder) array(n int) Value {
	elements := make([]Value, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		elements = append(elements, d.value())
	}
	return MakeArray(elements)
}

// parseInteger parses the body of an integer reply
func parseInteger(line []byte) (int64, error) {
	return strconv.ParseInt(string(line), 10, 64)
}

// parseLength parses a bulk length or array count; -1 is the null marker
func parseLength(line []byte, limit int64) (int, error) {
	n, err := parseInteger(line)
	if err != nil {
		return 0, err
	}

	if n < -1 || n > limit {
		return 0, strconv.ErrRange
	}

	return int(n), nil
}
