package resp

import (
	"bufio"
	"io"
	"strconv"
)

// Encoder handles the serialization of RESP Value objects into an output stream
type Encoder struct {
	writer *bufio.Writer
}

// NewEncoder initializes an Encoder with a buffered writer
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		writer: bufio.NewWriter(w)}
}

// Write serializes a RESP Value into the buffer. Call Flush to push it to the stream
func (e *Encoder) Write(v Value) error {
	switch v.Type {
	case TypeInteger:
		return e.writeHeader(TypeInteger, v.Integer)

	case TypeSimpleString, TypeError:
		return e.writeRaw(v.Type, v.Str)

	case TypeBulkString:
		if v.Null {
			_, err := e.writer.Write(nullBulkBytes)
			return err
		}
		if err := e.writeHeader(TypeBulkString, int64(len(v.Str))); err != nil {
			return err
		}
		if _, err := e.writer.Write(v.Str); err != nil {
			return err
		}
		_, err := e.writer.Write(crlf)
		return err

	case TypeArray:
		if v.Null {
			_, err := e.writer.Write(nullArrBytes)
			return err
		}
		if err := e.writeHeader(TypeArray, int64(len(v.Array))); err != nil {
			return err
		}
		for _, el := range v.Array {
			if err := e.Write(el); err != nil {
				return err
			}
		}
		return nil
	}

	return ErrUnknownType
}

// Flush sends all buffered data to the underlying writer
func (e *Encoder) Flush() error {
	return e.writer.Flush()
}

// writeHeader writes the type prefix, numeric value, and CRLF
func (e *Encoder) writeHeader(prefix byte, n int64) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	e.appendInt(n)
	_, err := e.writer.Write(crlf)
	return err
}

// writeRaw writes the type prefix, raw bytes, and CRLF (for SimpleString and Error)
func (e *Encoder) writeRaw(prefix byte, b []byte) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	if _, err := e.writer.Write(b); err != nil {
		return err
	}
	_, err := e.writer.Write(crlf)
	return err
}

// appendInt converts an integer to a string and writes it to the buffer
func (e *Encoder) appendInt(n int64) {
	b := e.writer.AvailableBuffer()
	b = strconv.AppendInt(b, n, 10)
	e.writer.Write(b) //nolint:errcheck
}
