package resp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotInteger  = errors.New("value is not an integer")
	ErrUnknownType = errors.New("unknown RESP type")
)

// protocolErrorPrefix starts the text of every Error value produced for a malformed frame
const protocolErrorPrefix = "ERR protocol error: "

// ServerError is an error reply sent by the server, e.g. "WRONGTYPE Operation against a key..."
type ServerError struct {
	Message string
}

// Error implements the error interface
func (e *ServerError) Error() string {
	return e.Message
}

// Code returns the leading upper-case word of the message ("ERR", "WRONGTYPE", ...)
func (e *ServerError) Code() string {
	code, _, _ := strings.Cut(e.Message, " ")
	return code
}

func makeProtocolError(format string, args ...any) Value {
	return MakeError(protocolErrorPrefix + fmt.Sprintf(format, args...))
}

// IsProtocolError reports whether v was produced by the decoder for a malformed frame
// rather than sent by the server
func IsProtocolError(v Value) bool {
	return v.Type == TypeError && strings.HasPrefix(string(v.Str), protocolErrorPrefix)
}
