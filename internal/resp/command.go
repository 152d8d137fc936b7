package resp

import "strconv"

// EncodeCommand builds the request frame for a command: an array of bulk strings,
// the name first. Arguments are sent as raw bytes
func EncodeCommand(name string, args ...string) []byte {
	size := 16 + len(name)
	for _, arg := range args {
		size += len(arg) + 16
	}
	return AppendCommand(make([]byte, 0, size), name, args...)
}

// AppendCommand appends the request frame for a command to dst and returns the extended slice
func AppendCommand(dst []byte, name string, args ...string) []byte {
	dst = appendHeader(dst, TypeArray, int64(len(args)+1))
	dst = appendBulk(dst, name)
	for _, arg := range args {
		dst = appendBulk(dst, arg)
	}
	return dst
}

func appendHeader(dst []byte, prefix byte, n int64) []byte {
	dst = append(dst, prefix)
	dst = strconv.AppendInt(dst, n, 10)
	return append(dst, crlf...)
}

func appendBulk(dst []byte, s string) []byte {
	dst = appendHeader(dst, TypeBulkString, int64(len(s)))
	dst = append(dst, s...)
	return append(dst, crlf...)
}
