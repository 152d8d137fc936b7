package main

import (
	"strconv"
	"strings"

	"github.com/eternalApril/lunar/internal/resp"
)

// formatValue renders a reply the way redis-cli prints it
func formatValue(v resp.Value) string {
	var sb strings.Builder
	writeValue(&sb, v, 0)
	return sb.String()
}

func writeValue(sb *strings.Builder, v resp.Value, indent int) {
	if v.Null {
		sb.WriteString("(nil)")
		return
	}

	switch v.Type {
	case resp.TypeSimpleString:
		sb.Write(v.Str)
	case resp.TypeError:
		sb.WriteString("(error) ")
		sb.Write(v.Str)
	case resp.TypeInteger:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(v.Integer, 10))
	case resp.TypeBulkString:
		sb.WriteString(strconv.Quote(string(v.Str)))
	case resp.TypeArray:
		writeArray(sb, v.Array, indent)
	}
}

// writeArray numbers the elements and aligns nested arrays under their parent's index
func writeArray(sb *strings.Builder, values []resp.Value, indent int) {
	if len(values) == 0 {
		sb.WriteString("(empty array)")
		return
	}

	width := len(strconv.Itoa(len(values)))
	for i, el := range values {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", indent))
		}

		index := strconv.Itoa(i + 1)
		prefix := strings.Repeat(" ", width-len(index)) + index + ") "
		sb.WriteString(prefix)
		writeValue(sb, el, indent+len(prefix))
	}
}
