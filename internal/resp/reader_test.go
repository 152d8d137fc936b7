package resp_test

import (
	"testing"

	"github.com/eternalApril/lunar/internal/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "Valid positive", input: ":1000\r\n", want: 1000},
		{name: "Valid positive with +", input: ":+1230\r\n", want: 1230},
		{name: "Valid negative", input: ":-50\r\n", want: -50},
		{name: "Valid zero", input: ":0\r\n", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, n := resp.Decode([]byte(tt.input))

			require.Equal(t, byte(resp.TypeInteger), val.Type)
			assert.Equal(t, tt.want, val.Integer)
			assert.Equal(t, len(tt.input), n)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  resp.Value
	}{
		{
			name:  "Simple string",
			input: "+OK\r\n",
			want:  resp.MakeSimpleString("OK"),
		},
		{
			name:  "Error",
			input: "-ERR unknown command 'FOO'\r\n",
			want:  resp.MakeError("ERR unknown command 'FOO'"),
		},
		{
			name:  "Bulk string",
			input: "$5\r\nhello\r\n",
			want:  resp.MakeBulkString("hello"),
		},
		{
			name:  "Bulk string with CRLF in payload",
			input: "$4\r\na\r\nb\r\n",
			want:  resp.MakeBulkString("a\r\nb"),
		},
		{
			name:  "Empty bulk string",
			input: "$0\r\n\r\n",
			want:  resp.MakeBulkString(""),
		},
		{
			name:  "Null bulk string",
			input: "$-1\r\n",
			want:  resp.MakeNullBulkString(),
		},
		{
			name:  "Empty array",
			input: "*0\r\n",
			want:  resp.MakeArray(nil),
		},
		{
			name:  "Null array",
			input: "*-1\r\n",
			want:  resp.MakeNullArray(),
		},
		{
			name:  "Nested array",
			input: "*2\r\n*1\r\n:1\r\n$2\r\nab\r\n",
			want: resp.MakeArray([]resp.Value{
				resp.MakeArray([]resp.Value{resp.MakeInteger(1)}),
				resp.MakeBulkString("ab"),
			}),
		},
		{
			name:  "Heterogeneous array with null elements",
			input: "*4\r\n+OK\r\n$-1\r\n*-1\r\n-ERR x\r\n",
			want: resp.MakeArray([]resp.Value{
				resp.MakeSimpleString("OK"),
				resp.MakeNullBulkString(),
				resp.MakeNullArray(),
				resp.MakeError("ERR x"),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := resp.Decode([]byte(tt.input))

			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.input), n)
		})
	}
}

func TestDecodeNullIsNotEmpty(t *testing.T) {
	null, _ := resp.Decode([]byte("$-1\r\n"))
	empty, _ := resp.Decode([]byte("$0\r\n\r\n"))

	assert.True(t, null.IsNull())
	assert.False(t, empty.IsNull())
	assert.NotEqual(t, null, empty)

	nullArr, _ := resp.Decode([]byte("*-1\r\n"))
	emptyArr, _ := resp.Decode([]byte("*0\r\n"))

	assert.True(t, nullArr.IsNull())
	assert.False(t, emptyArr.IsNull())
	assert.NotNil(t, emptyArr.Array)
	assert.Empty(t, emptyArr.Array)
}

func TestDecodeConsumesOneFrame(t *testing.T) {
	input := []byte("*1\r\n$3\r\nfoo\r\n:2\r\n")

	first, n := resp.Decode(input)
	require.Equal(t, 13, n)
	assert.Equal(t, resp.MakeArray([]resp.Value{resp.MakeBulkString("foo")}), first)

	second, m := resp.Decode(input[n:])
	assert.Equal(t, resp.MakeInteger(2), second)
	assert.Equal(t, 4, m)
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	input := []byte("$3\r\nfoo\r\n")

	v, _ := resp.Decode(input)
	copy(input, "$3\r\nbar\r\n")

	assert.Equal(t, "foo", v.String())
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		consumed int
	}{
		{name: "Unknown prefix", input: "?what\r\n", consumed: 7},
		{name: "Non-numeric integer", input: ":abc\r\n", consumed: 6},
		{name: "Non-numeric bulk length", input: "$x\r\nfoo\r\n", consumed: 4},
		{name: "Bulk length below -1", input: "$-2\r\n", consumed: 5},
		{name: "Bulk length above limit", input: "$999999999999\r\n", consumed: 15},
		{name: "Non-numeric array count", input: "*z\r\n", consumed: 4},
		{name: "Missing CRLF", input: "+OK", consumed: 3},
		{name: "Truncated bulk", input: "$10\r\nabc", consumed: 8},
		{name: "Bulk without trailing CRLF", input: "$3\r\nfooXY", consumed: 9},
		{name: "Empty input", input: "", consumed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n := resp.Decode([]byte(tt.input))

			assert.True(t, v.IsError())
			assert.True(t, resp.IsProtocolError(v), "got %q", v.String())
			assert.Equal(t, tt.consumed, n)
		})
	}
}

func TestDecodeMalformedElementKeepsSiblings(t *testing.T) {
	v, n := resp.Decode([]byte("*3\r\n:1\r\n:oops\r\n+ok\r\n"))

	require.True(t, v.IsArray())
	require.Len(t, v.Array, 3)
	assert.Equal(t, resp.MakeInteger(1), v.Array[0])
	assert.True(t, resp.IsProtocolError(v.Array[1]))
	assert.Equal(t, resp.MakeSimpleString("ok"), v.Array[2])
	assert.Equal(t, 20, n)
}

func TestServerErrorIsNotProtocolError(t *testing.T) {
	v, _ := resp.Decode([]byte("-WRONGTYPE Operation against a key holding the wrong kind of value\r\n"))

	assert.False(t, resp.IsProtocolError(v))

	var serverErr *resp.ServerError
	require.ErrorAs(t, v.Err(), &serverErr)
	assert.Equal(t, "WRONGTYPE", serverErr.Code())
}
