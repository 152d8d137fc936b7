package main

import (
	"errors"
	"strconv"
	"strings"
)

var errUnbalancedQuotes = errors.New("invalid argument(s): unbalanced quotes")

// splitArgs splits a command line into arguments. Double-quoted arguments accept Go
// escape sequences (\n, \xff, ...), single-quoted ones are taken literally
func splitArgs(line string) ([]string, error) {
	var args []string

	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			i++

		case c == '"':
			end := closingQuote(line, i)
			if end < 0 {
				return nil, errUnbalancedQuotes
			}
			arg, err := strconv.Unquote(line[i : end+1])
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			i = end + 1

		case c == '\'':
			end := strings.IndexByte(line[i+1:], '\'')
			if end < 0 {
				return nil, errUnbalancedQuotes
			}
			args = append(args, line[i+1:i+1+end])
			i += end + 2

		default:
			end := strings.IndexAny(line[i:], " \t")
			if end < 0 {
				end = len(line) - i
			}
			args = append(args, line[i:i+end])
			i += end
		}
	}

	return args, nil
}

// closingQuote returns the index of the double quote ending the quoted string opened at start
func closingQuote(line string, start int) int {
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
