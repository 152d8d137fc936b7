package resp

import "bytes"

// Scanner finds frame boundaries in a buffer that grows as bytes arrive from the network.
//
// Scan is called with the whole accumulated buffer each time more data is appended.
// The scanner remembers which headers and elements it already resolved, so bytes
// confirmed by an earlier call are never examined again. The buffer prefix passed to
// consecutive calls must not change until a frame is reported complete (which resets
// the scanner) or Reset is called.
//
// Array completeness is exact for any nesting: an array is complete only once every
// one of its elements is, recursively.
type Scanner struct {
	pos     int   // start of the next unresolved element
	lineEnd int   // CRLF search resumes here
	need    int   // end offset of a bulk payload whose header is already parsed, 0 if none
	pending []int // elements still expected by each open array, innermost last
}

// ScanFrame reports whether buf starts with a complete frame and where it ends
func ScanFrame(buf []byte) (int, bool) {
	var s Scanner
	return s.Scan(buf)
}

// Scan reports whether buf starts with a complete frame. When it does, the returned
// offset is the end of that frame and the scanner is reset for the next one
func (s *Scanner) Scan(buf []byte) (int, bool) {
	for {
		if s.need > 0 {
			if len(buf) < s.need {
				return 0, false
			}

			end := s.need
			s.need = 0
			if s.resolve(end) {
				return s.complete(end)
			}
			continue
		}

		if s.pos >= len(buf) {
			return 0, false
		}

		end, ok := s.findLine(buf)
		if !ok {
			return 0, false
		}

		// malformed headers resolve as single-line frames, the same way Decode reports them
		header := buf[s.pos+1 : end-len(crlf)]
		switch buf[s.pos] {
		case TypeBulkString:
			if n, err := parseLength(header, MaxBulkLength); err == nil && n >= 0 {
				s.pos = end
				s.need = end + n + len(crlf)
				continue
			}
		case TypeArray:
			if n, err := parseLength(header, MaxArrayLength); err == nil && n > 0 {
				s.pos = end
				s.pending = append(s.pending, n)
				continue
			}
		}

		if s.resolve(end) {
			return s.complete(end)
		}
	}
}

// Reset discards all progress, for reuse with an unrelated buffer
func (s *Scanner) Reset() {
	s.pos = 0
	s.lineEnd = 0
	s.need = 0
	s.pending = s.pending[:0]
}

// findLine returns the offset just past the CRLF ending the header at s.pos
func (s *Scanner) findLine(buf []byte) (int, bool) {
	from := max(s.pos+1, s.lineEnd)

	i := bytes.Index(buf[from:], crlf)
	if i < 0 {
		// a trailing '\r' may still pair with the next byte
		s.lineEnd = max(s.pos+1, len(buf)-1)
		return 0, false
	}

	s.lineEnd = 0
	return from + i + len(crlf), true
}

// resolve records that the element at s.pos ends at end, closing every array it
// completes. It reports whether the outermost frame is now complete
func (s *Scanner) resolve(end int) bool {
	s.pos = end
	for len(s.pending) > 0 {
		top := len(s.pending) - 1
		s.pending[top]--
		if s.pending[top] > 0 {
			return false
		}
		s.pending = s.pending[:top]
	}
	return true
}

func (s *Scanner) complete(end int) (int, bool) {
	s.Reset()
	return end, true
}
