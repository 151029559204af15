package scanner

import (
	"io"
	"unicode/utf8"
)

// source is a buffered rune reader with one character of pushback, tracking
// the byte segment of the token currently being scanned so Segment can return
// it without an intermediate copy for the common ASCII case.
type source struct {
	in   io.Reader
	errh func(line, col uint, msg string)

	buf      []byte
	offs     int // position of buf[0] in the overall input
	r, w     int // read and write indices into buf
	line     uint
	col      uint
	ch       rune
	ioErr    error
	startOff int // offset of the current token's start
}

const (
	bufMax  = 1 << 20
	bufGrow = 4 << 10
)

func (s *source) init(in io.Reader, errh func(line, col uint, msg string)) {
	s.in = in
	s.errh = errh
	s.buf = make([]byte, bufGrow)
	s.r, s.w = 0, 0
	s.line, s.col = 1, 0
	s.ioErr = nil
	s.ch = ' '
	s.nextch()
}

func (s *source) error(msg string) {
	line, col := s.line, s.col
	if s.errh != nil {
		s.errh(line, col, msg)
	}
}

func (s *source) fill() {
	// Keep the current token's bytes (from startOff on) so Segment still
	// covers a token that spans a refill.
	keep := s.r
	if s.startOff < keep {
		keep = s.startOff
	}
	if keep > 0 {
		copy(s.buf, s.buf[keep:s.w])
		s.w -= keep
		s.offs += keep
		s.startOff -= keep
		s.r -= keep
	}
	for i := 0; i < 10; i++ {
		if s.w == len(s.buf) {
			if len(s.buf) >= bufMax {
				return
			}
			nb := make([]byte, len(s.buf)+bufGrow)
			copy(nb, s.buf)
			s.buf = nb
		}
		n, err := s.in.Read(s.buf[s.w:])
		s.w += n
		if n > 0 || err != nil {
			if err != nil && err != io.EOF {
				s.ioErr = err
				s.error(err.Error())
			}
			return
		}
	}
}

// nextch reads the next rune into s.ch, advancing line/col bookkeeping.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 0
	}
	if s.r >= s.w {
		s.fill()
		if s.r >= s.w {
			s.ch = -1
			return
		}
	}
	b := s.buf[s.r]
	if b < utf8.RuneSelf {
		s.r++
		s.col++
		s.ch = rune(b)
		return
	}
	for s.w-s.r < utf8.UTFMax && !utf8.FullRune(s.buf[s.r:s.w]) {
		s.fill()
	}
	r, size := utf8.DecodeRune(s.buf[s.r:s.w])
	if r == utf8.RuneError && size <= 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.r += size
	s.col++
	s.ch = r
}

// start marks the beginning of a new token segment.
func (s *source) start() { s.startOff = s.r - runeLen(s.ch) }

// stop is a no-op placeholder kept for symmetry with start; segments are
// computed lazily by Segment.
func (s *source) stop() {}

func runeLen(r rune) int {
	if r < 0 {
		return 0
	}
	return utf8.RuneLen(r)
}

// Segment returns the raw bytes of the token scanned since the last start().
func (s *source) Segment() []byte {
	end := s.r - runeLen(s.ch)
	if end < s.startOff {
		end = s.startOff
	}
	return s.buf[s.startOff:end]
}

// pos returns the line/col of the rune about to be consumed.
func (s *source) pos() (line, col uint) { return s.line, s.col }
