// Package input turns raw terminal bytes into per-frame key and mouse
// state.
package input

import (
	"bufio"
)

// Click is a mouse button press at a 1-based screen cell.
type Click struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Space   bool
	Enter   bool
	Escape  bool
	Number  int // last digit pressed this frame, -1 if none
	Clicks  []Click
	Pressed []byte
}

// Any reports whether anything at all was pressed or clicked.
func (in Input) Any() bool {
	return len(in.Pressed) > 0 || len(in.Clicks) > 0
}

// Stream delivers input bytes via a channel. Escape sequences split
// across two reads are carried over to the next frame.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking)
// and parses them. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	got := 0

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			got++
		default:
			break drain
		}
	}

	// Nothing new arrived behind a held sequence, so it was complete.
	in, rest := parse(buf, got > 0 && !s.closed)
	s.pending = rest
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse parses a complete chunk of terminal input.
func Parse(buf []byte) Input {
	in, _ := parse(buf, false)
	return in
}

// parse decodes buf. With partial set, an escape sequence cut off at the
// end of buf is returned as rest instead of being decoded.
func parse(buf []byte, partial bool) (in Input, rest []byte) {
	in.Number = -1
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			continue
		}

		n, complete := escapeSeq(&in, buf[i:])
		if !complete {
			if partial {
				return in, append([]byte(nil), buf[i:]...)
			}
			in.Escape = true
			in.Pressed = append(in.Pressed, '\x1b')
			break
		}
		i += n - 1
	}
	return in, nil
}

// escapeSeq decodes the escape sequence at the start of seq and returns
// how many bytes it used. complete is false, and in untouched, when seq
// ends mid-sequence.
func escapeSeq(in *Input, seq []byte) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	switch seq[1] {
	case '[', 'O':
	default:
		// Alt+key or a lone Escape followed by a normal key.
		in.Escape = true
		in.Pressed = append(in.Pressed, '\x1b')
		return 1, true
	}

	// Find the final byte of the CSI/SS3 sequence.
	end := -1
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			end = j
			break
		}
	}
	if end < 0 {
		return 0, false
	}

	switch final := seq[end]; {
	case final == 'A':
		in.Up = true
	case final == 'B':
		in.Down = true
	case final == 'C':
		in.Right = true
	case final == 'D':
		in.Left = true
	case (final == 'M' || final == 'm') && seq[1] == '[' && end > 2 && seq[2] == '<':
		if c, ok := parseMouse(seq[3:end], final); ok {
			in.Clicks = append(in.Clicks, c)
		}
	}
	return end + 1, true
}

// parseMouse decodes the "b;x;y" body of an SGR mouse report. Only
// button presses count as clicks; releases, motion and the wheel do not.
func parseMouse(body []byte, final byte) (Click, bool) {
	var vals [3]int
	field := 0
	for _, c := range body {
		switch {
		case c == ';':
			field++
			if field > 2 {
				return Click{}, false
			}
		case c >= '0' && c <= '9':
			vals[field] = vals[field]*10 + int(c-'0')
		default:
			return Click{}, false
		}
	}
	if field != 2 || final != 'M' {
		return Click{}, false
	}
	btn := vals[0] &^ (4 | 8 | 16) // shift, meta, ctrl
	if btn > 2 {
		return Click{}, false
	}
	return Click{Col: vals[1], Row: vals[2]}, true
}

// applyByte updates the frame input for a single pressed byte.
func applyByte(in *Input, b byte) {
	in.Pressed = append(in.Pressed, b)
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		in.Left = true
	case 'd', 'D', 'l', 'L':
		in.Right = true
	case 'w', 'W', 'k', 'K':
		in.Up = true
	case 's', 'S', 'j', 'J':
		in.Down = true
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
