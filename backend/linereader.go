package backend

import (
	"bufio"
	"errors"
	"io"
)

// LineReader hands out only whole newline-terminated lines. A trailing line
// without its newline is held back until the rest of it arrives, so a CSV
// file that is still being written never yields a torn record.
type LineReader struct {
	r *bufio.Reader
	// line is the unread remainder of the last complete line.
	line []byte
	// partial is the start of a line whose newline has not been read yet.
	partial []byte
}

var _ io.Reader = (*LineReader)(nil)

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Read fills b from the current line. It returns io.EOF whenever no complete
// line is available; reading again after more data has been written resumes
// where it left off.
func (l *LineReader) Read(b []byte) (int, error) {
	if len(l.line) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, err
		}
		l.line, l.partial = l.partial, nil
	}
	n := copy(b, l.line)
	l.line = l.line[n:]
	return n, nil
}

// Pending returns the bytes of the incomplete line being held back.
func (l *LineReader) Pending() []byte {
	return l.partial
}
