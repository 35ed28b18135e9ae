package memorybackend

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// maxSSELineSize caps a single SSE line; longer lines fail Next with
// bufio.ErrTooLong
const maxSSELineSize = 1 * 1024 * 1024

// sseScanner yields the data payload of each server-sent event.
// Comments and non-data fields are skipped; consecutive data lines of one
// event are joined with newlines.
type sseScanner struct {
	scanner *bufio.Scanner
	// last line ended in \r; a leading \n of the next read belongs to it
	pendingCR bool
}

func newSSEScanner(r io.Reader) *sseScanner {
	s := &sseScanner{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELineSize)
	scanner.Split(s.splitLines)
	s.scanner = scanner
	return s
}

// splitLines accepts \r\n, \n and a bare \r as line terminators. A \r at the
// end of the buffered data ends the line at once so a live stream is not
// held waiting for the next byte.
func (s *sseScanner) splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if s.pendingCR && len(data) > 0 {
		s.pendingCR = false
		if data[0] == '\n' {
			return 1, nil, nil
		}
	}
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			switch {
			case i+1 == len(data):
				s.pendingCR = true
			case data[i+1] == '\n':
				return i + 2, data[:i], nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Next returns the next payload, or io.EOF once the reader is exhausted
func (s *sseScanner) Next() (string, error) {
	var dataLines []string

	for s.scanner.Scan() {
		line := s.scanner.Text()

		// Empty line ends an event
		if line == "" {
			if len(dataLines) > 0 {
				return strings.Join(dataLines, "\n"), nil
			}
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data:") {
			data := strings.TrimPrefix(line, "data:")
			dataLines = append(dataLines, strings.TrimPrefix(data, " "))
		}
		// event:, id:, retry: are not used by the briefing stream
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("sse scanner: %w", err)
	}

	if len(dataLines) > 0 {
		return strings.Join(dataLines, "\n"), nil
	}

	return "", io.EOF
}

// streamSubscription adapts an open SSE response body to
// repositories.Subscription
type streamSubscription struct {
	body    io.ReadCloser
	scanner *sseScanner

	closeOnce sync.Once
	closeErr  error
	mu        sync.Mutex
	closed    bool
}

func newStreamSubscription(body io.ReadCloser) *streamSubscription {
	return &streamSubscription{
		body:    body,
		scanner: newSSEScanner(body),
	}
}

// Next blocks for the next payload. After Close it returns io.ErrClosedPipe.
func (s *streamSubscription) Next() (string, error) {
	payload, err := s.scanner.Next()
	if err != nil && s.isClosed() {
		return "", io.ErrClosedPipe
	}
	return payload, err
}

// Close releases the connection; a pending Next returns promptly
func (s *streamSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}

func (s *streamSubscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
