package artifactfs

import (
	"bytes"
	"strings"
)

// outputStream buffers bytes written to an artifact. Nothing becomes
// visible to readers until Close, which commits the buffer and stamps the
// modification time in one step. An abandoned stream leaves the artifact
// unchanged.
type outputStream struct {
	artifact *Artifact
	buf      bytes.Buffer
	closed   bool
}

// Write appends p to the pending buffer.
func (s *outputStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	return s.buf.Write(p)
}

// Close commits everything written to the owning artifact. Each successful
// close fully overwrites the artifact's content; closing twice returns
// ErrClosed.
func (s *outputStream) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	// An empty write is still a write: commit a non-nil slice so the
	// artifact reports zero-byte content instead of no content.
	content := s.buf.Bytes()
	if content == nil {
		content = []byte{}
	}

	s.artifact.commit(content)
	return nil
}

// TextWriter accumulates characters destined for an artifact. On Close the
// accumulated text is converted to UTF-8 bytes and committed the same way
// an output stream commits. The conversion ignores any encoding the
// artifact may conceptually carry; this mirrors the write-side behavior of
// the byte stream and is documented rather than negotiated.
type TextWriter struct {
	artifact *Artifact
	sb       strings.Builder
	closed   bool
}

// Write appends p, interpreted as UTF-8 text, to the pending buffer.
func (w *TextWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	return w.sb.Write(p)
}

// WriteString appends s to the pending buffer.
func (w *TextWriter) WriteString(s string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	return w.sb.WriteString(s)
}

// WriteRune appends a single rune to the pending buffer.
func (w *TextWriter) WriteRune(r rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	return w.sb.WriteRune(r)
}

// Close commits the accumulated text to the owning artifact as UTF-8
// bytes. Closing twice returns ErrClosed.
func (w *TextWriter) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true

	w.artifact.commit([]byte(w.sb.String()))
	return nil
}
