package middleware

import (
	"bytes"
	"io"
)

// BodyReader lets a request body be read again after logging consumed it
type BodyReader struct {
	*bytes.Reader
}

// NewBodyReader wraps body as an io.ReadCloser
func NewBodyReader(body []byte) io.ReadCloser {
	return &BodyReader{Reader: bytes.NewReader(body)}
}

// Close implements io.ReadCloser
func (r *BodyReader) Close() error {
	return nil
}
