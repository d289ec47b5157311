package xor

import "io"

// Transform XORs every byte of buffer with key, in place.
func Transform(buffer []byte, key byte) {
	for i := range buffer {
		buffer[i] ^= key
	}
}

type xorWriter struct {
	stream  io.Writer
	key     byte
	scratch []byte
}

// NewWriter returns a writer that XORs everything written to it with key before
// passing it on to w. The slices given to Write are never modified.
func NewWriter(w io.Writer, key byte) io.Writer {
	return &xorWriter{stream: w, key: key}
}

func (writer *xorWriter) Write(p []byte) (int, error) {
	if cap(writer.scratch) < len(p) {
		writer.scratch = make([]byte, len(p))
	}
	encoded := writer.scratch[:len(p)]
	copy(encoded, p)
	Transform(encoded, writer.key)
	return writer.stream.Write(encoded)
}
