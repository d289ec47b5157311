package compression

import (
	"bytes"
	"io"
)

// CompressRunsToBytes is a convenience function wrapping [CompressRuns]. It
// returns the encoded data in a new byte slice instead of writing to an
// [io.Writer].
func CompressRunsToBytes(input []byte) []byte {
	buffer := bytes.Buffer{}
	// Writes to a bytes.Buffer can't fail.
	_, _ = CompressRuns(input, &buffer)
	return buffer.Bytes()
}

// DecompressRunsToBytes takes run-length encoded data and expands it to the
// original bytes, returned in a new slice. Empty input gives an empty, non-nil
// slice.
func DecompressRunsToBytes(input io.Reader) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := DecompressRuns(input, &buffer)
	if err != nil {
		return nil, err
	}
	if buffer.Len() == 0 {
		return []byte{}, nil
	}
	return buffer.Bytes(), nil
}
