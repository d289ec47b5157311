package testing

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/dargueta/bootpack/utilities/compression"
	"github.com/dargueta/bootpack/utilities/xor"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// UnpackImage does what the boot loader does: it takes the first compressedSize
// bytes of a packed image, expands the runs, and decrypts the result with key.
// The rest of the image must be zero padding that brings it to a multiple of
// sectorSize, otherwise the test fails.
func UnpackImage(
	t *testing.T, packedImage []byte, compressedSize int64, key byte, sectorSize uint,
) []byte {
	require.LessOrEqual(
		t, compressedSize, int64(len(packedImage)), "compressed size is past end of image")
	require.Zero(
		t, len(packedImage)%int(sectorSize), "image isn't a whole number of sectors")

	padding := packedImage[compressedSize:]
	require.Less(t, len(padding), int(sectorSize), "image has a full sector of padding")
	require.Equal(t, make([]byte, len(padding)), padding, "padding isn't all zeros")

	expanded, err := compression.DecompressRunsToBytes(
		bytes.NewReader(packedImage[:compressedSize]))
	require.NoError(t, err, "failed to expand runs")

	xor.Transform(expanded, key)
	return expanded
}

// CreateRandomInput returns size random bytes. It is guaranteed to either return
// a valid slice or fail the test and abort.
func CreateRandomInput(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)
	return data
}

// CreateImageSink returns an in-memory seekable stream of sectorSize *
// totalSectors zero bytes for a packed image to be written to.
func CreateImageSink(sectorSize, totalSectors uint) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(make([]byte, sectorSize*totalSectors))
}

// ReadSink rewinds a stream returned by [CreateImageSink] and returns the first
// size bytes of it.
func ReadSink(t *testing.T, sink io.ReadWriteSeeker, size int64) []byte {
	_, err := sink.Seek(0, io.SeekStart)
	require.NoError(t, err, "failed to rewind image")

	contents := make([]byte, size)
	_, err = io.ReadFull(sink, contents)
	require.NoError(t, err, "failed to read image")
	return contents
}
