package packer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/bootpack"
	"github.com/dargueta/bootpack/utilities/compression"
	"github.com/dargueta/bootpack/utilities/xor"
)

// Verify reads a packed image and checks that it unpacks to original.
//
// The image doesn't record where the encoded data ends, so this relies on
// summary.CompressedSize to split it from the padding. The padding must be all
// zeros and the image must have exactly summary.TotalSectors sectors.
func Verify(packed io.Reader, original []byte, summary Summary, settings bootpack.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	plaintext := bytes.Buffer{}
	plaintext.Grow(len(original))

	payload := io.LimitReader(packed, summary.CompressedSize)
	counter := &countingReader{rd: payload}
	_, err := compression.DecompressRuns(counter, xor.NewWriter(&plaintext, settings.Key))
	if err != nil {
		return bootpack.ErrVerifyFailed.Wrap(err)
	}
	if counter.total != summary.CompressedSize {
		return bootpack.ErrVerifyFailed.WithMessage(
			fmt.Sprintf(
				"image ended after %d bytes of encoded data, expected %d",
				counter.total,
				summary.CompressedSize))
	}

	if !bytes.Equal(plaintext.Bytes(), original) {
		return bootpack.ErrVerifyFailed.WithMessage(
			fmt.Sprintf(
				"image unpacks to %d bytes that don't match the %d byte original",
				plaintext.Len(),
				len(original)))
	}

	paddingSize, err := checkPadding(packed)
	if err != nil {
		return err
	}

	totalSize := summary.CompressedSize + paddingSize
	expectedSize := summary.TotalSectors * int64(settings.SectorSize)
	if totalSize != expectedSize {
		return bootpack.ErrVerifyFailed.WithMessage(
			fmt.Sprintf(
				"image is %d bytes, expected %d sectors of %d bytes",
				totalSize,
				summary.TotalSectors,
				settings.SectorSize))
	}
	return nil
}

// VerifyFile is the file equivalent of [Verify]. It reads the original from
// inputPath and the image from packedPath.
func VerifyFile(inputPath, packedPath string, summary Summary, settings bootpack.Settings) error {
	original, err := os.ReadFile(inputPath)
	if err != nil {
		return bootpack.ErrInputOpen.Wrap(err)
	}

	packedFile, err := os.Open(packedPath)
	if err != nil {
		return bootpack.ErrVerifyFailed.Wrap(err)
	}
	defer packedFile.Close()

	return Verify(bufio.NewReader(packedFile), original, summary, settings)
}

// checkPadding consumes the rest of rd, failing if any byte isn't zero. It
// returns the number of bytes read.
func checkPadding(rd io.Reader) (int64, error) {
	source := bufio.NewReader(rd)
	for total := int64(0); ; total++ {
		b, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, bootpack.ErrVerifyFailed.Wrap(err)
		}
		if b != 0 {
			return total, bootpack.ErrVerifyFailed.WithMessage(
				fmt.Sprintf("padding byte %d is %#02x, not zero", total, b))
		}
	}
}

type countingReader struct {
	rd    io.Reader
	total int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.rd.Read(p)
	c.total += int64(n)
	return n, err
}
