package packer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Summary describes a packed image.
type Summary struct {
	// OriginalSize is the size of the input, in bytes.
	OriginalSize int64
	// CompressedSize is the size of the run-length encoded data, not including
	// padding. The boot loader needs this to find where the padding starts.
	CompressedSize int64
	// PaddingSize is the number of zero bytes appended after the encoded data.
	PaddingSize int64
	// Runs is the number of (count, value) pairs in the encoded data.
	Runs int64
	// SectorSize is the sector size the image was aligned to.
	SectorSize uint
	// TotalSectors is the size of the final image, in sectors.
	TotalSectors int64
}

// PaddedSize gives the size of the final image, in bytes.
func (s Summary) PaddedSize() int64 {
	return s.CompressedSize + s.PaddingSize
}

// Ratio gives the compressed size as a percentage of the original size. Values
// over 100 mean the image got bigger.
func (s Summary) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return 100 * float64(s.CompressedSize) / float64(s.OriginalSize)
}

func (s Summary) String() string {
	builder := strings.Builder{}
	fmt.Fprintf(
		&builder,
		"Original size:     %d bytes (%s)\n",
		s.OriginalSize,
		humanize.IBytes(uint64(s.OriginalSize)))
	fmt.Fprintf(
		&builder,
		"Compressed size:   %d bytes (%s)\n",
		s.CompressedSize,
		humanize.IBytes(uint64(s.CompressedSize)))
	fmt.Fprintf(&builder, "Compression ratio: %.2f%%\n", s.Ratio())
	fmt.Fprintf(
		&builder,
		"Total sectors:     %s (%d bytes each)\n",
		humanize.Comma(s.TotalSectors),
		s.SectorSize)
	return builder.String()
}
