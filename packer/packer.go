package packer

import (
	"fmt"
	"io"

	"github.com/dargueta/bootpack"
	"github.com/dargueta/bootpack/utilities/compression"
	"github.com/dargueta/bootpack/utilities/sectors"
	"github.com/dargueta/bootpack/utilities/xor"
)

// Pack runs the packing pipeline over data and writes the image to output.
//
// data is encrypted in place and is garbage once this returns; applying
// [xor.Transform] to it with the same key restores the original contents. Pack
// doesn't hold on to data or output after it returns.
//
// If output is an [io.Seeker], Pack also checks that the stream actually
// advanced by the number of bytes the compressor claims to have written.
func Pack(data []byte, output io.Writer, settings bootpack.Settings) (Summary, error) {
	if err := settings.Validate(); err != nil {
		return Summary{}, err
	}
	if len(data) == 0 {
		return Summary{}, bootpack.ErrEmptyInput
	}

	startOffset := int64(-1)
	seeker, isSeekable := output.(io.Seeker)
	if isSeekable {
		offset, err := seeker.Seek(0, io.SeekCurrent)
		if err == nil {
			startOffset = offset
		}
	}

	xor.Transform(data, settings.Key)

	compressedSize, err := compression.CompressRuns(data, output)
	if err != nil {
		return Summary{}, bootpack.ErrWriteFailed.Wrap(err)
	}

	if startOffset >= 0 {
		endOffset, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return Summary{}, bootpack.ErrWriteFailed.Wrap(err)
		}
		if endOffset-startOffset != compressedSize {
			return Summary{}, bootpack.ErrWriteFailed.WithMessage(
				fmt.Sprintf(
					"compressor wrote %d bytes but the output advanced %d",
					compressedSize,
					endOffset-startOffset))
		}
	}

	// Every run is a pair of bytes and there's at least one run.
	if compressedSize < 2 || compressedSize%2 != 0 {
		panic(
			fmt.Sprintf(
				"BUG: compressed %d bytes into %d, expected a positive even number",
				len(data),
				compressedSize))
	}

	if settings.MaxSectors > 0 {
		needed := sectors.SectorsNeeded(compressedSize, settings.SectorSize)
		if needed > int64(settings.MaxSectors) {
			return Summary{}, bootpack.ErrImageTooLarge.WithMessage(
				fmt.Sprintf(
					"image needs %d sectors, medium has %d",
					needed,
					settings.MaxSectors))
		}
	}

	padding, err := sectors.WritePadding(output, compressedSize, settings.SectorSize)
	if err != nil {
		return Summary{}, bootpack.ErrWriteFailed.Wrap(err)
	}

	return Summary{
		OriginalSize:   int64(len(data)),
		CompressedSize: compressedSize,
		PaddingSize:    padding.Bytes,
		Runs:           compressedSize / 2,
		SectorSize:     settings.SectorSize,
		TotalSectors:   padding.TotalSectors,
	}, nil
}
