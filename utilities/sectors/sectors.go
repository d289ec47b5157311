// Package sectors handles alignment of packed images to the sector size of the
// boot medium.
package sectors

import "io"

// zeroBlock is the largest single write WritePadding makes.
var zeroBlock [4096]byte

// Padding describes the zero bytes appended to an image.
type Padding struct {
	// Bytes is the number of zero bytes appended. It's always less than one
	// sector.
	Bytes int64
	// TotalSectors is the size of the padded image, in sectors.
	TotalSectors int64
}

// PadToSector determines how many zero bytes must be appended to data of length
// currentLength to make it an exact multiple of sectorSize, and how many
// sectors the result takes up. sectorSize must be positive and no larger than
// the largest int64.
func PadToSector(currentLength int64, sectorSize uint) Padding {
	size := int64(sectorSize)
	paddingNeeded := size - (currentLength % size)
	if paddingNeeded == size {
		// Already aligned.
		paddingNeeded = 0
	}
	return Padding{
		Bytes:        paddingNeeded,
		TotalSectors: (currentLength + paddingNeeded) / size,
	}
}

// WritePadding writes the padding needed to align data of length currentLength
// to sectorSize. On failure the returned [Padding] is undefined.
func WritePadding(w io.Writer, currentLength int64, sectorSize uint) (Padding, error) {
	padding := PadToSector(currentLength, sectorSize)
	if padding.Bytes == 0 {
		return padding, nil
	}

	for remaining := padding.Bytes; remaining > 0; {
		chunk := zeroBlock[:]
		if remaining < int64(len(chunk)) {
			chunk = chunk[:remaining]
		}
		n, err := w.Write(chunk)
		if err != nil {
			return padding, err
		}
		remaining -= int64(n)
	}
	return padding, nil
}

// SectorsNeeded gives the number of sectors needed to hold length bytes.
func SectorsNeeded(length int64, sectorSize uint) int64 {
	return PadToSector(length, sectorSize).TotalSectors
}
