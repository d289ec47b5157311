package bootpack

import "fmt"

// DefaultXORKey is the key the boot loader uses to decrypt the image.
const DefaultXORKey byte = 0x69

// DefaultSectorSize is the alignment unit of the packed image, in bytes.
const DefaultSectorSize uint = 512

// MaxSectorSize is the largest sector size accepted. Real media top out well
// below this.
const MaxSectorSize uint = 1 << 20

// DefaultMaxInputSize caps how much of the input file is loaded into memory.
const DefaultMaxInputSize int64 = 64 * 1024 * 1024

// Settings holds every tunable of the packing pipeline.
type Settings struct {
	// Key is XORed with every byte of the input before compression.
	Key byte
	// SectorSize is the length, in bytes, that the size of the packed image
	// must be a multiple of.
	SectorSize uint
	// MaxInputSize is the largest input, in bytes, the packer will allocate a
	// buffer for. Anything over this fails with [ErrAllocation].
	MaxInputSize int64
	// MaxSectors is the capacity of the target medium in sectors. If the packed
	// image needs more than this, packing fails with [ErrImageTooLarge]. 0
	// means there's no limit.
	MaxSectors uint
}

// DefaultSettings returns the settings the boot loader expects.
func DefaultSettings() Settings {
	return Settings{
		Key:          DefaultXORKey,
		SectorSize:   DefaultSectorSize,
		MaxInputSize: DefaultMaxInputSize,
	}
}

// Validate returns an error wrapping [ErrInvalidSettings] if the settings can't
// be used to pack an image.
func (s Settings) Validate() error {
	if s.SectorSize == 0 {
		return ErrInvalidSettings.WithMessage("sector size must be positive")
	}
	if s.SectorSize > MaxSectorSize {
		return ErrInvalidSettings.WithMessage(
			fmt.Sprintf(
				"sector size must be at most %d, got %d", MaxSectorSize, s.SectorSize))
	}
	if s.MaxInputSize <= 0 {
		return ErrInvalidSettings.WithMessage(
			fmt.Sprintf("maximum input size must be positive, got %d", s.MaxInputSize))
	}
	return nil
}
