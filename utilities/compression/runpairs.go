package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxRunLength is the longest run a single pair can describe.
const MaxRunLength = 255

// ErrZeroLengthRun is returned when decoding a pair whose count is 0.
var ErrZeroLengthRun = errors.New("run length of zero")

// SplitRuns scans data from left to right and returns the runs it's made of, in
// order. No run is longer than [MaxRunLength] bytes; longer stretches of the
// same byte are split into several consecutive runs.
func SplitRuns(data []byte) []ByteRun {
	runs := make([]ByteRun, 0, len(data)/MaxRunLength+1)

	for i := 0; i < len(data); {
		value := data[i]
		runLength := 1
		for i+runLength < len(data) &&
			data[i+runLength] == value &&
			runLength < MaxRunLength {
			runLength++
		}

		runs = append(runs, ByteRun{Byte: value, RunLength: runLength})
		i += runLength
	}
	return runs
}

// CompressRuns run-length encodes input and writes the pairs to output. The
// returned int64 is the number of bytes written, which is always twice the
// number of runs. If an error occurred it gives how much was written before
// the failure.
func CompressRuns(input []byte, output io.Writer) (int64, error) {
	totalBytesWritten := int64(0)
	for _, run := range SplitRuns(input) {
		n, err := writeRun(output, run)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, err
		}
	}
	return totalBytesWritten, nil
}

// CompressRunsFrom is the streaming form of [CompressRuns]. It reads from input
// until EOF and produces exactly the same output.
func CompressRunsFrom(input io.Reader, output io.Writer) (int64, error) {
	grouper := NewRunLengthGrouper(input, MaxRunLength)

	totalBytesWritten := int64(0)
	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, nil
			}
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		n, err := writeRun(output, run)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, err
		}
	}
}

func writeRun(output io.Writer, run ByteRun) (int, error) {
	return output.Write([]byte{byte(run.RunLength), run.Byte})
}

// DecompressRuns expands pairs read from input until EOF and writes the result
// to output. The returned int64 gives the number of bytes written (i.e. the
// decompressed size).
//
// The input must contain only pairs. Trailing sector padding is indistinguishable
// from pairs with a count of 0 and will fail with [ErrZeroLengthRun], so callers
// must strip it first.
func DecompressRuns(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	totalBytesWritten := int64(0)

	for pairIndex := 0; ; pairIndex++ {
		count, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, nil
			}
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		value, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf(
					"%w: missing byte value after count %d in pair %d",
					io.ErrUnexpectedEOF,
					count,
					pairIndex,
				)
			}
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		if count == 0 {
			return totalBytesWritten, fmt.Errorf(
				"%w: pair %d has value %02x", ErrZeroLengthRun, pairIndex, value)
		}

		n, err := output.Write(bytes.Repeat([]byte{value}, int(count)))
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}
