package compression

import (
	"bufio"
	"io"
)

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates either EOF was encountered, or an error occurred.
	RunLength int
}

// InvalidRLERun is returned by [RunLengthGrouper.GetNextRun] when there's no
// run to return.
var InvalidRLERun = ByteRun{Byte: 0, RunLength: 0}

// RunLengthGrouper splits a byte stream into runs of identical bytes.
type RunLengthGrouper struct {
	rd           *bufio.Reader
	maxRunLength int
}

// NewRunLengthGrouper creates a grouper that never returns a run longer than
// maxRunLength bytes. Longer runs are returned in pieces, the last of which may
// be shorter. If maxRunLength is less than 1, runs are unbounded.
func NewRunLengthGrouper(rd io.Reader, maxRunLength int) RunLengthGrouper {
	return RunLengthGrouper{rd: bufio.NewReader(rd), maxRunLength: maxRunLength}
}

// GetNextRun returns a [ByteRun] for the next byte or run of byte values in the
// stream. At the end of the stream it returns [InvalidRLERun] and [io.EOF].
func (grouper RunLengthGrouper) GetNextRun() (ByteRun, error) {
	firstByte, err := grouper.rd.ReadByte()
	// Bail if any error occurred, including EOF.
	if err != nil {
		return InvalidRLERun, err
	}

	runLength := 1
	for grouper.maxRunLength < 1 || runLength < grouper.maxRunLength {
		currentByte, err := grouper.rd.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return InvalidRLERun, err
		}
		if currentByte != firstByte {
			// Hit a different byte, back up and return.
			if err := grouper.rd.UnreadByte(); err != nil {
				return InvalidRLERun, err
			}
			break
		}
		runLength++
	}
	return ByteRun{Byte: firstByte, RunLength: runLength}, nil
}
