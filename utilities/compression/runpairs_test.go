package compression_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	c "github.com/dargueta/bootpack/utilities/compression"
	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RunPairTestCase struct {
	Input          []byte
	ExpectedOutput []byte
	Name           string
}

var runPairTestCases = []RunPairTestCase{
	{[]byte{}, []byte{}, "empty"},
	{[]byte{0xC3, 0xC3, 0xC3}, []byte{3, 0xC3}, "single short run"},
	{[]byte{0x68, 0x6B, 0x6A}, []byte{1, 0x68, 1, 0x6B, 1, 0x6A}, "no runs"},
	{[]byte{7}, []byte{1, 7}, "one byte"},
	{
		[]byte{9, 5, 5, 5, 5, 5, 3, 3, 7},
		[]byte{1, 9, 5, 5, 2, 3, 1, 7},
		"adjacent runs",
	},
	{
		bytes.Repeat([]byte{0x69}, 255),
		[]byte{255, 0x69},
		"255",
	},
	{
		bytes.Repeat([]byte{0x69}, 256),
		[]byte{255, 0x69, 1, 0x69},
		"256",
	},
	{
		bytes.Repeat([]byte{8}, 1024),
		[]byte{255, 8, 255, 8, 255, 8, 255, 8, 4, 8},
		"single long run",
	},
	{
		append(bytes.Repeat([]byte{1}, 300), 2, 2),
		[]byte{255, 1, 45, 1, 2, 2},
		"long run then short run",
	},
}

func TestCompressRuns__Basic(t *testing.T) {
	for _, test := range runPairTestCases {
		t.Run(
			test.Name,
			func(t *testing.T) {
				runCompressionTestCase(t, test)
			},
		)
	}
}

func TestCompressRunsFrom__MatchesBuffered(t *testing.T) {
	for _, test := range runPairTestCases {
		t.Run(
			test.Name,
			func(t *testing.T) {
				output := bytes.Buffer{}
				n, err := c.CompressRunsFrom(bytes.NewReader(test.Input), &output)
				require.NoError(t, err)
				assert.EqualValues(t, len(test.ExpectedOutput), n)
				// bytes.Buffer returns nil if nothing was written.
				assert.Truef(
					t,
					bytes.Equal(test.ExpectedOutput, output.Bytes()),
					"output data is wrong: expected %v, got %v",
					test.ExpectedOutput,
					output.Bytes(),
				)
			},
		)
	}
}

func TestSplitRuns__Bounds(t *testing.T) {
	data := make([]byte, 20000)
	_, err := rand.Read(data)
	require.NoError(t, err)
	// Make some long runs so the splitting gets exercised.
	copy(data[100:], bytes.Repeat([]byte{0}, 1000))
	copy(data[5000:], bytes.Repeat([]byte{0xEE}, 510))

	runs := c.SplitRuns(data)
	covered := 0
	for i, run := range runs {
		require.GreaterOrEqualf(t, run.RunLength, 1, "run %d too short", i)
		require.LessOrEqualf(t, run.RunLength, c.MaxRunLength, "run %d too long", i)

		// Two consecutive runs with the same byte are only allowed if the first
		// one was split off at the cap.
		if i > 0 && runs[i-1].Byte == run.Byte {
			assert.Equalf(
				t,
				c.MaxRunLength,
				runs[i-1].RunLength,
				"runs %d and %d have the same byte but %d isn't full",
				i-1,
				i,
				i-1,
			)
		}
		covered += run.RunLength
	}
	assert.Equal(t, len(data), covered, "runs don't cover the input exactly")

	encoded := c.CompressRunsToBytes(data)
	assert.Equal(t, 2*len(runs), len(encoded), "encoded size isn't 2 bytes per run")
}

func TestSplitRuns__BestCase(t *testing.T) {
	for _, length := range []int{1, 254, 255, 256, 510, 511, 9174} {
		runs := c.SplitRuns(bytes.Repeat([]byte{0x42}, length))
		assert.Equalf(
			t, (length+c.MaxRunLength-1)/c.MaxRunLength, len(runs), "length %d", length)
	}
}

func TestRunPairsRoundTrip__CompletelyRandom(t *testing.T) {
	originalData := make([]byte, 1852)
	rand.Read(originalData)
	runRoundTripTestCase(t, originalData)
}

func TestRunPairsRoundTrip__EntirelyNulls(t *testing.T) {
	originalData := make([]byte, 571)
	runRoundTripTestCase(t, originalData)
}

func TestRunPairsRoundTrip__EntirelyNonNullRun(t *testing.T) {
	runRoundTripTestCase(t, bytes.Repeat([]byte{182}, 934))
}

func TestDecompressRuns__MissingValue(t *testing.T) {
	data := []byte{3, 1, 4}
	decompressed := make([]byte, 16)
	writer := bytewriter.New(decompressed)

	_, err := c.DecompressRuns(bytes.NewReader(data), writer)
	if err == nil {
		t.Fatal("read with missing byte value should've failed but didn't")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf(
			"error type is wrong, doesn't wrap io.ErrUnexpectedEOF: %s",
			err.Error(),
		)
	}
}

func TestDecompressRuns__ZeroCount(t *testing.T) {
	// A valid pair followed by the start of sector padding.
	data := []byte{2, 0xAB, 0, 0, 0, 0}
	output := bytes.Buffer{}

	n, err := c.DecompressRuns(bytes.NewReader(data), &output)
	assert.ErrorIs(t, err, c.ErrZeroLengthRun)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, []byte{0xAB, 0xAB}, output.Bytes())
}

// limitedWriter accepts up to `remaining` bytes and then fails.
type limitedWriter struct {
	remaining int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		n := w.remaining
		w.remaining = 0
		return n, io.ErrShortWrite
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestCompressRuns__WriteFailure(t *testing.T) {
	// Room for exactly one pair.
	writer := &limitedWriter{remaining: 2}

	n, err := c.CompressRuns([]byte{1, 2, 3}, writer)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.EqualValues(t, 2, n, "byte count before the failure is wrong")
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

func runCompressionTestCase(t *testing.T, test RunPairTestCase) {
	outputBuffer := make([]byte, len(test.ExpectedOutput)*2)
	outputWriter := bytewriter.New(outputBuffer)

	n, err := c.CompressRuns(test.Input, outputWriter)

	if err != nil {
		t.Errorf("unexpected error: %s", err.Error())
		return
	}

	if n != int64(len(test.ExpectedOutput)) {
		t.Errorf(
			"bytes written should be %d, got %d",
			len(test.ExpectedOutput),
			n,
		)
	}

	if !bytes.Equal(test.ExpectedOutput, outputBuffer[:n]) {
		t.Errorf(
			"output data is wrong: expected %v, got %v",
			test.ExpectedOutput,
			outputBuffer[:n],
		)
	}
}

func runRoundTripTestCase(t *testing.T, originalData []byte) {
	// Data with no repetition doubles in size, so the compressed buffer must be
	// twice the size of the input.
	compressedBuffer := make([]byte, len(originalData)*2)
	compressedWriter := bytewriter.New(compressedBuffer)

	n, err := c.CompressRuns(originalData, compressedWriter)
	if err != nil {
		t.Fatalf("unexpected error while compressing: %s", err.Error())
	} else {
		t.Logf("compressed %d to %d", len(originalData), n)
	}

	outputBuffer := make([]byte, len(originalData))
	outputWriter := bytewriter.New(outputBuffer)
	compressedReader := bytes.NewReader(compressedBuffer[:n])

	n, err = c.DecompressRuns(compressedReader, outputWriter)
	if err != nil {
		t.Fatalf("unexpected error while decompressing: %s", err.Error())
	}
	if n != int64(len(originalData)) {
		t.Errorf(
			"returned decompressed size is wrong; expected %d, got %d",
			len(originalData),
			n,
		)
	}
	if !bytes.Equal(originalData, outputBuffer) {
		t.Error("decompressed data doesn't match original data")
	}
}
