package packer

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dargueta/bootpack"
	"github.com/hashicorp/go-multierror"
)

// PackFile packs the file at inputPath and writes the image to outputPath,
// creating or truncating it.
//
// Every file opened is closed before returning, whether or not an error
// occurred. If packing fails after the output file was created, it's removed.
func PackFile(inputPath, outputPath string, settings bootpack.Settings) (summary Summary, err error) {
	if err = settings.Validate(); err != nil {
		return Summary{}, err
	}

	inFile, err := os.Open(inputPath)
	if err != nil {
		return Summary{}, bootpack.ErrInputOpen.Wrap(err)
	}
	// The input is read-only, so a failure to close it can't lose anything.
	defer inFile.Close()

	// Creating the output truncates it, which would destroy the input if they
	// were the same file.
	if err = checkDistinctFiles(inFile, outputPath); err != nil {
		return Summary{}, err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return Summary{}, bootpack.ErrOutputOpen.Wrap(err)
	}
	defer func() {
		closeOutput(outFile, &err)
		if err != nil {
			os.Remove(outputPath)
		}
	}()

	data, err := readInput(inFile, settings.MaxInputSize)
	if err != nil {
		return Summary{}, err
	}

	writer := bufio.NewWriter(outFile)
	summary, err = Pack(data, writer, settings)
	if err != nil {
		return Summary{}, err
	}

	if err = writer.Flush(); err != nil {
		return Summary{}, bootpack.ErrWriteFailed.Wrap(err)
	}
	return summary, nil
}

func checkDistinctFiles(inFile *os.File, outputPath string) error {
	inInfo, err := inFile.Stat()
	if err != nil {
		return bootpack.ErrInputOpen.Wrap(err)
	}

	outInfo, err := os.Stat(outputPath)
	if err != nil {
		// Most likely doesn't exist yet. Any other problem surfaces when the
		// output is created.
		return nil
	}
	if os.SameFile(inInfo, outInfo) {
		return bootpack.ErrOutputOpen.WithMessage(
			fmt.Sprintf("%q is the same file as the input", outputPath))
	}
	return nil
}

// inputFile is the part of [os.File] that readInput needs.
type inputFile interface {
	io.Reader
	Name() string
	Stat() (os.FileInfo, error)
}

// readInput loads the entire contents of inFile into a new buffer.
func readInput(inFile inputFile, maxSize int64) ([]byte, error) {
	info, err := inFile.Stat()
	if err != nil {
		return nil, bootpack.ErrShortRead.Wrap(err)
	}

	fileSize := info.Size()
	if fileSize == 0 {
		return nil, bootpack.ErrEmptyInput.WithMessage(inFile.Name())
	}

	// Running out of memory in Go is fatal and can't be recovered from, so the
	// only way to fail gracefully is to refuse anything over the limit.
	if fileSize > maxSize || fileSize > math.MaxInt {
		return nil, bootpack.ErrAllocation.WithMessage(
			fmt.Sprintf(
				"input is %d bytes, the limit is %d",
				fileSize,
				maxSize))
	}
	data := make([]byte, fileSize)

	bytesRead, err := io.ReadFull(inFile, data)
	if err != nil {
		return nil, bootpack.ErrShortRead.Wrap(err).WithMessage(
			fmt.Sprintf("read %d of %d bytes", bytesRead, fileSize))
	}
	return data, nil
}

func closeOutput(outFile *os.File, err *error) {
	closeErr := outFile.Close()
	if closeErr == nil {
		return
	}

	if *err == nil {
		*err = bootpack.ErrWriteFailed.Wrap(closeErr)
	} else {
		*err = multierror.Append(*err, closeErr)
	}
}
