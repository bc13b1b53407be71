package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// maxRLE8Run is the longest run one RLE8 group can hold: the byte twice plus a
// repeat count of up to 255.
const maxRLE8Run = 257

// CompressRLE8 reads bytes from the input and writes compressed data to the
// output until the input is exhausted. The return value is the number of bytes
// written, only valid if no error occurred.
func CompressRLE8(input io.Reader, output io.Writer) (int64, error) {
	grouper := NewBoundedRLEGrouper(input, maxRLE8Run)

	totalBytesWritten := int64(0)
	for {
		run, err := grouper.GetNextRun()
		if errors.Is(err, io.EOF) {
			return totalBytesWritten, nil
		} else if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		var group []byte
		if run.RunLength == 1 {
			group = []byte{run.Byte}
		} else {
			group = []byte{run.Byte, run.Byte, byte(run.RunLength - 2)}
		}

		n, err := output.Write(group)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}

// DecompressRLE8 reverses [CompressRLE8]. The return value is the number of
// bytes written to the output.
func DecompressRLE8(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	lastByteRead := -1
	totalBytesWritten := int64(0)

	for {
		currentByte, err := source.ReadByte()
		if errors.Is(err, io.EOF) {
			return totalBytesWritten, nil
		} else if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		var currentOutput []byte
		if int(currentByte) == lastByteRead {
			// Two identical bytes in a row. The next byte is a repeat count.
			repeatCountByte, err := source.ReadByte()
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, fmt.Errorf(
					"%w: missing repeat count after two %02x bytes",
					io.ErrUnexpectedEOF,
					currentByte,
				)
			} else if err != nil {
				return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
			}

			// One copy of the byte went out on the previous iteration already.
			currentOutput = bytes.Repeat([]byte{currentByte}, int(repeatCountByte)+1)

			// The group is finished. Without this, runs of 258+ bytes would pick
			// up extra bytes.
			lastByteRead = -1
		} else {
			lastByteRead = int(currentByte)
			currentOutput = []byte{currentByte}
		}

		n, err := output.Write(currentOutput)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}
