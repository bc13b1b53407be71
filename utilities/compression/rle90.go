package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/bvcodec"
)

// rle90Marker introduces a repeat count in RLE90 data. `90 00` is a literal
// 0x90; `90 N` repeats the previous byte N more times.
const rle90Marker = 0x90

// CompressRLE90 encodes the input with the BinHex RLE90 scheme. The return
// value is the number of bytes written to the output.
func CompressRLE90(input io.Reader, output io.Writer) (int64, error) {
	grouper := NewRLEGrouper(input)
	buffered := bufio.NewWriter(output)
	totalBytesWritten := int64(0)

	for {
		run, err := grouper.GetNextRun()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		n, err := buffered.Write(encodeRLE90Run(run))
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}

	if err := buffered.Flush(); err != nil {
		return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
	}
	return totalBytesWritten, nil
}

func encodeRLE90Run(run ByteRun) []byte {
	var encoded []byte
	if run.Byte == rle90Marker {
		encoded = []byte{rle90Marker, 0}
	} else {
		encoded = []byte{run.Byte}
	}

	for remaining := run.RunLength - 1; remaining > 0; {
		count := remaining
		if count > 255 {
			count = 255
		}

		if count <= 2 && run.Byte != rle90Marker {
			// Writing the bytes out is no longer than a repeat group.
			encoded = append(encoded, bytes.Repeat([]byte{run.Byte}, count)...)
		} else {
			encoded = append(encoded, rle90Marker, byte(count))
		}
		remaining -= count
	}
	return encoded
}

// DecompressRLE90 reverses [CompressRLE90]. A repeat group at the start of the
// stream, where there's no byte to repeat, is malformed.
func DecompressRLE90(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	buffered := bufio.NewWriter(output)
	lastByte := -1
	totalBytesWritten := int64(0)

	for {
		currentByte, err := source.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		var currentOutput []byte
		if currentByte != rle90Marker {
			lastByte = int(currentByte)
			currentOutput = []byte{currentByte}
		} else {
			repeatCount, err := source.ReadByte()
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, fmt.Errorf(
					"%w: missing repeat count after marker", io.ErrUnexpectedEOF)
			} else if err != nil {
				return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
			}

			switch {
			case repeatCount == 0:
				lastByte = rle90Marker
				currentOutput = []byte{rle90Marker}
			case lastByte < 0:
				return totalBytesWritten, bvcodec.ErrMalformedStream.WithMessage(
					"RLE90 repeat group has no byte to repeat")
			default:
				currentOutput = bytes.Repeat([]byte{byte(lastByte)}, int(repeatCount))
			}
		}

		n, err := buffered.Write(currentOutput)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}

	if err := buffered.Flush(); err != nil {
		return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
	}
	return totalBytesWritten, nil
}
