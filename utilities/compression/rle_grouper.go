package compression

import (
	"bufio"
	"errors"
	"io"
)

// ByteRun is a single run of one byte value.
type ByteRun struct {
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated). A valid run always has this be 1 or
	// greater.
	RunLength int
}

// InvalidRLERun is returned by [RunLengthGrouper.GetNextRun] along with any
// error, including io.EOF.
var InvalidRLERun = ByteRun{}

// RunLengthGrouper splits a byte stream into runs of identical bytes.
type RunLengthGrouper struct {
	rd io.ByteScanner
	// maxRunLength caps the length of a single run. Zero means no limit.
	maxRunLength int
}

// NewRLEGrouper returns a grouper reading from `rd`. Readers that already
// support UnreadByte are used as is; anything else gets buffered.
func NewRLEGrouper(rd io.Reader) *RunLengthGrouper {
	scanner, ok := rd.(io.ByteScanner)
	if !ok {
		scanner = bufio.NewReader(rd)
	}
	return &RunLengthGrouper{rd: scanner}
}

// NewBoundedRLEGrouper is like [NewRLEGrouper] but splits runs longer than
// `maxRunLength` into several.
func NewBoundedRLEGrouper(rd io.Reader, maxRunLength int) *RunLengthGrouper {
	grouper := NewRLEGrouper(rd)
	grouper.maxRunLength = maxRunLength
	return grouper
}

// GetNextRun returns the next run in the stream. At the end of the stream it
// returns [InvalidRLERun] and io.EOF.
func (grouper *RunLengthGrouper) GetNextRun() (ByteRun, error) {
	firstByte, err := grouper.rd.ReadByte()
	if err != nil {
		return InvalidRLERun, err
	}

	run := ByteRun{Byte: firstByte, RunLength: 1}
	for grouper.maxRunLength <= 0 || run.RunLength < grouper.maxRunLength {
		currentByte, err := grouper.rd.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return InvalidRLERun, err
		}

		if currentByte != firstByte {
			// Hit a different byte, back up so it starts the next run.
			if err = grouper.rd.UnreadByte(); err != nil {
				return InvalidRLERun, err
			}
			break
		}
		run.RunLength++
	}
	return run, nil
}
