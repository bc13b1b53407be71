package runlength

// MaxRunsPerByte is the most runs a single byte can be split into. 0xFE is the
// worst case: seven runs of 1, one trailing zero, and the marker.
const MaxRunsPerByte = 9

// Entry lists the runs a single byte value splits into, most significant bit
// first.
type Entry struct {
	Runs  [MaxRunsPerByte]uint8
	Count uint8
}

// Lengths returns the valid runs of the entry.
func (e Entry) Lengths() []uint8 {
	return e.Runs[:e.Count]
}

// Unterminated returns true if the byte ends in one or more zero bits, i.e.
// the last run is the 0 marker and has to be spliced onto the next byte.
func (e Entry) Unterminated() bool {
	return e.Count > 0 && e.Runs[e.Count-1] == 0
}

// Table maps every byte value to its runs.
type Table [256]Entry

// defaultTable is shared by all callers and never modified after init.
var defaultTable = BuildTable()

// BuildTable computes the run table from scratch.
func BuildTable() *Table {
	var table Table
	for v := 0; v < 256; v++ {
		table[v] = decomposeByte(byte(v))
	}
	return &table
}

// Lookup returns the runs for a single byte value.
func Lookup(v byte) Entry {
	return defaultTable[v]
}

func decomposeByte(v byte) Entry {
	var entry Entry
	run := uint8(0)

	for bit := 7; bit >= 0; bit-- {
		run++
		if v&(1<<bit) != 0 {
			entry.Runs[entry.Count] = run
			entry.Count++
			run = 0
		}
	}

	if run > 0 {
		// Trailing zeros: record how many, then the splice marker.
		entry.Runs[entry.Count] = run
		entry.Runs[entry.Count+1] = 0
		entry.Count += 2
	}
	return entry
}
