package linecsv

// Record is one logical row: an ordered, non-empty sequence of fields.
type Record []string

// Assembler collects decoded bytes into fields and fields into a Record.
// The zero value is ready to use.
type Assembler struct {
	pending []byte
	record  Record
}

// AppendByte appends c to the pending field.
func (a *Assembler) AppendByte(c byte) {
	a.pending = append(a.pending, c)
}

// AppendString appends s to the pending field.
func (a *Assembler) AppendString(s string) {
	a.pending = append(a.pending, s...)
}

// FinishField moves the pending bytes into a new field of the current record
// and clears the pending buffer.
func (a *Assembler) FinishField() {
	a.record = append(a.record, string(a.pending))
	a.pending = a.pending[:0]
}

// FinishRecord hands the current record to the caller and resets the assembler.
// A record with no finished field receives the pending field, so the result is
// never empty.
func (a *Assembler) FinishRecord() Record {
	if len(a.record) == 0 {
		a.FinishField()
	}
	rec := a.record
	a.record = nil
	a.pending = a.pending[:0]
	return rec
}

// Reset drops the record under construction and the pending field.
func (a *Assembler) Reset() {
	a.record = nil
	a.pending = a.pending[:0]
}

// Pending returns the length in bytes of the field being assembled.
func (a *Assembler) Pending() int { return len(a.pending) }

// Fields returns the number of fields finished in the current record.
func (a *Assembler) Fields() int { return len(a.record) }
