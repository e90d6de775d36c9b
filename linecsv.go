// # linecsv: line-oriented CSV decoding
//
// linecsv decodes comma-separated text one physical line at a time. Fields wrapped in
// double quotes may contain commas, doubled quotes and line breaks; a quoted field that
// is still open at the end of a line continues on the next one, and the decoder restores
// the break as "\r\n".
//
// # Features
//
//   - Explicit three-state enclosure machine (`EnclosureState`, `Transition`) driving an
//     `Assembler` that owns the pending field and record.
//   - `Decoder` with `DecodeRecord`, `ReadAll` and a lazy `All` iterator; `io.EOF` marks the end of input.
//   - Header-aware driver (`Parse`, `ParseFile`) counting data records.
//   - `Writer` emitting records the decoder reads back.
//   - Located errors via `ParseError`, `ErrUnterminatedQuote` and `ErrFieldTooLong`, plus
//     `ErrSourceUnavailable` and `ErrMalformedHeader` for the driver.
//
// The delimiter and quote characters are fixed to ',' and '"'.
package linecsv
