// Package batch decodes several delimited files concurrently.
//
// # Manager
//
// The Manager runs one linecsv.Decoder per file:
//
//  1. Open the file (failures wrap linecsv.ErrSourceUnavailable)
//  2. Decode the header record
//  3. Decode and count the data records, handing each to the record callback
//
// # Basic Usage
//
//	manager := batch.NewManager(settings, func(event batch.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	results, err := manager.Run(ctx, []string{"a.csv", "b.csv"})
//
// A failing file does not stop the others; its error is stored in its Result.
// Run itself only fails when the context is cancelled or a record callback fails.
//
// # Concurrency
//
// settings.MaxConcurrentFiles bounds how many files are decoded in parallel.
// Decoders share no state, so no locking is needed around decoding; the
// progress and record callbacks may be called from several goroutines.
package batch
