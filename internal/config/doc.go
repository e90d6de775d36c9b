// Package config provides configuration management for linecsv.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Applying decoder limits to a linecsv.Decoder
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // A missing file yields the defaults; other errors are returned
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Concurrent file decoding
//   - Field size limit and unterminated quote policy
//   - Record printing and display width
//   - Normalized output line endings
package config
