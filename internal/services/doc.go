// Package services defines shared utilities consumed by the conversion
// pipeline and the external tool clients beneath it.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with
//     the pipeline stage and failing operation, so every error surfaced to
//     the user names the file and the stage that broke.
//   - Classification of wrapped errors into the coarse kinds the history
//     store records (configuration, input, external tool, output).
//
// Use these helpers when wiring new pipeline stages so error handling stays
// uniform across the tool clients.
package services
