// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Terminal interactivity detection
//   - Working tree state checks
//   - Browser launching
//   - Common data structure operations
package utils
