// Package util provides shared helpers used across filemock packages.
//
//   - TruncateBody: cap mock and upstream bodies for safe logging
package util
