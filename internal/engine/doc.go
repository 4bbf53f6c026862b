// Package engine resolves targets and runs the print-statement scanner over
// them. It owns discovery (which files to look at) and the batch processor
// (read, scan, write back). This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
