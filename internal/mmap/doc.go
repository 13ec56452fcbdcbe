// Package mmap provides read-only memory mapping of corpus files.
//
// On unix platforms files are mapped with mmap(2) and access hints are passed
// with madvise(2). Other platforms fall back to reading the file into memory,
// which keeps the same API.
package mmap
