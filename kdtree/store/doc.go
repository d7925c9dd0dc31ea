// Package store provides random-access point storage with a fixed block
// granularity, backed either by heap memory or by an mmap'd file.
package store
