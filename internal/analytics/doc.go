// Package analytics turns marketplace transactional records into
// time-windowed KPIs for buyers and sellers.
//
// Every figure is scoped to one actor id and one resolved Window. Reads go
// through the Store and Lookup interfaces and are issued concurrently; the
// package never writes. Missing records count as zero, unresolved dimension
// lookups fall back to named labels, and malformed shipping addresses map to
// the "Unknown" region. Only store failures surface as errors, always wrapping
// ErrRetrieval.
package analytics
