// Package batch reads the input files of a dictionary build: a raw
// frequency-ranked word list, or a previously processed dictionary whose
// translation columns are merged for reprocessing.
package batch
