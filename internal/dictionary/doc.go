// Package dictionary defines the vocabulary entry produced by the pipeline,
// the frequency-rank prevalence score, the alphabetical ordering of the
// final dictionary and the result.csv encoding.
package dictionary
