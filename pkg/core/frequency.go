/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: frequency.go
Description: Byte frequency analysis for target payloads. Builds the histogram that
drives weighted sampling and exposes it in ascending byte order so every structure
derived from it is deterministic.
*/

package core

// FrequencyModel maps byte values to their occurrence count in a target payload
// Only bytes that occur at least once are reported by Symbols
type FrequencyModel struct {
	counts [256]uint64
	total  uint64
}

// AnalyzeFrequencies computes the byte histogram of the payload
// An empty payload yields an empty model
func AnalyzeFrequencies(payload []byte) FrequencyModel {
	var model FrequencyModel
	for _, b := range payload {
		model.counts[b]++
	}
	model.total = uint64(len(payload))
	return model
}

// Count returns how many times b occurs in the analyzed payload
func (m FrequencyModel) Count(b byte) uint64 {
	return m.counts[b]
}

// Total returns the sum of all counts, which equals the payload length
func (m FrequencyModel) Total() uint64 {
	return m.total
}

// Distinct returns the number of byte values with a non-zero count
func (m FrequencyModel) Distinct() int {
	n := 0
	for _, c := range m.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// Symbols returns the byte values present in the payload in ascending order
func (m FrequencyModel) Symbols() []byte {
	symbols := make([]byte, 0, m.Distinct())
	for b, c := range m.counts {
		if c > 0 {
			symbols = append(symbols, byte(b))
		}
	}
	return symbols
}

// IsEmpty reports whether the model was built from an empty payload
func (m FrequencyModel) IsEmpty() bool {
	return m.total == 0
}

// Clone returns an independent copy of the model for a single worker
func (m FrequencyModel) Clone() FrequencyModel {
	return m
}

// Proportion returns count(b) / total, or 0 for an empty model
func (m FrequencyModel) Proportion(b byte) float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.counts[b]) / float64(m.total)
}
