/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: entropy.go
Description: Shannon entropy of a byte histogram.
*/

package analysis

import "math"

// entropy returns the Shannon entropy in bits of the bin proportions
func entropy(bins []HistogramBin) float64 {
	var bits float64
	for _, bin := range bins {
		if bin.Proportion > 0 {
			bits -= bin.Proportion * math.Log2(bin.Proportion)
		}
	}
	return bits
}
