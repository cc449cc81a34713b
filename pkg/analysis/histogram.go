/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: histogram.go
Description: Byte histogram analysis for target payloads. Produces the sorted
occurrence table of every byte value present in a payload and renders it as a text
bar chart with axis ticks every 16 byte values.
*/

package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/bytehunt/pkg/core"
)

// HistogramBin is the occurrence count of a single byte value
type HistogramBin struct {
	Value      byte    `json:"value"`
	Count      uint64  `json:"count"`
	Proportion float64 `json:"proportion"`
}

// Histogram summarizes the byte distribution of a payload
type Histogram struct {
	Source   string         `json:"source"`
	Total    uint64         `json:"total"`
	Distinct int            `json:"distinct"`
	Entropy  float64        `json:"entropy_bits"` // Shannon entropy per byte
	Bins     []HistogramBin `json:"bins"`         // Ascending byte order
}

// NewHistogram builds the histogram of a frequency model
func NewHistogram(source string, model core.FrequencyModel) *Histogram {
	h := &Histogram{
		Source:   source,
		Total:    model.Total(),
		Distinct: model.Distinct(),
	}
	for _, b := range model.Symbols() {
		h.Bins = append(h.Bins, HistogramBin{
			Value:      b,
			Count:      model.Count(b),
			Proportion: model.Proportion(b),
		})
	}
	h.Entropy = entropy(h.Bins)
	return h
}

// Max returns the largest bin count
func (h *Histogram) Max() uint64 {
	var max uint64
	for _, bin := range h.Bins {
		if bin.Count > max {
			max = bin.Count
		}
	}
	return max
}

// Render writes a text bar chart of the histogram to w
// Every present byte gets one row; width is the length of the longest bar
func (h *Histogram) Render(w io.Writer, width int) error {
	if width < 1 {
		width = 1
	}

	if _, err := fmt.Fprintf(w, "Occurrences of 8-bit Combinations in %s\n", h.Source); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Bytes: %d  Distinct: %d  Entropy: %.4f bits/byte\n", h.Total, h.Distinct, h.Entropy); err != nil {
		return err
	}
	if len(h.Bins) == 0 {
		_, err := fmt.Fprintln(w, "(empty payload)")
		return err
	}

	max := h.Max()
	for _, bin := range h.Bins {
		bar := int(bin.Count * uint64(width) / max)
		if bar == 0 {
			bar = 1
		}
		tick := "   "
		if bin.Value%16 == 0 {
			tick = fmt.Sprintf("%3d", bin.Value)
		}
		if _, err := fmt.Fprintf(w, "%s 0x%02x %-*s %d\n", tick, bin.Value, width, strings.Repeat("#", bar), bin.Count); err != nil {
			return err
		}
	}
	return nil
}
