// Package itinerary recovers structured trip itineraries from loosely
// formatted language-model output.
package itinerary

import (
	"fmt"
	"strings"
)

// DefaultTitle is used when the model output carries no title.
const DefaultTitle = "Itinerary"

// DefaultTipLabel is used for tips without a label.
const DefaultTipLabel = "Tip"

// Itinerary is the normalized, strictly typed itinerary. Days is never empty.
type Itinerary struct {
	Title          string   `json:"title"`
	Days           []Day    `json:"days"`
	TransportNotes []string `json:"transportNotes"`
	Tips           []Tip    `json:"tips"`
	Sources        []string `json:"sources"`
}

// Day is a single day of an itinerary. Day numbers start at 1.
type Day struct {
	Day       int      `json:"day"`
	Theme     string   `json:"theme,omitempty"`
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Evening   []string `json:"evening"`
}

// Tip is a labelled group of practical advice.
type Tip struct {
	Label   string   `json:"label"`
	Details []string `json:"details"`
}

// Markdown renders the itinerary for terminal or chat display.
func (it *Itinerary) Markdown() string {
	if it == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", it.Title)
	for _, d := range it.Days {
		if d.Theme != "" {
			fmt.Fprintf(&b, "\n## Day %d: %s\n", d.Day, d.Theme)
		} else {
			fmt.Fprintf(&b, "\n## Day %d\n", d.Day)
		}
		writeSection(&b, "Morning", d.Morning)
		writeSection(&b, "Afternoon", d.Afternoon)
		writeSection(&b, "Evening", d.Evening)
	}
	if len(it.TransportNotes) > 0 {
		b.WriteString("\n## Getting around\n")
		writeItems(&b, it.TransportNotes)
	}
	if len(it.Tips) > 0 {
		b.WriteString("\n## Tips\n")
		for _, tip := range it.Tips {
			fmt.Fprintf(&b, "\n**%s**\n", tip.Label)
			writeItems(&b, tip.Details)
		}
	}
	if len(it.Sources) > 0 {
		fmt.Fprintf(&b, "\nSources: %s\n", strings.Join(it.Sources, ", "))
	}
	return b.String()
}

func writeSection(b *strings.Builder, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n", name)
	writeItems(b, items)
}

func writeItems(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
