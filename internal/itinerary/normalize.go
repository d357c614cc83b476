package itinerary

import (
	"math"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cast"
)

// Normalize coerces a decoded JSON value into an Itinerary. It returns nil
// when v is not an object, has no days array, or no day entry survives
// coercion. Empty sources are replaced by fallbackSources so the itinerary
// cites exactly what was retrieved.
func Normalize(v any, fallbackSources []string) *Itinerary {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	rawDays, ok := obj["days"].([]any)
	if !ok {
		return nil
	}

	days := make([]Day, 0, len(rawDays))
	for i, rd := range rawDays {
		entry, ok := rd.(map[string]any)
		if !ok {
			continue
		}
		days = append(days, Day{
			Day:       dayNumber(entry["day"], i+1),
			Theme:     toText(entry["theme"]),
			Morning:   toList(entry["morning"]),
			Afternoon: toList(entry["afternoon"]),
			Evening:   toList(entry["evening"]),
		})
	}
	if len(days) == 0 {
		return nil
	}

	title := toText(obj["title"])
	if title == "" {
		title = DefaultTitle
	}

	transport := obj["transportNotes"]
	if transport == nil {
		transport = obj["transport_notes"]
	}

	sources := toList(obj["sources"])
	if len(sources) == 0 {
		sources = append([]string{}, fallbackSources...)
	}

	return &Itinerary{
		Title:          title,
		Days:           days,
		TransportNotes: toList(transport),
		Tips:           toTips(obj["tips"]),
		Sources:        sources,
	}
}

// dayNumber returns v as a day number, or pos when v is absent, not a finite
// number, or below 1. Fractional days are truncated.
func dayNumber(v any, pos int) int {
	if v == nil {
		return pos
	}
	f, err := cast.ToFloat64E(strings.TrimSpace(toText(v)))
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 {
		return pos
	}
	if n := int(f); n >= 1 {
		return n
	}
	return pos
}

func toTips(v any) []Tip {
	var entries []any
	switch t := v.(type) {
	case []any:
		entries = t
	default:
		if isFalsy(v) {
			return []Tip{}
		}
		entries = []any{v}
	}

	tips := make([]Tip, 0, len(entries))
	for _, e := range entries {
		switch t := e.(type) {
		case map[string]any:
			label := toText(t["label"])
			if label == "" {
				label = DefaultTipLabel
			}
			tips = append(tips, Tip{Label: label, Details: toList(t["details"])})
		default:
			if text := toText(t); text != "" {
				tips = append(tips, Tip{Label: DefaultTipLabel, Details: []string{text}})
			}
		}
	}
	return tips
}

// toList coerces v into non-empty strings: arrays are stringified element by
// element, falsy values become empty and anything else is wrapped.
func toList(v any) []string {
	if isFalsy(v) {
		return []string{}
	}
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := toText(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toText stringifies a decoded JSON value. Objects and arrays are rendered
// as compact JSON.
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case map[string]any, []any:
		s, err := sonic.ConfigStd.MarshalToString(t)
		if err != nil {
			return ""
		}
		return s
	default:
		s, err := cast.ToStringE(t)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return strings.TrimSpace(t) == ""
	case float64:
		return t == 0 || math.IsNaN(t)
	}
	return false
}
