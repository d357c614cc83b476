package itinerary

import (
	"regexp"
	"strings"

	"github.com/bytedance/sonic"

	"tripguide/internal/logger"
)

var (
	// fencedBlock matches the first ``` fenced block, optionally tagged json.
	fencedBlock    = regexp.MustCompile("(?s)```(?:json|JSON)?[ \\t]*\\r?\\n?(.*?)```")
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
	smartQuotes    = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
		"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
	)
)

// Extract locates a JSON object in raw model output and decodes it. The
// object may sit inside a fenced code block or be surrounded by prose. A
// failed strict parse gets one repair pass before giving up. Extract never
// fails loudly: ok is false when no object could be decoded.
func Extract(raw string) (value any, ok bool) {
	payload, found := candidate(raw)
	if !found {
		return nil, false
	}
	if v, err := decode(payload); err == nil {
		return v, true
	}
	repaired := repair(payload)
	v, err := decode(repaired)
	if err != nil {
		logger.Debug("model output is not JSON after repair: %v", err)
		return nil, false
	}
	logger.Debug("model output parsed after repair")
	return v, true
}

// ExtractStructured extracts and normalizes an itinerary from raw model
// output. A nil result means the caller should render raw as plain text.
func ExtractStructured(raw string, fallbackSources []string) *Itinerary {
	v, ok := Extract(raw)
	if !ok {
		return nil
	}
	return Normalize(v, fallbackSources)
}

func candidate(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func repair(payload string) string {
	fixed := smartQuotes.Replace(payload)
	return trailingCommas.ReplaceAllString(fixed, "$1")
}

func decode(payload string) (any, error) {
	var v any
	if err := sonic.ConfigStd.UnmarshalFromString(payload, &v); err != nil {
		return nil, err
	}
	return v, nil
}
