package engine

import (
	"sort"
	"strings"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// sanitizeText returns a copy of text with every violating span replaced
// by an equal byte-length run of the mask rune. Spans are processed from
// the end of the string backward so earlier replacements never invalidate
// the offsets of spans still to be masked.
func sanitizeText(text string, violations []models.Violation, mask rune) string {
	spans := make([]models.Span, 0, len(violations))
	for _, v := range violations {
		if v.Span.Start < 0 || v.Span.End > len(text) || v.Span.Start >= v.Span.End {
			continue
		}
		spans = append(spans, v.Span)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	out := text
	for _, s := range spans {
		out = out[:s.Start] + strings.Repeat(string(mask), s.End-s.Start) + out[s.End:]
	}
	return out
}
