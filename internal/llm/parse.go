package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

var (
	dataTagRe      = regexp.MustCompile(`(?s)\[DATA\](.*)$`)
	formatMarkerRe = regexp.MustCompile(`\*?\*?\s*[💬🏠💡📝]?\s*(自然语言总结|推荐房源|专业建议|备注)\s*[：:]\s*\*?\*?`)
	boldRe         = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe       = regexp.MustCompile(`\*([^*\n]+)\*`)
	headerRe       = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	codeRe         = regexp.MustCompile("`([^`]+)`")
	listMarkerRe   = regexp.MustCompile(`(?m)^[-*+]\s+`)
	emojiLineRe    = regexp.MustCompile(`(?m)^\s*[💬🏠💡📍🔍✅❌📝\s：:*]+\s*$`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
)

// dataTag is the JSON payload of the trailing [DATA] tag.
type dataTag struct {
	Filters *models.PropertyFilters `json:"filters"`
}

// ParseResponse splits a generated reply into the user-facing text and the
// trailing [DATA] filter object. A malformed or absent tag yields nil filters;
// the reply text is always preserved.
func ParseResponse(raw string) (reply string, filters *models.PropertyFilters) {
	reply = raw
	if m := dataTagRe.FindStringSubmatchIndex(raw); m != nil {
		payload := strings.TrimSpace(raw[m[2]:m[3]])
		var tag dataTag
		if err := json.Unmarshal([]byte(payload), &tag); err == nil {
			filters = tag.Filters
		} else {
			// Some models emit the filter object without the wrapper key.
			var direct models.PropertyFilters
			if err := json.Unmarshal([]byte(payload), &direct); err == nil {
				filters = &direct
			}
		}
		reply = strings.TrimSpace(raw[:m[0]])
	}
	reply = CleanResponse(reply)
	if reply == "" {
		reply = strings.TrimSpace(dataTagRe.ReplaceAllString(raw, ""))
	}
	return reply, filters
}

// CleanResponse strips markdown formatting and section markers from a
// generated reply while preserving the actual content.
func CleanResponse(s string) string {
	s = formatMarkerRe.ReplaceAllString(s, "")
	// Run twice to catch nested bold markers.
	s = boldRe.ReplaceAllString(s, "$1")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = headerRe.ReplaceAllString(s, "")
	s = codeRe.ReplaceAllString(s, "$1")
	s = listMarkerRe.ReplaceAllString(s, "")
	s = emojiLineRe.ReplaceAllString(s, "")
	s = multiNewlineRe.ReplaceAllString(s, "\n\n")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
