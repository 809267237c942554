package eventscout

import (
	"fmt"
	"strings"
)

// Prompt limits.
const (
	// MaxTagHints is the number of known tags offered to the model.
	MaxTagHints = 20

	// MaxIDHints is the number of known event ids offered to the model.
	MaxIDHints = 10

	// MaxContentChars bounds the content embedded in the user prompt.
	MaxContentChars = 8000
)

const systemPromptTemplate = `You are an assistant that extracts information about open source conferences, competitions and community activities. Extract the key facts from the given text and answer with a single JSON object in the format below.

IMPORTANT: return a complete JSON object containing every required field.

Required fields (each must have a value):
{
  "title": "activity name (required)",
  "description": "one-sentence description, at most 100 characters (required)",
  "category": "one of: conference, competition, activity (required)",
  "tags": ["at least one tag (required, array)"],
  "events": [{
    "year": 2025,
    "id": "unique id such as kaiyuanzhixia-2025 (required)",
    "link": "official URL of the activity (required)",
    "timeline": [{
      "deadline": "2025-06-01T18:00:00 (required, ISO 8601)",
      "comment": "what the deadline is, e.g. registration closes (required)"
    }],
    "timezone": "Asia/Shanghai (required, IANA time zone)",
    "date": "2025 年 6 月 1 日 - 9 月 30 日 (required, human readable)",
    "place": "online or the venue (required)"
  }]
}

Rules:
1. title, description, category, tags and events are all required.
2. category must be one of: conference, competition, activity.
3. tags must be a non-empty array with at least one tag.
4. events must be a non-empty array with at least one event.
5. Every event must contain: year, id, link, timeline, timezone, date, place.
6. timeline must be a non-empty array with at least one entry.
7. Every timeline entry must contain deadline (ISO 8601) and comment.
8. Name ids as <slug>-<year>, e.g. kaiyuanzhixia-2025.
9. timezone must be an IANA name, e.g. Asia/Shanghai.
10. date is written the way the source writes dates, e.g. "2025 年 6 月 1 日" or "2025 年 6 月 1 日 - 9 月 30 日".
11. When a required field cannot be found, infer a reasonable value from the context.

Timeline requirements:
- The timeline must list every important point in time of the activity.
- It must contain the activity start (comment: "activity start") and the activity end (comment: "activity end").
- It may contain other milestones such as registration or submission deadlines.
- Times must be ISO 8601 YYYY-MM-DDTHH:mm:ss and always include hours, minutes and seconds.
- When only a date is known, use T00:00:00 for the start and T23:59:59 for the end.
- Examples:
  - 2025-12-26T14:00:00 (activity start)
  - 2025-12-26T16:30:00 (activity end)
  - 2025-12-25T18:00:00 (registration closes)

Suggested tags (prefer these): %s
Existing ids (do not reuse): %s

Example output:
{
  "title": "Open Source Promotion Plan 2025",
  "description": "Summer program inviting students worldwide to contribute to open source projects",
  "category": "competition",
  "tags": ["OSPP", "students", "summer program"],
  "events": [{
    "year": 2025,
    "id": "kaiyuanzhixia-2025",
    "link": "https://summer-ospp.ac.cn",
    "timeline": [
      {"deadline": "2025-06-04T18:00:00", "comment": "project applications close"},
      {"deadline": "2025-09-01T09:00:00", "comment": "activity start"},
      {"deadline": "2025-09-30T23:59:59", "comment": "activity end"}
    ],
    "timezone": "Asia/Shanghai",
    "date": "2025 年 4 月 30 日 - 9 月 30 日",
    "place": "online"
  }]
}`

// BuildPrompt builds the completion request for extracting a record from
// content. sourceURL may be empty when the content came from a file.
// Known tags and ids are offered as hints, truncated to MaxTagHints and
// MaxIDHints. Content beyond MaxContentChars is dropped.
func BuildPrompt(content, sourceURL string, knownTags, knownIDs []string) *CompletionRequest {
	return &CompletionRequest{
		System: BuildSystemPrompt(knownTags, knownIDs),
		User:   BuildUserPrompt(content, sourceURL),
	}
}

// BuildSystemPrompt returns the fixed instruction template with tag and id hints.
func BuildSystemPrompt(knownTags, knownIDs []string) string {
	tags := "none"
	if len(knownTags) > 0 {
		tags = strings.Join(knownTags[:min(len(knownTags), MaxTagHints)], ", ")
	}

	ids := "none"
	if len(knownIDs) > 0 {
		ids = strings.Join(knownIDs[:min(len(knownIDs), MaxIDHints)], ", ")
		if len(knownIDs) > MaxIDHints {
			ids += ", and more"
		}
	}

	return fmt.Sprintf(systemPromptTemplate, tags, ids)
}

// BuildUserPrompt embeds the source URL, when present, and the truncated content.
func BuildUserPrompt(content, sourceURL string) string {
	content = Truncate(content, MaxContentChars)
	if sourceURL != "" {
		return fmt.Sprintf("Extract the activity information from the following web page.\n\nSource URL: %s\n\nContent:\n%s", sourceURL, content)
	}
	return fmt.Sprintf("Extract the activity information from the following content.\n\n%s", content)
}

// Truncate returns the first n characters of s. Multi-byte characters are
// never split.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
