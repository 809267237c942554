package eventscout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// MaxDescriptionChars is the conventional description length limit.
// Longer descriptions produce a warning, not an error.
const MaxDescriptionChars = 100

// Validation is the verdict of Validate.
type Validation struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Err returns nil when the record is valid. Otherwise it returns an EINVALID
// error whose message lists every violated rule, joined by "; ".
func (v *Validation) Err() error {
	if v.Valid {
		return nil
	}
	return Errorf(EINVALID, "%s", strings.Join(v.Errors, "; "))
}

// Validate checks a parsed model response against the record schema and the
// known event ids. Every rule is checked; errors accumulate instead of
// stopping at the first failure. Errors about events name the event index.
//
// Timeline entries are only required to be present (non-empty timeline).
// Entries missing a deadline or comment, and tags that are not strings,
// produce warnings; DecodeRecord turns them into text.
func Validate(data map[string]any, knownIDs []string) *Validation {
	var errs, warnings []string

	known := make(map[string]struct{}, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = struct{}{}
	}

	if _, ok := nonEmptyString(data["title"]); !ok {
		errs = append(errs, "Missing or invalid title")
	}

	if desc, ok := nonEmptyString(data["description"]); !ok {
		errs = append(errs, "Missing or invalid description")
	} else if n := utf8.RuneCountInString(desc); n > MaxDescriptionChars {
		warnings = append(warnings, fmt.Sprintf("Description is %d characters (recommended at most %d)", n, MaxDescriptionChars))
	}

	if cat, _ := data["category"].(string); !Category(cat).IsValid() {
		errs = append(errs, "Invalid category (must be conference, competition, or activity)")
	}

	if tags, ok := data["tags"].([]any); !ok || len(tags) == 0 {
		errs = append(errs, "Tags must be a non-empty array")
	} else {
		for i, tag := range tags {
			if _, ok := tag.(string); !ok {
				warnings = append(warnings, fmt.Sprintf("Tag %d is not a string", i))
			}
		}
	}

	events, ok := data["events"].([]any)
	if !ok || len(events) == 0 {
		errs = append(errs, "Events must be a non-empty array")
	}

	seen := make(map[string]struct{}, len(events))
	for i, raw := range events {
		event, ok := raw.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("Event %d: must be an object", i))
			continue
		}

		if id, ok := nonEmptyString(event["id"]); !ok {
			errs = append(errs, fmt.Sprintf("Event %d: Missing or invalid id", i))
		} else if _, dup := known[id]; dup {
			errs = append(errs, fmt.Sprintf("Event %d: Duplicate ID '%s'", i, id))
		} else if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Sprintf("Event %d: Duplicate ID '%s' within record", i, id))
		} else {
			seen[id] = struct{}{}
		}

		if year, ok := integer(event["year"]); !ok || year == 0 {
			errs = append(errs, fmt.Sprintf("Event %d: Missing or invalid year", i))
		}

		if _, ok := nonEmptyString(event["link"]); !ok {
			errs = append(errs, fmt.Sprintf("Event %d: Missing or invalid link", i))
		}

		timeline, ok := event["timeline"].([]any)
		if !ok || len(timeline) == 0 {
			errs = append(errs, fmt.Sprintf("Event %d: Timeline must be a non-empty array", i))
		}
		for j, rawEntry := range timeline {
			entry, _ := rawEntry.(map[string]any)
			if _, ok := nonEmptyString(entry["deadline"]); !ok {
				warnings = append(warnings, fmt.Sprintf("Event %d: Timeline entry %d: Missing or invalid deadline", i, j))
			}
			if _, ok := nonEmptyString(entry["comment"]); !ok {
				warnings = append(warnings, fmt.Sprintf("Event %d: Timeline entry %d: Missing or invalid comment", i, j))
			}
		}

		if _, ok := nonEmptyString(event["timezone"]); !ok {
			errs = append(errs, fmt.Sprintf("Event %d: Missing or invalid timezone", i))
		}
	}

	return &Validation{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

// integer accepts the number representations produced by encoding/json
// (with or without UseNumber) and by YAML decoders.
func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// ParseCompletion decodes a model response into a JSON object. Surrounding
// whitespace and a Markdown code fence are tolerated. Returns EPARSE when the
// response is not a single JSON object.
func ParseCompletion(text string) (map[string]any, error) {
	text = stripCodeFence(strings.TrimSpace(text))
	if text == "" {
		return nil, Errorf(EPARSE, "empty model response")
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Errorf(EPARSE, "invalid JSON in model response: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, Errorf(EPARSE, "unexpected data after JSON object in model response")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, Errorf(EPARSE, "model response is not a JSON object")
	}
	return obj, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line, including any language tag.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeRecord converts a validated response object into a Record.
//
// Decoding is as lenient as Validate: a record Validate accepts always
// decodes. Non-string scalars in text fields are written with fmt, nested
// values as compact JSON, and a timeline entry that is not an object becomes
// an entry with an empty deadline and the entry's text as its comment.
// Returns EINVALID only for shapes Validate rejects.
func DecodeRecord(data map[string]any) (*Record, error) {
	rec := &Record{
		Title:       text(data["title"]),
		Description: text(data["description"]),
		Category:    Category(text(data["category"])),
	}

	tags, _ := data["tags"].([]any)
	for _, tag := range tags {
		if tag != nil {
			rec.Tags = append(rec.Tags, text(tag))
		}
	}

	events, ok := data["events"].([]any)
	if !ok {
		return nil, Errorf(EINVALID, "record does not match schema: events must be an array")
	}
	for i, raw := range events {
		event, ok := raw.(map[string]any)
		if !ok {
			return nil, Errorf(EINVALID, "record does not match schema: event %d must be an object", i)
		}
		year, _ := integer(event["year"])
		e := Event{
			Year:     int(year),
			ID:       text(event["id"]),
			Link:     text(event["link"]),
			Timezone: text(event["timezone"]),
			Date:     text(event["date"]),
			Place:    text(event["place"]),
		}
		timeline, _ := event["timeline"].([]any)
		for _, rawEntry := range timeline {
			if entry, ok := rawEntry.(map[string]any); ok {
				e.Timeline = append(e.Timeline, TimelineEntry{
					Deadline: text(entry["deadline"]),
					Comment:  text(entry["comment"]),
				})
				continue
			}
			e.Timeline = append(e.Timeline, TimelineEntry{Comment: text(rawEntry)})
		}
		rec.Events = append(rec.Events, e)
	}
	return rec, nil
}

// text renders a decoded JSON value as a string field.
func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number, float64, int, int64, bool:
		return fmt.Sprint(v)
	default:
		buf, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(buf)
	}
}
