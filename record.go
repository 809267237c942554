package eventscout

// Category groups records into separate store files.
type Category string

// Category constants.
const (
	CategoryConference  Category = "conference"
	CategoryCompetition Category = "competition"
	CategoryActivity    Category = "activity"
)

// Categories lists every valid category in store order.
var Categories = []Category{CategoryConference, CategoryCompetition, CategoryActivity}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// StoreFile returns the name of the store file holding records of category c.
// The name is always the category followed by "s.yml", matching the existing
// data layout (conferences.yml, competitions.yml, activitys.yml).
func (c Category) StoreFile() string {
	return string(c) + "s.yml"
}

// Record is one titled activity with its yearly events.
type Record struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Tags        []string `json:"tags" yaml:"tags"`
	Events      []Event  `json:"events" yaml:"events"`
}

// Event is a single year's occurrence of a record. ID is unique across the
// whole corpus.
type Event struct {
	Year     int             `json:"year" yaml:"year"`
	ID       string          `json:"id" yaml:"id"`
	Link     string          `json:"link" yaml:"link"`
	Timeline []TimelineEntry `json:"timeline" yaml:"timeline"`
	Timezone string          `json:"timezone" yaml:"timezone"`
	Date     string          `json:"date" yaml:"date"`
	Place    string          `json:"place" yaml:"place"`
}

// TimelineEntry is a dated milestone within an event.
// Deadline is an ISO 8601 date-time including the time of day.
type TimelineEntry struct {
	Deadline string `json:"deadline" yaml:"deadline"`
	Comment  string `json:"comment" yaml:"comment"`
}

// EventIDs returns the ids of all events in the record, in order.
func (r *Record) EventIDs() []string {
	ids := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		ids = append(ids, e.ID)
	}
	return ids
}
