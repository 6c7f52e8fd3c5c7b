// Package category maps user-facing filter labels onto the category strings
// stories were historically stored under.
package category

const (
	Trending       = "Trending"
	Discrimination = "Discrimination"
	Corruption     = "Corruption"
	WorkplaceAbuse = "Workplace Abuse"
	MentalHealth   = "Mental Health"
	Harassment     = "Harassment"
	Other          = "Other"

	// Default is used for submissions that do not pick a category.
	Default = "General"
)

var accepted = map[string][]string{
	Discrimination: {Discrimination},
	Corruption:     {Corruption},
	WorkplaceAbuse: {WorkplaceAbuse, "Work", "Workplace"},
	MentalHealth:   {MentalHealth},
	Harassment:     {Harassment},
	Other:          {Other},
}

var filters = []string{Trending, Discrimination, Corruption, WorkplaceAbuse, MentalHealth, Harassment, Other}

var submission = []string{Default, MentalHealth, "Education", "Work", "Family", "Social", Other}

// Accepted returns the stored values a filter label matches. Unknown labels
// match only themselves.
func Accepted(label string) []string {
	values, ok := accepted[label]
	if !ok {
		return []string{label}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func IsTrending(label string) bool {
	return label == Trending
}

func Filters() []string {
	out := make([]string, len(filters))
	copy(out, filters)
	return out
}

func SubmissionCategories() []string {
	out := make([]string, len(submission))
	copy(out, submission)
	return out
}

// Matches reports whether a story stored under stored belongs to the feed for label.
// Trending accepts every category.
func Matches(label, stored string) bool {
	if IsTrending(label) {
		return true
	}
	for _, value := range Accepted(label) {
		if value == stored {
			return true
		}
	}
	return false
}
