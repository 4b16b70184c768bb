package domain

const unknownDescription = "Unknown"

// DatePosted restricts search results by listing age.
type DatePosted string

// Available date-posted filters.
const (
	DatePostedAny       DatePosted = "any"
	DatePostedPastDay   DatePosted = "past_24_hours"
	DatePostedPastWeek  DatePosted = "past_week"
	DatePostedPastMonth DatePosted = "past_month"
)

// IsValid returns true if the date-posted filter is recognised.
func (d DatePosted) IsValid() bool {
	switch d {
	case DatePostedAny, DatePostedPastDay, DatePostedPastWeek, DatePostedPastMonth:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d DatePosted) String() string {
	return string(d)
}

// Description returns a human-readable description of the filter.
func (d DatePosted) Description() string {
	switch d {
	case DatePostedAny:
		return "Any time"
	case DatePostedPastDay:
		return "Past 24 hours"
	case DatePostedPastWeek:
		return "Past week"
	case DatePostedPastMonth:
		return "Past month"
	default:
		return unknownDescription
	}
}

// JobType restricts search results by employment type.
type JobType string

// Available job-type filters.
const (
	JobTypeAny        JobType = "any"
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// IsValid returns true if the job type is recognised.
func (j JobType) IsValid() bool {
	switch j {
	case JobTypeAny, JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (j JobType) String() string {
	return string(j)
}

// SearchFilters are forwarded to every provider on each search call.
// Zero values mean "no restriction".
type SearchFilters struct {
	// DatePosted restricts results by listing age.
	DatePosted DatePosted

	// JobType restricts results by employment type.
	JobType JobType

	// Keywords are free-text terms appended to the provider query.
	Keywords string
}
