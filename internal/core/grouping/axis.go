package grouping

import (
	"strings"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// Axis is a job attribute accepted as a grouping category.
type Axis string

const (
	AxisIndustry Axis = "industry"
	AxisLocation Axis = "location"
	AxisType     Axis = "type"
)

// Axes is the allow-list, in display order.
var Axes = []Axis{AxisIndustry, AxisLocation, AxisType}

// ParseAxis validates a caller-supplied category name.
func ParseAxis(s string) (Axis, error) {
	a := Axis(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case AxisIndustry, AxisLocation, AxisType:
		return a, nil
	}
	return "", domain.NewValidationError("category", "invalid category %q, choose from: industry, location, type", s)
}

// JobKeys returns the key extractor for axis. Type is multi-valued.
func JobKeys(axis Axis) KeyFunc[domain.JobSummary] {
	switch axis {
	case AxisIndustry:
		return Single(func(j domain.JobSummary) string { return j.IndustryName })
	case AxisLocation:
		return Single(func(j domain.JobSummary) string { return j.Location })
	default:
		return Multi(func(j domain.JobSummary) []string { return j.Types })
	}
}

// UserKeys groups users by role.
func UserKeys() KeyFunc[domain.UserSummary] {
	return Single(func(u domain.UserSummary) string { return string(u.Role) })
}

// MatchJob reports whether q occurs, ignoring case, in the job's title,
// industry, location or any of its types.
func MatchJob(j domain.JobSummary, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	fields := append([]string{j.Title, j.IndustryName, j.Location}, j.Types...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// SearchJobs keeps the jobs matching q, preserving order.
func SearchJobs(jobs []domain.JobSummary, q string) []domain.JobSummary {
	if strings.TrimSpace(q) == "" {
		return jobs
	}
	out := make([]domain.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		if MatchJob(j, q) {
			out = append(out, j)
		}
	}
	return out
}
