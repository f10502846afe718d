package domain

import "time"

// JobType is one of the employment kinds a job may be tagged with.
type JobType string

const (
	JobPartTime   JobType = "part-time"
	JobFullTime   JobType = "full-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

// ExperienceLevel grades the seniority a job or candidate targets.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// Job is a posting owned by the employer that created it.
type Job struct {
	ID               string          `json:"id" bson:"_id"`
	Title            string          `json:"title" bson:"title"`
	Company          string          `json:"company" bson:"company"`
	Location         string          `json:"location" bson:"location"`
	Wage             *int            `json:"wage" bson:"wage,omitempty"`
	Types            []JobType       `json:"type" bson:"types"`
	ExperienceLevel  ExperienceLevel `json:"experience_level,omitempty" bson:"experience_level,omitempty"`
	Description      string          `json:"description" bson:"description"`
	RequiredSkills   []string        `json:"required_skills" bson:"required_skills"`
	Responsibilities []string        `json:"responsibilities" bson:"responsibilities"`
	IndustryID       string          `json:"industry_id,omitempty" bson:"industry_id,omitempty"`
	PostedBy         string          `json:"posted_by" bson:"posted_by"`
	PostedAt         time.Time       `json:"posted_at" bson:"posted_at"`
	IsActive         bool            `json:"is_active" bson:"is_active"`
}

func (j *Job) Kind() ResourceType { return ResourceJob }

func (j *Job) OwnerID() (string, bool) { return j.PostedBy, j.PostedBy != "" }

// TypeNames returns the job types as plain strings.
func (j *Job) TypeNames() []string {
	out := make([]string, len(j.Types))
	for i, t := range j.Types {
		out[i] = string(t)
	}
	return out
}

// JobApplicants is the applicant list of one job. It belongs to whoever
// posted the job.
type JobApplicants struct {
	Job *Job
}

func (a JobApplicants) Kind() ResourceType { return ResourceJobApplicants }

func (a JobApplicants) OwnerID() (string, bool) {
	if a.Job == nil {
		return "", false
	}
	return a.Job.OwnerID()
}

// JobSummary is the lightweight projection used by listings and grouping.
type JobSummary struct {
	ID           string    `json:"id" bson:"_id"`
	Title        string    `json:"title" bson:"title"`
	Company      string    `json:"company" bson:"company"`
	Location     string    `json:"location" bson:"location"`
	Types        []string  `json:"type" bson:"types"`
	IndustryID   string    `json:"industry_id,omitempty" bson:"industry_id,omitempty"`
	IndustryName string    `json:"industry,omitempty" bson:"industry_name,omitempty"`
	Wage         *int      `json:"wage" bson:"wage,omitempty"`
	PostedBy     string    `json:"posted_by" bson:"posted_by"`
	PostedAt     time.Time `json:"posted_at" bson:"posted_at"`
}
