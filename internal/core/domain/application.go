package domain

import "time"

// ApplicationStatus tracks an application through review.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationReviewed  ApplicationStatus = "reviewed"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// ParseApplicationStatus validates s against the known statuses.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch st := ApplicationStatus(s); st {
	case ApplicationPending, ApplicationSubmitted, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return st, true
	}
	return "", false
}

// Application is a single applicant's submission to a job. At most one
// exists per (JobID, ApplicantID).
type Application struct {
	ID          string            `json:"id" bson:"_id"`
	JobID       string            `json:"job" bson:"job_id"`
	ApplicantID string            `json:"applicant" bson:"applicant_id"`
	JobPostedBy string            `json:"-" bson:"job_posted_by"`
	ResumeLink  string            `json:"resume_link,omitempty" bson:"resume_link,omitempty"`
	CoverLetter string            `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	AppliedAt   time.Time         `json:"applied_at" bson:"applied_at"`
}

func (a *Application) Kind() ResourceType { return ResourceApplication }

// OwnerID is the employer who posted the job; only they may change status.
func (a *Application) OwnerID() (string, bool) { return a.JobPostedBy, a.JobPostedBy != "" }

func (a *Application) ParticipantIDs() []string {
	if a.ApplicantID == "" {
		return nil
	}
	return []string{a.ApplicantID}
}

// ApplicationView is an application joined with its job for display.
type ApplicationView struct {
	Application `bson:",inline"`
	Job         *JobSummary `json:"job_detail,omitempty" bson:"job,omitempty"`
}
