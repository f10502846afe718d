package domain

// ResourceType names a protected collection.
type ResourceType string

const (
	ResourceJob             ResourceType = "job"
	ResourceIndustry        ResourceType = "industry"
	ResourceApplication     ResourceType = "application"
	ResourceUserProfile     ResourceType = "user_profile"
	ResourceEmployerProfile ResourceType = "employer_profile"
	ResourceUser            ResourceType = "user"
	ResourceJobApplicants   ResourceType = "job_applicants"
)

// ResourceCategory is the original name of the industry collection.
const ResourceCategory = ResourceIndustry

// Resource is a single protected instance.
type Resource interface {
	Kind() ResourceType
}

// Ownable is implemented by resources that carry an ownership attribute.
// ok is false when the attribute is absent.
type Ownable interface {
	Resource
	OwnerID() (id string, ok bool)
}

// Participant is implemented by resources readable by principals other than
// the owner, e.g. the applicant of an application.
type Participant interface {
	Resource
	ParticipantIDs() []string
}
