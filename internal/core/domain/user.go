package domain

import "time"

// User models an account in the system.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Role         Role      `json:"role" bson:"role"`
	IsSuperuser  bool      `json:"is_superuser" bson:"is_superuser"`
	CompanyName  string    `json:"company_name,omitempty" bson:"company_name,omitempty"`
	Industry     string    `json:"industry,omitempty" bson:"industry,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

func (u *User) Kind() ResourceType { return ResourceUser }

// OwnerID is the account itself.
func (u *User) OwnerID() (string, bool) { return u.ID, u.ID != "" }

// Principal projects the fields authorization decisions need.
func (u *User) Principal() *Principal {
	return &Principal{ID: u.ID, Role: u.Role, IsSuperuser: u.IsSuperuser}
}

// UserSummary is the public projection used by grouped user listings.
type UserSummary struct {
	ID        string `json:"id" bson:"_id"`
	Email     string `json:"email" bson:"email"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Role      Role   `json:"role" bson:"role"`
}

// UserProfile holds job-seeker details.
type UserProfile struct {
	ID               string            `json:"id" bson:"_id"`
	UserID           string            `json:"user" bson:"user_id"`
	Bio              string            `json:"bio,omitempty" bson:"bio,omitempty"`
	PortfolioLinks   map[string]string `json:"portfolio_links,omitempty" bson:"portfolio_links,omitempty"`
	Location         string            `json:"location" bson:"location"`
	ExperienceLevel  ExperienceLevel   `json:"experience_level,omitempty" bson:"experience_level,omitempty"`
	SocialMediaLinks map[string]string `json:"social_media_links,omitempty" bson:"social_media_links,omitempty"`
}

func (p *UserProfile) Kind() ResourceType { return ResourceUserProfile }

func (p *UserProfile) OwnerID() (string, bool) { return p.UserID, p.UserID != "" }

// EmployerProfile holds company details.
type EmployerProfile struct {
	ID                 string `json:"id" bson:"_id"`
	UserID             string `json:"user" bson:"user_id"`
	CompanyWebsite     string `json:"company_website,omitempty" bson:"company_website,omitempty"`
	CompanyDescription string `json:"company_description,omitempty" bson:"company_description,omitempty"`
	CompanyLocation    string `json:"company_location,omitempty" bson:"company_location,omitempty"`
}

func (p *EmployerProfile) Kind() ResourceType { return ResourceEmployerProfile }

func (p *EmployerProfile) OwnerID() (string, bool) { return p.UserID, p.UserID != "" }
