package domain

import "time"

// Industry groups jobs by sector. It is owned by the account that created it.
type Industry struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

func (i *Industry) Kind() ResourceType { return ResourceIndustry }

func (i *Industry) OwnerID() (string, bool) { return i.CreatedBy, i.CreatedBy != "" }
