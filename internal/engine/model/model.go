package model

import "time"

// BaseModel carries the fields shared by every stored document. Identifiers
// are opaque uuid strings generated by the application.
type BaseModel struct {
	Id        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
