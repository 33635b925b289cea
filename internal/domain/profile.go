package domain

import "time"

// Profile Model, stored as one document per user
type Profile struct {
	UserID    uint       `bson:"user_id"`              // Owning user, unique
	Age       *int       `bson:"age,omitempty"`        // Optional positive age
	DOB       *time.Time `bson:"dob,omitempty"`        // Optional date of birth
	Contact   *string    `bson:"contact,omitempty"`    // Optional 10-digit contact number
	CreatedAt time.Time  `bson:"created_at,omitempty"` // Set on first upsert
	UpdatedAt time.Time  `bson:"updated_at,omitempty"` // Set on every upsert
}

// ProfileUpdate carries the optional fields of a profile update; nil means absent
type ProfileUpdate struct {
	Age     *int
	DOB     *time.Time
	Contact *string
}
