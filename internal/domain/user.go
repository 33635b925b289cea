package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey"`                             // Primary key
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null"` // Unique, immutable username
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"` // Unique email
	Password  string    `gorm:"type:varchar(255);not null"`             // Salted bcrypt hash, never exposed
	CreatedAt time.Time `gorm:"autoCreateTime"`                         // Timestamp of creation
}

// PublicUser is the projection of a User that is safe to return to clients
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the client-safe projection of the user
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
