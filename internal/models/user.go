package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleMarketer  UserRole = "marketer"
	RoleRecruiter UserRole = "recruiter"
	RoleViewer    UserRole = "viewer"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
