package models

import "time"

type Marketer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Email     *string   `gorm:"size:254" json:"email"`
	Phone     *string   `gorm:"size:20" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Recruiter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Email     *string   `gorm:"size:254" json:"email"`
	Phone     *string   `gorm:"size:20" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
