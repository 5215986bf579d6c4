package model

import "time"

type Role string

const (
	RoleParent Role = "PARENT"
	RoleKid    Role = "KID"
)

type User struct {
	ID   string `gorm:"primaryKey;size:36"`
	Name string `gorm:"size:120;not null"`
	Role Role   `gorm:"size:16;not null;index"`

	// Email identifies parents; ChildUsername identifies kids. Exactly one is set.
	Email         *string `gorm:"size:255;uniqueIndex"`
	ChildUsername *string `gorm:"column:child_username;size:64;uniqueIndex"`

	Password string `gorm:"size:128;not null"`
	// PlainPassword is retained for KID accounts only so parents can look the
	// secret up later. Never written for parents.
	PlainPassword *string `gorm:"column:plain_password;size:128"`

	Avatar   string  `gorm:"size:512"`
	ParentID *string `gorm:"column:parent_id;size:36;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
