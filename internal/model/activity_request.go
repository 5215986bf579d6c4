package model

import "time"

type ActivityStatus string

const (
	ActivityStatusPending  ActivityStatus = "PENDING"
	ActivityStatusApproved ActivityStatus = "APPROVED"
	ActivityStatusRejected ActivityStatus = "REJECTED"
)

// ActivityRequest is a kid's claim of a point-worthy activity. It is reviewed
// at most once: PENDING flips to APPROVED or REJECTED and stays there.
type ActivityRequest struct {
	ID           string         `gorm:"primaryKey;size:36"`
	Activity     string         `gorm:"size:120;not null"`
	Description  string         `gorm:"type:text;not null"`
	ActivityDate time.Time      `gorm:"column:activity_date;not null"`
	Status       ActivityStatus `gorm:"size:16;not null;index"`

	RequestedByID string     `gorm:"column:requested_by_id;size:36;index;not null"`
	ReviewedByID  *string    `gorm:"column:reviewed_by_id;size:36"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at"`
	PointID       *string    `gorm:"column:point_id;size:36"`

	RequestedBy *User  `gorm:"foreignKey:RequestedByID"`
	ReviewedBy  *User  `gorm:"foreignKey:ReviewedByID"`
	Point       *Point `gorm:"foreignKey:PointID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ActivityRequest) TableName() string {
	return "activity_requests"
}
