package model

import "time"

// Point is one immutable ledger entry. Negative amounts are penalties.
type Point struct {
	ID          string `gorm:"primaryKey;size:36"`
	Amount      int    `gorm:"not null"`
	Description string `gorm:"type:text"`
	UserID      string `gorm:"column:user_id;size:36;index;not null"`
	GivenByID   string `gorm:"column:given_by_id;size:36;index;not null"`

	User    *User `gorm:"foreignKey:UserID"`
	GivenBy *User `gorm:"foreignKey:GivenByID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Point) TableName() string {
	return "points"
}
