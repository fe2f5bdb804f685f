package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint64    `gorm:"not null" json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Creator  User             `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Members  []ProjectMember  `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Managers []ProjectManager `gorm:"foreignKey:ProjectID" json:"managers,omitempty"`
	Tasks    []Task           `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
