package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	CreatedProjects []Project        `gorm:"foreignKey:CreatorID" json:"-"`
	CreatedTasks    []Task           `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTasks   []Task           `gorm:"foreignKey:AssigneeID" json:"-"`
	Memberships     []ProjectMember  `gorm:"foreignKey:UserID" json:"-"`
	Managerships    []ProjectManager `gorm:"foreignKey:UserID" json:"-"`
}
