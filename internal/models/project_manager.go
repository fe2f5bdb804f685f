package models

import "time"

// ProjectManager is one row of the manager set, kept independent of the
// member set. A manager may add or remove members and create or delete tasks.
type ProjectManager struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	GrantedAt time.Time `json:"granted_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
