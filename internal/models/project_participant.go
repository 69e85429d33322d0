package models

// ProjectParticipant is the join row behind Project.Participants.
type ProjectParticipant struct {
	ProjectID string `gorm:"type:char(36);primarykey" json:"project_id"`
	UserID    string `gorm:"type:char(36);primarykey" json:"user_id"`
}

func (ProjectParticipant) TableName() string {
	return "project_participants"
}
