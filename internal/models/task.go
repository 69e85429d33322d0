package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/utils"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// Priorities lists every accepted priority, lowest first.
var Priorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p TaskPriority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

type Task struct {
	ID            string       `gorm:"type:char(36);primarykey" json:"id"`
	ProjectID     string       `gorm:"type:char(36);not null" json:"project_id"`
	Name          string       `gorm:"type:varchar(50);not null" json:"name"`
	Priority      TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	EstimatedTime uint32       `gorm:"not null" json:"estimated_time"`
	Description   string       `gorm:"type:text" json:"description"`
	ExecutorID    string       `gorm:"type:char(36);not null" json:"executor_id"`
	CheckerID     string       `gorm:"type:char(36);not null" json:"checker_id"`
	TimeStart     *time.Time   `json:"time_start"`
	TimeEnd       *time.Time   `json:"time_end"`
	IsActive      bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Relations
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Executor *User    `gorm:"foreignKey:ExecutorID" json:"executor,omitempty"`
	Checker  *User    `gorm:"foreignKey:CheckerID" json:"checker,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TrackedDuration is the recorded work time, zero unless both bounds are set and ordered.
func (t *Task) TrackedDuration() time.Duration {
	if t.TimeStart == nil || t.TimeEnd == nil || !t.TimeEnd.After(*t.TimeStart) {
		return 0
	}
	return t.TimeEnd.Sub(*t.TimeStart)
}

// MarshalJSON writes the time bounds as "YYYY-MM-DD hh:mm:ss".
func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		alias
		TimeStart *string `json:"time_start"`
		TimeEnd   *string `json:"time_end"`
	}{
		alias:     alias(t),
		TimeStart: formatBound(t.TimeStart),
		TimeEnd:   formatBound(t.TimeEnd),
	})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := struct {
		*alias
		TimeStart *string `json:"time_start"`
		TimeEnd   *string `json:"time_end"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if t.TimeStart, err = parseBound(aux.TimeStart); err != nil {
		return err
	}
	t.TimeEnd, err = parseBound(aux.TimeEnd)
	return err
}

func formatBound(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := utils.FormatTimestamp(t)
	return &s
}

func parseBound(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return utils.ParseTimestamp(*s)
}
