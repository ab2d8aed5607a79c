package models

import "time"

// Task is the fact table row. The lookup references are kept as raw surrogate
// keys; name resolution happens in the handler through the lookup cache.
// created_at and updated_at are caller-supplied, so gorm's automatic time
// tracking is turned off.
type Task struct {
	ID        uint      `gorm:"column:task_id;primaryKey" json:"task_id"`
	JobTypeID uint      `gorm:"column:jobtype_id;not null" json:"jobtype_id"`
	JobName   string    `gorm:"column:jobname" json:"jobname"`
	StartTime time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time" json:"end_time"`
	StatusID  uint      `gorm:"column:status_id;not null" json:"status_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Task) TableName() string {
	return "task"
}

// EnrichedTask is a task joined with its lookup display names, the shape the
// list endpoint returns.
type EnrichedTask struct {
	TaskID      uint      `gorm:"column:task_id" json:"task_id"`
	JobTypeName string    `gorm:"column:jobtype_name" json:"jobtype_name"`
	JobName     string    `gorm:"column:jobname" json:"jobname"`
	StartTime   time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime     time.Time `gorm:"column:end_time" json:"end_time"`
	StatusName  string    `gorm:"column:status_name" json:"status_name"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}
