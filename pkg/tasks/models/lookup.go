package models

const (
	LookupTableJobType = "jobtype"
	LookupTableStatus  = "status"
)

type JobType struct {
	ID   uint   `gorm:"column:jobtype_id;primaryKey" json:"jobtype_id"`
	Name string `gorm:"column:jobtype_name;uniqueIndex" json:"jobtype_name"`
}

func (JobType) TableName() string {
	return "jobtype"
}

type Status struct {
	ID   uint   `gorm:"column:status_id;primaryKey" json:"status_id"`
	Name string `gorm:"column:status_name;uniqueIndex" json:"status_name"`
}

func (Status) TableName() string {
	return "status"
}
