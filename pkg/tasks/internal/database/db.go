package database

import (
	"github.com/opsboard/taskboard/pkg/tasks/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Database struct {
	orm *gorm.DB
}

func NewDatabase(orm *gorm.DB) Database {
	return Database{orm: orm}
}

// seed values match the option lists the clients present; inserts are
// idempotent so Initialize can run on every start.
var (
	seedJobTypes = []string{"development", "test", "document"}
	seedStatuses = []string{"ดำเนินการ", "เสร็จสิ้น", "ยกเลิก"}
)

func (db Database) Initialize() error {
	err := db.orm.AutoMigrate(
		&models.JobType{},
		&models.Status{},
		&models.Task{},
	)
	if err != nil {
		return err
	}

	for _, name := range seedJobTypes {
		tx := db.orm.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.JobType{Name: name})
		if tx.Error != nil {
			return tx.Error
		}
	}
	for _, name := range seedStatuses {
		tx := db.orm.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Status{Name: name})
		if tx.Error != nil {
			return tx.Error
		}
	}

	return nil
}
