package database

import (
	taskerr "github.com/opsboard/taskboard/pkg/tasks/errors"
	"github.com/opsboard/taskboard/pkg/tasks/models"
)

// ListTasks returns every task joined with its lookup names, ascending by id.
// The inner join drops rows whose foreign keys do not resolve.
func (db Database) ListTasks() ([]models.EnrichedTask, error) {
	tasks := []models.EnrichedTask{}
	err := db.orm.Table("task AS t").
		Select("t.task_id, jt.jobtype_name, t.jobname, t.start_time, t.end_time, s.status_name, t.created_at, t.updated_at").
		Joins("JOIN jobtype jt ON t.jobtype_id = jt.jobtype_id").
		Joins("JOIN status s ON t.status_id = s.status_id").
		Order("t.task_id ASC").
		Scan(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (db Database) CreateTask(task *models.Task) error {
	return db.orm.Create(task).Error
}

// UpdateTask applies the given column assignments in a single conditional
// UPDATE, so concurrent editors cannot lose each other's writes between a
// read and a write-back.
func (db Database) UpdateTask(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return taskerr.ErrNoFieldsToUpdate
	}

	tx := db.orm.Model(&models.Task{}).Where("task_id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return taskerr.ErrTaskNotFound
	}
	return nil
}

func (db Database) DeleteTask(id uint) error {
	tx := db.orm.Delete(&models.Task{}, "task_id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return taskerr.ErrTaskNotFound
	}
	return nil
}
