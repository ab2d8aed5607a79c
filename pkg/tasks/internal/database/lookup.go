package database

import (
	taskerr "github.com/opsboard/taskboard/pkg/tasks/errors"
	"github.com/opsboard/taskboard/pkg/tasks/models"
)

// LookupEntries returns the name→id mapping for one of the lookup tables.
func (db Database) LookupEntries(table string) (map[string]uint, error) {
	entries := map[string]uint{}

	switch table {
	case models.LookupTableJobType:
		var jobTypes []models.JobType
		if err := db.orm.Order("jobtype_id ASC").Find(&jobTypes).Error; err != nil {
			return nil, err
		}
		for _, jt := range jobTypes {
			entries[jt.Name] = jt.ID
		}
	case models.LookupTableStatus:
		var statuses []models.Status
		if err := db.orm.Order("status_id ASC").Find(&statuses).Error; err != nil {
			return nil, err
		}
		for _, s := range statuses {
			entries[s.Name] = s.ID
		}
	default:
		return nil, taskerr.ErrUnknownLookupTable
	}

	return entries, nil
}
