package api

// CreateTaskRequest carries the name forms of the lookups; the handler
// resolves them to surrogate keys before insert.
type CreateTaskRequest struct {
	TaskType  string    `json:"taskType" validate:"required"`
	TaskName  string    `json:"taskName" validate:"required"`
	StartTime Timestamp `json:"startTime"`
	EndTime   Timestamp `json:"endTime"`
	Status    string    `json:"status" validate:"required"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// UpdateTaskRequest carries the id forms of the lookups. Every field is
// optional; absent fields keep their stored value.
type UpdateTaskRequest struct {
	JobTypeID *uint      `json:"jobtype_id"`
	JobName   *string    `json:"jobname"`
	StartTime *Timestamp `json:"start_time"`
	EndTime   *Timestamp `json:"end_time"`
	StatusID  *uint      `json:"status_id"`
	CreatedAt *Timestamp `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
}

// Fields returns the column assignments present in the payload.
func (r UpdateTaskRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.JobTypeID != nil {
		fields["jobtype_id"] = *r.JobTypeID
	}
	if r.JobName != nil {
		fields["jobname"] = *r.JobName
	}
	if r.StartTime != nil {
		fields["start_time"] = r.StartTime.Time
	}
	if r.EndTime != nil {
		fields["end_time"] = r.EndTime.Time
	}
	if r.StatusID != nil {
		fields["status_id"] = *r.StatusID
	}
	if r.CreatedAt != nil {
		fields["created_at"] = r.CreatedAt.Time
	}
	if r.UpdatedAt != nil {
		fields["updated_at"] = r.UpdatedAt.Time
	}
	return fields
}

type MessageResponse struct {
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LookupEntry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
