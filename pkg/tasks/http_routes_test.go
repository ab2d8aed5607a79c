package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	idocker "github.com/opsboard/taskboard/pkg/dockertest"
	"github.com/opsboard/taskboard/pkg/httpserver"
	"github.com/opsboard/taskboard/pkg/tasks/internal/cache"
	"github.com/opsboard/taskboard/pkg/tasks/internal/database"
	"github.com/opsboard/taskboard/pkg/tasks/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HttpHandlerSuite struct {
	suite.Suite

	handler     *HttpHandler
	router      *echo.Echo
	orm         *gorm.DB
	redisClient *redis.Client
}

func (s *HttpHandlerSuite) SetupSuite() {
	t := s.T()
	require := s.Require()

	s.orm = idocker.StartupPostgreSQL(t)
	s.redisClient = idocker.StartupRedis(t)

	logger, err := zap.NewProduction()
	require.NoError(err, "new logger")

	s.handler = &HttpHandler{
		db:      database.NewDatabase(s.orm),
		lookups: cache.NewLookupRedisCache(s.redisClient, time.Minute),
		logger:  logger,
	}

	s.router = httpserver.Register(logger, s.handler)
}

func (s *HttpHandlerSuite) BeforeTest(suiteName, testName string) {
	require := s.Require()

	err := s.handler.db.Initialize()
	require.NoError(err, "initialize db")
}

func (s *HttpHandlerSuite) AfterTest(suiteName, testName string) {
	require := s.Require()

	tx := s.orm.Exec("DROP TABLE IF EXISTS task, jobtype, status;")
	require.NoError(tx.Error, "drop tables")

	err := s.redisClient.FlushAll(s.redisClient.Context()).Err()
	require.NoError(err, "flush redis")
}

func TestHttpHandlerSuite(t *testing.T) {
	suite.Run(t, &HttpHandlerSuite{})
}

func doSimpleJSONRequest(router *echo.Echo, method string, path string, request, response interface{}) (*httptest.ResponseRecorder, error) {
	var r io.Reader
	if request != nil {
		out, err := json.Marshal(request)
		if err != nil {
			return nil, err
		}

		r = bytes.NewReader(out)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Add("content-type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if response != nil {
		// Wrap in NopCloser in case the calling method wants to also read the body
		b, err := io.ReadAll(io.NopCloser(rec.Body))
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(b, response); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

func (s *HttpHandlerSuite) createTask(jobName string) models.EnrichedTask {
	require := s.Require()

	rec, err := doSimpleJSONRequest(s.router, echo.POST, "/api/tasks", map[string]any{
		"taskType":  "test",
		"taskName":  jobName,
		"startTime": "2024-01-01T09:00",
		"endTime":   "2024-01-01T10:00",
		"status":    "เสร็จสิ้น",
		"createdAt": "2024-01-01T09:00",
		"updatedAt": "2024-01-01T09:00",
	}, nil)
	require.NoError(err, "create request")
	require.Equal(http.StatusOK, rec.Code, rec.Body.String())

	var tasks []models.EnrichedTask
	_, err = doSimpleJSONRequest(s.router, echo.GET, "/api/tasks", nil, &tasks)
	require.NoError(err, "list request")
	for _, task := range tasks {
		if task.JobName == jobName {
			return task
		}
	}
	require.FailNow("created task not found in list")
	return models.EnrichedTask{}
}

func (s *HttpHandlerSuite) listTasks() []models.EnrichedTask {
	require := s.Require()

	var tasks []models.EnrichedTask
	rec, err := doSimpleJSONRequest(s.router, echo.GET, "/api/tasks", nil, &tasks)
	require.NoError(err, "list request")
	require.Equal(http.StatusOK, rec.Code)
	return tasks
}

func (s *HttpHandlerSuite) TestTaskLifecycle() {
	require := s.Require()

	rec, err := doSimpleJSONRequest(s.router, echo.POST, "/api/tasks", map[string]any{
		"taskType":  "test",
		"taskName":  "Build",
		"startTime": "2024-01-01T09:00",
		"endTime":   "2024-01-01T10:00",
		"status":    "เสร็จสิ้น",
		"createdAt": "2024-01-01T09:00",
		"updatedAt": "2024-01-01T09:00",
	}, nil)
	require.NoError(err, "create request")
	require.Equal(http.StatusOK, rec.Code, rec.Body.String())

	tasks := s.listTasks()
	require.Len(tasks, 1)
	task := tasks[0]
	require.Equal("test", task.JobTypeName)
	require.Equal("Build", task.JobName)
	require.Equal("เสร็จสิ้น", task.StatusName)
	expectedStart, _ := time.Parse("2006-01-02T15:04", "2024-01-01T09:00")
	require.True(task.StartTime.Equal(expectedStart), "start time: %s", task.StartTime)

	rec, err = doSimpleJSONRequest(s.router, echo.PUT, fmt.Sprintf("/api/tasks/%d", task.TaskID), map[string]any{
		"jobname": "Build v2",
	}, nil)
	require.NoError(err, "update request")
	require.Equal(http.StatusOK, rec.Code, rec.Body.String())

	tasks = s.listTasks()
	require.Len(tasks, 1)
	updated := tasks[0]
	require.Equal("Build v2", updated.JobName)
	require.Equal(task.JobTypeName, updated.JobTypeName)
	require.Equal(task.StatusName, updated.StatusName)
	require.True(task.StartTime.Equal(updated.StartTime))
	require.True(task.EndTime.Equal(updated.EndTime))
	require.True(task.CreatedAt.Equal(updated.CreatedAt))
	require.True(task.UpdatedAt.Equal(updated.UpdatedAt))

	rec, err = doSimpleJSONRequest(s.router, echo.DELETE, fmt.Sprintf("/api/tasks/%d", task.TaskID), nil, nil)
	require.NoError(err, "delete request")
	require.Equal(http.StatusOK, rec.Code)

	require.Empty(s.listTasks())
}

func (s *HttpHandlerSuite) TestUpdateSingleFields() {
	require := s.Require()

	base := s.createTask("Partial")

	for name, payload := range map[string]map[string]any{
		"jobtype_id": {"jobtype_id": 3},
		"jobname":    {"jobname": "Renamed"},
		"start_time": {"start_time": "2024-02-02T08:00"},
		"end_time":   {"end_time": "2024-02-02T09:30"},
		"status_id":  {"status_id": 3},
		"created_at": {"created_at": "2024-02-01T00:00"},
		"updated_at": {"updated_at": "2024-02-03T00:00"},
	} {
		before := s.listTasks()
		require.Len(before, 1)

		rec, err := doSimpleJSONRequest(s.router, echo.PUT, fmt.Sprintf("/api/tasks/%d", base.TaskID), payload, nil)
		require.NoError(err, "update %s", name)
		require.Equal(http.StatusOK, rec.Code, "update %s: %s", name, rec.Body.String())

		after := s.listTasks()
		require.Len(after, 1)

		// only the submitted field may differ from the previous state
		if name != "jobtype_id" {
			require.Equal(before[0].JobTypeName, after[0].JobTypeName, "field %s", name)
		}
		if name != "jobname" {
			require.Equal(before[0].JobName, after[0].JobName, "field %s", name)
		}
		if name != "start_time" {
			require.True(before[0].StartTime.Equal(after[0].StartTime), "field %s", name)
		}
		if name != "end_time" {
			require.True(before[0].EndTime.Equal(after[0].EndTime), "field %s", name)
		}
		if name != "status_id" {
			require.Equal(before[0].StatusName, after[0].StatusName, "field %s", name)
		}
		if name != "created_at" {
			require.True(before[0].CreatedAt.Equal(after[0].CreatedAt), "field %s", name)
		}
		if name != "updated_at" {
			require.True(before[0].UpdatedAt.Equal(after[0].UpdatedAt), "field %s", name)
		}
	}

	// all seven fields touched by now; spot-check the final state
	final := s.listTasks()[0]
	require.Equal("document", final.JobTypeName)
	require.Equal("Renamed", final.JobName)
	require.Equal("ยกเลิก", final.StatusName)
}

func (s *HttpHandlerSuite) TestUpdateNotFound() {
	require := s.Require()

	s.createTask("Survivor")
	before := s.listTasks()

	rec, err := doSimpleJSONRequest(s.router, echo.PUT, "/api/tasks/999999", map[string]any{
		"jobname": "Ghost",
	}, nil)
	require.NoError(err, "request")
	require.Equal(http.StatusNotFound, rec.Code)

	require.Equal(before, s.listTasks())
}

func (s *HttpHandlerSuite) TestUpdateEmptyPayload() {
	require := s.Require()

	task := s.createTask("Untouched")

	rec, err := doSimpleJSONRequest(s.router, echo.PUT, fmt.Sprintf("/api/tasks/%d", task.TaskID), map[string]any{}, nil)
	require.NoError(err, "request")
	require.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HttpHandlerSuite) TestDelete() {
	require := s.Require()

	task := s.createTask("Doomed")
	s.createTask("Bystander")

	rec, err := doSimpleJSONRequest(s.router, echo.DELETE, fmt.Sprintf("/api/tasks/%d", task.TaskID), nil, nil)
	require.NoError(err, "request")
	require.Equal(http.StatusOK, rec.Code)

	tasks := s.listTasks()
	require.Len(tasks, 1)
	require.Equal("Bystander", tasks[0].JobName)

	// deleting again reports not found instead of succeeding silently
	rec, err = doSimpleJSONRequest(s.router, echo.DELETE, fmt.Sprintf("/api/tasks/%d", task.TaskID), nil, nil)
	require.NoError(err, "request")
	require.Equal(http.StatusNotFound, rec.Code)
}

func (s *HttpHandlerSuite) TestDeleteNotFound() {
	require := s.Require()

	rec, err := doSimpleJSONRequest(s.router, echo.DELETE, "/api/tasks/424242", nil, nil)
	require.NoError(err, "request")
	require.Equal(http.StatusNotFound, rec.Code)
}

func (s *HttpHandlerSuite) TestCreateUnknownLookupName() {
	require := s.Require()

	for _, payload := range []map[string]any{
		{
			"taskType":  "no-such-type",
			"taskName":  "Rejected",
			"startTime": "2024-01-01T09:00",
			"endTime":   "2024-01-01T10:00",
			"status":    "เสร็จสิ้น",
			"createdAt": "2024-01-01T09:00",
			"updatedAt": "2024-01-01T09:00",
		},
		{
			"taskType":  "test",
			"taskName":  "Rejected",
			"startTime": "2024-01-01T09:00",
			"endTime":   "2024-01-01T10:00",
			"status":    "no-such-status",
			"createdAt": "2024-01-01T09:00",
			"updatedAt": "2024-01-01T09:00",
		},
	} {
		var resp map[string]any
		rec, err := doSimpleJSONRequest(s.router, echo.POST, "/api/tasks", payload, &resp)
		require.NoError(err, "request")
		require.Equal(http.StatusBadRequest, rec.Code)
		require.Contains(resp["error"], "unknown")
	}

	require.Empty(s.listTasks())
}

func (s *HttpHandlerSuite) TestDanglingLookupExcludedFromList() {
	require := s.Require()

	kept := s.createTask("Kept")
	dangled := s.createTask("Dangled")

	// the id-form update stores any id as-is; an id with no status row makes
	// the inner join drop the row from the list without deleting it
	rec, err := doSimpleJSONRequest(s.router, echo.PUT, fmt.Sprintf("/api/tasks/%d", dangled.TaskID), map[string]any{
		"status_id": 999,
	}, nil)
	require.NoError(err, "update request")
	require.Equal(http.StatusOK, rec.Code, rec.Body.String())

	tasks := s.listTasks()
	require.Len(tasks, 1)
	require.Equal(kept.TaskID, tasks[0].TaskID)

	// pointing the row back at a real status makes it visible again
	var statuses []map[string]any
	rec, err = doSimpleJSONRequest(s.router, echo.GET, "/api/lookups/status", nil, &statuses)
	require.NoError(err, "lookup request")
	require.Equal(http.StatusOK, rec.Code)
	require.NotEmpty(statuses)

	rec, err = doSimpleJSONRequest(s.router, echo.PUT, fmt.Sprintf("/api/tasks/%d", dangled.TaskID), map[string]any{
		"status_id": statuses[0]["id"],
	}, nil)
	require.NoError(err, "update request")
	require.Equal(http.StatusOK, rec.Code, rec.Body.String())

	tasks = s.listTasks()
	require.Len(tasks, 2)
}

func (s *HttpHandlerSuite) TestListOrdering() {
	require := s.Require()

	// updated_at intentionally out of id order; the list must still come back
	// ascending by id
	for i, updated := range []string{"2024-03-03T00:00", "2024-01-01T00:00", "2024-02-02T00:00"} {
		rec, err := doSimpleJSONRequest(s.router, echo.POST, "/api/tasks", map[string]any{
			"taskType":  "development",
			"taskName":  fmt.Sprintf("Task %d", i),
			"startTime": "2024-01-01T09:00",
			"endTime":   "2024-01-01T10:00",
			"status":    "ดำเนินการ",
			"createdAt": "2024-01-01T09:00",
			"updatedAt": updated,
		}, nil)
		require.NoError(err, "create request")
		require.Equal(http.StatusOK, rec.Code)
	}

	tasks := s.listTasks()
	require.Len(tasks, 3)
	for i := 1; i < len(tasks); i++ {
		require.Greater(tasks[i].TaskID, tasks[i-1].TaskID)
	}
}

func (s *HttpHandlerSuite) TestLookupEndpoint() {
	require := s.Require()

	var entries []map[string]any
	rec, err := doSimpleJSONRequest(s.router, echo.GET, "/api/lookups/jobtype", nil, &entries)
	require.NoError(err, "request")
	require.Equal(http.StatusOK, rec.Code)
	require.Len(entries, 3)
	require.Equal("development", entries[0]["name"])
	require.Equal("test", entries[1]["name"])
	require.Equal("document", entries[2]["name"])

	rec, err = doSimpleJSONRequest(s.router, echo.GET, "/api/lookups/status", nil, &entries)
	require.NoError(err, "request")
	require.Equal(http.StatusOK, rec.Code)
	require.Len(entries, 3)

	rec, err = doSimpleJSONRequest(s.router, echo.GET, "/api/lookups/nothere", nil, nil)
	require.NoError(err, "request")
	require.Equal(http.StatusBadRequest, rec.Code)
}
