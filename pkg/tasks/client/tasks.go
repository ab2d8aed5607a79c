package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opsboard/taskboard/pkg/httpclient"
	"github.com/opsboard/taskboard/pkg/tasks/api"
	"github.com/opsboard/taskboard/pkg/tasks/models"
)

type TaskServiceClient interface {
	ListTasks(ctx context.Context) ([]models.EnrichedTask, error)
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.MessageResponse, error)
	UpdateTask(ctx context.Context, id uint, req api.UpdateTaskRequest) (*api.MessageResponse, error)
	DeleteTask(ctx context.Context, id uint) error
	ListLookup(ctx context.Context, table string) ([]api.LookupEntry, error)
}

type taskClient struct {
	baseURL string
}

func NewTaskServiceClient(baseURL string) TaskServiceClient {
	return &taskClient{
		baseURL: baseURL,
	}
}

func (s *taskClient) ListTasks(ctx context.Context) ([]models.EnrichedTask, error) {
	url := fmt.Sprintf("%s/api/tasks", s.baseURL)

	var tasks []models.EnrichedTask
	if statusCode, err := httpclient.DoRequest(ctx, http.MethodGet, url, nil, nil, &tasks); err != nil {
		if 400 <= statusCode && statusCode < 500 {
			return nil, echo.NewHTTPError(statusCode, err.Error())
		}
		return nil, err
	}
	return tasks, nil
}

func (s *taskClient) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.MessageResponse, error) {
	url := fmt.Sprintf("%s/api/tasks", s.baseURL)

	jsonReq, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp api.MessageResponse
	if statusCode, err := httpclient.DoRequest(ctx, http.MethodPost, url, nil, jsonReq, &resp); err != nil {
		if 400 <= statusCode && statusCode < 500 {
			return nil, echo.NewHTTPError(statusCode, err.Error())
		}
		return nil, err
	}
	return &resp, nil
}

func (s *taskClient) UpdateTask(ctx context.Context, id uint, req api.UpdateTaskRequest) (*api.MessageResponse, error) {
	url := fmt.Sprintf("%s/api/tasks/%d", s.baseURL, id)

	jsonReq, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp api.MessageResponse
	if statusCode, err := httpclient.DoRequest(ctx, http.MethodPut, url, nil, jsonReq, &resp); err != nil {
		if 400 <= statusCode && statusCode < 500 {
			return nil, echo.NewHTTPError(statusCode, err.Error())
		}
		return nil, err
	}
	return &resp, nil
}

func (s *taskClient) DeleteTask(ctx context.Context, id uint) error {
	url := fmt.Sprintf("%s/api/tasks/%d", s.baseURL, id)

	if statusCode, err := httpclient.DoRequest(ctx, http.MethodDelete, url, nil, nil, nil); err != nil {
		if 400 <= statusCode && statusCode < 500 {
			return echo.NewHTTPError(statusCode, err.Error())
		}
		return err
	}
	return nil
}

func (s *taskClient) ListLookup(ctx context.Context, table string) ([]api.LookupEntry, error) {
	url := fmt.Sprintf("%s/api/lookups/%s", s.baseURL, table)

	var entries []api.LookupEntry
	if statusCode, err := httpclient.DoRequest(ctx, http.MethodGet, url, nil, nil, &entries); err != nil {
		if 400 <= statusCode && statusCode < 500 {
			return nil, echo.NewHTTPError(statusCode, err.Error())
		}
		return nil, err
	}
	return entries, nil
}
