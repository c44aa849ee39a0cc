package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/teemow/tasksync/internal/config"
	"github.com/teemow/tasksync/internal/logging"
	"github.com/teemow/tasksync/internal/sync"
)

const (
	apiBaseURL    = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"
	queryPageSize = 100
)

// Client queries and updates the task database over the Notion REST API.
// It implements sync.TaskSource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	database   string
	norm       *Normalizer
	statusProp string
	archived   string
	log        *slog.Logger
}

// NewClient creates a task-store client from the notion section of the
// configuration. Malformed records encountered while listing are logged
// through log and dropped.
func NewClient(cfg config.NotionConfig, log *slog.Logger) (*Client, error) {
	norm, err := NewNormalizer(cfg.Properties, cfg.Statuses)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    apiBaseURL,
		token:      cfg.Token,
		database:   cfg.Database,
		norm:       norm,
		statusProp: cfg.Properties.Status,
		archived:   cfg.Statuses.Archived,
		log:        logging.WithService(log, "notion"),
	}, nil
}

// ActiveTasks returns every normalized task whose status is not Archived.
// Pages are fetched sequentially; each cursor gates the next request.
func (c *Client) ActiveTasks(ctx context.Context) ([]sync.Task, error) {
	filter := &statusFilter{
		Property: c.statusProp,
		Status:   statusCondition{DoesNotEqual: c.archived},
	}

	var tasks []sync.Task
	err := c.foreachPage(ctx, filter, func(p Page) {
		task, err := c.norm.Task(p)
		if err != nil {
			c.log.Warn("dropping malformed task record",
				logging.Task(p.ID), logging.Err(err))
			return
		}
		tasks = append(tasks, task)
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ArchivedTaskIDs returns the normalized ids of every archived task.
func (c *Client) ArchivedTaskIDs(ctx context.Context) ([]string, error) {
	filter := &statusFilter{
		Property: c.statusProp,
		Status:   statusCondition{Equals: c.archived},
	}

	var ids []string
	err := c.foreachPage(ctx, filter, func(p Page) {
		ids = append(ids, NormalizeID(p.ID))
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ArchiveTask flips a task's status to Archived.
func (c *Client) ArchiveTask(ctx context.Context, id string) error {
	body := updateRequest{
		Properties: map[string]Property{
			c.statusProp: {
				Type:   "status",
				Status: &SelectOption{Name: c.archived},
			},
		},
	}

	var resp Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+id, body, &resp); err != nil {
		return fmt.Errorf("archive task %s: %w", id, err)
	}
	return nil
}

// foreachPage runs one status-filtered database query, invoking fn for
// every result across all pages.
func (c *Client) foreachPage(ctx context.Context, filter *statusFilter, fn func(Page)) error {
	cursor := ""
	for {
		req := queryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    queryPageSize,
		}

		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, "/databases/"+c.database+"/query", req, &resp); err != nil {
			return fmt.Errorf("query database: %w", err)
		}

		for _, page := range resp.Results {
			fn(page)
		}

		if !resp.HasMore || resp.NextCursor == "" {
			return nil
		}
		cursor = resp.NextCursor
	}
}

// do issues one API call with auth and version headers and decodes the
// response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("notion api %d %s: %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("notion api returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
