// Package googletasks implements provider.Provider using the Google Tasks API.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tudo/internal/config"
	"tudo/internal/provider"
)

const (
	// PageSize is the number of records requested per page.
	PageSize = 100

	// APITimeout is the default timeout for API calls.
	APITimeout = 10 * time.Second

	// TasksScope is the OAuth scope for Google Tasks.
	TasksScope = tasks.TasksScope
)

// Client implements provider.Provider using Google Tasks API.
// Tasklists are held in the embedded Store; Client is its only writer.
type Client struct {
	provider.Store

	svc     *tasks.Service
	timeout time.Duration
}

var _ provider.Provider = (*Client)(nil)

// New creates a new Google Tasks client.
// Requires the OAuth client file and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	// Load OAuth client config
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Load token
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Token source refreshes the access token as needed
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	c, err := NewWithHTTPClient(ctx, httpClient)
	if err != nil {
		return nil, err
	}
	if cfg.Settings.APITimeout > 0 {
		c.timeout = cfg.Settings.APITimeout
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// Extra options, such as option.WithEndpoint, are passed to the Tasks service.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, timeout: APITimeout}, nil
}

// Load fetches every tasklist and its tasks, replacing what is held.
// Failing to list tasklists is returned; a tasklist whose tasks cannot be
// fetched is kept empty.
func (c *Client) Load(ctx context.Context) error {
	raw, err := c.listTasklists(ctx)
	if err != nil {
		return err
	}

	lists := make([]provider.Tasklist, 0, len(raw))
	for _, r := range raw {
		list, err := tasklistFromWire(r)
		if err != nil {
			log.Printf("googletasks: dropping tasklist: %v", err)
			continue
		}

		list.Tasks, err = c.listTasks(ctx, list.ID)
		if err != nil {
			log.Printf("googletasks: tasklist %s: %v", list.ID, err)
		}
		lists = append(lists, list)
	}

	c.Set(lists)
	log.Printf("googletasks: loaded %d tasklists", len(lists))
	return nil
}

// UpdateTask implements provider.Provider.
// The task is patched on the backend and its tasklist reloaded from there.
func (c *Client) UpdateTask(ctx context.Context, tasklistID string, task provider.Task) error {
	list, ok := c.Tasklist(tasklistID)
	if !ok {
		return fmt.Errorf("tasklist %s: %w", tasklistID, provider.ErrNotFound)
	}

	if err := c.patchTask(ctx, tasklistID, task); err != nil {
		if remote, ok := provider.IsRemote(err); ok && remote.IsNotFound() {
			// Deleted on the server: reload so the stale task goes away.
			if fresh, lerr := c.listTasks(ctx, tasklistID); lerr == nil {
				list.Tasks = fresh
				_ = c.Replace(list)
			}
			return fmt.Errorf("task %s: %w: %w", task.ID, provider.ErrNotFound, err)
		}
		return err
	}

	fresh, err := c.listTasks(ctx, tasklistID)
	if err != nil {
		return err
	}
	list.Tasks = fresh

	log.Printf("googletasks: updated task %s in %s (%s)", task.ID, tasklistID, task.Status)
	return c.Replace(list)
}

func (c *Client) patchTask(ctx context.Context, tasklistID string, task provider.Task) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.svc.Tasks.Patch(tasklistID, task.ID, taskToWire(task)).Context(ctx).Do()
	if err != nil {
		return wrapError("update task", err)
	}
	return nil
}

// listTasklists returns all raw tasklists in API order.
func (c *Client) listTasklists(ctx context.Context) ([]*tasks.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result []*tasks.TaskList
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		result = append(result, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, wrapError("list tasklists", err)
	}
	return result, nil
}

// listTasks returns the converted tasks of a list in API order, completed
// and hidden ones included.
func (c *Client) listTasks(ctx context.Context, tasklistID string) ([]provider.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result []provider.Task
	err := c.svc.Tasks.List(tasklistID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, raw := range resp.Items {
				task, err := taskFromWire(raw)
				if err != nil {
					log.Printf("googletasks: tasklist %s: dropping task: %v", tasklistID, err)
					continue
				}
				result = append(result, task)
			}
			return nil
		})
	if err != nil {
		return nil, wrapError("list tasks", err)
	}
	return result, nil
}

// wrapError turns an API error into a *provider.RemoteError carrying the
// HTTP status when there is one.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	remote := &provider.RemoteError{Op: op, Err: err}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		remote.StatusCode = apiErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		remote.Err = fmt.Errorf("request timed out: %w", err)
	}
	return remote
}
