package todoist

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doshmon/doshmon/model"
	"github.com/jpillora/backoff"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const requestTimeout = 30 * time.Second

// Client holds the credentials for the Todoist Sync API.
type Client struct {
	apiRoot    string
	httpClient *http.Client
	token      string
	maxRetries int
}

// NewClient constructs a new Client using the parameters given.
func NewClient(httpClient *http.Client, info *model.TodoistConnectionInfo) *Client {
	return &Client{
		apiRoot:    strings.TrimRight(info.RootURL, "/"),
		httpClient: httpClient,
		token:      info.Token,
		maxRetries: 5,
	}
}

// getURL returns a URL for the given path.
func (c *Client) getURL(path string) string {
	return c.apiRoot + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) getBackoff() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    250 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}
}

func (c *Client) retryRequest(ctx context.Context, method, path string, form url.Values) (*http.Response, error) {
	if method == "" || path == "" {
		return nil, errors.New("invalid request")
	}

	backoff := c.getBackoff()
	timer := time.NewTimer(0)
	defer timer.Stop()
	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return nil, errors.New("request canceled")
		case <-timer.C:
			resp, err := c.doReq(ctx, method, path, form)
			if err != nil {
				grip.Warningf("request %s of %s encountered error '%v'; retrying", method, path, err)
			} else if resp == nil {
				grip.Warningf("request %s of %s encountered nil result; retrying", method, path)
			} else if resp.StatusCode == http.StatusOK {
				return resp, nil
			} else if resp.StatusCode == http.StatusNotFound {
				return nil, errors.Errorf("%s resource (%s) is not found", path, method)
			} else if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return nil, errors.Errorf("access denied for %s of %s", method, path)
			} else { // nolint
				grip.Infof("problem with status %d on request %s of %s, retrying", resp.StatusCode, method, path)
			}

			timer.Reset(backoff.Duration())
		}
	}

	return nil, errors.Errorf("%d of %d reached maximum retries", c.maxRetries, c.maxRetries)
}

// doReq performs a request of the given method type against path. If
// form is not nil, it is sent as a url-encoded request body with the
// appropriate header.
func (c *Client) doReq(ctx context.Context, method, path string, form url.Values) (*http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	startAt := time.Now()
	url := c.getURL(path)
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+c.token)
	if form != nil {
		req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	}
	req = req.WithContext(ctx)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.Errorf("empty response from server for %s request for URL %s", method, url)
	}
	if resp.StatusCode != http.StatusOK {
		msg := message.Fields{
			"status":   resp.Status,
			"code":     resp.StatusCode,
			"path":     url,
			"method":   method,
			"duration": time.Since(startAt).String(),
		}
		defer resp.Body.Close()
		if data, err := io.ReadAll(resp.Body); err == nil {
			doc := struct {
				Error string `json:"error"`
			}{}
			if err := json.Unmarshal(data, &doc); err == nil && doc.Error != "" {
				msg["error"] = doc.Error
			} else {
				msg["body"] = string(data)
			}
		}

		grip.Warning(msg)
		return resp, nil
	}

	grip.Debug(message.Fields{
		"method":   method,
		"url":      url,
		"duration": time.Since(startAt).String(),
	})

	return resp, nil
}

// do performs a request for path, retrying transient failures, and
// returns the response body.
func (c *Client) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.retryRequest(ctx, method, path, form)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "problem reading response")
	}

	return out, nil
}

// GetState fetches a full snapshot of the given project: the project
// itself, its sections, and its tasks including completed ones from
// the per-section archives.
func (c *Client) GetState(ctx context.Context, projectID string) (*State, error) {
	form := url.Values{}
	form.Set("sync_token", "*")
	form.Set("resource_types", `["projects", "sections", "items"]`)

	out, err := c.do(ctx, http.MethodPost, "/sync", form)
	if err != nil {
		return nil, errors.Wrap(err, "problem fetching sync state")
	}

	resp := syncResponse{}
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, errors.Wrap(err, "problem parsing sync state")
	}

	state := &State{
		Projects: resp.Projects,
		Sections: resp.Sections,
		Items:    resp.Items,
	}

	for _, section := range resp.Sections {
		if projectID != "" && section.ProjectID != projectID {
			continue
		}

		archived, err := c.getArchivedItems(ctx, section.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "problem fetching archived items for section %s", section.ID)
		}
		state.Items = append(state.Items, archived...)
	}

	if projectID != "" {
		state.filterProject(projectID)
	}

	grip.Info(message.Fields{
		"message":  "fetched project state",
		"project":  projectID,
		"sections": len(state.Sections),
		"items":    len(state.Items),
	})

	return state, nil
}

func (c *Client) getArchivedItems(ctx context.Context, sectionID string) ([]Item, error) {
	out, err := c.do(ctx, http.MethodGet, "/archive/items?section_id="+url.QueryEscape(sectionID), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp := archiveResponse{}
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, errors.Wrap(err, "problem parsing archived items")
	}

	return resp.Items, nil
}

// Commit sends the given command batch to the Sync API in a single
// request and surfaces any per-command failures.
func (c *Client) Commit(ctx context.Context, commands []Command) error {
	if len(commands) == 0 {
		return nil
	}

	payload, err := json.Marshal(commands)
	if err != nil {
		return errors.Wrap(err, "problem rendering commands")
	}

	form := url.Values{}
	form.Set("commands", string(payload))

	grip.Debugf("running update with %d commands", len(commands))
	out, err := c.do(ctx, http.MethodPost, "/sync", form)
	if err != nil {
		return errors.Wrap(err, "problem committing commands")
	}

	resp := struct {
		SyncStatus map[string]json.RawMessage `json:"sync_status"`
	}{}
	if err := json.Unmarshal(out, &resp); err != nil {
		return errors.Wrap(err, "problem parsing commit result")
	}

	catcher := grip.NewBasicCatcher()
	for uuid, status := range resp.SyncStatus {
		if string(status) == `"ok"` {
			continue
		}

		cmdErr := struct {
			Error     string `json:"error"`
			ErrorCode int    `json:"error_code"`
		}{}
		if err := json.Unmarshal(status, &cmdErr); err != nil {
			catcher.Add(errors.Errorf("command %s failed: %s", uuid, string(status)))
			continue
		}
		catcher.Add(errors.Errorf("command %s failed with code %d: %s", uuid, cmdErr.ErrorCode, cmdErr.Error))
	}

	grip.InfoWhen(!catcher.HasErrors(), message.Fields{
		"message":  "update complete",
		"commands": len(commands),
	})

	return catcher.Resolve()
}
