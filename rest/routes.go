package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/budget"
	"github.com/doshmon/doshmon/model"
	"github.com/doshmon/doshmon/todoist"
	"github.com/doshmon/doshmon/units"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
)

////////////////////////////////////////////////////////////////////////
//
// GET /status

type StatusResponse struct {
	Revision string `json:"revision"`
	Project  string `json:"project"`
	Queue    struct {
		Running   bool `json:"running"`
		Pending   int  `json:"pending"`
		Completed int  `json:"completed"`
	} `json:"queue"`
}

func (s *Service) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := &StatusResponse{
		Revision: doshmon.BuildRevision,
		Project:  s.Conf.Project,
	}

	stats := s.queue.Stats(r.Context())
	resp.Queue.Running = s.queue.Info().Started
	resp.Queue.Pending = stats.Pending
	resp.Queue.Completed = stats.Completed

	gimlet.WriteJSON(w, resp)
}

////////////////////////////////////////////////////////////////////////
//
// GET /spend

type SpendResponse struct {
	Report *model.SpendReport `json:"report,omitempty"`
	Err    string             `json:"error,omitempty"`
}

func (s *Service) spendHandler(w http.ResponseWriter, r *http.Request) {
	resp := &SpendResponse{}

	client := utility.GetHTTPClient()
	defer utility.PutHTTPClient(client)

	api := todoist.NewClient(client, &s.Conf.Todoist)
	state, err := api.GetState(r.Context(), s.Conf.Project)
	if err != nil {
		resp.Err = fmt.Sprintf("problem fetching board state: %v", err)
		gimlet.WriteJSONInternalError(w, resp)
		return
	}

	resp.Report = budget.BuildSpendReport(state, s.Conf, time.Now())
	gimlet.WriteJSON(w, resp)
}

////////////////////////////////////////////////////////////////////////
//
// POST /housekeeping?dry_run=true

type HousekeepingResponse struct {
	JobID string `json:"job_id,omitempty"`
	Err   string `json:"error,omitempty"`
}

func (s *Service) runHousekeeping(w http.ResponseWriter, r *http.Request) {
	resp := &HousekeepingResponse{}

	dryRun := r.URL.Query().Get("dry_run") == "true"
	name := fmt.Sprintf("budget-housekeeping-manual-%d", time.Now().UnixNano())

	if err := s.queue.Put(r.Context(), units.NewHousekeepingJob(s.Conf, name, dryRun)); err != nil {
		resp.Err = fmt.Sprintf("problem enqueueing housekeeping job: %v", err)
		gimlet.WriteJSONError(w, resp)
		return
	}

	resp.JobID = name
	gimlet.WriteJSON(w, resp)
}
