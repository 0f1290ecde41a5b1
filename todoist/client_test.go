package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/doshmon/doshmon/model"
	"github.com/mongodb/grip"
	"github.com/stretchr/testify/suite"
)

func init() {
	grip.SetName("doshmon.todoist.client.test")
}

type fakeSyncServer struct {
	server *httptest.Server

	state        syncResponse
	archived     map[string][]Item
	syncStatus   map[string]interface{}
	failures     int
	failWith     int
	syncRequests []url.Values
}

func newFakeSyncServer() *fakeSyncServer {
	f := &fakeSyncServer{
		archived:   map[string][]Item{},
		syncStatus: map[string]interface{}{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeSyncServer) handle(w http.ResponseWriter, r *http.Request) {
	if f.failures > 0 {
		f.failures--
		w.WriteHeader(f.failWith)
		return
	}

	switch r.URL.Path {
	case "/sync":
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.syncRequests = append(f.syncRequests, r.PostForm)

		if r.PostForm.Get("commands") != "" {
			status := map[string]interface{}{}
			cmds := []Command{}
			if err := json.Unmarshal([]byte(r.PostForm.Get("commands")), &cmds); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			for _, cmd := range cmds {
				if override, ok := f.syncStatus[cmd.Type]; ok {
					status[cmd.UUID] = override
				} else {
					status[cmd.UUID] = "ok"
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"sync_status": status})
			return
		}

		_ = json.NewEncoder(w).Encode(f.state)
	case "/archive/items":
		_ = json.NewEncoder(w).Encode(archiveResponse{Items: f.archived[r.URL.Query().Get("section_id")]})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type ClientSuite struct {
	fake   *fakeSyncServer
	client *Client
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.fake = newFakeSyncServer()
	s.client = NewClient(s.fake.server.Client(), &model.TodoistConnectionInfo{
		RootURL: s.fake.server.URL,
		Token:   "test-token",
	})
}

func (s *ClientSuite) TearDownTest() {
	s.fake.server.Close()
}

func (s *ClientSuite) TestGetStateFiltersToProject() {
	s.fake.state = syncResponse{
		Projects: []Project{{ID: "p1", Name: "Dosh"}, {ID: "p2", Name: "Other"}},
		Sections: []Section{
			{ID: "s1", Name: "August 2026", ProjectID: "p1"},
			{ID: "s2", Name: "Backlog", ProjectID: "p1"},
			{ID: "s3", Name: "Elsewhere", ProjectID: "p2"},
		},
		Items: []Item{
			{ID: "t1", Content: "Rent £400", ProjectID: "p1", SectionID: "s1"},
			{ID: "t2", Content: "Other £5", ProjectID: "p2", SectionID: "s3"},
		},
	}
	s.fake.archived["s1"] = []Item{
		{ID: "t3", Content: "Paid £20", ProjectID: "p1", SectionID: "s1", Checked: true},
	}

	state, err := s.client.GetState(context.Background(), "p1")
	s.Require().NoError(err)

	s.Len(state.Projects, 1)
	s.Len(state.Sections, 2)
	s.Require().Len(state.Items, 2)
	s.Equal("t1", state.Items[0].ID)
	s.Equal("t3", state.Items[1].ID)
}

func (s *ClientSuite) TestGetStateSendsFullSyncRequest() {
	_, err := s.client.GetState(context.Background(), "p1")
	s.Require().NoError(err)

	s.Require().NotEmpty(s.fake.syncRequests)
	form := s.fake.syncRequests[0]
	s.Equal("*", form.Get("sync_token"))
	s.Equal(`["projects", "sections", "items"]`, form.Get("resource_types"))
}

func (s *ClientSuite) TestGetStateRetriesServerErrors() {
	s.fake.failures = 2
	s.fake.failWith = http.StatusInternalServerError

	_, err := s.client.GetState(context.Background(), "p1")
	s.NoError(err)
}

func (s *ClientSuite) TestGetStateUnauthorizedIsTerminal() {
	s.fake.failures = 1
	s.fake.failWith = http.StatusUnauthorized

	_, err := s.client.GetState(context.Background(), "p1")
	s.Require().Error(err)
	s.Contains(err.Error(), "access denied")
	// a terminal status consumes exactly one attempt
	s.Zero(s.fake.failures)
}

func (s *ClientSuite) TestCommitSendsBatchAndAcceptsOK() {
	commands := []Command{
		AddSection("August 2026 (£0.00 / £500)", "p1", RandomUUID()),
		RenameSection("s1", "Backlog"),
	}

	s.Require().NoError(s.client.Commit(context.Background(), commands))

	s.Require().Len(s.fake.syncRequests, 1)
	payload := s.fake.syncRequests[0].Get("commands")

	sent := []Command{}
	s.Require().NoError(json.Unmarshal([]byte(payload), &sent))
	s.Require().Len(sent, 2)
	s.Equal("section_add", sent[0].Type)
	s.NotEmpty(sent[0].TempID)
	s.NotEmpty(sent[0].UUID)
	s.Equal("section_update", sent[1].Type)
	s.Empty(sent[1].TempID)
}

func (s *ClientSuite) TestCommitSurfacesCommandFailures() {
	s.fake.syncStatus["section_update"] = map[string]interface{}{
		"error":      "Section not found",
		"error_code": 404,
	}

	err := s.client.Commit(context.Background(), []Command{RenameSection("gone", "Backlog")})
	s.Require().Error(err)
	s.Contains(err.Error(), "Section not found")
}

func (s *ClientSuite) TestCommitSkipsEmptyBatch() {
	s.NoError(s.client.Commit(context.Background(), nil))
	s.Empty(s.fake.syncRequests)
}

func (s *ClientSuite) TestGetURL() {
	s.Equal(s.fake.server.URL+"/sync", s.client.getURL("/sync"))
	s.Equal(s.fake.server.URL+"/sync", s.client.getURL("sync"))
}
