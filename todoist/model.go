package todoist

// Project is a Todoist project as returned by the Sync API.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsArchived bool   `json:"is_archived"`
	IsDeleted  bool   `json:"is_deleted"`
}

// Section is a Todoist section as returned by the Sync API.
type Section struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProjectID    string `json:"project_id"`
	SectionOrder int    `json:"section_order"`
	IsArchived   bool   `json:"is_archived"`
	IsDeleted    bool   `json:"is_deleted"`
}

// Item is a Todoist task as returned by the Sync API. Completed tasks
// from the section archives carry Checked.
type Item struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	ProjectID string `json:"project_id"`
	SectionID string `json:"section_id"`
	Checked   bool   `json:"checked"`
	IsDeleted bool   `json:"is_deleted"`
}

// State is a point-in-time snapshot of a project's board: its
// sections, and its tasks including completed ones pulled from the
// per-section archives.
type State struct {
	Projects []Project `json:"projects"`
	Sections []Section `json:"sections"`
	Items    []Item    `json:"items"`
}

// SectionItems returns the tasks assigned to the given section.
func (s *State) SectionItems(sectionID string) []Item {
	var out []Item
	for _, item := range s.Items {
		if item.SectionID == sectionID {
			out = append(out, item)
		}
	}
	return out
}

// OpenSectionItems returns the tasks in the given section that are
// neither completed nor deleted.
func (s *State) OpenSectionItems(sectionID string) []Item {
	var out []Item
	for _, item := range s.SectionItems(sectionID) {
		if !item.Checked && !item.IsDeleted {
			out = append(out, item)
		}
	}
	return out
}

func (s *State) filterProject(projectID string) {
	projects := make([]Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		if p.ID == projectID {
			projects = append(projects, p)
		}
	}

	sections := make([]Section, 0, len(s.Sections))
	for _, sec := range s.Sections {
		if sec.ProjectID == projectID {
			sections = append(sections, sec)
		}
	}

	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProjectID == projectID {
			items = append(items, item)
		}
	}

	s.Projects = projects
	s.Sections = sections
	s.Items = items
}

type syncResponse struct {
	SyncToken string    `json:"sync_token"`
	Projects  []Project `json:"projects"`
	Sections  []Section `json:"sections"`
	Items     []Item    `json:"items"`
}

type archiveResponse struct {
	Items   []Item `json:"items"`
	HasMore bool   `json:"has_more"`
}
