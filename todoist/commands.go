package todoist

import (
	"github.com/google/uuid"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// Command is a single Sync API write operation. Commands are batched
// and submitted together with Client.Commit.
type Command struct {
	Type   string      `json:"type"`
	TempID string      `json:"temp_id,omitempty"`
	UUID   string      `json:"uuid"`
	Args   interface{} `json:"args"`
}

// SectionOrder pairs a section with its position for a reorder
// command.
type SectionOrder struct {
	ID           string `json:"id"`
	SectionOrder int    `json:"section_order"`
}

// RandomUUID returns a fresh identifier suitable for command UUIDs and
// temp ids.
func RandomUUID() string { return uuid.New().String() }

func queued(cmd Command) Command {
	grip.Debug(message.Fields{
		"message": "queued command",
		"uuid":    cmd.UUID,
		"type":    cmd.Type,
		"args":    cmd.Args,
	})
	return cmd
}

// AddSection creates a section in the given project. The temp id lets
// later commands in the same batch reference the new section.
func AddSection(name, projectID, tempID string) Command {
	return queued(Command{
		Type:   "section_add",
		TempID: tempID,
		UUID:   RandomUUID(),
		Args: map[string]interface{}{
			"name":       name,
			"project_id": projectID,
		},
	})
}

// MoveItem moves a task into the given section.
func MoveItem(itemID, sectionID string) Command {
	return queued(Command{
		Type: "item_move",
		UUID: RandomUUID(),
		Args: map[string]interface{}{
			"id":         itemID,
			"section_id": sectionID,
		},
	})
}

// ReorderSections assigns positions to every section in the order
// given.
func ReorderSections(order []SectionOrder) Command {
	return queued(Command{
		Type: "section_reorder",
		UUID: RandomUUID(),
		Args: map[string]interface{}{
			"sections": order,
		},
	})
}

// RenameSection retitles the given section.
func RenameSection(sectionID, name string) Command {
	return queued(Command{
		Type: "section_update",
		UUID: RandomUUID(),
		Args: map[string]interface{}{
			"id":   sectionID,
			"name": name,
		},
	})
}

// ArchiveSection archives the given section and everything left in it.
func ArchiveSection(sectionID string) Command {
	return queued(Command{
		Type: "section_archive",
		UUID: RandomUUID(),
		Args: map[string]interface{}{
			"id": sectionID,
		},
	})
}
