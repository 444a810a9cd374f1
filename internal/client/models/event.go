// Package models defines the transient copies of server-owned records the
// console renders: events, guests and the dashboard overview.
package models

// Template selects the invitation layout of an event.
type Template string

const (
	TemplateClassic Template = "template1"
	TemplateModern  Template = "template2"
)

// DefaultTemplate is preselected when creating an event.
const DefaultTemplate = TemplateClassic

// Valid reports whether t is one of the known templates.
func (t Template) Valid() bool {
	return t == TemplateClassic || t == TemplateModern
}

// Admin is the owner reference embedded in events.
type Admin struct {
	ID    string `json:"_id,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type Event struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	GroomName   string   `json:"groomName"`
	BrideName   string   `json:"brideName"`
	Location    string   `json:"location"`
	Date        Date     `json:"date"`
	Description string   `json:"description,omitempty"`
	Template    Template `json:"template"`
	Admin       *Admin   `json:"adminId,omitempty"`
}

// EventInput is the payload of create and update calls.
type EventInput struct {
	Name        string   `json:"name"`
	GroomName   string   `json:"groomName"`
	BrideName   string   `json:"brideName"`
	Location    string   `json:"location"`
	Date        Date     `json:"date"`
	Description string   `json:"description"`
	Template    Template `json:"template"`
}

// Input returns the editable fields of e, used to prefill the edit form.
func (e Event) Input() EventInput {
	return EventInput{
		Name:        e.Name,
		GroomName:   e.GroomName,
		BrideName:   e.BrideName,
		Location:    e.Location,
		Date:        e.Date,
		Description: e.Description,
		Template:    e.Template,
	}
}
