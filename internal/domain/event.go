package domain

import (
	"context"
	"fmt"
	"time"
)

// Field names an EventForm input. Values match the JSON field names.
type Field string

const (
	FieldTitle         Field = "title"
	FieldPhoneNumber   Field = "phoneNumber"
	FieldDateTime      Field = "dateTime"
	FieldLocation      Field = "location"
	FieldCostPerPerson Field = "costPerPerson"
	FieldDescription   Field = "description"
)

// Fields lists every EventForm field in display order.
var Fields = []Field{FieldTitle, FieldPhoneNumber, FieldDateTime, FieldLocation, FieldCostPerPerson, FieldDescription}

// EventForm holds the user-entered event details. Cost is kept as a string
// for input binding and parsed only when validated.
// swagger:model EventForm
type EventForm struct {
	Title         string `json:"title"`
	PhoneNumber   string `json:"phoneNumber"`
	DateTime      string `json:"dateTime"`
	Location      string `json:"location"`
	CostPerPerson string `json:"costPerPerson"`
	Description   string `json:"description"`
}

// HasContent reports whether at least one field is non-empty.
func (f EventForm) HasContent() bool {
	return f.Title != "" || f.PhoneNumber != "" || f.DateTime != "" ||
		f.Location != "" || f.CostPerPerson != "" || f.Description != ""
}

// HasAutoSaveContent is HasContent without the cost: a cost alone does not
// start an auto-save.
func (f EventForm) HasAutoSaveContent() bool {
	return f.Title != "" || f.PhoneNumber != "" || f.DateTime != "" ||
		f.Location != "" || f.Description != ""
}

// Get returns the value of the named field.
func (f EventForm) Get(field Field) string {
	switch field {
	case FieldTitle:
		return f.Title
	case FieldPhoneNumber:
		return f.PhoneNumber
	case FieldDateTime:
		return f.DateTime
	case FieldLocation:
		return f.Location
	case FieldCostPerPerson:
		return f.CostPerPerson
	case FieldDescription:
		return f.Description
	}
	return ""
}

// FormPatch is a partial EventForm update. Nil fields are left unchanged.
type FormPatch struct {
	Title         *string
	PhoneNumber   *string
	DateTime      *string
	Location      *string
	CostPerPerson *string
	Description   *string
}

// PatchField builds a FormPatch that sets a single field.
func PatchField(field Field, value string) (FormPatch, error) {
	var p FormPatch
	switch field {
	case FieldTitle:
		p.Title = &value
	case FieldPhoneNumber:
		p.PhoneNumber = &value
	case FieldDateTime:
		p.DateTime = &value
	case FieldLocation:
		p.Location = &value
	case FieldCostPerPerson:
		p.CostPerPerson = &value
	case FieldDescription:
		p.Description = &value
	default:
		return FormPatch{}, fmt.Errorf("unknown field %q", field)
	}
	return p, nil
}

// Apply returns f with the patch merged in.
func (p FormPatch) Apply(f EventForm) EventForm {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.PhoneNumber != nil {
		f.PhoneNumber = *p.PhoneNumber
	}
	if p.DateTime != nil {
		f.DateTime = *p.DateTime
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.CostPerPerson != nil {
		f.CostPerPerson = *p.CostPerPerson
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	return f
}

// EventPayload is the body of the save-draft and publish calls.
// swagger:model EventPayload
type EventPayload struct {
	EventForm
	DraftID            string `json:"draftId,omitempty"`
	FlyerImageURL      string `json:"flyerImageUrl,omitempty"`
	BackgroundImageURL string `json:"backgroundImageUrl,omitempty"`
}

// Draft is a server-persisted, unpublished snapshot of an event form.
// swagger:model Draft
type Draft struct {
	EventPayload
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event is a published event.
// swagger:model Event
type Event struct {
	EventPayload
	EventID     string    `json:"eventId"`
	EventURL    string    `json:"eventUrl"`
	PublishedAt time.Time `json:"publishedAt"`
}

// DraftSaved is the response of a successful save-draft call.
type DraftSaved struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	DraftID   string    `json:"draftId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Published is the response of a successful publish call.
type Published struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
	EventID     string    `json:"eventId"`
	EventURL    string    `json:"eventUrl"`
	PublishedAt time.Time `json:"publishedAt"`
}

// ValidationResult is the outcome of a remote validation round-trip.
// swagger:model ValidationResult
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

// EventAPI is the backend collaborator used by the form client.
type EventAPI interface {
	SaveDraft(ctx context.Context, payload EventPayload) (*DraftSaved, error)
	GetDraft(ctx context.Context, draftID string) (*Draft, error)
	PublishEvent(ctx context.Context, payload EventPayload) (*Published, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ValidateEvent(ctx context.Context, form EventForm) (*ValidationResult, error)
	UploadImage(ctx context.Context, kind ImageKind, filename string, data []byte) (*UploadResult, error)
	ModuleConfigs(ctx context.Context) ([]ModuleConfig, error)
	SaveModuleData(ctx context.Context, moduleID string, data map[string]any) (*ModuleSaved, error)
}

// DraftRepository defines the interface for draft storage
type DraftRepository interface {
	Upsert(ctx context.Context, draft *Draft) error
	GetByID(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// EventRepository defines the interface for published event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
}

// EventStream announces published events to downstream consumers.
type EventStream interface {
	Announce(ctx context.Context, event *Event) error
}

// DraftService defines the backend business logic for drafts.
type DraftService interface {
	SaveDraft(ctx context.Context, payload EventPayload) (*Draft, error)
	GetDraft(ctx context.Context, draftID string) (*Draft, error)
}

// EventService defines the backend business logic for validation and publishing.
type EventService interface {
	Validate(ctx context.Context, form EventForm) ValidationResult
	Publish(ctx context.Context, payload EventPayload) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
}
