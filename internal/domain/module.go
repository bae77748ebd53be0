package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ModuleType identifies a kind of optional form section.
type ModuleType string

const (
	ModuleCapacity      ModuleType = "capacity"
	ModuleLinks         ModuleType = "links"
	ModulePhotoGallery  ModuleType = "photo-gallery"
	ModulePrivacy       ModuleType = "privacy"
	ModuleAnnouncements ModuleType = "announcements"
	ModuleRSVP          ModuleType = "rsvp"
)

// ModuleRef identifies an active module instance. The type is carried
// explicitly and never recovered from the key string.
type ModuleRef struct {
	Type       ModuleType `json:"type"`
	InstanceID string     `json:"instanceId"`
}

// Key returns the composite "{type}_{instanceId}" id used for module data
// and the module API path.
func (r ModuleRef) Key() string {
	return string(r.Type) + "_" + r.InstanceID
}

func (r ModuleRef) String() string { return r.Key() }

// ModuleConfig is an immutable registry entry describing a module type.
// MaxInstances of 0 means unlimited.
// swagger:model ModuleConfig
type ModuleConfig struct {
	ID           string         `json:"id"`
	Type         ModuleType     `json:"type"`
	Label        string         `json:"label"`
	Icon         string         `json:"icon"`
	Description  string         `json:"description"`
	MaxInstances int            `json:"maxInstances,omitempty"`
	DefaultData  map[string]any `json:"defaultData"`
}

// ModuleSaved is the response of a successful module save.
type ModuleSaved struct {
	Success  bool      `json:"success"`
	ModuleID string    `json:"moduleId"`
	SavedAt  time.Time `json:"savedAt"`
}

// CapacityData is the data shape of a capacity module.
type CapacityData struct {
	Capacity int `json:"capacity"`
}

// Link is a labelled URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// LinksData is the data shape of a links module.
type LinksData struct {
	Links []Link `json:"links"`
}

// Photo is one gallery entry.
type Photo struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// PhotoGalleryData is the data shape of a photo gallery module.
type PhotoGalleryData struct {
	Photos []Photo `json:"photos"`
}

// PrivacyData is the data shape of a privacy module.
type PrivacyData struct {
	IsPrivate      bool     `json:"isPrivate"`
	AllowedDomains []string `json:"allowedDomains,omitempty"`
}

// Announcement is one announcement entry.
type Announcement struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// AnnouncementsData is the data shape of an announcements module.
type AnnouncementsData struct {
	Announcements []Announcement `json:"announcements"`
}

// RSVPQuestion is a custom question asked on RSVP.
type RSVPQuestion struct {
	Question string `json:"question"`
	Type     string `json:"type"`
}

// RSVPData is the data shape of an RSVP module.
type RSVPData struct {
	RequireRSVP     bool           `json:"requireRSVP"`
	Deadline        string         `json:"deadline,omitempty"`
	CustomQuestions []RSVPQuestion `json:"customQuestions,omitempty"`
}

// DecodeModuleData converts a generic module record into a typed view.
func DecodeModuleData(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal module data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode module data: %w", err)
	}
	return nil
}

// EncodeModuleData converts a typed view into a generic module record.
func EncodeModuleData(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal module data: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode module data: %w", err)
	}
	return out, nil
}

// CloneModuleData returns a deep copy of a JSON-like record.
func CloneModuleData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneModuleData(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// ModuleDataRepository defines the interface for module data storage
type ModuleDataRepository interface {
	Save(ctx context.Context, moduleID string, data map[string]any, savedAt time.Time) error
}

// ModuleService defines the backend business logic for modules.
type ModuleService interface {
	Configs(ctx context.Context) []ModuleConfig
	SaveData(ctx context.Context, moduleID string, data map[string]any) (*ModuleSaved, error)
}
