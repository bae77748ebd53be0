// Package registry is the catalog of module types that can be attached to
// an event, plus the policies deciding which of them can still be added.
package registry

import (
	"context"
	"slices"

	"eventcreator/internal/domain"
)

// VisibleCollapsed is how many addable modules are offered before the user
// expands the list.
const VisibleCollapsed = 3

// Registry is an immutable, ordered set of module configs.
type Registry struct {
	configs []domain.ModuleConfig
}

// New returns a Registry over configs, preserving their order.
func New(configs []domain.ModuleConfig) *Registry {
	cp := make([]domain.ModuleConfig, len(configs))
	for i, c := range configs {
		c.DefaultData = domain.CloneModuleData(c.DefaultData)
		cp[i] = c
	}
	return &Registry{configs: cp}
}

// Default returns the built-in catalog.
func Default() *Registry {
	return New(DefaultConfigs())
}

// DefaultConfigs returns a fresh copy of the built-in module configs.
func DefaultConfigs() []domain.ModuleConfig {
	return []domain.ModuleConfig{
		{
			ID:           "capacity",
			Type:         domain.ModuleCapacity,
			Label:        "Capacity",
			Icon:         "👥",
			Description:  "Set guest capacity",
			MaxInstances: 1,
			DefaultData:  map[string]any{"capacity": 0},
		},
		{
			ID:           "links",
			Type:         domain.ModuleLinks,
			Label:        "Links",
			Icon:         "🔗",
			Description:  "Add custom links",
			MaxInstances: 1,
			DefaultData:  map[string]any{"links": []any{map[string]any{"label": "", "url": ""}}},
		},
		{
			ID:          "photo-gallery",
			Type:        domain.ModulePhotoGallery,
			Label:       "Photo Gallery",
			Icon:        "📸",
			Description: "Add photo gallery",
			DefaultData: map[string]any{"photos": []any{}},
		},
		{
			ID:           "privacy",
			Type:         domain.ModulePrivacy,
			Label:        "Privacy",
			Icon:         "🔒",
			Description:  "Privacy settings",
			MaxInstances: 1,
			DefaultData:  map[string]any{"isPrivate": false},
		},
		{
			ID:          "announcements",
			Type:        domain.ModuleAnnouncements,
			Label:       "Announcements",
			Icon:        "📢",
			Description: "Add announcements",
			DefaultData: map[string]any{"announcements": []any{}},
		},
		{
			ID:           "rsvp",
			Type:         domain.ModuleRSVP,
			Label:        "RSVP",
			Icon:         "✉️",
			Description:  "RSVP management",
			MaxInstances: 1,
			DefaultData:  map[string]any{"requireRSVP": true},
		},
	}
}

// AllConfigs returns every config in catalog order.
func (r *Registry) AllConfigs() []domain.ModuleConfig {
	out := make([]domain.ModuleConfig, len(r.configs))
	for i, c := range r.configs {
		c.DefaultData = domain.CloneModuleData(c.DefaultData)
		out[i] = c
	}
	return out
}

// Config looks up the config for a module type.
func (r *Registry) Config(t domain.ModuleType) (domain.ModuleConfig, bool) {
	i := slices.IndexFunc(r.configs, func(c domain.ModuleConfig) bool { return c.Type == t })
	if i < 0 {
		return domain.ModuleConfig{}, false
	}
	c := r.configs[i]
	c.DefaultData = domain.CloneModuleData(c.DefaultData)
	return c, true
}

// DefaultData returns a deep copy of the default record for t.
func (r *Registry) DefaultData(t domain.ModuleType) (map[string]any, bool) {
	c, ok := r.Config(t)
	if !ok {
		return nil, false
	}
	return c.DefaultData, true
}

// CanAdd reports whether another instance of t fits under its limit.
func (r *Registry) CanAdd(t domain.ModuleType, active []domain.ModuleRef) bool {
	c, ok := r.Config(t)
	return ok && underLimit(c, active)
}

// Addable returns the configs that can still be added given the active modules.
func (r *Registry) Addable(active []domain.ModuleRef) []domain.ModuleConfig {
	var out []domain.ModuleConfig
	for _, c := range r.AllConfigs() {
		if underLimit(c, active) {
			out = append(out, c)
		}
	}
	return out
}

func underLimit(c domain.ModuleConfig, active []domain.ModuleRef) bool {
	if c.MaxInstances <= 0 {
		return true
	}
	count := 0
	for _, ref := range active {
		if ref.Type == c.Type {
			count++
		}
	}
	return count < c.MaxInstances
}

// Visible applies the "top 3, then expand" policy to the addable configs.
// showToggle reports whether there is anything to expand or collapse.
func Visible(addable []domain.ModuleConfig, showMore bool) (visible []domain.ModuleConfig, showToggle bool) {
	showToggle = len(addable) > VisibleCollapsed
	if showMore || !showToggle {
		return addable, showToggle
	}
	return addable[:VisibleCollapsed], showToggle
}

// Source yields the registry to use for the current operation.
type Source interface {
	Registry(ctx context.Context) *Registry
}

type staticSource struct{ r *Registry }

// Static returns a Source that always yields r.
func Static(r *Registry) Source { return staticSource{r: r} }

func (s staticSource) Registry(context.Context) *Registry { return s.r }
