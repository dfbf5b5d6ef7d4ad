// Package registry holds the static catalog of resume templates.
package registry

import (
	"fmt"
	"regexp"

	"resume-builder/internal/domain"
)

var builtin = []domain.TemplateDescriptor{
	{
		ID:            "blue-classic",
		Name:          "Blue Classic",
		Description:   "Clean single-column layout with blue accents.",
		PrimaryColor:  "#1E88E5",
		HeaderVariant: domain.HeaderStripTop,
	},
	{
		ID:            "sand-modern",
		Name:          "Sand Modern",
		Description:   "Soft sand accent with simple top header.",
		PrimaryColor:  "#BF8A44",
		HeaderVariant: domain.HeaderTitleLeftLine,
	},
	{
		ID:            "wine-block",
		Name:          "Wine Block",
		Description:   "Bold colored block header with white text.",
		PrimaryColor:  "#8E2342",
		HeaderVariant: domain.HeaderSolidBlock,
	},
	{
		ID:            "wine-minimal",
		Name:          "Wine Minimal",
		Description:   "Minimal layout with subtle top rule.",
		PrimaryColor:  "#B23860",
		HeaderVariant: domain.HeaderThinRule,
	},
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Registry is an immutable, ordered set of templates.
type Registry struct {
	templates []domain.TemplateDescriptor
	byID      map[string]int
}

// Default returns the built-in catalog.
func Default() *Registry {
	r, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a registry from descriptors. Ids must be unique and non-empty,
// colours must be hex values and variants must be known.
func New(templates []domain.TemplateDescriptor) (*Registry, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("registry: no templates")
	}
	r := &Registry{
		templates: append([]domain.TemplateDescriptor(nil), templates...),
		byID:      make(map[string]int, len(templates)),
	}
	for i, t := range r.templates {
		if t.ID == "" {
			return nil, fmt.Errorf("registry: template %d has no id", i)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate template id %q", t.ID)
		}
		if !hexColor.MatchString(t.PrimaryColor) {
			return nil, fmt.Errorf("registry: template %q has invalid color %q", t.ID, t.PrimaryColor)
		}
		if !t.HeaderVariant.Known() {
			return nil, fmt.Errorf("registry: template %q has unknown header variant %q", t.ID, t.HeaderVariant)
		}
		r.byID[t.ID] = i
	}
	return r, nil
}

// All returns a copy of the catalog in declaration order.
func (r *Registry) All() []domain.TemplateDescriptor {
	return append([]domain.TemplateDescriptor(nil), r.templates...)
}

// Lookup finds a template by id.
func (r *Registry) Lookup(id string) (domain.TemplateDescriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return domain.TemplateDescriptor{}, false
	}
	return r.templates[i], true
}

// Resolve returns the template with the given id, or the first catalog
// entry when the id is empty or unknown.
func (r *Registry) Resolve(id string) domain.TemplateDescriptor {
	if t, ok := r.Lookup(id); ok {
		return t
	}
	return r.templates[0]
}

// First returns the fallback template.
func (r *Registry) First() domain.TemplateDescriptor { return r.templates[0] }
