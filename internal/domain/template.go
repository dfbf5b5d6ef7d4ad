package domain

// HeaderVariant selects one of the fixed header arrangements.
type HeaderVariant string

const (
	HeaderStripTop      HeaderVariant = "strip-top"
	HeaderTitleLeftLine HeaderVariant = "title-left-line"
	HeaderSolidBlock    HeaderVariant = "solid-block"
	HeaderThinRule      HeaderVariant = "thin-rule"

	// DefaultHeaderVariant is used for unknown or missing variants.
	DefaultHeaderVariant = HeaderThinRule
)

// HeaderVariants lists every known variant in declaration order.
var HeaderVariants = []HeaderVariant{
	HeaderStripTop,
	HeaderTitleLeftLine,
	HeaderSolidBlock,
	HeaderThinRule,
}

// Known reports whether v is one of the declared variants.
func (v HeaderVariant) Known() bool {
	for _, k := range HeaderVariants {
		if v == k {
			return true
		}
	}
	return false
}

// TemplateDescriptor is the static visual configuration of a template.
type TemplateDescriptor struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PrimaryColor  string        `json:"primaryColor"`
	HeaderVariant HeaderVariant `json:"headerVariant"`
}
