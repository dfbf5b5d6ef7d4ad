package domain

// Document is the fully composed visual representation of a resume. It is
// produced by the renderer and consumed by views and the exporter.
type Document struct {
	TemplateID string        `json:"templateId"`
	Accent     string        `json:"accent"`
	Variant    HeaderVariant `json:"variant"`
	Header     Header        `json:"header"`
	Sections   []Section     `json:"sections"`
}

// BandStyle is the accent decoration a header variant draws.
type BandStyle string

const (
	// BandStrip is a tall strip above the header plus an underline below it.
	BandStrip BandStyle = "strip"
	// BandPartialLine is a short accent line under the name block.
	BandPartialLine BandStyle = "partial-line"
	// BandBlock fills the whole header with the accent colour.
	BandBlock BandStyle = "block"
	// BandRule is a thin rule above the header.
	BandRule BandStyle = "rule"
)

type Header struct {
	Band      BandStyle `json:"band"`
	Badge     Badge     `json:"badge"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Address   string    `json:"address,omitempty"`
	NameColor string    `json:"nameColor,omitempty"`
	// Inverted means light text on the accent colour.
	Inverted bool `json:"inverted,omitempty"`
	// AddressBoxed puts the address in a bordered box under the header.
	AddressBoxed bool `json:"addressBoxed,omitempty"`
}

// Badge is the circular photo or initials marker of the header.
type Badge struct {
	Photo    Photo  `json:"photo,omitempty"`
	Initials string `json:"initials,omitempty"`
	Inverted bool   `json:"inverted,omitempty"`
	Bordered bool   `json:"bordered,omitempty"`
}

// HasPhoto reports whether the badge shows an image instead of initials.
func (b Badge) HasPhoto() bool { return len(b.Photo) > 0 }

type SectionKind string

const (
	SectionSummary    SectionKind = "summary"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
)

type Section struct {
	Kind    SectionKind `json:"kind"`
	Title   string      `json:"title"`
	Text    string      `json:"text,omitempty"`
	Entries []Entry     `json:"entries,omitempty"`
	Chips   []string    `json:"chips,omitempty"`
}

// Entry is one line item of the experience or education section.
type Entry struct {
	Heading     string `json:"heading"`
	Subheading  string `json:"subheading,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

// Section returns the first section of the given kind.
func (d *Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}
