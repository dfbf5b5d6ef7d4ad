package usecase

import (
	"strings"

	"resume-builder/internal/domain"
)

// Placeholders keep a template preview legible when data is missing.
const (
	PlaceholderName        = "Chris Candidate"
	PlaceholderInitials    = "CC"
	PlaceholderRole        = "Role"
	PlaceholderCompany     = "Company"
	PlaceholderDegree      = "Degree"
	PlaceholderInstitution = "Institution"

	contactSeparator = " • "
	rangeSeparator   = "–"
	entrySeparator   = " – "
)

// Render maps resume data and a template onto a document. It reads nothing
// but its arguments, so equal inputs always produce equal documents.
func Render(data domain.ResumeData, tpl domain.TemplateDescriptor) *domain.Document {
	variant := tpl.HeaderVariant
	if !variant.Known() {
		variant = domain.DefaultHeaderVariant
	}
	labels := sectionLabels(variant)

	doc := &domain.Document{
		TemplateID: tpl.ID,
		Accent:     tpl.PrimaryColor,
		Variant:    variant,
		Header:     renderHeader(variant, tpl.PrimaryColor, headerContent(data)),
	}

	p := data.PersonalInfo
	if summary := firstNonBlank(p.Objective, p.Summary); summary != "" {
		doc.Sections = append(doc.Sections, domain.Section{
			Kind:  domain.SectionSummary,
			Title: labels.title(labels.summary),
			Text:  summary,
		})
	}

	if len(data.WorkExperience) > 0 {
		s := domain.Section{Kind: domain.SectionExperience, Title: labels.title(labels.experience)}
		for _, w := range data.WorkExperience {
			s.Entries = append(s.Entries, domain.Entry{
				Heading:     orDefault(w.RoleName(), PlaceholderRole) + entrySeparator + orDefault(w.Company, PlaceholderCompany),
				Dates:       DateRange(w.Start(), w.End()),
				Description: strings.TrimSpace(w.Description),
			})
		}
		doc.Sections = append(doc.Sections, s)
	}

	if len(data.Education) > 0 {
		s := domain.Section{Kind: domain.SectionEducation, Title: labels.title(labels.education)}
		for _, e := range data.Education {
			s.Entries = append(s.Entries, domain.Entry{
				Heading:    orDefault(e.Degree, PlaceholderDegree),
				Subheading: orDefault(e.Institution, PlaceholderInstitution),
				Dates:      DateRange(e.StartYear.String(), e.EndYear.String()),
			})
		}
		doc.Sections = append(doc.Sections, s)
	}

	if chips := data.Skills.Unique(); len(chips) > 0 {
		doc.Sections = append(doc.Sections, domain.Section{
			Kind:  domain.SectionSkills,
			Title: labels.title(labels.skills),
			Chips: chips,
		})
	}

	return doc
}

// Initials takes the first letter of every whitespace-separated token of
// the name, upper-cased. A blank name yields the placeholder.
func Initials(fullName string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(fullName) {
		r := []rune(tok)[0]
		b.WriteString(strings.ToUpper(string(r)))
	}
	if b.Len() == 0 {
		return PlaceholderInitials
	}
	return b.String()
}

// PrimaryTitle is the first work role, else the personal title, else empty.
func PrimaryTitle(data domain.ResumeData) string {
	if len(data.WorkExperience) > 0 {
		if role := strings.TrimSpace(data.WorkExperience[0].RoleName()); role != "" {
			return role
		}
	}
	return strings.TrimSpace(data.PersonalInfo.Title)
}

// ContactLine joins email and phone. The separator only appears when both
// are present.
func ContactLine(p domain.PersonalInfo) string {
	email := strings.TrimSpace(p.Email)
	phone := firstNonBlank(p.Mobile, p.Phone)
	switch {
	case email != "" && phone != "":
		return email + contactSeparator + phone
	case email != "":
		return email
	default:
		return phone
	}
}

// DateRange formats a start/end pair. Either side may be missing; the
// separator is shown whenever at least one side is present.
func DateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " " + rangeSeparator
	case start == "":
		return rangeSeparator + " " + end
	default:
		return start + " " + rangeSeparator + " " + end
	}
}

type labelSet struct {
	summary, experience, education, skills string
	upper                                  bool
}

func (l labelSet) title(s string) string {
	if l.upper {
		return strings.ToUpper(s)
	}
	return s
}

func sectionLabels(v domain.HeaderVariant) labelSet {
	if v == domain.HeaderSolidBlock {
		return labelSet{
			summary:    "Profile",
			experience: "Professional Experience",
			education:  "Education",
			skills:     "Key Skills",
			upper:      true,
		}
	}
	return labelSet{
		summary:    "Summary",
		experience: "Work Experience",
		education:  "Education",
		skills:     "Skills",
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
