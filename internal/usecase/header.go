package usecase

import (
	"strings"

	"resume-builder/internal/domain"
)

// headerFields is the variant-independent header content.
type headerFields struct {
	name     string
	title    string
	contact  string
	address  string
	photo    domain.Photo
	initials string
}

func headerContent(data domain.ResumeData) headerFields {
	p := data.PersonalInfo
	return headerFields{
		name:     orDefault(p.FullName, PlaceholderName),
		title:    PrimaryTitle(data),
		contact:  ContactLine(p),
		address:  strings.TrimSpace(p.Address),
		photo:    p.Photo,
		initials: Initials(p.FullName),
	}
}

// renderHeader dispatches on the variant. Unknown variants are resolved to
// domain.DefaultHeaderVariant by Render before this is called; the default
// branch covers direct callers.
func renderHeader(v domain.HeaderVariant, accent string, f headerFields) domain.Header {
	switch v {
	case domain.HeaderStripTop:
		return stripTopHeader(f)
	case domain.HeaderTitleLeftLine:
		return titleLeftLineHeader(accent, f)
	case domain.HeaderSolidBlock:
		return solidBlockHeader(f)
	case domain.HeaderThinRule:
		return thinRuleHeader(f)
	default:
		return thinRuleHeader(f)
	}
}

func badge(f headerFields, inverted, bordered bool) domain.Badge {
	b := domain.Badge{Inverted: inverted, Bordered: bordered}
	if len(f.photo) > 0 {
		b.Photo = f.photo
		return b
	}
	b.Initials = f.initials
	return b
}

func stripTopHeader(f headerFields) domain.Header {
	return domain.Header{
		Band:    domain.BandStrip,
		Badge:   badge(f, false, true),
		Name:    f.name,
		Title:   f.title,
		Contact: f.contact,
		Address: f.address,
	}
}

func titleLeftLineHeader(accent string, f headerFields) domain.Header {
	return domain.Header{
		Band:      domain.BandPartialLine,
		Badge:     badge(f, false, true),
		Name:      f.name,
		NameColor: accent,
		Title:     f.title,
		Contact:   f.contact,
		Address:   f.address,
	}
}

// solidBlockHeader draws light text on the accent block. Name and title are
// upper-cased and the address moves into a bordered box below the block.
func solidBlockHeader(f headerFields) domain.Header {
	return domain.Header{
		Band:         domain.BandBlock,
		Badge:        badge(f, true, false),
		Name:         strings.ToUpper(f.name),
		Title:        strings.ToUpper(f.title),
		Contact:      f.contact,
		Address:      f.address,
		Inverted:     true,
		AddressBoxed: f.address != "",
	}
}

func thinRuleHeader(f headerFields) domain.Header {
	return domain.Header{
		Band:    domain.BandRule,
		Badge:   badge(f, false, true),
		Name:    f.name,
		Title:   f.title,
		Contact: f.contact,
		Address: f.address,
	}
}
