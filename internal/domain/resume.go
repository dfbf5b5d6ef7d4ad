package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResumeData is the content of a resume. Every field is optional.
type ResumeData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         Skills           `json:"skills"`
}

type PersonalInfo struct {
	FullName  string `json:"fullName,omitempty"`
	Title     string `json:"title,omitempty"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Objective string `json:"objective,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Photo     Photo  `json:"photo,omitempty"`
}

type WorkExperience struct {
	Role        string `json:"role,omitempty"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	StartYear   Period `json:"startYear,omitempty"`
	StartDate   Period `json:"startDate,omitempty"`
	EndYear     Period `json:"endYear,omitempty"`
	EndDate     Period `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Start returns the start year, falling back to the start date.
func (w WorkExperience) Start() string {
	if s := w.StartYear.String(); s != "" {
		return s
	}
	return w.StartDate.String()
}

// End returns the end year, falling back to the end date.
func (w WorkExperience) End() string {
	if s := w.EndYear.String(); s != "" {
		return s
	}
	return w.EndDate.String()
}

// RoleName returns the role, or its title alias.
func (w WorkExperience) RoleName() string {
	if strings.TrimSpace(w.Role) != "" {
		return w.Role
	}
	return w.Title
}

type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	StartYear   Period `json:"startYear,omitempty"`
	EndYear     Period `json:"endYear,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Period is a year or date value. Forms send years as numbers or strings,
// so both decode into the same textual form.
type Period string

func (p Period) String() string { return strings.TrimSpace(string(p)) }

func (p *Period) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Period(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("period: expected string or number, got %s", string(b))
	}
	if i, err := n.Int64(); err == nil {
		*p = Period(strconv.FormatInt(i, 10))
		return nil
	}
	*p = Period(n.String())
	return nil
}

// Photo holds raw image bytes. It marshals as standard base64 and also
// accepts "data:image/...;base64," URLs on input.
type Photo []byte

func (p Photo) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(p))
}

func (p *Photo) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*p = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("photo: %w", err)
	}
	if s == "" {
		*p = nil
		return nil
	}
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 || !strings.Contains(s[:i], ";base64") {
			return fmt.Errorf("photo: unsupported data url")
		}
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("photo: %w", err)
	}
	*p = raw
	return nil
}

// Skills is an insertion-ordered set of labels.
type Skills []string

// Add appends a trimmed skill unless it is empty or already present.
func (s *Skills) Add(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || s.Contains(skill) {
		return false
	}
	*s = append(*s, skill)
	return true
}

func (s Skills) Contains(skill string) bool {
	for _, v := range s {
		if v == skill {
			return true
		}
	}
	return false
}

// Remove drops a skill, keeping the order of the rest.
func (s *Skills) Remove(skill string) {
	skill = strings.TrimSpace(skill)
	out := (*s)[:0]
	for _, v := range *s {
		if v != skill {
			out = append(out, v)
		}
	}
	*s = out
}

// Unique returns the skills with later duplicates and blanks dropped.
func (s Skills) Unique() []string {
	out := make([]string, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, v := range s {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *Skills) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	out := make(Skills, 0, len(raw))
	for _, v := range raw {
		out.Add(v)
	}
	*s = out
	return nil
}

// Clone returns a deep copy, so a stored snapshot never aliases the
// caller's slices.
func (d ResumeData) Clone() ResumeData {
	out := d
	if d.PersonalInfo.Photo != nil {
		out.PersonalInfo.Photo = append(Photo(nil), d.PersonalInfo.Photo...)
	}
	if d.WorkExperience != nil {
		out.WorkExperience = append([]WorkExperience(nil), d.WorkExperience...)
	}
	if d.Education != nil {
		out.Education = append([]Education(nil), d.Education...)
	}
	if d.Skills != nil {
		out.Skills = append(Skills(nil), d.Skills...)
	}
	return out
}

// EmptyResumeWarning is reported when saving a resume without content.
const EmptyResumeWarning = "resume looks empty"

// IsEmpty reports whether the resume carries no content at all.
func (d ResumeData) IsEmpty() bool {
	p := d.PersonalInfo
	for _, v := range []string{p.FullName, p.Title, p.Email, p.Mobile, p.Phone, p.Address, p.Objective, p.Summary} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return len(p.Photo) == 0 &&
		len(d.WorkExperience) == 0 &&
		len(d.Education) == 0 &&
		len(d.Skills) == 0
}
