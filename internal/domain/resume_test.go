package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodAcceptsStringsNumbersAndNull(t *testing.T) {
	var w WorkExperience
	require.NoError(t, json.Unmarshal([]byte(`{"startYear": 2020, "endYear": " 2022 ", "startDate": null, "endDate": "2022-03"}`), &w))
	assert.Equal(t, "2020", w.StartYear.String())
	assert.Equal(t, "2022", w.EndYear.String())
	assert.Equal(t, "", w.StartDate.String())
	assert.Equal(t, "2020", w.Start())
	assert.Equal(t, "2022", w.End())

	var e Education
	require.NoError(t, json.Unmarshal([]byte(`{"startYear": 2019.5}`), &e))
	assert.Equal(t, "2019.5", e.StartYear.String())

	assert.Error(t, json.Unmarshal([]byte(`{"startYear": true}`), &e))
}

func TestWorkExperienceFallbacks(t *testing.T) {
	w := WorkExperience{Title: "Analyst", StartDate: "2018-01", EndDate: "2019-02"}
	assert.Equal(t, "Analyst", w.RoleName())
	assert.Equal(t, "2018-01", w.Start())
	assert.Equal(t, "2019-02", w.End())

	w.Role = "Engineer"
	assert.Equal(t, "Engineer", w.RoleName())
}

func TestPhotoJSON(t *testing.T) {
	raw := Photo{0x89, 'P', 'N', 'G', 0x00}

	b, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.Equal(t, `"iVBORwA="`, string(b))

	var p Photo
	require.NoError(t, json.Unmarshal(b, &p))
	assert.Equal(t, raw, p)

	require.NoError(t, json.Unmarshal([]byte(`"data:image/png;base64,iVBORwA="`), &p))
	assert.Equal(t, raw, p)

	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Nil(t, p)

	assert.Error(t, json.Unmarshal([]byte(`"data:image/png,iVBORwA="`), &p))
	assert.Error(t, json.Unmarshal([]byte(`"not base64!"`), &p))

	b, err = json.Marshal(Photo(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestSkillsSet(t *testing.T) {
	var s Skills
	assert.True(t, s.Add(" Go "))
	assert.True(t, s.Add("SQL"))
	assert.False(t, s.Add("Go"))
	assert.False(t, s.Add("   "))
	assert.Equal(t, Skills{"Go", "SQL"}, s)

	s.Remove(" Go")
	assert.Equal(t, Skills{"SQL"}, s)
	assert.False(t, s.Contains("Go"))

	var decoded Skills
	require.NoError(t, json.Unmarshal([]byte(`["Rust", "C++", "Rust", ""]`), &decoded))
	assert.Equal(t, Skills{"Rust", "C++"}, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"Rust"`), &decoded))
}

func TestCloneDoesNotAlias(t *testing.T) {
	d := ResumeData{
		PersonalInfo:   PersonalInfo{FullName: "Ada", Photo: Photo{1, 2, 3}},
		WorkExperience: []WorkExperience{{Role: "Engineer"}},
		Education:      []Education{{Degree: "BSc"}},
		Skills:         Skills{"Go"},
	}
	c := d.Clone()
	assert.Equal(t, d, c)

	c.PersonalInfo.Photo[0] = 9
	c.WorkExperience[0].Role = "Manager"
	c.Education[0].Degree = "MSc"
	c.Skills[0] = "Rust"

	assert.Equal(t, byte(1), d.PersonalInfo.Photo[0])
	assert.Equal(t, "Engineer", d.WorkExperience[0].Role)
	assert.Equal(t, "BSc", d.Education[0].Degree)
	assert.Equal(t, "Go", d.Skills[0])
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, ResumeData{}.IsEmpty())
	assert.True(t, ResumeData{PersonalInfo: PersonalInfo{FullName: "  "}}.IsEmpty())
	assert.False(t, ResumeData{PersonalInfo: PersonalInfo{Email: "a@b.c"}}.IsEmpty())
	assert.False(t, ResumeData{Skills: Skills{"Go"}}.IsEmpty())
}

func TestHeaderVariantKnown(t *testing.T) {
	for _, v := range HeaderVariants {
		assert.True(t, v.Known(), v)
	}
	assert.False(t, HeaderVariant("diagonal").Known())
	assert.False(t, HeaderVariant("").Known())
	assert.Equal(t, HeaderThinRule, DefaultHeaderVariant)
}
