package content

import (
	"encoding/json"
	"testing"

	"github.com/portfolio/backend/internal/domain/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechnologies_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Technologies
	}{
		{"list", `["Go","React"]`, Technologies{"Go", "React"}},
		{"comma separated string", `"Go, React,  Tailwind"`, Technologies{"Go", "React", "Tailwind"}},
		{"empty string", `""`, Technologies{}},
		{"null", `null`, Technologies{}},
		{"list with blanks", `["Go", " ", "Vue "]`, Technologies{"Go", "Vue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Technologies
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects other shapes", func(t *testing.T) {
		var got Technologies
		assert.Error(t, json.Unmarshal([]byte(`42`), &got))
	})
}

func TestTechnologies_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Project{Title: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"technologies":[]`)
}

func TestProject_DecodesBothShapes(t *testing.T) {
	legacy := &document.Document{ID: "a", Fields: document.Fields{"title": "Old", "technologies": "Go, Gin"}}
	current := &document.Document{ID: "b", Fields: document.Fields{"title": "New", "technologies": []any{"Go", "Gin"}}}

	p1, err := document.Decode[Project](legacy)
	require.NoError(t, err)
	p2, err := document.Decode[Project](current)
	require.NoError(t, err)

	assert.Equal(t, p1.Technologies, p2.Technologies)
	assert.Equal(t, "a", p1.ID)
	assert.Equal(t, "Go, Gin", p2.Technologies.String())
}

func TestParseIcon(t *testing.T) {
	for _, icon := range AllIcons() {
		got, err := ParseIcon(string(icon))
		require.NoError(t, err)
		assert.Equal(t, icon, got)
	}

	_, err := ParseIcon("FaPython")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SiJavascript")

	_, err = ParseIcon("fareact")
	assert.Error(t, err, "matching is case sensitive")
}

func TestDefaults(t *testing.T) {
	about := DefaultAbout()
	assert.Equal(t, "Welcome to My Portfolio", about.AboutTitle)
	assert.Equal(t, "15+ Projects Done", about.ProjectsDone)

	bio := DefaultBiography()
	assert.Equal(t, "muhammadfahad.dev@gmail.com", bio.Gmail)

	for _, s := range FallbackSkills() {
		assert.True(t, s.IconName.IsValid(), s.Name)
	}
	assert.Len(t, GalleryImages(), 5)
	assert.NotEmpty(t, Testimonials())
	assert.NotEmpty(t, Education())
	assert.NotEmpty(t, Achievements())
}
