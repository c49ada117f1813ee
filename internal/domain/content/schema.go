package content

import (
	"errors"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
)

// FieldKind controls how a draft's text value is written to the store.
type FieldKind int

const (
	// KindText is stored as the string itself.
	KindText FieldKind = iota
	// KindList is a comma separated value stored as a list of strings.
	KindList
)

// FieldSpec declares one editable field.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
	// RequiredOnCreate applies only while adding a record (blog images).
	RequiredOnCreate bool
	// Check validates a non-empty value.
	Check func(string) error
}

// CreateContext is what a schema's OnCreate hook may use.
type CreateContext struct {
	Now   time.Time
	Count int // records currently in the collection
}

// Schema is the declarative editing contract of one collection.
type Schema struct {
	Collection string
	Fields     []FieldSpec
	// OnCreate stamps server-owned fields before the first write.
	OnCreate func(fields document.Fields, ctx CreateContext)
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// FieldNames returns the editable field names in form order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func text(name string) FieldSpec     { return FieldSpec{Name: name} }
func required(name string) FieldSpec { return FieldSpec{Name: name, Required: true} }

func checkIcon(v string) error {
	_, err := ParseIcon(v)
	return err
}

func checkEmail(v string) error {
	if !shared.IsEmail(v) {
		return errors.New("must be a valid email address")
	}
	return nil
}

// NextStep is the ordinal given to a new work experience: the current
// count plus one, zero padded to two digits. Existing steps are never
// renumbered, so deletions leave gaps.
func NextStep(count int) string {
	return fmt.Sprintf("%02d", count+1)
}

// Schemas for every editable collection.
var (
	AboutSchema = &Schema{
		Collection: CollectionAbout,
		Fields: []FieldSpec{
			required("aboutTitle"),
			required("subTitle"),
			required("aboutDescription"),
			required("passion"),
			required("projectsDone"),
			required("happyClients"),
			required("inProgress"),
			required("workingHours"),
			text("cvUrl"),
			text("linkedin"),
			text("github"),
			text("gmail"),
			text("twitter"),
		},
	}

	BiographySchema = &Schema{
		Collection: CollectionBiographies,
		Fields: []FieldSpec{
			required("heroTitle"),
			required("hero"),
			required("bio"),
			required("passion"),
			text("linkedin"),
			text("github"),
			text("gmail"),
			text("twitter"),
		},
	}

	WorkExperienceSchema = &Schema{
		Collection: CollectionWorkExperiences,
		Fields: []FieldSpec{
			text("step"),
			required("title"),
			required("company"),
			required("date"),
			required("description"),
			text("moreDescription"),
			text("link"),
		},
		OnCreate: func(f document.Fields, ctx CreateContext) {
			if s, _ := f["step"].(string); s == "" {
				f["step"] = NextStep(ctx.Count)
			}
		},
	}

	ProjectSchema = &Schema{
		Collection: CollectionProjects,
		Fields: []FieldSpec{
			required("title"),
			required("link"),
			{Name: "technologies", Kind: KindList, Required: true},
			required("description"),
			text("moreDescription"),
		},
	}

	CertificateSchema = &Schema{
		Collection: CollectionCertificates,
		Fields: []FieldSpec{
			required("title"),
			required("issuer"),
			required("date"),
			required("link"),
			required("description"),
			text("moreDescription"),
		},
	}

	BlogPostSchema = &Schema{
		Collection: CollectionBlogPosts,
		Fields: []FieldSpec{
			required("title"),
			required("date"),
			required("description"),
			required("link"),
			{Name: "image", RequiredOnCreate: true},
		},
	}

	SkillSchema = &Schema{
		Collection: CollectionSkills,
		Fields: []FieldSpec{
			required("name"),
			{Name: "iconName", Required: true, Check: checkIcon},
			required("iconColor"),
		},
	}

	ContactMessageSchema = &Schema{
		Collection: CollectionContactMessages,
		Fields: []FieldSpec{
			required("name"),
			{Name: "email", Required: true, Check: checkEmail},
			required("message"),
		},
		OnCreate: func(f document.Fields, ctx CreateContext) {
			f["seen"] = false
			f["timestamp"] = ctx.Now.UTC()
		},
	}

	HireRequestSchema = &Schema{
		Collection: CollectionHireRequests,
		Fields: []FieldSpec{
			required("name"),
			{Name: "email", Required: true, Check: checkEmail},
			required("projectDetails"),
		},
		OnCreate: func(f document.Fields, ctx CreateContext) {
			f["seen"] = false
			f["createdAt"] = ctx.Now.UTC()
		},
	}
)
