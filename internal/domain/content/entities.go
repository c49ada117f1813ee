// Package content holds the portfolio's content records, their editing
// schemas and the hardcoded defaults the public site falls back to.
package content

import "time"

// Collection names. They match the data written by earlier versions of
// the site so existing documents stay readable.
const (
	CollectionAbout           = "about"
	CollectionBiographies     = "biographies"
	CollectionWorkExperiences = "workExperiences"
	CollectionProjects        = "projects"
	CollectionCertificates    = "certificates"
	CollectionBlogPosts       = "blogPosts"
	CollectionSkills          = "skills"
	CollectionContactMessages = "contactMessages"
	CollectionHireRequests    = "hireRequests"
)

// Singleton document keys.
const (
	AboutKey     = "info"
	BiographyKey = "bio"
)

// Base carries the store-assigned identity of a record.
type Base struct {
	ID string `json:"id,omitempty"`
}

// GetID returns the document ID
func (b *Base) GetID() string { return b.ID }

// SetID sets the document ID
func (b *Base) SetID(id string) { b.ID = id }

// Seenable is implemented by inbox records whose only mutable field is seen.
type Seenable interface {
	IsSeen() bool
	SetSeen(seen bool)
}

// About is the singleton "about/info" document.
type About struct {
	Base
	AboutTitle       string `json:"aboutTitle"`
	SubTitle         string `json:"subTitle"`
	AboutDescription string `json:"aboutDescription"`
	Passion          string `json:"passion"`
	ProjectsDone     string `json:"projectsDone"`
	HappyClients     string `json:"happyClients"`
	InProgress       string `json:"inProgress"`
	WorkingHours     string `json:"workingHours"`
	CVURL            string `json:"cvUrl"`
	LinkedIn         string `json:"linkedin"`
	GitHub           string `json:"github"`
	Gmail            string `json:"gmail"`
	Twitter          string `json:"twitter"`
}

// Biography is the singleton "biographies/bio" document shown in the hero.
type Biography struct {
	Base
	HeroTitle string `json:"heroTitle"`
	Hero      string `json:"hero"`
	Bio       string `json:"bio"`
	Passion   string `json:"passion"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Gmail     string `json:"gmail"`
	Twitter   string `json:"twitter"`
}

// WorkExperience is one entry of the experience timeline.
type WorkExperience struct {
	Base
	Step            string `json:"step"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	MoreDescription string `json:"moreDescription"`
	Link            string `json:"link"`
}

// Project is a portfolio project.
type Project struct {
	Base
	Title           string       `json:"title"`
	Link            string       `json:"link"`
	Description     string       `json:"description"`
	MoreDescription string       `json:"moreDescription"`
	Technologies    Technologies `json:"technologies"`
}

// Certificate is an earned certification.
type Certificate struct {
	Base
	Title           string `json:"title"`
	Issuer          string `json:"issuer"`
	Link            string `json:"link"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	MoreDescription string `json:"moreDescription"`
}

// BlogPost links to an external article. Image is the public URL of the
// cover uploaded to object storage.
type BlogPost struct {
	Base
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image"`
}

// Skill is a technology badge.
type Skill struct {
	Base
	Name      string `json:"name"`
	IconName  Icon   `json:"iconName"`
	IconColor string `json:"iconColor"`
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	Base
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Seen      bool      `json:"seen"`
	Timestamp time.Time `json:"timestamp"`
}

// IsSeen reports whether the admin has marked the message as read
func (m *ContactMessage) IsSeen() bool { return m.Seen }

// SetSeen sets the read flag
func (m *ContactMessage) SetSeen(seen bool) { m.Seen = seen }

// HireRequest is a project inquiry left through the "hire me" form.
type HireRequest struct {
	Base
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProjectDetails string    `json:"projectDetails"`
	Seen           bool      `json:"seen"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IsSeen reports whether the admin has marked the request as read
func (r *HireRequest) IsSeen() bool { return r.Seen }

// SetSeen sets the read flag
func (r *HireRequest) SetSeen(seen bool) { r.Seen = seen }

// Testimonial is a static client quote.
type Testimonial struct {
	ID          int    `json:"id"`
	ClientName  string `json:"clientName"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Testimonial string `json:"testimonial"`
	Image       string `json:"image"`
}

// EducationEntry is a static education entry.
type EducationEntry struct {
	ID          int    `json:"id"`
	Step        string `json:"step"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Achievement is a static award entry.
type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
