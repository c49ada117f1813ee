package content

import (
	"slices"
	"strings"
)

// Profile describes the site owner to search engines and link previews.
type Profile struct {
	Name        string
	JobTitle    string
	Description string
	Keywords    []string
	URL         string
	Image       string
	Twitter     string
	Email       string
	SameAs      []string
	KnowsAbout  []string
}

// DefaultProfile is the static head metadata of the public site.
func DefaultProfile() Profile {
	return Profile{
		Name:     "Muhammad Fahad",
		JobTitle: "Full-Stack Developer, Web Developer, Mobile App Developer & AI Engineer",
		Description: "Muhammad Fahad is a creative developer and associate software engineer from Lahore, Pakistan, " +
			"specializing in full-stack web development, mobile app development and AI solutions.",
		Keywords: []string{
			"Muhammad Fahad", "Full-Stack Developer", "Mobile App Developer", "AI Engineer",
			"ReactJS", "Flutter", "React Native", "Firebase", "NodeJS", "Python", "JavaScript",
			"Web Development", "Lahore", "Pakistan",
		},
		URL:     "https://fahaddev.vercel.app/",
		Image:   "/iconfahad.svg",
		Twitter: "@muhammadfahaddev",
		Email:   "muhammadfahad.dev@gmail.com",
		SameAs: []string{
			"https://www.linkedin.com/in/muhammadfahaddev/",
			"https://github.com/muhammadfahaddev",
		},
		KnowsAbout: []string{
			"ReactJS", "MERN Stack", "LLM", "AI Engineer", "Front-End Developer", "Backend Developer",
			"Flutter", "React Native", "NodeJS", "Firebase", "API Integration", "Python", "JavaScript",
		},
	}
}

// WithContent overlays the edited about and biography records: the about
// description, the contact address and the social links win over the
// static values when they are set.
func (p Profile) WithContent(about About, bio Biography) Profile {
	if d := strings.TrimSpace(about.AboutDescription); d != "" {
		p.Description = d
	}
	for _, email := range []string{bio.Gmail, about.Gmail} {
		if email = strings.TrimPrefix(strings.TrimSpace(email), "mailto:"); email != "" {
			p.Email = email
			break
		}
	}

	links := []string{bio.LinkedIn, bio.GitHub, bio.Twitter, about.LinkedIn, about.GitHub, about.Twitter}
	var sameAs []string
	for _, l := range links {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "http") && !slices.Contains(sameAs, l) {
			sameAs = append(sameAs, l)
		}
	}
	if len(sameAs) > 0 {
		p.SameAs = sameAs
	}
	return p
}
