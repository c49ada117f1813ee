package content

// DefaultAbout is written to "about/info" the first time it is read and
// shown whenever the document cannot be fetched.
func DefaultAbout() About {
	return About{
		AboutTitle:       "Welcome to My Portfolio",
		SubTitle:         "I'm Fahad, a creative, resourceful professional.",
		AboutDescription: "I have built a strong foundation through both my education and hands-on experience, which helps me quickly adapt to new challenges and develop smart solutions. I enjoy teamwork and clear communication, and I'm always excited to learn and grow.",
		Passion:          "Mobile Development, AI, and UX Design",
		ProjectsDone:     "15+ Projects Done",
		HappyClients:     "5+ Happy Clients",
		InProgress:       "3+ In Progress",
		WorkingHours:     "300+ Working Hours",
		CVURL:            "https://yourdomain.com/cv.pdf",
		LinkedIn:         "https://linkedin.com/in/muhammadfahaddev",
		GitHub:           "https://github.com/muhammadfahaddev",
		Gmail:            "muhammadfahad.dev@gmail.com",
		Twitter:          "https://twitter.com/yourusername",
	}
}

// DefaultBiography is written to "biographies/bio" on first read.
func DefaultBiography() Biography {
	return Biography{
		HeroTitle: "Welcome to My Portfolio",
		Hero:      "I'm Fahad, a creative, resourceful professional.",
		Bio:       "I have built a strong foundation through both education and hands-on experience, which helps me quickly adapt to new challenges and come up with smart solutions to everyday problems.",
		Passion:   "Mobile Development, AI, and UX Design",
		LinkedIn:  "https://linkedin.com/in/muhammadfahaddev",
		GitHub:    "https://github.com/muhammadfahaddev",
		Gmail:     "muhammadfahad.dev@gmail.com",
		Twitter:   "https://twitter.com/yourusername",
	}
}

// FallbackSkills is shown on the public site when skills cannot be loaded.
func FallbackSkills() []Skill {
	return []Skill{
		{Base: Base{ID: "fallback-1"}, Name: "React", IconName: IconReact, IconColor: "#61DAFB"},
		{Base: Base{ID: "fallback-2"}, Name: "JavaScript", IconName: IconJavaScript, IconColor: "#F7DF1E"},
		{Base: Base{ID: "fallback-3"}, Name: "Tailwind CSS", IconName: IconTailwind, IconColor: "#38BDF8"},
		{Base: Base{ID: "fallback-4"}, Name: "HTML5", IconName: IconHTML5, IconColor: "#E34F26"},
		{Base: Base{ID: "fallback-5"}, Name: "CSS3", IconName: IconCSS3, IconColor: "#1572B6"},
		{Base: Base{ID: "fallback-6"}, Name: "Node.js", IconName: IconNodeJS, IconColor: "#339933"},
	}
}

// Testimonials are not editable from the dashboard.
func Testimonials() []Testimonial {
	return []Testimonial{
		{
			ID:          1,
			ClientName:  "Taimoor Nasir",
			Company:     "Newage Dispatch.",
			Position:    "Founder & CEO",
			Website:     "https://www.newagedispatch.com/",
			Email:       "info@newagedispatch.com",
			Testimonial: "I would like to say that the work of this website is truly excellent. Their services are unmatched and consistently demonstrate high levels of efficiency and quality. I sincerely appreciate their dedication and commitment.",
			Image:       "/static/img/taimoor.jpg",
		},
		{
			ID:          2,
			ClientName:  "Saif Ullah",
			Company:     "CallWave LLC.",
			Position:    "Founder & COO",
			Website:     "https://callwavedispatch.com",
			Email:       "Info@callwavedispatch.com",
			Testimonial: "Muhammad Fahad is an outstanding professional who always delivers high-quality work. His creative approach and attention to detail make him an asset to any team.",
			Image:       "https://via.placeholder.com/80",
		},
	}
}

// Education entries are not editable from the dashboard.
func Education() []EducationEntry {
	return []EducationEntry{
		{
			ID:          1,
			Step:        "01",
			Degree:      "Bachelor of Science in Computer Science",
			Institution: "Riphah International University",
			Duration:    "Aug 2021 - Expected June 2025",
			Description: "Pursuing a comprehensive BS in Computer Science with a focus on software development, machine learning, and data analysis.",
		},
		{
			ID:          2,
			Step:        "02",
			Degree:      "Certified Agentic and Robotic AI Engineer",
			Institution: "PIAIC",
			Duration:    "Nov 2024",
			Description: "Certified in AI Engineering with hands-on experience in automation, robotics, and advanced machine learning techniques.",
		},
	}
}

// Achievements are not editable from the dashboard.
func Achievements() []Achievement {
	return []Achievement{
		{ID: 1, Title: "Most Innovative Idea", Subtitle: "Category Winner at Innovate 4.0", Icon: "FaAward",
			Description: "Awarded for the most innovative idea at the Innovate 4.0 Pitching Hackathon during ITCN Asia 2024 at Expo Center Lahore."},
		{ID: 2, Title: "Hackathon Winner", Subtitle: "Winner, Innovate 4.0 Hackathon (2024)", Icon: "FaTrophy",
			Description: "Recognized for an outstanding innovative idea with a cash prize and mentorship opportunities."},
		{ID: 3, Title: "Web Competition Runner-Up", Subtitle: "Runner-Up, Web Programming Competition (2023)", Icon: "FaAward",
			Description: "Honored for excellence in web development at Riphah International University."},
		{ID: 4, Title: "DevFest 2023 - 2nd Prize", Subtitle: "Women Techmakers Lahore", Icon: "FaTrophy",
			Description: "Google Dotics was recognized at DevFest 2023 (Women Techmakers Lahore) for their outstanding achievement and innovation."},
	}
}

// GalleryImages are the achievement photos shown in the carousel.
func GalleryImages() []string {
	return []string{
		"/static/img/achievements/7.jpg",
		"/static/img/achievements/8.png",
		"/static/img/achievements/9.jpg",
		"/static/img/achievements/10.jpg",
		"/static/img/achievements/11.jpg",
	}
}
