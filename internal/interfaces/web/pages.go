// Package web renders the server-side HTML: the public portfolio page, the
// standalone login page and the dashboard shell behind the session gate.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/gallery"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// Sections are the dashboard subpages, in navigation order.
var Sections = []string{
	"overview", "hero", "about", "work", "skills",
	"certificates", "blog", "contact", "hireme",
}

// SectionLoader reads the data shown on one dashboard subpage
type SectionLoader func(ctx context.Context) (any, error)

// ListOf adapts a collection manager to a SectionLoader. Every render
// reloads the collection from the store.
func ListOf[T any](m *appcontent.Manager[T]) SectionLoader {
	return func(ctx context.Context) (any, error) {
		return m.Load(ctx)
	}
}

// SessionService signs the administrator in and out
type SessionService interface {
	identity.Authenticator
	Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
	AccessTokenTTL() int
}

// Pages serves the HTML routes
type Pages struct {
	public   *appcontent.PublicService
	sessions SessionService
	sections map[string]SectionLoader
	cookie   config.CookieConfig
	tmpl     *template.Template
	logger   *zap.Logger
	siteURL  string
}

// PagesOption configures Pages
type PagesOption func(*Pages)

// WithSiteURL sets the canonical public URL used in the page metadata
func WithSiteURL(url string) PagesOption {
	return func(p *Pages) { p.siteURL = url }
}

// NewPages parses the embedded templates. sections maps each name in
// Sections to its loader; a missing loader renders the page without data.
func NewPages(
	public *appcontent.PublicService,
	sessions SessionService,
	sections map[string]SectionLoader,
	cookie config.CookieConfig,
	logger *zap.Logger,
	opts ...PagesOption,
) (*Pages, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.New("").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	p := &Pages{
		public:   public,
		sessions: sessions,
		sections: sections,
		cookie:   cookie,
		tmpl:     tmpl,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func funcs() template.FuncMap {
	caser := cases.Title(language.English)
	return template.FuncMap{
		"title": func(s string) string { return caser.String(s) },
		"join": func(items content.Technologies) string {
			return strings.Join(items, ", ")
		},
	}
}

// Register mounts the HTML routes on engine
func (p *Pages) Register(engine *gin.Engine) {
	engine.SetHTMLTemplate(p.tmpl)

	engine.GET("/", p.Portfolio)
	engine.GET("/LoginPage", p.LoginPage)
	engine.POST("/LoginPage", p.Login)
	engine.POST("/logout", p.Logout)

	dash := engine.Group("/dashboard")
	dash.GET("", p.Dashboard)
	dash.GET("/:section", p.Dashboard)
}

// slide is one carousel image with its layout
type slide struct {
	gallery.Position
	Src string
}

type portfolioView struct {
	About           content.About
	Biography       content.Biography
	WorkExperiences []content.WorkExperience
	Projects        []content.Project
	Certificates    []content.Certificate
	BlogPosts       []content.BlogPost
	Skills          []content.Skill
	Testimonials    []content.Testimonial
	Education       []content.EducationEntry
	Achievements    []content.Achievement
	Gallery         []slide
	SEO             seoView
}

// seoView is the head metadata: meta tags plus a schema.org Person block
type seoView struct {
	content.Profile
	Title    string
	Keywords string
	LD       template.JS
}

type personLD struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	JobTitle    string   `json:"jobTitle"`
	URL         string   `json:"url"`
	Email       string   `json:"email,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
	Description string   `json:"description"`
	KnowsAbout  []string `json:"knowsAbout,omitempty"`
}

func (p *Pages) seo(about content.About, bio content.Biography) seoView {
	profile := content.DefaultProfile().WithContent(about, bio)
	if p.siteURL != "" {
		profile.URL = p.siteURL
	}
	view := seoView{
		Profile:  profile,
		Title:    profile.Name + " - " + profile.JobTitle,
		Keywords: strings.Join(profile.Keywords, ", "),
	}
	// json.Marshal escapes <, > and &, so the block cannot close the script tag
	ld, err := json.Marshal(personLD{
		Context:     "https://schema.org",
		Type:        "Person",
		Name:        profile.Name,
		JobTitle:    profile.JobTitle,
		URL:         profile.URL,
		Email:       profile.Email,
		SameAs:      profile.SameAs,
		Description: profile.Description,
		KnowsAbout:  profile.KnowsAbout,
	})
	if err != nil {
		p.logger.Warn("Failed to encode structured data", zap.Error(err))
		return view
	}
	view.LD = template.JS(ld)
	return view
}

func (p *Pages) portfolio(ctx context.Context) portfolioView {
	images := content.GalleryImages()
	slides := make([]slide, 0, len(images))
	for i, pos := range gallery.Layout(0, len(images)) {
		slides = append(slides, slide{Position: pos, Src: images[i]})
	}
	about := p.public.About(ctx)
	bio := p.public.Biography(ctx)
	return portfolioView{
		About:           about,
		Biography:       bio,
		WorkExperiences: p.public.WorkExperiences(ctx),
		Projects:        p.public.Projects(ctx),
		Certificates:    p.public.Certificates(ctx),
		BlogPosts:       p.public.BlogPosts(ctx),
		Skills:          p.public.Skills(ctx),
		Testimonials:    content.Testimonials(),
		Education:       content.Education(),
		Achievements:    content.Achievements(),
		Gallery:         slides,
		SEO:             p.seo(about, bio),
	}
}

// Portfolio renders the public site
func (p *Pages) Portfolio(c *gin.Context) {
	c.HTML(http.StatusOK, "portfolio.html", p.portfolio(c.Request.Context()))
}

// PortfolioHTML renders the public site to a string for PDF export
func (p *Pages) PortfolioHTML(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "portfolio.html", p.portfolio(ctx)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type loginView struct {
	Email string
	Error string
	Next  string
}

// LoginPage renders the standalone login form
func (p *Pages) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", loginView{Next: safeNext(c.Query("next"))})
}

// Login handles the login form. Failures re-render the form with the
// error text and 401.
func (p *Pages) Login(c *gin.Context) {
	email := c.PostForm("email")
	next := safeNext(c.PostForm("next"))

	result, err := p.sessions.Login(c.Request.Context(), identity.LoginInput{
		Email:    email,
		Password: c.PostForm("password"),
		IP:       c.ClientIP(),
	})
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, shared.ErrValidationFailed) {
			status = http.StatusBadRequest
		}
		c.HTML(status, "login.html", loginView{Email: email, Error: loginMessage(err), Next: next})
		return
	}

	middleware.SetSessionCookie(c, p.cookie, result.AccessToken, p.sessions.AccessTokenTTL())
	c.Redirect(http.StatusSeeOther, next)
}

// Logout ends the cookie session
func (p *Pages) Logout(c *gin.Context) {
	gate := identity.NewGate(p.sessions, p.logger)
	gate.Resolve(c.Request.Context(), middleware.TokenFromRequest(c, p.cookie.Name))
	if err := gate.SignOut(c.Request.Context()); err != nil {
		p.logger.Warn("Sign out did not revoke the session", zap.Error(err))
	}
	middleware.ClearSessionCookie(c, p.cookie)
	c.Redirect(http.StatusSeeOther, "/LoginPage")
}

type dashboardView struct {
	Section  string
	Sections []string
	Admin    string
	Data     any
	Error    string
}

// Dashboard renders a dashboard subpage, or the login form in place with
// 401 when there is no live session.
func (p *Pages) Dashboard(c *gin.Context) {
	section := c.Param("section")
	if section == "" {
		section = "overview"
	}
	if !slices.Contains(Sections, section) {
		c.Status(http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()
	gate := identity.NewGate(p.sessions, p.logger)
	gate.Resolve(ctx, middleware.TokenFromRequest(c, p.cookie.Name))

	gate.Guard(
		func() {
			view := dashboardView{Section: section, Sections: Sections, Admin: gate.Claims().Email}
			if load, ok := p.sections[section]; ok {
				data, err := load(ctx)
				if err != nil {
					p.logger.Error("Failed to load dashboard section", zap.String("section", section), zap.Error(err))
					view.Error = "Could not load " + section + ". Try again later."
				}
				view.Data = data
			}
			c.HTML(http.StatusOK, "dashboard.html", view)
		},
		func() {
			c.HTML(http.StatusUnauthorized, "login.html", loginView{Next: c.Request.URL.Path})
		},
	)
}

// loginMessage is the text shown under the form: the first field problem
// for rejected input, the provider message otherwise.
func loginMessage(err error) string {
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		if len(verr.Missing) > 0 {
			return "Please enter your " + verr.Missing[0]
		}
		if len(verr.Invalid) > 0 {
			return verr.Invalid[0].Field + " " + verr.Invalid[0].Message
		}
	}
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		return derr.Message
	}
	return err.Error()
}

// safeNext keeps post-login redirects on the dashboard
func safeNext(next string) string {
	if next == "/dashboard" || strings.HasPrefix(next, "/dashboard/") {
		return next
	}
	return "/dashboard"
}
