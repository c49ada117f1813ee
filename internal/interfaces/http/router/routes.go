package router

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/interfaces/http/handler"
)

// Handlers holds every API handler mounted by Register.
type Handlers struct {
	Public    *handler.PublicHandler
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler

	About     *handler.SingletonHandler[content.About]
	Biography *handler.SingletonHandler[content.Biography]

	WorkExperiences *handler.CollectionHandler[content.WorkExperience]
	Projects        *handler.CollectionHandler[content.Project]
	Certificates    *handler.CollectionHandler[content.Certificate]
	Skills          *handler.CollectionHandler[content.Skill]
	BlogPosts       *handler.BlogHandler

	ContactMessages *handler.CollectionHandler[content.ContactMessage]
	HireRequests    *handler.CollectionHandler[content.HireRequest]
}

// Guards are the middleware placed in front of protected groups. A nil
// LoginLimit leaves login unthrottled.
type Guards struct {
	Session    gin.HandlerFunc
	LoginLimit gin.HandlerFunc
}

type editableRoutes interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type inboxRoutes interface {
	List(c *gin.Context)
	Delete(c *gin.Context)
	ToggleSeen(c *gin.Context)
}

type documentRoutes interface {
	Get(c *gin.Context)
	Put(c *gin.Context)
	Delete(c *gin.Context)
}

// Register adds the public, auth and admin groups to r
func Register(r *Router, h Handlers, guards Guards) *Router {
	return r.Register(PublicRoutes(h.Public)).
		Register(AuthRoutes(h.Auth, guards.LoginLimit)).
		Register(AdminRoutes(h, guards.Session))
}

// PublicRoutes are readable by any visitor
func PublicRoutes(h *handler.PublicHandler) *DomainGroup {
	g := NewDomainGroup("public", "/public")
	g.GET("/about", h.About)
	g.GET("/biography", h.Biography)
	g.GET("/work-experiences", h.WorkExperiences)
	g.GET("/projects", h.Projects)
	g.GET("/certificates", h.Certificates)
	g.GET("/blog-posts", h.BlogPosts)
	g.GET("/skills", h.Skills)
	g.GET("/testimonials", h.Testimonials)
	g.GET("/education", h.Education)
	g.GET("/achievements", h.Achievements)
	g.GET("/achievements/gallery", h.Gallery)
	g.POST("/contact", h.Contact)
	g.POST("/hire", h.Hire)
	return g
}

// AuthRoutes signs the administrator in and out
func AuthRoutes(h *handler.AuthHandler, loginLimit gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("auth", "/auth")
	if loginLimit != nil {
		g.POST("/login", loginLimit, h.Login)
	} else {
		g.POST("/login", h.Login)
	}
	g.POST("/refresh", h.RefreshToken)
	g.POST("/logout", h.Logout)
	return g
}

// AdminRoutes are the dashboard API, behind session
func AdminRoutes(h Handlers, session gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("admin", "/admin")
	if session != nil {
		g.Use(session)
	}

	g.GET("/overview", h.Dashboard.Overview)
	g.GET("/system/info", h.System.GetSystemInfo)

	document(g, "about", h.About)
	g.POST("/about/cv", h.Dashboard.ExportCV)
	document(g, "biography", h.Biography)

	editable(g, "work-experiences", h.WorkExperiences)
	editable(g, "projects", h.Projects)
	editable(g, "certificates", h.Certificates)
	editable(g, "skills", h.Skills)
	editable(g, "blog-posts", h.BlogPosts)

	inbox(g, "contact-messages", h.ContactMessages)
	inbox(g, "hire-requests", h.HireRequests)
	return g
}

func document(g *DomainGroup, name string, h documentRoutes) {
	g.GET("/"+name, h.Get)
	g.PUT("/"+name, h.Put)
	g.DELETE("/"+name, h.Delete)
}

func editable(g *DomainGroup, name string, h editableRoutes) {
	sub := g.Group(name, "/"+name)
	sub.GET("", h.List)
	sub.POST("", h.Create)
	sub.PUT("/:id", h.Update)
	sub.DELETE("/:id", h.Delete)
}

func inbox(g *DomainGroup, name string, h inboxRoutes) {
	sub := g.Group(name, "/"+name)
	sub.GET("", h.List)
	sub.DELETE("/:id", h.Delete)
	sub.PATCH("/:id/seen", h.ToggleSeen)
}
