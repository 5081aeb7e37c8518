package server

import (
	"net/http"
	"portfolio-server/portfolio_server/content"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

const updatedLayout = "Mon Jan 2 15:04:05 2006"

// buildTime returns the commit time recorded in the binary, if any.
func buildTime() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.time" {
			t, err := time.Parse(time.RFC3339, s.Value)
			if err != nil {
				return s.Value
			}
			return t.Format(updatedLayout)
		}
	}
	return ""
}

// page adds the values shared by all pages.
func (s *portfolioServer) page(name string, h gin.H) gin.H {
	if h == nil {
		h = gin.H{}
	}
	h["page"] = name
	h["now"] = s.now()
	h["updated"] = s.updated
	return h
}

func (s *portfolioServer) index(c *gin.Context) {
	c.JSON(http.StatusOK, s.page("about", gin.H{"about": content.AboutMe()}))
}

func (s *portfolioServer) resume(c *gin.Context) {
	c.JSON(http.StatusOK, s.page("resume", gin.H{"jobs": content.Resume(s.now())}))
}

func (s *portfolioServer) projects(c *gin.Context) {
	c.JSON(http.StatusOK, s.page("projects", gin.H{"projects": content.ProjectRows()}))
}

func (s *portfolioServer) contact(c *gin.Context) {
	c.JSON(http.StatusOK, s.page("contact", gin.H{"links": content.Contact()}))
}

func (s *portfolioServer) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, s.page("404", gin.H{"path": c.Request.URL.Path}))
}

func (s *portfolioServer) musicPage(c *gin.Context) {
	p, err := s.music.Page(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s.page("music", gin.H{
		"artists":     p.Artists,
		"songs":       p.Songs,
		"updated_at":  p.UpdatedAt,
		"updated_ago": p.UpdatedAgo,
		"stale":       p.Stale,
	}))
}
