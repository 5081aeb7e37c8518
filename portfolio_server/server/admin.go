package server

import (
	"net/http"
	"portfolio-server/pkg/xerrors"

	"github.com/gin-gonic/gin"
)

type settingView struct {
	Name      string `json:"name"`
	Set       bool   `json:"set"`
	UpdatedAt int64  `json:"updated_at"`
}

// listSettings never returns values, only whether they are set.
func (s *portfolioServer) listSettings(c *gin.Context) {
	list, err := s.settings.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	views := make([]settingView, 0, len(list))
	for _, e := range list {
		views = append(views, settingView{Name: e.Name, Set: e.IsSet(), UpdatedAt: e.UpdateAt})
	}
	c.JSON(http.StatusOK, gin.H{"settings": views})
}

type setSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

func (s *portfolioServer) setSetting(c *gin.Context) {
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(xerrors.Newf(xerrors.KindInvalidArgument, "invalid request: %v", err))
		return
	}
	name := c.Param("name")
	if err := s.settings.Set(c.Request.Context(), name, req.Value); err != nil {
		_ = c.Error(err)
		return
	}
	s.log.WithField("setting", name).Info("setting updated")
	c.Status(http.StatusNoContent)
}

func (s *portfolioServer) refreshMusic(c *gin.Context) {
	_, report, err := s.music.Refresh(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
