package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/playback"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listAlgorithms(c *gin.Context) {
	out := make(map[catalog.Family][]catalog.Entry)
	for _, f := range catalog.Families() {
		out[f] = s.reg.List(f)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listFamily(c *gin.Context) {
	family, err := catalog.ParseFamily(c.Param("family"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.reg.List(family))
}

func (s *Server) getAlgorithm(c *gin.Context) {
	family, err := catalog.ParseFamily(c.Param("family"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	entry, err := s.reg.Lookup(family, catalog.Name(c.Param("name")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) listPresets(c *gin.Context) {
	family, err := catalog.ParseFamily(c.Param("family"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	names := config.ListPresets(string(family))
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

// trace runs the requested algorithm unpaced and returns the full history,
// as JSON by default or as CSV with ?format=csv.
func (s *Server) trace(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.JSON)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := req.Config()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	p, err := s.prepare(cfg)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctrl := playback.New(
		playback.WithSpeed(0),
		playback.WithLogger(s.logger),
		playback.WithObserver(s.metrics.Observer(string(p.family), string(p.entry.Name))),
	)
	res, err := ctrl.Run(c.Request.Context(), p.producer)
	if res.Reason == playback.Failed {
		s.logger.Error("trace failed", "algorithm", p.entry.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Warn("trace interrupted", "algorithm", p.entry.Name, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	t := export.Trace{
		Family:    string(p.family),
		Algorithm: string(p.entry.Name),
		Outcome:   res.Outcome,
		Steps:     res.Steps,
		Code:      p.entry.Trace,
		Metrics:   res.Metrics,
		Entries:   ctrl.History(),
	}
	if format == export.CSV {
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		if err := export.WriteCSV(c.Writer, t.Entries); err != nil {
			s.logger.Warn("failed to write csv trace", "error", err)
		}
		return
	}
	c.JSON(http.StatusOK, t)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, catalog.ErrUnknownFamily),
		errors.Is(err, catalog.ErrUnknownAlgorithm),
		errors.Is(err, ErrUnknownPreset):
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
