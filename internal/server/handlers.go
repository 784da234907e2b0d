package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nshruti113/attack-map-dashboard/internal/mockdata"
)

// datasetQuery holds the optional query parameters shared by the dataset routes
type datasetQuery struct {
	Seed  *int64 `form:"seed"`
	Count *int   `form:"count"`
}

// bindQuery parses the query string and answers 400 on malformed values.
func (s *Server) bindQuery(c *gin.Context) (datasetQuery, bool) {
	var q datasetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	return q, true
}

func (s *Server) seed(q datasetQuery) int64 {
	if q.Seed != nil {
		return *q.Seed
	}
	return s.cfg.Generator.DefaultSeed
}

// attackCount defaults to the configured dataset size and is capped by
// max_attacks. Negative counts pass through and produce an empty batch.
func (s *Server) attackCount(q datasetQuery) int {
	count := s.cfg.Generator.InitialAttacks
	if q.Count != nil {
		count = *q.Count
	}
	return min(count, s.cfg.Generator.MaxAttacks)
}

// getAttacks returns a seeded batch of attacks
func (s *Server) getAttacks(c *gin.Context) {
	q, ok := s.bindQuery(c)
	if !ok {
		return
	}

	attacks := mockdata.GenerateAttacksAt(s.attackCount(q), s.seed(q), s.now())
	s.metrics.ObserveDatasetRequest("attacks")
	s.metrics.ObserveGeneratedAttacks(len(attacks))

	c.JSON(http.StatusOK, gin.H{
		"attacks": attacks,
	})
}

func (s *Server) getThreatStatus(c *gin.Context) {
	q, ok := s.bindQuery(c)
	if !ok {
		return
	}

	s.metrics.ObserveDatasetRequest("threat_status")
	c.JSON(http.StatusOK, mockdata.GenerateThreatStatus(s.seed(q)))
}

func (s *Server) getTopCountries(c *gin.Context) {
	q, ok := s.bindQuery(c)
	if !ok {
		return
	}

	s.metrics.ObserveDatasetRequest("top_countries")
	c.JSON(http.StatusOK, gin.H{
		"countries": mockdata.GenerateTopTargetedCountries(s.seed(q)),
	})
}

func (s *Server) getAttackTypeBreakdown(c *gin.Context) {
	q, ok := s.bindQuery(c)
	if !ok {
		return
	}

	s.metrics.ObserveDatasetRequest("attack_types")
	c.JSON(http.StatusOK, gin.H{
		"breakdown": mockdata.GenerateAttackTypeBreakdown(s.seed(q)),
	})
}

func (s *Server) getTimeline(c *gin.Context) {
	q, ok := s.bindQuery(c)
	if !ok {
		return
	}

	s.metrics.ObserveDatasetRequest("timeline")
	c.JSON(http.StatusOK, gin.H{
		"timeline": mockdata.GenerateTimeline(s.seed(q)),
	})
}

// getSummary returns the stat card figures
func (s *Server) getSummary(c *gin.Context) {
	q, ok := s.bindQuery(c)
	if !ok {
		return
	}

	s.metrics.ObserveDatasetRequest("summary")
	c.JSON(http.StatusOK, mockdata.GenerateSummary(s.seed(q)))
}

// getDashboard returns every view of the page in one response
func (s *Server) getDashboard(c *gin.Context) {
	q, ok := s.bindQuery(c)
	if !ok {
		return
	}

	dataset := mockdata.GenerateDataset(s.seed(q), s.attackCount(q), s.now())
	s.metrics.ObserveDatasetRequest("dashboard")
	s.metrics.ObserveGeneratedAttacks(len(dataset.Attacks))

	c.JSON(http.StatusOK, dataset)
}

// getFeed returns the live feed, newest first
func (s *Server) getFeed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"attacks": s.feed.Snapshot(),
	})
}
