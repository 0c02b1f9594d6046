package controllers

import (
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
)

// StatsController serves the marketplace-wide aggregate numbers.
type StatsController struct {
	store *store.Store
}

func NewStatsController(st *store.Store) *StatsController {
	return &StatsController{store: st}
}

// Show returns the live aggregate stats, recomputed from the document.
func (s *StatsController) Show(c *ctx.Context) {
	c.Success(s.store.Stats())
}
