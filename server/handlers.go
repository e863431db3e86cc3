package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pm1-tools/pm1/config"
	"github.com/pm1-tools/pm1/pm1"
)

var states = []string{
	pm1.Searching.String(),
	pm1.FactorFound.String(),
	pm1.Exhausted.String(),
	pm1.GivenUp.String(),
}

func optionsHandler(conf pm1.Config) gin.HandlerFunc {
	maxBound := conf.MaxBound
	if maxBound <= 0 {
		maxBound = pm1.DefaultServeMaxBound
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": config.Version,
			"states":  states,
			"defaultOptions": gin.H{
				"max_bound":  maxBound,
				"timeout_ms": factorTimeout.Milliseconds(),
			},
		})
	}
}
