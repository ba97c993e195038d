package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Clock returns the current time; handlers take it so month defaults are testable.
type Clock func() time.Time

func periodFromQuery(c *gin.Context, now Clock) (models.Period, error) {
	return models.ParsePeriod(c.Query("year"), c.Query("month"), now())
}

func optionalPeriodFromQuery(c *gin.Context) (*models.Period, error) {
	return models.ParseOptionalPeriod(c.Query("year"), c.Query("month"))
}
