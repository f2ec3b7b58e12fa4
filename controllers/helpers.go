package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/utils"
)

// paramID parses a numeric path parameter, responding with a validation
// error (and returning false) when it is not a positive integer.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, models.Validationf(name, "invalid id %q", raw))
		return 0, false
	}
	return uint(id), true
}

// queryBool reads an optional boolean query parameter; nil when absent or
// unparsable.
func queryBool(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryBoolDefault(c *gin.Context, name string, fallback bool) bool {
	if v := queryBool(c, name); v != nil {
		return *v
	}
	return fallback
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
