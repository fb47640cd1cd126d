package handlers

import (
	"docman/helper"
	"docman/middleware"
	"docman/models"

	"github.com/gin-gonic/gin"
)

// pageParams reads page, limit and offset from the query string. A 400 is
// sent when they are not numbers.
func pageParams(c *gin.Context, h *helper.HTTPHelper) (helper.PageParams, bool) {
	params, err := helper.DerivePageParams(c.Query("page"), c.Query("limit"), c.Query("offset"))
	if err != nil {
		h.SendError(c, err)
		return helper.PageParams{}, false
	}
	return params, true
}

// caller returns the authenticated caller, answering 401 when there is none.
func caller(c *gin.Context, h *helper.HTTPHelper) (models.Caller, bool) {
	who, ok := middleware.CallerFrom(c)
	if !ok {
		h.SendError(c, models.ErrNoToken)
	}
	return who, ok
}

// searchTerm prefers the :term path segment over the query parameter.
func searchTerm(c *gin.Context) string {
	if term := c.Param("term"); term != "" {
		return term
	}
	return c.Query("query")
}
