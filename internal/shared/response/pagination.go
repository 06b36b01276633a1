package response

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageQuery struct {
	Page     int
	PageSize int
	Search   string
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ParsePageQuery reads page, page_size (alias limit) and q/search from the query string.
func ParsePageQuery(c *gin.Context) PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	sizeRaw := c.Query("page_size")
	if sizeRaw == "" {
		sizeRaw = c.Query("limit")
	}
	pageSize, _ := strconv.Atoi(sizeRaw)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	search := c.Query("q")
	if search == "" {
		search = c.Query("search")
	}

	return PageQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	}
}
