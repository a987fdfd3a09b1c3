package controllers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kittiphat/volunteerhub/middleware"
)

func getCustomerID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextCustomerIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}

func getAdminID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextAdminIDKey)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func getAdminRole(ctx *gin.Context) string {
	value, exists := ctx.Get(middleware.ContextAdminRoleKey)
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	perPage := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		perPage = s
	}
	return page, perPage
}

// listMeta mirrors the pagination envelope clients already consume.
type listMeta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	FirstPage   int   `json:"first_page"`
}

func newListMeta(total int64, page, perPage int) listMeta {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return listMeta{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
		FirstPage:   1,
	}
}

// encodeURIList stores a list of opaque URIs as a JSON string column.
func encodeURIList(uris []string) string {
	if len(uris) == 0 {
		return "[]"
	}
	b, err := json.Marshal(uris)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeURIList(raw string) []string {
	if raw == "" {
		return nil
	}
	var uris []string
	if err := json.Unmarshal([]byte(raw), &uris); err != nil {
		return nil
	}
	return uris
}
