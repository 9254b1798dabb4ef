package handler

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/pkg/pagination"
	"strconv"

	"github.com/gin-gonic/gin"
)

// bindCursorQuery 解析游标分页参数
func bindCursorQuery(c *gin.Context) (pagination.Query, error) {
	var queryDTO dto.CursorQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		return pagination.Query{}, err
	}
	return pagination.Query{
		PageSize: queryDTO.PageSize,
		After:    queryDTO.After,
		Before:   queryDTO.Before,
	}, nil
}

// parseIDParam 解析路径里的 uint64 参数
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
