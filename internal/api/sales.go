package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"sales-service/internal/export"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const exportFilename = "sales_export.csv"

// bindQuery reads and validates the query string. It writes the 400
// response itself and reports false when the request was rejected.
func (h *Handler) bindQuery(c *gin.Context) (SalesQueryRequest, bool) {
	var req SalesQueryRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, []FieldError{{Param: "query", Msg: "Invalid query string"}})
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(c, fieldErrors(err))
		return req, false
	}
	return req, true
}

// listSales handles GET /api/sales
func (h *Handler) listSales(c *gin.Context) {
	req, ok := h.bindQuery(c)
	if !ok {
		return
	}

	page, err := h.salesService.FetchPage(c.Request.Context(), req.Raw())
	if err != nil {
		h.internalError(c, "Failed to fetch sales", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"items":      page.Items,
		"total":      page.Total,
		"page":       page.Page,
		"pageSize":   page.PageSize,
		"totalPages": page.TotalPages,
	})
}

// exportSales handles GET /api/sales/export
func (h *Handler) exportSales(c *gin.Context) {
	req, ok := h.bindQuery(c)
	if !ok {
		return
	}

	result, err := h.salesService.FetchExport(c.Request.Context(), req.Raw())
	if err != nil {
		h.internalError(c, "Failed to export sales", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, result.Items); err != nil {
		h.internalError(c, "Failed to encode export", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	c.Header("X-Export-Total", strconv.Itoa(result.Total))
	if result.Truncated {
		c.Header("X-Export-Truncated", "true")
		c.Header("X-Export-Limit", strconv.Itoa(result.Limit))
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// getMetadata handles GET /api/metadata
func (h *Handler) getMetadata(c *gin.Context) {
	m, err := h.metadataService.Get(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to load metadata", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"regions":           m.Regions,
		"genders":           m.Genders,
		"productCategories": m.ProductCategories,
		"tags":              m.Tags,
		"paymentMethods":    m.PaymentMethods,
		"ageRange":          m.AgeRange,
		"dateRange":         m.DateRange,
	})
}

func (h *Handler) badRequest(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"errors":  errs,
	})
}

// internalError logs err and answers with a generic message
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	if errors.Is(err, context.Canceled) {
		h.logger.Info("Request cancelled by client", zap.String("path", c.FullPath()))
		c.AbortWithStatus(http.StatusRequestTimeout)
		return
	}

	h.logger.Error(msg,
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
