package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	exportService services.ExportService
}

func NewResultHandler(resultService services.ResultService, exportService services.ExportService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		exportService: exportService,
	}
}

// SubmitResult grades a one-shot submission. The score is always computed
// here from the answers.
// @Router /results [post]
func (h *ResultHandler) SubmitResult(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Submitting result", "quiz_id", req.QuizID)

	result, err := h.resultService.Submit(requestContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// @Router /results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.resultService.Get(requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Router /results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	query, ok := h.bindResultQuery(c)
	if !ok {
		return
	}

	results, err := h.resultService.List(requestContext(c), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetOverview returns statistics, score distribution and the class list
// @Router /results/overview [get]
func (h *ResultHandler) GetOverview(c *gin.Context) {
	query, ok := h.bindResultQuery(c)
	if !ok {
		return
	}

	overview, err := h.resultService.Overview(requestContext(c), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ExportResults downloads the filtered results as xlsx (default) or csv
// @Router /results/export [get]
func (h *ResultHandler) ExportResults(c *gin.Context) {
	query, ok := h.bindResultQuery(c)
	if !ok {
		return
	}

	var (
		file *services.ExportFile
		err  error
	)
	switch format := c.DefaultQuery("format", "xlsx"); format {
	case "xlsx":
		file, err = h.exportService.ExportResultsExcel(requestContext(c), query)
	case "csv":
		file, err = h.exportService.ExportResultsCSV(requestContext(c), query)
	default:
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported export format", nil, format)
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *ResultHandler) bindResultQuery(c *gin.Context) (services.ResultQuery, bool) {
	var query services.ResultQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err, err.Error())
		return query, false
	}
	return query, true
}
