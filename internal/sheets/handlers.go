package sheets

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Aidin1998/studysheets/common/apiutil"
	"github.com/Aidin1998/studysheets/pkg/errors"
	"github.com/Aidin1998/studysheets/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for sheet and keyword operations.
// Failures are recorded with c.Error and rendered by apiutil.ErrorMiddleware.
type Handler struct {
	service   SheetService
	validator *apiutil.Validator
	logger    *zap.Logger
}

// NewHandler creates a new sheets handler
func NewHandler(service SheetService, logger *zap.Logger) *Handler {
	return &Handler{
		service:   service,
		validator: apiutil.NewValidator(),
		logger:    logger,
	}
}

func parseID(name, value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 0)
	if err != nil {
		return 0, errors.Invalid.Explain("invalid %s %q", name, value).WithField("numeric", name, "")
	}
	return uint(id), nil
}

// bindJSON decodes the request body. An empty body decodes to the zero request.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return errors.Invalid.Explain("malformed request body").Wrap(err)
	}
	return nil
}

// GetSheets looks up one sheet by id or searches sheets
// @Summary Get or search study sheets
// @Description With id, returns that sheet or {}. Otherwise returns the sheets matching any of title, author, teacher or subject, merged with the sheets owning a matching keyword.
// @Tags Sheets
// @Produce json
// @Param id query int false "Sheet ID"
// @Param title query string false "Title substring"
// @Param author query string false "Author substring"
// @Param teacher query string false "Teacher substring"
// @Param subject query string false "Subject substring"
// @Param keyword query string false "Keyword substring"
// @Success 200 {array} models.Sheet
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets [get]
func (h *Handler) GetSheets(c *gin.Context) {
	ctx := c.Request.Context()

	if rawID := c.Query("id"); rawID != "" {
		id, err := parseID("id", rawID)
		if err != nil {
			_ = c.Error(err)
			return
		}

		sheet, err := h.service.Sheet(ctx, id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if sheet == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, sheet)
		return
	}

	sheets, err := h.service.Search(ctx, models.SheetFilter{
		Title:   c.Query("title"),
		Author:  c.Query("author"),
		Teacher: c.Query("teacher"),
		Subject: c.Query("subject"),
		Keyword: c.Query("keyword"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sheets)
}

// GetKeywords looks up one keyword by id or lists keywords
// @Summary Get or list sheet keywords
// @Description With id, returns that keyword or {}. Otherwise returns the keywords matching both sheetId and keyword when given.
// @Tags Keywords
// @Produce json
// @Param id query int false "Keyword ID"
// @Param sheetId query int false "Owning sheet ID"
// @Param keyword query string false "Keyword substring"
// @Success 200 {array} models.Attribute
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets/keywords [get]
func (h *Handler) GetKeywords(c *gin.Context) {
	ctx := c.Request.Context()

	if rawID := c.Query("id"); rawID != "" {
		id, err := parseID("id", rawID)
		if err != nil {
			_ = c.Error(err)
			return
		}

		attribute, err := h.service.Attribute(ctx, id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if attribute == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, attribute)
		return
	}

	filter := models.AttributeFilter{Keyword: c.Query("keyword")}
	if rawSheetID := c.Query("sheetId"); rawSheetID != "" {
		sheetID, err := parseID("sheetId", rawSheetID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		filter.SheetID = &sheetID
	}

	attributes, err := h.service.Attributes(ctx, filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, attributes)
}

// UpdateKeyword replaces a keyword
// @Summary Update a sheet keyword
// @Tags Keywords
// @Accept json
// @Produce json
// @Param request body models.UpdateAttributeRequest true "Keyword id and new value"
// @Success 200 {object} models.UpdateAttributeResponse
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets/keywords [put]
func (h *Handler) UpdateKeyword(c *gin.Context) {
	var req models.UpdateAttributeRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.validator.Validate(&req, "Need an attribute id to process request"); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.service.UpdateAttribute(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateSheet replaces a sheet's metadata
// @Summary Update a study sheet
// @Tags Sheets
// @Accept json
// @Produce json
// @Param request body models.UpdateSheetRequest true "Sheet id and new values"
// @Success 200 {object} models.UpdateSheetResponse
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets [put]
func (h *Handler) UpdateSheet(c *gin.Context) {
	var req models.UpdateSheetRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.service.UpdateSheet(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateKeyword attaches a keyword to a sheet
// @Summary Add a keyword to a sheet
// @Tags Keywords
// @Accept json
// @Produce json
// @Param request body models.CreateAttributeRequest true "Sheet id and keyword"
// @Success 200 {object} models.CreateAttributeResponse
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets/keywords [post]
func (h *Handler) CreateKeyword(c *gin.Context) {
	var req models.CreateAttributeRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.validator.Validate(&req, "Sheet id not found, but is required"); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.service.CreateAttribute(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateSheet adds a study sheet
// @Summary Add a study sheet
// @Tags Sheets
// @Accept json
// @Produce json
// @Param request body models.CreateSheetRequest true "Sheet metadata, url is required"
// @Success 200 {object} models.CreateSheetResponse
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets [post]
func (h *Handler) CreateSheet(c *gin.Context) {
	var req models.CreateSheetRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.validator.Validate(&req, "Sheet url not found, but is required"); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.service.CreateSheet(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteSheet removes a study sheet
// @Summary Delete a study sheet
// @Tags Sheets
// @Produce json
// @Param id path int true "Sheet ID"
// @Success 200 {object} models.DeleteResponse
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets/{id} [delete]
func (h *Handler) DeleteSheet(c *gin.Context) {
	rawID := c.Param("id")
	id, err := parseID("id", rawID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	deleted, err := h.service.DeleteSheet(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.Info("Sheet delete", zap.Uint("sheet_id", id), zap.Bool("deleted", deleted))

	c.JSON(http.StatusOK, models.DeleteResponse{Deleted: deleted, ID: rawID})
}

// DeleteKeyword removes a keyword
// @Summary Delete a sheet keyword
// @Tags Keywords
// @Produce json
// @Param id path int true "Keyword ID"
// @Success 200 {object} models.DeleteResponse
// @Failure 400 {object} apiutil.ErrorResponse
// @Router /sheets/keywords/{id} [delete]
func (h *Handler) DeleteKeyword(c *gin.Context) {
	rawID := c.Param("id")
	id, err := parseID("id", rawID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	deleted, err := h.service.DeleteAttribute(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.Info("Keyword delete", zap.Uint("keyword_id", id), zap.Bool("deleted", deleted))

	c.JSON(http.StatusOK, models.DeleteResponse{Deleted: deleted, ID: rawID})
}
