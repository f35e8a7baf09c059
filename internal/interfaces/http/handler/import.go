package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	importapp "github.com/stockledger/backend/internal/application/importer"
	"github.com/stockledger/backend/internal/interfaces/http/dto"

	csvimport "github.com/stockledger/backend/internal/infrastructure/import"
)

// defaultMaxImportFileSize caps CSV uploads when no limit is configured (5MB)
const defaultMaxImportFileSize = 5 * 1024 * 1024

// ImportHandler handles CSV bulk import endpoints
type ImportHandler struct {
	BaseHandler
	importService *importapp.ProductImportService
	maxFileSize   int64
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *importapp.ProductImportService, maxFileSize int64) *ImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxImportFileSize
	}
	return &ImportHandler{
		importService: importService,
		maxFileSize:   maxFileSize,
	}
}

// ImportProducts godoc
// @Summary      Bulk import products from CSV
// @Description  Import products from an uploaded CSV file. Rows are processed in file
// @Description  order and failures are isolated per row. Re-sending the same
// @Description  Idempotency-Key header replays the stored result without re-importing.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file with header name,sku,category[,quantity,price,supplier,description,status]"
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Success      200 {object} dto.Response{data=importapp.ProductImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/import [post]
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing or invalid file upload: expected multipart field 'file'")
		return
	}

	if fileHeader.Size > h.maxFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBadRequest,
			"Uploaded file exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	result, err := h.importService.ImportReaderWithKey(c.Request.Context(), key, file)
	if err != nil {
		switch {
		case errors.Is(err, csvimport.ErrEmptyFile):
			h.BadRequest(c, "Uploaded file is empty")
		case errors.Is(err, csvimport.ErrInvalidEncoding):
			h.BadRequest(c, "Uploaded file is not valid UTF-8")
		case errors.Is(err, csvimport.ErrMissingHeader):
			h.BadRequest(c, err.Error())
		default:
			h.HandleDomainError(c, err)
		}
		return
	}

	h.Success(c, result)
}
