package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gstdesk/internal/domain"
	"gstdesk/internal/export"
	"gstdesk/internal/middleware"
	"gstdesk/internal/service"
)

// InvoiceHandler handles invoice computation, rendering and export endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	defaultFormat  domain.DocumentFormat
	maxItems       int
	log            *logrus.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler. maxItems <= 0 disables the
// item count limit.
func NewInvoiceHandler(invoiceService service.InvoiceService, defaultFormat domain.DocumentFormat, maxItems int, log *logrus.Logger) *InvoiceHandler {
	if defaultFormat == "" {
		defaultFormat = domain.DocumentFormatHTML
	}
	return &InvoiceHandler{
		invoiceService: invoiceService,
		defaultFormat:  defaultFormat,
		maxItems:       maxItems,
		log:            log,
	}
}

// Preview handles POST /api/v1/invoices/preview
// @Summary      Preview an invoice
// @Description  Validate, compute and render an invoice, returning totals and the rendered document
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        format query string false "Document format (html or pdf)" default(html)
// @Param        body body InvoiceRequest true "Invoice"
// @Success      200 {object} APIResponse{data=PreviewResponse}
// @Failure      400 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	inv, ok := h.bindInvoice(c)
	if !ok {
		return
	}
	format, err := h.documentFormat(c)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	result, err := h.invoiceService.Preview(c.Request.Context(), businessContext(c), inv, format)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	resp, err := newPreviewResponse(result)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, resp)
}

// Render handles POST /api/v1/invoices/render
// @Summary      Render an invoice document
// @Description  Return the rendered invoice as a downloadable HTML or PDF document
// @Tags         invoices
// @Accept       json
// @Produce      html
// @Produce      application/pdf
// @Param        format query string false "Document format (html or pdf)" default(html)
// @Param        body body InvoiceRequest true "Invoice"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /invoices/render [post]
func (h *InvoiceHandler) Render(c *gin.Context) {
	inv, ok := h.bindInvoice(c)
	if !ok {
		return
	}
	format, err := h.documentFormat(c)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	result, err := h.invoiceService.Preview(c.Request.Context(), businessContext(c), inv, format)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	doc := result.Document
	disposition := "inline"
	if c.Query("download") == "true" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// Submit handles POST /api/v1/invoices/submit
// @Summary      Submit an invoice
// @Description  Render an invoice and optionally archive it and email it to the customer
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        format query string false "Document format (html or pdf)" default(html)
// @Param        archive query bool false "Archive the rendered document" default(false)
// @Param        email query bool false "Email the invoice to the customer" default(false)
// @Param        body body InvoiceRequest true "Invoice"
// @Success      201 {object} APIResponse{data=SubmitResponse}
// @Failure      400 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Failure      502 {object} APIResponse
// @Security     BearerAuth
// @Router       /invoices/submit [post]
func (h *InvoiceHandler) Submit(c *gin.Context) {
	inv, ok := h.bindInvoice(c)
	if !ok {
		return
	}
	format, err := h.documentFormat(c)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	archive, err := parseBoolQuery(c, "archive")
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	email, err := parseBoolQuery(c, "email")
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	outcome, err := h.invoiceService.Submit(c.Request.Context(), businessContext(c), inv, service.SubmitOptions{
		Format:  format,
		Archive: archive,
		Email:   email,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	preview, err := newPreviewResponse(outcome.Result)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondCreated(c, SubmitResponse{
		PreviewResponse: preview,
		Archive:         outcome.Reference,
		Emailed:         outcome.Emailed,
	})
}

// Export handles POST /api/v1/invoices/export
// @Summary      Export invoice line items
// @Description  Download the computed line-item register as CSV or Excel
// @Tags         invoices
// @Accept       json
// @Produce      text/csv
// @Param        format query string false "Export format (csv or xlsx)" default(csv)
// @Param        body body InvoiceRequest true "Invoice"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /invoices/export [post]
func (h *InvoiceHandler) Export(c *gin.Context) {
	inv, ok := h.bindInvoice(c)
	if !ok {
		return
	}
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	contentType, supported := domain.ExportContentTypes[format]
	if !supported {
		HandleError(c, h.log, domain.ErrUnsupportedFormat)
		return
	}

	var buf bytes.Buffer
	if _, err := h.invoiceService.Export(c.Request.Context(), businessContext(c), inv, format, &buf); err != nil {
		HandleError(c, h.log, err)
		return
	}

	filename := export.BuildDatedFilename("invoice_"+inv.InvoiceNumber, string(format), inv.InvoiceDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// bindInvoice decodes the request body. Returns false if the body is invalid
// (error response already written).
func (h *InvoiceHandler) bindInvoice(c *gin.Context) (*domain.Invoice, bool) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "request body must be a JSON invoice")
		return nil, false
	}
	if h.maxItems > 0 && len(req.Items) > h.maxItems {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", fmt.Sprintf("an invoice may have at most %d items", h.maxItems))
		return nil, false
	}
	inv, err := req.ToInvoice()
	if err != nil {
		HandleError(c, h.log, err)
		return nil, false
	}
	return inv, true
}

func (h *InvoiceHandler) documentFormat(c *gin.Context) (domain.DocumentFormat, error) {
	raw := c.Query("format")
	if raw == "" {
		return h.defaultFormat, nil
	}
	return domain.ParseDocumentFormat(raw)
}

func parseBoolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: '%s' must be a boolean", domain.ErrInvalidInput, key)
	}
	return v, nil
}

// businessContext returns the authenticated business, or an anonymous context
// when authentication is disabled.
func businessContext(c *gin.Context) domain.BusinessContext {
	bc, err := middleware.GetBusinessContext(c)
	if err != nil {
		return domain.BusinessContext{}
	}
	return bc
}
