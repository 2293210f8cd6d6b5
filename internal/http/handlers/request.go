package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/catalog"
	requestdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/request"
)

const maxDocumentSizeBytes = 10 << 20

type RequestService interface {
	SubmitFirstHome(ctx context.Context, in requestdomain.SubmitInput) (*requestdomain.Entity, error)
	SubmitSecondHome(ctx context.Context, in requestdomain.SubmitInput) (*requestdomain.Entity, error)
	SubmitCommercialProperty(ctx context.Context, in requestdomain.SubmitInput) (*requestdomain.Entity, error)
	SubmitRemodeling(ctx context.Context, in requestdomain.SubmitInput) (*requestdomain.Entity, error)
	EditStatus(ctx context.Context, id int64, code requestdomain.Status) (*requestdomain.Entity, error)
	FindByID(ctx context.Context, id int64) (*requestdomain.Entity, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, id int64) (*requestdomain.Summary, error)
	DocumentByType(ctx context.Context, id int64, docType requestdomain.DocumentType) (*requestdomain.Document, error)
	ListWithStatus(ctx context.Context) ([]requestdomain.StatusRow, error)
	StatusesForClient(ctx context.Context, rut string) ([]requestdomain.StatusRow, error)
}

type BoundsChecker interface {
	CheckBounds(ctx context.Context, typeLoan string, term int32, rate float64, amount int64) error
}

type RequestHandler struct {
	requestService RequestService
	bounds         BoundsChecker
}

func NewRequestHandler(requestService RequestService, bounds BoundsChecker) *RequestHandler {
	return &RequestHandler{requestService: requestService, bounds: bounds}
}

func (h *RequestHandler) SubmitFirstHome(c *gin.Context) {
	h.submit(c, requestdomain.CategoryFirstHome, h.requestService.SubmitFirstHome)
}

func (h *RequestHandler) SubmitSecondHome(c *gin.Context) {
	h.submit(c, requestdomain.CategorySecondHome, h.requestService.SubmitSecondHome)
}

func (h *RequestHandler) SubmitCommercialProperty(c *gin.Context) {
	h.submit(c, requestdomain.CategoryCommercialProperty, h.requestService.SubmitCommercialProperty)
}

func (h *RequestHandler) SubmitRemodeling(c *gin.Context) {
	h.submit(c, requestdomain.CategoryRemodeling, h.requestService.SubmitRemodeling)
}

type submitFn func(ctx context.Context, in requestdomain.SubmitInput) (*requestdomain.Entity, error)

func (h *RequestHandler) submit(c *gin.Context, cat requestdomain.Category, fn submitFn) {
	rut := strings.TrimSpace(c.PostForm("rut"))
	if rut == "" {
		if v, ok := c.Get("client_rut"); ok {
			rut, _ = v.(string)
		}
	}

	term, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("term")), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_term"})
		return
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("interestRate")), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_interest_rate"})
		return
	}
	amount, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("amount")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_amount"})
		return
	}

	if err := h.bounds.CheckBounds(c.Request.Context(), string(cat), int32(term), rate, amount); err != nil {
		if errors.Is(err, catalogdomain.ErrOutOfBounds) || errors.Is(err, catalogdomain.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bounds_check_failed"})
		return
	}

	docs := map[requestdomain.DocumentType][]byte{}
	for _, dt := range requestdomain.RequiredDocuments(cat) {
		content, ok := readFormFile(c, string(dt))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_document_" + string(dt)})
			return
		}
		docs[dt] = content
	}

	created, err := fn(c.Request.Context(), requestdomain.SubmitInput{
		Rut:          rut,
		Term:         int32(term),
		InterestRate: rate,
		Amount:       amount,
		Documents:    docs,
	})
	if errors.Is(err, requestdomain.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, requestdomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submit_failed"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func readFormFile(c *gin.Context, field string) ([]byte, bool) {
	file, err := c.FormFile(field)
	if err != nil || file.Size == 0 || file.Size > maxDocumentSizeBytes {
		return nil, false
	}
	src, err := file.Open()
	if err != nil {
		return nil, false
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil || len(content) == 0 {
		return nil, false
	}
	return content, true
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("requestId")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_id"})
		return
	}
	item, err := h.requestService.FindByID(c.Request.Context(), id)
	if errors.Is(err, requestdomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request_not_found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request_lookup_failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RequestHandler) GetSummary(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("requestId")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_id"})
		return
	}
	summary, err := h.requestService.Summary(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary_failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("requestId")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_id"})
		return
	}
	if err := h.requestService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, requestdomain.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type editStatusRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *RequestHandler) EditStatus(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("requestId")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_id"})
		return
	}
	var req editStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	item, err := h.requestService.EditStatus(c.Request.Context(), id, requestdomain.Status(strings.TrimSpace(req.Code)))
	if errors.Is(err, requestdomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request_not_found"})
		return
	}
	if errors.Is(err, requestdomain.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "edit_status_failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RequestHandler) DownloadDocument(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("requestId")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_id"})
		return
	}
	docType := requestdomain.DocumentType(strings.TrimSpace(c.Param("docType")))

	doc, err := h.requestService.DocumentByType(c.Request.Context(), id, docType)
	if errors.Is(err, requestdomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document_not_found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "document_lookup_failed"})
		return
	}

	c.Header("X-Document-Checksum", doc.Checksum)
	c.Header("Content-Disposition", `attachment; filename="`+string(doc.Type)+`.pdf"`)
	c.Data(http.StatusOK, "application/octet-stream", doc.Content)
}

func (h *RequestHandler) ListWithStatus(c *gin.Context) {
	rows, err := h.requestService.ListWithStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_requests_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// MyRequests lists the authenticated client's requests. The rut comes
// from the access token, never from the URL.
func (h *RequestHandler) MyRequests(c *gin.Context) {
	v, ok := c.Get("client_rut")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	rut, _ := v.(string)

	rows, err := h.requestService.StatusesForClient(c.Request.Context(), rut)
	if errors.Is(err, requestdomain.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"items": []requestdomain.StatusRow{}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_requests_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
