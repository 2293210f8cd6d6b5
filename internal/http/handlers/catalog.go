package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/catalog"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/simulation"
)

type CatalogService interface {
	Find(ctx context.Context, typeLoan string) (*catalogdomain.LoanType, error)
	All(ctx context.Context) ([]catalogdomain.LoanType, error)
}

type CatalogHandler struct {
	catalogService CatalogService
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListLoanTypes(c *gin.Context) {
	items, err := h.catalogService.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_loan_types_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CatalogHandler) GetLoanType(c *gin.Context) {
	name := strings.TrimSpace(c.Param("typeLoan"))
	item, err := h.catalogService.Find(c.Request.Context(), name)
	if errors.Is(err, catalogdomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "loan_type_not_found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "loan_type_lookup_failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Simulate projects the monthly payment for an arbitrary amount, rate,
// and term. Public, no account needed.
func (h *CatalogHandler) Simulate(c *gin.Context) {
	amount, err := strconv.ParseInt(strings.TrimSpace(c.Query("amount")), 10, 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_amount"})
		return
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(c.Query("interestRate")), 64)
	if err != nil || rate <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_interest_rate"})
		return
	}
	term, err := strconv.ParseInt(strings.TrimSpace(c.Query("term")), 10, 32)
	if err != nil || term <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_term"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"amount":          amount,
		"interest_rate":   rate,
		"term":            term,
		"monthly_payment": simulation.MonthlyPayment(amount, rate, int32(term)),
	})
}
