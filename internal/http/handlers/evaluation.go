package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	evaluationdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/evaluation"
)

type EvaluationService interface {
	EvaluateCredit(ctx context.Context, in *evaluationdomain.Entity) (*evaluationdomain.Entity, error)
	AgeCompliant(dob time.Time, termYears int32) bool
	TotalCosts(ctx context.Context, requestID int64) (int64, error)
}

type EvaluationHandler struct {
	evaluationService EvaluationService
}

func NewEvaluationHandler(evaluationService EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

type evaluateRequest struct {
	RequestID           int64 `json:"request_id" binding:"required"`
	IncomeQuota         bool  `json:"income_quota"`
	CreditHistory       bool  `json:"credit_history"`
	EmploymentSeniority bool  `json:"employment_seniority"`
	IncomeDebtRelation  bool  `json:"income_debt_relation"`
	FinancingLimit      bool  `json:"financing_limit"`
	ApplicantAge        bool  `json:"applicant_age"`
	SavingsCapacity     bool  `json:"savings_capacity"`
}

func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	saved, err := h.evaluationService.EvaluateCredit(c.Request.Context(), &evaluationdomain.Entity{
		RequestID:           req.RequestID,
		IncomeQuota:         req.IncomeQuota,
		CreditHistory:       req.CreditHistory,
		EmploymentSeniority: req.EmploymentSeniority,
		IncomeDebtRelation:  req.IncomeDebtRelation,
		FinancingLimit:      req.FinancingLimit,
		ApplicantAge:        req.ApplicantAge,
		SavingsCapacity:     req.SavingsCapacity,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "evaluation_failed"})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// AgeCheck answers the applicant age rule for a birth date and term, so
// executives do not compute it by hand.
func (h *EvaluationHandler) AgeCheck(c *gin.Context) {
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("birthDate")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_birth_date"})
		return
	}
	term, err := strconv.ParseInt(strings.TrimSpace(c.Query("term")), 10, 32)
	if err != nil || term <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_term"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"birth_date": dob.Format("2006-01-02"),
		"term":       term,
		"compliant":  h.evaluationService.AgeCompliant(dob, int32(term)),
	})
}

func (h *EvaluationHandler) TotalCosts(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("requestId")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_id"})
		return
	}

	total, err := h.evaluationService.TotalCosts(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "total_costs_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request_id": id, "total_costs": total})
}
