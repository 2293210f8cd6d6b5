package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	clientdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
)

type ClientService interface {
	Register(ctx context.Context, in clientdomain.RegisterInput) (*clientdomain.Entity, error)
	RutExists(ctx context.Context, rut string) (bool, error)
	All(ctx context.Context) ([]clientdomain.Entity, error)
}

type ClientHandler struct {
	clientService ClientService
}

func NewClientHandler(clientService ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type registerRequest struct {
	Rut         string `json:"rut" binding:"required"`
	Name        string `json:"name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
}

func (h *ClientHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date_of_birth"})
		return
	}

	created, err := h.clientService.Register(c.Request.Context(), clientdomain.RegisterInput{
		Rut:         req.Rut,
		Name:        req.Name,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: dob,
	})
	if errors.Is(err, clientdomain.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration_failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client": gin.H{
			"id":        created.ID,
			"rut":       created.Rut,
			"name":      created.Name,
			"last_name": created.LastName,
			"email":     created.Email,
		},
	})
}

// ListClients is the executive directory view; password hashes never
// leave the entity thanks to its json tag.
func (h *ClientHandler) ListClients(c *gin.Context) {
	items, err := h.clientService.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_clients_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ClientHandler) CheckRut(c *gin.Context) {
	rut := c.Param("rut")
	exists, err := h.clientService.RutExists(c.Request.Context(), rut)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
