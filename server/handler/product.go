package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/secureapi/errors"
	"github.com/skillsenselab/secureapi/logger"
	"github.com/skillsenselab/secureapi/product"
	"github.com/skillsenselab/secureapi/server"
	"github.com/skillsenselab/secureapi/validation"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	products *product.Service
	log      *logger.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(svc *product.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{products: svc, log: log.WithComponent("handler")}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, products)
}

type productRequest struct {
	Name        string  `json:"name" validate:"required,max=128"`
	Description string  `json:"description" validate:"max=1024"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	created, err := h.products.Create(c.Request.Context(), &product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondCreated(c, created)
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondNoContent(c)
}
