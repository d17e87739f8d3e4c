package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
)

type ProductController struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewProductController(products repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{products: products, logger: logger}
}

func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.products.FindAll(c.Request.Context())
	if err != nil {
		pc.logger.Error("failed to list products", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.products.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Abort(c, apperrors.ErrNotFound)
		return
	}
	if err != nil {
		pc.logger.Error("failed to fetch product", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}
	if product.Name == "" || product.Price < 0 {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}
	if product.ID == "" {
		product.ID = "p_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	}

	if err := pc.products.Create(c.Request.Context(), &product); err != nil {
		pc.logger.Error("failed to create product", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}
	// id is the key; never updatable.
	delete(updates, "id")

	rows, err := pc.products.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		pc.logger.Error("failed to update product", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	if rows == 0 {
		apperrors.Abort(c, apperrors.ErrNotFound)
		return
	}

	product, err := pc.products.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	rows, err := pc.products.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		pc.logger.Error("failed to delete product", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	if rows == 0 {
		apperrors.Abort(c, apperrors.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SeedProducts loads the catalog on an empty database. No-op when any
// product already exists.
func (pc *ProductController) SeedProducts(c *gin.Context) {
	var payload struct {
		Products []models.Product `json:"products" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	existing, err := pc.products.FindAll(c.Request.Context())
	if err != nil {
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	if len(existing) > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Database already seeded"})
		return
	}

	start := time.Now()
	for i := range payload.Products {
		if err := pc.products.Create(c.Request.Context(), &payload.Products[i]); err != nil {
			pc.logger.Error("failed to seed product", zap.Error(err))
			apperrors.Abort(c, apperrors.ErrInternalServer)
			return
		}
	}
	pc.logger.Info("catalog seeded",
		zap.Int("count", len(payload.Products)),
		zap.Duration("took", time.Since(start)),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Database seeded successfully"})
}
