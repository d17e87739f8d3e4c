package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/middleware"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/services"
)

// CheckoutAPI is the orchestrator contract this controller drives.
type CheckoutAPI interface {
	Checkout(ctx context.Context, customerID string, input services.CheckoutInput) (*models.Order, error)
}

type CheckoutController struct {
	checkout CheckoutAPI
	storage  services.FileStorage
	logger   *zap.Logger
}

func NewCheckoutController(checkout CheckoutAPI, storage services.FileStorage, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{checkout: checkout, storage: storage, logger: logger}
}

// Checkout runs the full checkout workflow. The request is multipart so
// the prescription document can ride along with the address fields; the
// handler blocks until payment confirmation resolves one way or the
// other. Cancelling the request cancels the poll.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	input := services.CheckoutInput{
		Address:         c.PostForm("shippingAddress"),
		Phone:           c.PostForm("phone"),
		Notes:           c.PostForm("notes"),
		PrescriptionURL: c.PostForm("prescriptionImage"),
	}

	if fileHeader, err := c.FormFile("prescription"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			apperrors.Abort(c, apperrors.ErrInvalidInput)
			return
		}
		defer file.Close()
		input.Prescription = &services.PrescriptionFile{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Reader:      file,
		}
	}

	order, err := cc.checkout.Checkout(c.Request.Context(), identity.ID, input)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Upload stores a file and returns its public URL. Used by the storefront
// to upload prescription documents ahead of checkout.
func (cc *CheckoutController) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}
	defer file.Close()

	url, err := cc.storage.Store(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		cc.logger.Error("file upload failed", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrUploadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
