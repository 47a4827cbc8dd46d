package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/safebite/chaintrace/internal/chain/domain"
	"github.com/safebite/chaintrace/internal/journey"
	"github.com/safebite/chaintrace/internal/validate"
	"go.uber.org/zap"
)

// productView decorates the ledger record with the human-readable status.
type productView struct {
	domain.Product
	StatusLabel string `json:"statusLabel"`
}

func viewProduct(p domain.Product) productView {
	return productView{Product: p, StatusLabel: p.Status.String()}
}

type registerProductRequest struct {
	SignerAddress string `json:"signerAddress"`
	Name          string `json:"name"`
	BatchID       string `json:"batchId"`
	Origin        string `json:"origin"`
	MetadataHash  string `json:"metadataHash"`
}

type registerProductResponse struct {
	Success bool   `json:"success"`
	QRCode  string `json:"qrCode"`
	domain.RegisterResult
}

func (s *Server) registerProduct(c *gin.Context) {
	const op = "registerProduct"

	var req registerProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.BatchID) == "" {
		AbortWithError(c, op, validationError("name and batchId are required"))
		return
	}

	result, err := s.gateway.RegisterProduct(c.Request.Context(), req.SignerAddress, req.Name, req.BatchID, req.Origin, req.MetadataHash)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	// Registration is already confirmed on chain; a QR rendering failure must
	// not fail the call.
	qrCode, err := s.qr.DataURL(result.ProductID)
	if err != nil {
		s.log.Warn("qr rendering failed", zap.Uint64("product_id", result.ProductID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, registerProductResponse{
		Success:        true,
		QRCode:         qrCode,
		RegisterResult: *result,
	})
}

func (s *Server) getProduct(c *gin.Context) {
	const op = "getProduct"

	id, err := parseProductID(c, "id")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	product, err := s.gateway.GetProduct(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": viewProduct(*product),
	})
}

func (s *Server) listProducts(c *gin.Context) {
	const op = "listProducts"

	owner := strings.TrimSpace(c.Query("owner"))
	if owner != "" && !validate.IsValidAddress(owner) {
		AbortWithError(c, op, validationError("invalid owner address %q", owner))
		return
	}

	filter := domain.ProductFilter{Owner: owner}
	if rawRole := strings.TrimSpace(c.Query("role")); rawRole != "" {
		value, err := strconv.ParseUint(rawRole, 10, 8)
		if err != nil || domain.Role(value) > domain.RoleConsumer {
			AbortWithError(c, op, validationError("invalid role %q", rawRole))
			return
		}
		role := domain.Role(value)
		filter.Role = &role
	}

	products, err := s.gateway.ListProducts(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewProduct(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(views),
		"products": views,
	})
}

func (s *Server) getJourney(c *gin.Context) {
	const op = "getJourney"

	id, err := parseProductID(c, "id")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	events, err := s.gateway.GetJourney(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"productId": id,
		"journey":   journey.Format(events),
	})
}

func (s *Server) getProvenance(c *gin.Context) {
	const op = "getProvenance"

	id, err := parseProductID(c, "id")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	provenance, err := s.gateway.GetProvenance(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"productId":  id,
		"provenance": provenance,
	})
}

type updateStatusRequest struct {
	SignerAddress string `json:"signerAddress"`
	Status        uint8  `json:"status"`
}

func (s *Server) updateStatus(c *gin.Context) {
	const op = "updateStatus"

	id, err := parseProductID(c, "id")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	status := domain.ProductStatus(req.Status)
	if !status.Valid() {
		AbortWithError(c, op, validationError("invalid status %d", req.Status))
		return
	}

	result, err := s.gateway.UpdateStatus(c.Request.Context(), req.SignerAddress, id, status)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productId":       id,
		"status":          status,
		"statusLabel":     status.String(),
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         "Status updated to " + status.String(),
	})
}

type updateMetadataRequest struct {
	SignerAddress string `json:"signerAddress"`
	MetadataHash  string `json:"metadataHash"`
}

func (s *Server) updateMetadata(c *gin.Context) {
	const op = "updateMetadata"

	id, err := parseProductID(c, "id")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	var req updateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	if strings.TrimSpace(req.MetadataHash) == "" {
		AbortWithError(c, op, validationError("metadataHash is required"))
		return
	}

	result, err := s.gateway.UpdateProductMetadata(c.Request.Context(), req.SignerAddress, id, req.MetadataHash)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productId":       id,
		"metadataHash":    req.MetadataHash,
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         "Product metadata updated",
	})
}
