package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safebite/chaintrace/internal/validate"
)

type transferRequest struct {
	SignerAddress   string `json:"signerAddress"`
	ProductID       uint64 `json:"productId"`
	ToAddress       string `json:"toAddress"`
	ShipmentDetails string `json:"shipmentDetails"`
}

func (s *Server) transferOwnership(c *gin.Context) {
	const op = "transferOwnership"

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	if !validate.IsValidAddress(req.ToAddress) {
		AbortWithError(c, op, validationError("invalid recipient address %q", req.ToAddress))
		return
	}
	if !validate.IsValidProductID(int64(req.ProductID)) {
		AbortWithError(c, op, validationError("invalid product id %d", req.ProductID))
		return
	}

	result, err := s.gateway.TransferOwnership(c.Request.Context(), req.SignerAddress, req.ProductID, req.ToAddress, req.ShipmentDetails)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productId":       req.ProductID,
		"toAddress":       req.ToAddress,
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         "Ownership transferred successfully",
	})
}

type batchTransferRequest struct {
	SignerAddress   string   `json:"signerAddress"`
	ProductIDs      []uint64 `json:"productIds"`
	ToAddress       string   `json:"toAddress"`
	ShipmentDetails string   `json:"shipmentDetails"`
}

func (s *Server) batchTransferOwnership(c *gin.Context) {
	const op = "batchTransferOwnership"

	var req batchTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	if !validate.IsValidAddress(req.ToAddress) {
		AbortWithError(c, op, validationError("invalid recipient address %q", req.ToAddress))
		return
	}
	if len(req.ProductIDs) == 0 {
		AbortWithError(c, op, validationError("productIds must not be empty"))
		return
	}
	for _, id := range req.ProductIDs {
		if !validate.IsValidProductID(int64(id)) {
			AbortWithError(c, op, validationError("invalid product id %d", id))
			return
		}
	}

	result, err := s.gateway.BatchTransferOwnership(c.Request.Context(), req.SignerAddress, req.ProductIDs, req.ToAddress, req.ShipmentDetails)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productIds":      req.ProductIDs,
		"toAddress":       req.ToAddress,
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         fmt.Sprintf("Transferred %d products successfully", len(req.ProductIDs)),
	})
}

func (s *Server) getTransferHistory(c *gin.Context) {
	const op = "getTransferHistory"

	id, err := parseProductID(c, "productId")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	transfers, err := s.gateway.GetTransferHistory(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"productId": id,
		"count":     len(transfers),
		"transfers": transfers,
	})
}
