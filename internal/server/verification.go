package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safebite/chaintrace/internal/chain/domain"
	"github.com/safebite/chaintrace/internal/validate"
)

// A check scoring at least this is reported as passed.
const qualityPassThreshold = 50

// verificationView decorates the ledger record with the human-readable type.
type verificationView struct {
	domain.Verification
	TypeLabel string `json:"typeLabel"`
}

type authenticityRequest struct {
	SignerAddress string `json:"signerAddress"`
	ProductID     uint64 `json:"productId"`
	Notes         string `json:"notes"`
}

func (s *Server) verifyAuthenticity(c *gin.Context) {
	const op = "verifyAuthenticity"

	var req authenticityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	if !validate.IsValidProductID(int64(req.ProductID)) {
		AbortWithError(c, op, validationError("invalid product id %d", req.ProductID))
		return
	}

	result, err := s.gateway.VerifyAuthenticity(c.Request.Context(), req.SignerAddress, req.ProductID, req.Notes)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productId":       req.ProductID,
		"isValid":         result.IsValid,
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         "Product authenticity verified",
	})
}

type qualityCheckRequest struct {
	SignerAddress string `json:"signerAddress"`
	ProductID     uint64 `json:"productId"`
	QualityScore  uint8  `json:"qualityScore"`
	Notes         string `json:"notes"`
}

func (s *Server) performQualityCheck(c *gin.Context) {
	const op = "performQualityCheck"

	var req qualityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	if !validate.IsValidProductID(int64(req.ProductID)) {
		AbortWithError(c, op, validationError("invalid product id %d", req.ProductID))
		return
	}
	if req.QualityScore > 100 {
		AbortWithError(c, op, validationError("quality score %d out of range 0-100", req.QualityScore))
		return
	}

	result, err := s.gateway.PerformQualityCheck(c.Request.Context(), req.SignerAddress, req.ProductID, req.QualityScore, req.Notes)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productId":       req.ProductID,
		"qualityScore":    req.QualityScore,
		"passed":          req.QualityScore >= qualityPassThreshold,
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         "Quality check performed",
	})
}

type complianceRequest struct {
	SignerAddress   string `json:"signerAddress"`
	ProductID       uint64 `json:"productId"`
	Compliant       bool   `json:"compliant"`
	CertificateHash string `json:"certificateHash"`
}

func (s *Server) checkCompliance(c *gin.Context) {
	const op = "checkCompliance"

	var req complianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}
	if !validate.IsValidProductID(int64(req.ProductID)) {
		AbortWithError(c, op, validationError("invalid product id %d", req.ProductID))
		return
	}

	result, err := s.gateway.CheckCompliance(c.Request.Context(), req.SignerAddress, req.ProductID, req.Compliant, req.CertificateHash)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	verdict := "non-compliant"
	if result.Compliant {
		verdict = "compliant"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productId":       req.ProductID,
		"compliant":       result.Compliant,
		"certificateHash": result.CertificateHash,
		"isAuthentic":     result.IsAuthentic,
		"autoVerified":    result.AutoVerified,
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         fmt.Sprintf("Product marked as %s", verdict),
	})
}

func (s *Server) getVerificationHistory(c *gin.Context) {
	const op = "getVerificationHistory"

	id, err := parseProductID(c, "productId")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	verifications, err := s.gateway.GetVerificationHistory(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	views := make([]verificationView, 0, len(verifications))
	for _, v := range verifications {
		views = append(views, verificationView{Verification: v, TypeLabel: v.Type.String()})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"productId":     id,
		"count":         len(views),
		"verifications": views,
	})
}
