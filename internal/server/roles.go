package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/safebite/chaintrace/internal/chain/domain"
	"github.com/safebite/chaintrace/internal/validate"
)

func (s *Server) checkRole(c *gin.Context) {
	const op = "checkRole"

	address := c.Param("address")
	if !validate.IsValidAddress(address) {
		AbortWithError(c, op, validationError("invalid address %q", address))
		return
	}

	role, err := s.gateway.GetRole(c.Request.Context(), address)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"address":  address,
		"role":     role,
		"roleName": role.String(),
	})
}

func (s *Server) myRole(c *gin.Context) {
	const op = "myRole"

	address := strings.TrimSpace(c.Query("address"))
	if !validate.IsValidAddress(address) {
		AbortWithError(c, op, validationError("invalid address %q", address))
		return
	}

	role, err := s.gateway.GetRole(c.Request.Context(), address)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"address":  address,
		"role":     role,
		"roleName": role.String(),
	})
}

type grantRoleRequest struct {
	SignerAddress  string `json:"signerAddress"`
	AccountAddress string `json:"accountAddress"`
	Role           uint8  `json:"role"`
}

func (s *Server) grantRole(c *gin.Context) {
	const op = "grantRole"

	var req grantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if !validate.IsValidAddress(req.SignerAddress) {
		AbortWithError(c, op, validationError("invalid signer address %q", req.SignerAddress))
		return
	}

	result, role, err := s.dispatchGrant(c, req.SignerAddress, req.AccountAddress, req.Role)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"accountAddress":  req.AccountAddress,
		"role":            role,
		"roleName":        role.String(),
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         "Role granted successfully",
	})
}

type grantRoleDevRequest struct {
	AccountAddress string `json:"accountAddress"`
	Role           uint8  `json:"role"`
}

func (s *Server) grantRoleDev(c *gin.Context) {
	const op = "grantRoleDev"

	var req grantRoleDevRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}

	deployer := s.gateway.DeployerAddress()
	if deployer == "" {
		AbortWithError(c, op, domain.ErrNoSigner)
		return
	}

	result, role, err := s.dispatchGrant(c, deployer, req.AccountAddress, req.Role)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"accountAddress":  req.AccountAddress,
		"role":            role,
		"roleName":        role.String(),
		"transactionHash": result.TxHash,
		"blockNumber":     result.BlockNumber,
		"gasUsed":         result.GasUsed,
		"message":         "Role granted successfully",
	})
}

// dispatchGrant validates the grant target before any ledger call and then
// submits it.
func (s *Server) dispatchGrant(c *gin.Context, signer, account string, rawRole uint8) (*domain.TxResult, domain.Role, error) {
	role := domain.Role(rawRole)
	if !validate.IsValidAddress(account) {
		return nil, role, validationError("invalid account address %q", account)
	}
	if !role.Grantable() {
		return nil, role, validationError("role %d (%s) cannot be granted", rawRole, role.String())
	}

	result, err := s.gateway.GrantRole(c.Request.Context(), signer, account, role)
	return result, role, err
}

type batchGrantDevRequest struct {
	Grants []grantRoleDevRequest `json:"grants"`
}

// batchGrantRoleDev processes grants sequentially and partitions the
// outcomes. One failure never aborts the rest; the call-level success flag is
// true even with zero successful grants.
func (s *Server) batchGrantRoleDev(c *gin.Context) {
	const op = "batchGrantRoleDev"

	var req batchGrantDevRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, op, validationError("invalid request body: %v", err))
		return
	}
	if len(req.Grants) == 0 {
		AbortWithError(c, op, validationError("grants must not be empty"))
		return
	}

	deployer := s.gateway.DeployerAddress()
	if deployer == "" {
		AbortWithError(c, op, domain.ErrNoSigner)
		return
	}

	results := make([]gin.H, 0, len(req.Grants))
	failures := make([]gin.H, 0)
	for _, grant := range req.Grants {
		result, role, err := s.dispatchGrant(c, deployer, grant.AccountAddress, grant.Role)
		if err != nil {
			failures = append(failures, gin.H{
				"accountAddress": grant.AccountAddress,
				"role":           grant.Role,
				"error":          err.Error(),
			})
			continue
		}
		results = append(results, gin.H{
			"accountAddress":  grant.AccountAddress,
			"role":            role,
			"roleName":        role.String(),
			"transactionHash": result.TxHash,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"results":    results,
		"errors":     failures,
		"successful": len(results),
		"failed":     len(failures),
		"total":      len(req.Grants),
	})
}
