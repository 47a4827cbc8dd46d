package gateway

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/safebite/chaintrace/internal/certificate"
	"github.com/safebite/chaintrace/internal/chain/domain"
	"go.uber.org/zap"
)

const (
	qualityTag    = "quality"
	complianceTag = "compliance"
)

// RegisterProduct submits a registration and recovers the minted id from the
// ProductRegistered event. When the receipt carries no matching log the id is
// recovered by re-reading the product count, a degraded path that is only
// correct while registrations are sequential.
func (g *Gateway) RegisterProduct(ctx context.Context, signer, name, batchID, origin, metadataHash string) (*domain.RegisterResult, error) {
	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "registerProduct",
		name, batchID, origin, metadataHash)
	if err != nil {
		return nil, err
	}

	result := &domain.RegisterResult{TxResult: txResult(receipt)}

	if id, ok := extractProductID(g.supplyChainABI, receipt); ok {
		result.ProductID = id
		result.IDSource = domain.IDFromEvent
		return result, nil
	}

	g.log.Warn("ProductRegistered event missing from receipt, falling back to product count",
		zap.String("tx_hash", result.TxHash))

	count, err := g.GetProductCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("registration confirmed in %s but product id unrecoverable: %w", result.TxHash, err)
	}
	result.ProductID = count
	result.IDSource = domain.IDFromFallback
	return result, nil
}

func (g *Gateway) TransferOwnership(ctx context.Context, signer string, productID uint64, to, shipmentDetails string) (*domain.TxResult, error) {
	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "transferOwnership",
		new(big.Int).SetUint64(productID), common.HexToAddress(to), shipmentDetails)
	if err != nil {
		return nil, err
	}
	result := txResult(receipt)
	return &result, nil
}

func (g *Gateway) BatchTransferOwnership(ctx context.Context, signer string, productIDs []uint64, to, shipmentDetails string) (*domain.TxResult, error) {
	ids := make([]*big.Int, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, new(big.Int).SetUint64(id))
	}

	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "batchTransferOwnership",
		ids, common.HexToAddress(to), shipmentDetails)
	if err != nil {
		return nil, err
	}
	result := txResult(receipt)
	return &result, nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, signer string, productID uint64, status domain.ProductStatus) (*domain.TxResult, error) {
	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "updateStatus",
		new(big.Int).SetUint64(productID), uint8(status))
	if err != nil {
		return nil, err
	}
	result := txResult(receipt)
	return &result, nil
}

func (g *Gateway) UpdateProductMetadata(ctx context.Context, signer string, productID uint64, metadataHash string) (*domain.TxResult, error) {
	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "updateProductMetadata",
		new(big.Int).SetUint64(productID), metadataHash)
	if err != nil {
		return nil, err
	}
	result := txResult(receipt)
	return &result, nil
}

// VerifyAuthenticity records an authenticity verification and reads the
// verdict from post-inclusion contract state.
func (g *Gateway) VerifyAuthenticity(ctx context.Context, signer string, productID uint64, notes string) (*domain.AuthenticityResult, error) {
	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "verifyAuthenticity",
		new(big.Int).SetUint64(productID), notes)
	if err != nil {
		return nil, err
	}

	isValid, err := g.IsAuthentic(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthenticityResult{TxResult: txResult(receipt), IsValid: isValid}, nil
}

// PerformQualityCheck generates a certificate hash over the check's fields,
// merges it into the product's packed metadata under the quality tag, and
// submits the check carrying the merged string. The stored metadata always
// reflects the latest merge, never just the latest certificate.
func (g *Gateway) PerformQualityCheck(ctx context.Context, signer string, productID uint64, qualityScore uint8, notes string) (*domain.TxResult, error) {
	product, err := g.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	certHash := certificate.Generate(certificate.Fields{
		ProductID: productID,
		Type:      qualityTag,
		Verifier:  signer,
		Result:    strconv.Itoa(int(qualityScore)),
		Notes:     notes,
		Timestamp: time.Now().Unix(),
	})
	merged := certificate.Merge(product.MetadataHash, qualityTag, certHash)

	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "performQualityCheck",
		new(big.Int).SetUint64(productID), qualityScore, notes, merged)
	if err != nil {
		return nil, err
	}
	result := txResult(receipt)
	return &result, nil
}

// CheckCompliance merges the compliance certificate the same way the quality
// path does, auto-generating a hash when the caller marks the product
// compliant without supplying one. The ledger may flip the product authentic
// once both quality and compliance are on record; AutoVerified reports
// whether that happened during this call.
func (g *Gateway) CheckCompliance(ctx context.Context, signer string, productID uint64, compliant bool, certificateHash string) (*domain.ComplianceResult, error) {
	product, err := g.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	wasAuthentic := product.IsAuthentic

	if compliant && certificateHash == "" {
		certificateHash = certificate.Generate(certificate.Fields{
			ProductID: productID,
			Type:      complianceTag,
			Verifier:  signer,
			Result:    strconv.FormatBool(compliant),
			Notes:     "",
			Timestamp: time.Now().Unix(),
		})
	}

	merged := product.MetadataHash
	if certificateHash != "" {
		merged = certificate.Merge(product.MetadataHash, complianceTag, certificateHash)
	}

	receipt, err := g.transact(ctx, g.supplyChain, common.HexToAddress(signer), "checkCompliance",
		new(big.Int).SetUint64(productID), compliant, merged)
	if err != nil {
		return nil, err
	}

	isAuthentic, err := g.IsAuthentic(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &domain.ComplianceResult{
		TxResult:        txResult(receipt),
		Compliant:       compliant,
		CertificateHash: certificateHash,
		IsAuthentic:     isAuthentic,
		AutoVerified:    isAuthentic && !wasAuthentic,
	}, nil
}

// GrantRole assigns an explicit role. Consumer is the implicit default and
// is rejected before any ledger call.
func (g *Gateway) GrantRole(ctx context.Context, signer, account string, role domain.Role) (*domain.TxResult, error) {
	if !role.Grantable() {
		return nil, domain.ErrConsumerGrant
	}

	receipt, err := g.transact(ctx, g.accessControl, common.HexToAddress(signer), "grantRole",
		common.HexToAddress(account), uint8(role))
	if err != nil {
		return nil, err
	}
	result := txResult(receipt)
	return &result, nil
}
