package domain

import (
	"context"
	"encoding/json"
)

// Gateway is the single point of contact with the on-chain contracts.
// Reads need no signer. Writes resolve a signing key for the claimed address,
// submit the transaction, and block until it is included; no unconfirmed
// state is ever returned.
type Gateway interface {
	// Reads.
	GetRole(ctx context.Context, address string) (Role, error)
	HasRole(ctx context.Context, address string, role Role) (bool, error)
	GetProduct(ctx context.Context, productID uint64) (*Product, error)
	GetJourney(ctx context.Context, productID uint64) ([]string, error)
	GetProvenance(ctx context.Context, productID uint64) (json.RawMessage, error)
	GetTransferHistory(ctx context.Context, productID uint64) ([]Transfer, error)
	GetVerificationHistory(ctx context.Context, productID uint64) ([]Verification, error)
	GetProductCount(ctx context.Context) (uint64, error)
	IsAuthentic(ctx context.Context, productID uint64) (bool, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	// Writes.
	RegisterProduct(ctx context.Context, signer, name, batchID, origin, metadataHash string) (*RegisterResult, error)
	TransferOwnership(ctx context.Context, signer string, productID uint64, to, shipmentDetails string) (*TxResult, error)
	BatchTransferOwnership(ctx context.Context, signer string, productIDs []uint64, to, shipmentDetails string) (*TxResult, error)
	UpdateStatus(ctx context.Context, signer string, productID uint64, status ProductStatus) (*TxResult, error)
	UpdateProductMetadata(ctx context.Context, signer string, productID uint64, metadataHash string) (*TxResult, error)
	VerifyAuthenticity(ctx context.Context, signer string, productID uint64, notes string) (*AuthenticityResult, error)
	PerformQualityCheck(ctx context.Context, signer string, productID uint64, qualityScore uint8, notes string) (*TxResult, error)
	CheckCompliance(ctx context.Context, signer string, productID uint64, compliant bool, certificateHash string) (*ComplianceResult, error)
	GrantRole(ctx context.Context, signer, account string, role Role) (*TxResult, error)

	// DeployerAddress is the identity behind the development grant endpoints.
	DeployerAddress() string
}
