package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/safebite/chaintrace/internal/chain/domain"
)

type transferRecord struct {
	From            common.Address
	To              common.Address
	Timestamp       *big.Int
	ShipmentDetails string
}

type verificationRecord struct {
	Verifier         common.Address
	Timestamp        *big.Int
	VerificationType uint8
	Result           *big.Int
	Notes            string
}

// GetRole returns the explicit role for address, defaulting to Consumer when
// the registry holds no assignment.
func (g *Gateway) GetRole(ctx context.Context, address string) (domain.Role, error) {
	var out []interface{}
	err := g.call(ctx, g.accessControl, "getRole", &out, common.HexToAddress(address))
	if err != nil {
		if isRevertError(err) {
			return domain.RoleConsumer, nil
		}
		return domain.RoleConsumer, classifyCallError(err)
	}

	raw := *abi.ConvertType(out[0], new(uint8)).(*uint8)
	role := domain.Role(raw)
	if role > domain.RoleConsumer {
		role = domain.RoleConsumer
	}
	return role, nil
}

func (g *Gateway) HasRole(ctx context.Context, address string, role domain.Role) (bool, error) {
	var out []interface{}
	err := g.call(ctx, g.accessControl, "hasRole", &out, common.HexToAddress(address), uint8(role))
	if err != nil {
		return false, classifyCallError(err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (g *Gateway) GetProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	var out []interface{}
	err := g.call(ctx, g.supplyChain, "getProduct", &out, new(big.Int).SetUint64(productID))
	if err != nil {
		return nil, classifyCallError(err)
	}

	id := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if id.Sign() == 0 {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
	}

	return &domain.Product{
		ID:           id.Uint64(),
		Name:         *abi.ConvertType(out[1], new(string)).(*string),
		BatchID:      *abi.ConvertType(out[2], new(string)).(*string),
		Producer:     (*abi.ConvertType(out[3], new(common.Address)).(*common.Address)).Hex(),
		CreatedAt:    (*abi.ConvertType(out[4], new(*big.Int)).(**big.Int)).Int64(),
		Origin:       *abi.ConvertType(out[5], new(string)).(*string),
		MetadataHash: *abi.ConvertType(out[6], new(string)).(*string),
		CurrentOwner: (*abi.ConvertType(out[7], new(common.Address)).(*common.Address)).Hex(),
		Status:       domain.ProductStatus(*abi.ConvertType(out[8], new(uint8)).(*uint8)),
		IsAuthentic:  *abi.ConvertType(out[9], new(bool)).(*bool),
	}, nil
}

// GetJourney returns the raw journey strings; formatting belongs to the
// presentation layer.
func (g *Gateway) GetJourney(ctx context.Context, productID uint64) ([]string, error) {
	var out []interface{}
	err := g.call(ctx, g.supplyChain, "getProductJourney", &out, new(big.Int).SetUint64(productID))
	if err != nil {
		return nil, classifyCallError(err)
	}
	return *abi.ConvertType(out[0], new([]string)).(*[]string), nil
}

// GetProvenance passes the ledger's aggregated provenance blob through
// unmodified.
func (g *Gateway) GetProvenance(ctx context.Context, productID uint64) (json.RawMessage, error) {
	var out []interface{}
	err := g.call(ctx, g.supplyChain, "getCompleteProvenance", &out, new(big.Int).SetUint64(productID))
	if err != nil {
		return nil, classifyCallError(err)
	}

	raw := *abi.ConvertType(out[0], new(string)).(*string)
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw), nil
	}
	// The ledger promises JSON here; quote anything else rather than emit a
	// broken response body.
	quoted, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return quoted, nil
}

func (g *Gateway) GetTransferHistory(ctx context.Context, productID uint64) ([]domain.Transfer, error) {
	var out []interface{}
	err := g.call(ctx, g.supplyChain, "getTransferHistory", &out, new(big.Int).SetUint64(productID))
	if err != nil {
		return nil, classifyCallError(err)
	}

	records := *abi.ConvertType(out[0], new([]transferRecord)).(*[]transferRecord)
	transfers := make([]domain.Transfer, 0, len(records))
	for _, r := range records {
		transfers = append(transfers, domain.Transfer{
			From:            r.From.Hex(),
			To:              r.To.Hex(),
			Timestamp:       r.Timestamp.Int64(),
			ShipmentDetails: r.ShipmentDetails,
		})
	}
	return transfers, nil
}

func (g *Gateway) GetVerificationHistory(ctx context.Context, productID uint64) ([]domain.Verification, error) {
	var out []interface{}
	err := g.call(ctx, g.supplyChain, "getVerificationHistory", &out, new(big.Int).SetUint64(productID))
	if err != nil {
		return nil, classifyCallError(err)
	}

	records := *abi.ConvertType(out[0], new([]verificationRecord)).(*[]verificationRecord)
	verifications := make([]domain.Verification, 0, len(records))
	for _, r := range records {
		verifications = append(verifications, domain.Verification{
			Verifier:  r.Verifier.Hex(),
			Timestamp: r.Timestamp.Int64(),
			Type:      domain.ClampVerificationType(r.VerificationType),
			Result:    r.Result.Uint64(),
			Notes:     r.Notes,
		})
	}
	return verifications, nil
}

func (g *Gateway) GetProductCount(ctx context.Context) (uint64, error) {
	var out []interface{}
	err := g.call(ctx, g.supplyChain, "getProductCount", &out)
	if err != nil {
		return 0, classifyCallError(err)
	}
	return (*abi.ConvertType(out[0], new(*big.Int)).(**big.Int)).Uint64(), nil
}

func (g *Gateway) IsAuthentic(ctx context.Context, productID uint64) (bool, error) {
	var out []interface{}
	err := g.call(ctx, g.supplyChain, "isProductAuthentic", &out, new(big.Int).SetUint64(productID))
	if err != nil {
		return false, classifyCallError(err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// ListProducts walks the full id range and filters by current owner and by
// the owner's role. Ids are dense and start at 1, so the walk is bounded by
// the count. Role lookups are memoized per owner for the duration of the
// walk.
func (g *Gateway) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	count, err := g.GetProductCount(ctx)
	if err != nil {
		return nil, err
	}

	var ownerAddr common.Address
	filterByOwner := filter.Owner != ""
	if filterByOwner {
		ownerAddr = common.HexToAddress(filter.Owner)
	}

	roleByOwner := make(map[common.Address]domain.Role)
	products := make([]domain.Product, 0, count)
	for id := uint64(1); id <= count; id++ {
		product, err := g.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		owner := common.HexToAddress(product.CurrentOwner)
		if filterByOwner && owner != ownerAddr {
			continue
		}
		if filter.Role != nil {
			role, ok := roleByOwner[owner]
			if !ok {
				role, err = g.GetRole(ctx, product.CurrentOwner)
				if err != nil {
					return nil, err
				}
				roleByOwner[owner] = role
			}
			if role != *filter.Role {
				continue
			}
		}
		products = append(products, *product)
	}
	return products, nil
}
