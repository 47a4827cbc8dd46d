package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/safebite/chaintrace/internal/chain/domain"
	"github.com/safebite/chaintrace/internal/config"
	"github.com/safebite/chaintrace/internal/observability"
	"github.com/safebite/chaintrace/internal/qr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	addrProducer = "0x1111111111111111111111111111111111111111"
	addrRetailer = "0x2222222222222222222222222222222222222222"
	addrDeployer = "0x3333333333333333333333333333333333333333"
)

type grantCall struct {
	signer  string
	account string
	role    domain.Role
}

// fakeGateway is a canned in-memory stand-in for the ledger gateway.
type fakeGateway struct {
	products   map[uint64]domain.Product
	journeys   map[uint64][]string
	roles      map[string]domain.Role
	role       domain.Role
	deployer   string
	grantCalls []grantCall
	grantErrs  map[string]error

	registerResult *domain.RegisterResult
	registerErr    error
	transferErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		products:  map[uint64]domain.Product{},
		journeys:  map[uint64][]string{},
		roles:     map[string]domain.Role{},
		deployer:  addrDeployer,
		grantErrs: map[string]error{},
	}
}

func (f *fakeGateway) GetRole(ctx context.Context, address string) (domain.Role, error) {
	if role, ok := f.roles[strings.ToLower(address)]; ok {
		return role, nil
	}
	return f.role, nil
}

func (f *fakeGateway) HasRole(ctx context.Context, address string, role domain.Role) (bool, error) {
	current, _ := f.GetRole(ctx, address)
	return current == role, nil
}

func (f *fakeGateway) GetProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeGateway) GetJourney(ctx context.Context, productID uint64) ([]string, error) {
	return f.journeys[productID], nil
}

func (f *fakeGateway) GetProvenance(ctx context.Context, productID uint64) (json.RawMessage, error) {
	return json.RawMessage(`{"origin":"farm"}`), nil
}

func (f *fakeGateway) GetTransferHistory(ctx context.Context, productID uint64) ([]domain.Transfer, error) {
	return nil, nil
}

func (f *fakeGateway) GetVerificationHistory(ctx context.Context, productID uint64) ([]domain.Verification, error) {
	return nil, nil
}

func (f *fakeGateway) GetProductCount(ctx context.Context) (uint64, error) {
	return uint64(len(f.products)), nil
}

func (f *fakeGateway) IsAuthentic(ctx context.Context, productID uint64) (bool, error) {
	return f.products[productID].IsAuthentic, nil
}

func (f *fakeGateway) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range f.products {
		if filter.Owner != "" && !strings.EqualFold(p.CurrentOwner, filter.Owner) {
			continue
		}
		if filter.Role != nil {
			role, _ := f.GetRole(ctx, p.CurrentOwner)
			if role != *filter.Role {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeGateway) RegisterProduct(ctx context.Context, signer, name, batchID, origin, metadataHash string) (*domain.RegisterResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerResult != nil {
		return f.registerResult, nil
	}
	return &domain.RegisterResult{
		TxResult:  domain.TxResult{TxHash: "0xabc", BlockNumber: 12, GasUsed: 21000},
		ProductID: 1,
		IDSource:  domain.IDFromEvent,
	}, nil
}

func (f *fakeGateway) TransferOwnership(ctx context.Context, signer string, productID uint64, to, shipmentDetails string) (*domain.TxResult, error) {
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	return &domain.TxResult{TxHash: "0xdef", BlockNumber: 13, GasUsed: 30000}, nil
}

func (f *fakeGateway) BatchTransferOwnership(ctx context.Context, signer string, productIDs []uint64, to, shipmentDetails string) (*domain.TxResult, error) {
	return &domain.TxResult{TxHash: "0xbatch", BlockNumber: 14, GasUsed: 60000}, nil
}

func (f *fakeGateway) UpdateStatus(ctx context.Context, signer string, productID uint64, status domain.ProductStatus) (*domain.TxResult, error) {
	return &domain.TxResult{TxHash: "0xstatus", BlockNumber: 15, GasUsed: 25000}, nil
}

func (f *fakeGateway) UpdateProductMetadata(ctx context.Context, signer string, productID uint64, metadataHash string) (*domain.TxResult, error) {
	return &domain.TxResult{TxHash: "0xmeta", BlockNumber: 16, GasUsed: 25000}, nil
}

func (f *fakeGateway) VerifyAuthenticity(ctx context.Context, signer string, productID uint64, notes string) (*domain.AuthenticityResult, error) {
	return &domain.AuthenticityResult{
		TxResult: domain.TxResult{TxHash: "0xauth", BlockNumber: 17, GasUsed: 40000},
		IsValid:  true,
	}, nil
}

func (f *fakeGateway) PerformQualityCheck(ctx context.Context, signer string, productID uint64, qualityScore uint8, notes string) (*domain.TxResult, error) {
	return &domain.TxResult{TxHash: "0xquality", BlockNumber: 18, GasUsed: 50000}, nil
}

func (f *fakeGateway) CheckCompliance(ctx context.Context, signer string, productID uint64, compliant bool, certificateHash string) (*domain.ComplianceResult, error) {
	return &domain.ComplianceResult{
		TxResult:        domain.TxResult{TxHash: "0xcomp", BlockNumber: 19, GasUsed: 50000},
		Compliant:       compliant,
		CertificateHash: certificateHash,
		IsAuthentic:     true,
		AutoVerified:    false,
	}, nil
}

func (f *fakeGateway) GrantRole(ctx context.Context, signer, account string, role domain.Role) (*domain.TxResult, error) {
	f.grantCalls = append(f.grantCalls, grantCall{signer: signer, account: account, role: role})
	if err, ok := f.grantErrs[account]; ok {
		return nil, err
	}
	return &domain.TxResult{TxHash: "0xgrant", BlockNumber: 20, GasUsed: 35000}, nil
}

func (f *fakeGateway) DeployerAddress() string { return f.deployer }

func newTestEngine(gw domain.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		AppName:     "chaintrace",
		Environment: "production",
		Port:        "0",
		FrontendURL: "http://localhost:5173",
	}
	srv := New(Params{
		Cfg:     cfg,
		Obs:     observability.Config{ServiceName: "chaintrace", Environment: "production"},
		Log:     zap.NewNop(),
		Gateway: gw,
		QR:      qr.New(cfg.FrontendURL),
	})
	return NewEngine(srv)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterProductResponseShape(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodPost, "/api/products/register", gin.H{
		"signerAddress": addrProducer,
		"name":          "Organic Honey",
		"batchId":       "BATCH-001",
		"origin":        "Yogyakarta",
		"metadataHash":  "",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["productId"])
	assert.Equal(t, "event", body["idSource"])
	assert.Equal(t, "0xabc", body["transactionHash"])
	assert.Equal(t, float64(12), body["blockNumber"])

	qrCode, ok := body["qrCode"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(qrCode, "data:image/png;base64,"))
}

func TestRegisterProductInvalidAddress(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodPost, "/api/products/register", gin.H{
		"signerAddress": "not-an-address",
		"name":          "Organic Honey",
		"batchId":       "BATCH-001",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "registerProduct", body["context"])
	assert.NotEmpty(t, body["message"])
}

func TestGetProductNotFound(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodGet, "/api/products/99", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "getProduct", body["context"])
}

func TestGetProductInvalidID(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodGet, "/api/products/0", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["code"])
}

func TestTransferAcceptsDocumentedFieldNames(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodPost, "/api/transfers", gin.H{
		"signerAddress": addrProducer,
		"productId":     1,
		"toAddress":     addrRetailer,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "0xdef", body["transactionHash"])
	assert.Equal(t, "Ownership transferred successfully", body["message"])
}

func TestTransferRevertMapsToTxReverted(t *testing.T) {
	gw := newFakeGateway()
	gw.transferErr = fmt.Errorf("%w: caller is not the current owner", domain.ErrReverted)
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodPost, "/api/transfers", gin.H{
		"signerAddress": addrProducer,
		"productId":     1,
		"toAddress":     addrRetailer,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "TX_REVERTED", body["code"])
	assert.Contains(t, body["message"], "caller is not the current owner")
}

func TestBatchTransferMessageCountsProducts(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodPost, "/api/transfers/batch", gin.H{
		"signerAddress": addrProducer,
		"productIds":    []uint64{1, 2, 3},
		"toAddress":     addrRetailer,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Transferred 3 products successfully", body["message"])
}

func TestJourneyFormatsTrailingTimestamps(t *testing.T) {
	gw := newFakeGateway()
	gw.journeys[5] = []string{"Registered by Farm at 1700000000"}
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodGet, "/api/products/5/journey", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	events, ok := body["journey"].([]interface{})
	require.True(t, ok)
	require.Len(t, events, 1)
	assert.NotContains(t, events[0], "1700000000")
	assert.Contains(t, events[0], "Registered by Farm at ")
}

func TestListProductsFiltersByRole(t *testing.T) {
	gw := newFakeGateway()
	gw.products[1] = domain.Product{ID: 1, Name: "Honey", CurrentOwner: addrProducer}
	gw.products[2] = domain.Product{ID: 2, Name: "Coffee", CurrentOwner: addrRetailer}
	gw.roles[strings.ToLower(addrProducer)] = domain.RoleProducer
	gw.roles[strings.ToLower(addrRetailer)] = domain.RoleRetailer
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodGet, "/api/products?role=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
	products, ok := body["products"].([]interface{})
	require.True(t, ok)
	require.Len(t, products, 1)
	product := products[0].(map[string]interface{})
	assert.Equal(t, "Coffee", product["name"])
}

func TestListProductsRejectsBogusRole(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodGet, "/api/products?role=healthy", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["code"])
}

func TestGrantRoleConsumerRejectedBeforeDispatch(t *testing.T) {
	gw := newFakeGateway()
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodPost, "/api/roles/grant", gin.H{
		"signerAddress":  addrDeployer,
		"accountAddress": addrProducer,
		"role":           4,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["code"])
	assert.Empty(t, gw.grantCalls)
}

func TestBatchGrantDevPartitionsOutcomes(t *testing.T) {
	gw := newFakeGateway()
	gw.grantErrs[addrRetailer] = fmt.Errorf("%w: only owner can grant", domain.ErrReverted)
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodPost, "/api/roles/batch-grant-dev", gin.H{
		"grants": []gin.H{
			{"accountAddress": addrProducer, "role": 0},
			{"accountAddress": addrRetailer, "role": 2},
			{"accountAddress": "0x4444444444444444444444444444444444444444", "role": 3},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["successful"])
	assert.Equal(t, float64(1), body["failed"])
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["results"], 2)
	assert.Len(t, body["errors"], 1)

	// Every grant was signed by the deployer.
	require.Len(t, gw.grantCalls, 3)
	for _, call := range gw.grantCalls {
		assert.Equal(t, addrDeployer, call.signer)
	}
}

func TestBatchGrantDevConsumerSkippedWithoutDispatch(t *testing.T) {
	gw := newFakeGateway()
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodPost, "/api/roles/batch-grant-dev", gin.H{
		"grants": []gin.H{
			{"accountAddress": addrProducer, "role": 4},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["successful"])
	assert.Equal(t, float64(1), body["failed"])
	assert.Empty(t, gw.grantCalls)
}

func TestMyRoleReturnsRoleName(t *testing.T) {
	gw := newFakeGateway()
	gw.role = domain.RoleRegulator
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodGet, "/api/roles/my-role?address="+addrProducer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(domain.RoleRegulator), body["role"])
	assert.Equal(t, "Regulator", body["roleName"])
}

func TestQualityCheckPassedThreshold(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodPost, "/api/verification/quality", gin.H{
		"signerAddress": addrRetailer,
		"productId":     2,
		"qualityScore":  50,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["passed"])
	assert.Equal(t, "Quality check performed", body["message"])

	rec = doJSON(t, engine, http.MethodPost, "/api/verification/quality", gin.H{
		"signerAddress": addrRetailer,
		"productId":     2,
		"qualityScore":  49,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["passed"])
}

func TestQRDataWrapsPayload(t *testing.T) {
	gw := newFakeGateway()
	gw.products[7] = domain.Product{ID: 7, Name: "Coffee", CurrentOwner: addrProducer}
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodGet, "/api/qr/7/data", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), data["productId"])
	assert.Equal(t, "http://localhost:5173/verify/7", data["verifyUrl"])
}

func TestQRImageReturnsPNG(t *testing.T) {
	gw := newFakeGateway()
	gw.products[7] = domain.Product{ID: 7, Name: "Coffee"}
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodGet, "/api/qr/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}))
}

func TestQRImageUnknownProduct(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodGet, "/api/qr/7", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, rec)["code"])
}

func TestUpdateStatusRejectsOutOfRange(t *testing.T) {
	gw := newFakeGateway()
	gw.products[3] = domain.Product{ID: 3}
	engine := newTestEngine(gw)

	rec := doJSON(t, engine, http.MethodPost, "/api/products/3/status", gin.H{
		"signerAddress": addrProducer,
		"status":        9,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["code"])
}

func TestComplianceResponseShape(t *testing.T) {
	engine := newTestEngine(newFakeGateway())

	rec := doJSON(t, engine, http.MethodPost, "/api/verification/compliance", gin.H{
		"signerAddress":   addrProducer,
		"productId":       2,
		"compliant":       true,
		"certificateHash": "deadbeef",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["compliant"])
	assert.Equal(t, "deadbeef", body["certificateHash"])
	assert.Equal(t, true, body["isAuthentic"])
	assert.Equal(t, false, body["autoVerified"])
	assert.Equal(t, "Product marked as compliant", body["message"])
}
