// Package gateway implements the ledger gateway over go-ethereum. It is the
// only package that talks to the deployed contracts.
package gateway

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/safebite/chaintrace/internal/chain/domain"
	"github.com/safebite/chaintrace/internal/config"
	"github.com/safebite/chaintrace/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dialTimeout = 10 * time.Second

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Metrics *metrics.HTTPMetrics `optional:"true"`
}

// Gateway holds the process-wide chain connection and contract bindings.
// Constructed once at startup and injected into the server.
type Gateway struct {
	log     *zap.Logger
	metrics *metrics.HTTPMetrics

	client  *ethclient.Client
	chainID *big.Int

	accessControl    *bind.BoundContract
	supplyChain      *bind.BoundContract
	accessControlABI abi.ABI
	supplyChainABI   abi.ABI

	signers *signerRegistry
}

// New dials the configured endpoint, verifies both contracts are deployed,
// and loads the signing keys. Any failure here is fatal: a gateway that
// cannot reach its contracts must not serve requests.
func New(p Params) (domain.Gateway, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	log := p.Log.Named("chain.gateway")

	client, err := ethclient.DialContext(ctx, p.Cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial chain endpoint %s: %w", p.Cfg.RPCURL, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain endpoint %s unreachable: %w", p.Cfg.RPCURL, err)
	}

	acABI, err := abi.JSON(strings.NewReader(accessControlABI))
	if err != nil {
		return nil, fmt.Errorf("parse access control ABI: %w", err)
	}
	scABI, err := abi.JSON(strings.NewReader(supplyChainABI))
	if err != nil {
		return nil, fmt.Errorf("parse supply chain ABI: %w", err)
	}

	acAddr := common.HexToAddress(p.Cfg.AccessControlAddress)
	scAddr := common.HexToAddress(p.Cfg.SupplyChainAddress)
	for name, addr := range map[string]common.Address{
		"access control": acAddr,
		"supply chain":   scAddr,
	} {
		code, err := client.CodeAt(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("check %s contract at %s: %w", name, addr.Hex(), err)
		}
		if len(code) == 0 {
			return nil, fmt.Errorf("no %s contract deployed at %s", name, addr.Hex())
		}
	}

	signers, err := loadSigners(p.Cfg.SignerKeysFile, p.Cfg.DeployerKey)
	if err != nil {
		return nil, err
	}

	log.Info("chain gateway initialized",
		zap.String("rpc_url", p.Cfg.RPCURL),
		zap.String("chain_id", chainID.String()),
		zap.String("access_control", acAddr.Hex()),
		zap.String("supply_chain", scAddr.Hex()),
		zap.Int("signers", len(signers.keys)),
	)

	return &Gateway{
		log:              log,
		metrics:          p.Metrics,
		client:           client,
		chainID:          chainID,
		accessControl:    bind.NewBoundContract(acAddr, acABI, client, client, client),
		supplyChain:      bind.NewBoundContract(scAddr, scABI, client, client, client),
		accessControlABI: acABI,
		supplyChainABI:   scABI,
		signers:          signers,
	}, nil
}

// DeployerAddress returns the dev deployer identity, or "" when none is
// configured.
func (g *Gateway) DeployerAddress() string {
	if g.signers.deployer == (common.Address{}) {
		return ""
	}
	return g.signers.deployer.Hex()
}

// call runs a read against a contract and records the outcome.
func (g *Gateway) call(ctx context.Context, contract *bind.BoundContract, method string, out *[]interface{}, args ...interface{}) error {
	start := time.Now()
	err := contract.Call(&bind.CallOpts{Context: ctx}, out, method, args...)
	g.metrics.RecordChainCall(method, err, time.Since(start))
	return err
}

// transact signs, submits, and waits for inclusion. No partial state is ever
// returned: either the receipt confirms success or the caller gets an error.
func (g *Gateway) transact(ctx context.Context, contract *bind.BoundContract, signer common.Address, method string, args ...interface{}) (*types.Receipt, error) {
	start := time.Now()
	receipt, err := g.submitAndWait(ctx, contract, signer, method, args...)
	g.metrics.RecordChainCall(method, err, time.Since(start))
	return receipt, err
}

func (g *Gateway) submitAndWait(ctx context.Context, contract *bind.BoundContract, signer common.Address, method string, args ...interface{}) (*types.Receipt, error) {
	key, ok := g.signers.key(signer)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSigner, signer.Hex())
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, g.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	tx, err := contract.Transact(opts, method, args...)
	if err != nil {
		return nil, classifySubmitError(err)
	}

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for inclusion of %s: %v", domain.ErrUnavailable, tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		if reason := g.revertReason(ctx, signer, tx, receipt); reason != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrReverted, reason)
		}
		return nil, domain.ErrReverted
	}

	g.log.Debug("transaction confirmed",
		zap.String("method", method),
		zap.String("tx_hash", receipt.TxHash.Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
		zap.Uint64("gas_used", receipt.GasUsed),
	)

	return receipt, nil
}

func txResult(receipt *types.Receipt) domain.TxResult {
	return domain.TxResult{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}
}

// classifySubmitError separates gas-estimation reverts (the contract said no)
// from transport failures.
func classifySubmitError(err error) error {
	if err == nil {
		return nil
	}
	if isRevertError(err) {
		return fmt.Errorf("%w: %s", domain.ErrReverted, revertMessage(err))
	}
	return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
}

// classifyCallError maps read failures. A reverted read means the ledger has
// no such record; everything else is a connectivity problem.
func classifyCallError(err error) error {
	if err == nil {
		return nil
	}
	if isRevertError(err) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, revertMessage(err))
	}
	return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
}

func isRevertError(err error) bool {
	return strings.Contains(err.Error(), "execution reverted") ||
		strings.Contains(err.Error(), "revert")
}

func revertMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted:"); idx >= 0 {
		return strings.TrimSpace(msg[idx+len("execution reverted:"):])
	}
	return msg
}
