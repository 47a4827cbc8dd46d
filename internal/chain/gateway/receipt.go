package gateway

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const productRegisteredEvent = "ProductRegistered"

// extractProductID scans the receipt's logs for the ProductRegistered event
// and unpacks the minted product id.
func extractProductID(contractABI abi.ABI, receipt *types.Receipt) (uint64, bool) {
	event, ok := contractABI.Events[productRegisteredEvent]
	if !ok {
		return 0, false
	}

	for _, entry := range receipt.Logs {
		if entry == nil || len(entry.Topics) == 0 || entry.Topics[0] != event.ID {
			continue
		}
		values, err := contractABI.Unpack(productRegisteredEvent, entry.Data)
		if err != nil || len(values) == 0 {
			continue
		}
		if id, ok := values[0].(*big.Int); ok {
			return id.Uint64(), true
		}
	}
	return 0, false
}

// revertReason replays a failed transaction as a call at its inclusion block
// to recover the contract's revert string. Best effort: some nodes prune the
// state needed for the replay.
func (g *Gateway) revertReason(ctx context.Context, from common.Address, tx *types.Transaction, receipt *types.Receipt) string {
	msg := ethereum.CallMsg{
		From:     from,
		To:       tx.To(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice(),
		Value:    tx.Value(),
		Data:     tx.Data(),
	}

	_, err := g.client.CallContract(ctx, msg, receipt.BlockNumber)
	if err == nil {
		return ""
	}
	return revertMessage(err)
}
