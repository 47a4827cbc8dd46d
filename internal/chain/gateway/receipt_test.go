package gateway

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsedSupplyChainABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(supplyChainABI))
	require.NoError(t, err)
	return parsed
}

func registeredLog(t *testing.T, parsed abi.ABI, productID int64) *types.Log {
	t.Helper()
	event := parsed.Events[productRegisteredEvent]

	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(productID), "batch-9")
	require.NoError(t, err)

	producer := common.HexToAddress("0x1111111111111111111111111111111111111111")
	return &types.Log{
		Topics: []common.Hash{event.ID, common.BytesToHash(producer.Bytes())},
		Data:   data,
	}
}

func TestExtractProductIDFromEvent(t *testing.T) {
	parsed := parsedSupplyChainABI(t)
	receipt := &types.Receipt{Logs: []*types.Log{registeredLog(t, parsed, 42)}}

	id, ok := extractProductID(parsed, receipt)
	require.True(t, ok)
	assert.Equal(t, uint64(42), id)
}

func TestExtractProductIDSkipsForeignLogs(t *testing.T) {
	parsed := parsedSupplyChainABI(t)
	foreign := &types.Log{
		Topics: []common.Hash{common.HexToHash("0xdeadbeef")},
		Data:   []byte{0x01},
	}
	receipt := &types.Receipt{Logs: []*types.Log{foreign, registeredLog(t, parsed, 7)}}

	id, ok := extractProductID(parsed, receipt)
	require.True(t, ok)
	assert.Equal(t, uint64(7), id)
}

func TestExtractProductIDNoMatch(t *testing.T) {
	parsed := parsedSupplyChainABI(t)
	receipt := &types.Receipt{Logs: []*types.Log{}}

	_, ok := extractProductID(parsed, receipt)
	assert.False(t, ok)
}

func TestABISchemasParse(t *testing.T) {
	_, err := abi.JSON(strings.NewReader(accessControlABI))
	assert.NoError(t, err)
	_, err = abi.JSON(strings.NewReader(supplyChainABI))
	assert.NoError(t, err)
}

func TestRevertMessageTrimsPrefix(t *testing.T) {
	err := assert.AnError
	assert.Equal(t, err.Error(), revertMessage(err))

	wrapped := errFromString("execution reverted: caller is not a producer")
	assert.Equal(t, "caller is not a producer", revertMessage(wrapped))
}

type errFromString string

func (e errFromString) Error() string { return string(e) }
