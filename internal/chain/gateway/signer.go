package gateway

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// signerRegistry holds the development signing keys the gateway may use on
// behalf of callers. Keys come from the accounts file (address -> private key
// hex, hardhat style) plus the configured deployer key.
type signerRegistry struct {
	keys     map[common.Address]*ecdsa.PrivateKey
	deployer common.Address
}

func loadSigners(keysFile, deployerHex string) (*signerRegistry, error) {
	reg := &signerRegistry{keys: make(map[common.Address]*ecdsa.PrivateKey)}

	if keysFile != "" {
		if err := reg.loadKeysFile(keysFile); err != nil {
			return nil, err
		}
	}

	if deployerHex != "" {
		key, err := parseKey(deployerHex)
		if err != nil {
			return nil, fmt.Errorf("deployer key: %w", err)
		}
		reg.deployer = crypto.PubkeyToAddress(key.PublicKey)
		reg.keys[reg.deployer] = key
	}

	return reg, nil
}

func (r *signerRegistry) loadKeysFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Optional in setups where only the deployer key is configured.
			return nil
		}
		return fmt.Errorf("read signer keys file %s: %w", path, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("parse signer keys file %s: %w", path, err)
	}

	for addr, keyHex := range entries {
		key, err := parseKey(keyHex)
		if err != nil {
			return fmt.Errorf("signer key for %s: %w", addr, err)
		}
		derived := crypto.PubkeyToAddress(key.PublicKey)
		if !strings.EqualFold(addr, derived.Hex()) {
			return fmt.Errorf("signer key for %s derives address %s", addr, derived.Hex())
		}
		r.keys[derived] = key
	}
	return nil
}

func (r *signerRegistry) key(addr common.Address) (*ecdsa.PrivateKey, bool) {
	key, ok := r.keys[addr]
	return key, ok
}

func parseKey(keyHex string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keyHex), "0x"))
}
