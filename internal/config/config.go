package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string

	// Chain connectivity.
	RPCURL               string
	AccessControlAddress string
	SupplyChainAddress   string
	DeploymentFile       string

	// Dev signing identities. SignerKeysFile maps address -> private key hex;
	// DeployerKey is the identity behind the dev grant endpoints.
	SignerKeysFile string
	DeployerKey    string

	// Base URL embedded in QR verification links.
	FrontendURL string
}

// Load loads configuration from environment variables and .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "chaintrace"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "3000"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		OtelEnabled:          getenvBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: strings.TrimSpace(getenv("OTEL_EXPORTER_ENDPOINT", "localhost:4317")),
		OtelExporterProtocol: strings.ToLower(getenv("OTEL_EXPORTER_PROTOCOL", "grpc")),

		RPCURL:               getenv("RPC_URL", "http://127.0.0.1:8545"),
		AccessControlAddress: strings.TrimSpace(getenv("ACCESS_CONTROL_ADDRESS", "")),
		SupplyChainAddress:   strings.TrimSpace(getenv("SUPPLY_CHAIN_ADDRESS", "")),
		DeploymentFile:       getenv("DEPLOYMENT_FILE", "deployments/local.json"),

		SignerKeysFile: getenv("SIGNER_KEYS_FILE", "deployments/accounts.json"),
		DeployerKey:    strings.TrimSpace(getenv("DEPLOYER_PRIVATE_KEY", "")),

		FrontendURL: strings.TrimRight(getenv("FRONTEND_URL", "http://localhost:5173"), "/"),
	}

	if cfg.AccessControlAddress == "" || cfg.SupplyChainAddress == "" {
		addrs, err := loadDeployment(cfg.DeploymentFile)
		if err != nil {
			return Config{}, err
		}
		if cfg.AccessControlAddress == "" {
			cfg.AccessControlAddress = addrs.AccessControl
		}
		if cfg.SupplyChainAddress == "" {
			cfg.SupplyChainAddress = addrs.SupplyChain
		}
	}

	return cfg, nil
}

// Deployment mirrors the deployments/local.json file written at contract
// deploy time.
type Deployment struct {
	AccessControl string `json:"accessControl"`
	SupplyChain   string `json:"supplyChain"`
}

func loadDeployment(path string) (Deployment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Deployment{}, fmt.Errorf("read deployment file %s: %w", path, err)
	}
	var d Deployment
	if err := json.Unmarshal(raw, &d); err != nil {
		return Deployment{}, fmt.Errorf("parse deployment file %s: %w", path, err)
	}
	if d.AccessControl == "" || d.SupplyChain == "" {
		return Deployment{}, fmt.Errorf("deployment file %s missing contract addresses", path)
	}
	return d, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
