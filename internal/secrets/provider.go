package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource selects where secrets come from.
type SecretSource string

const (
	// SourceEnvironment reads secrets from plain environment variables.
	SourceEnvironment SecretSource = "environment"
	// SourceVault reads secrets from Azure Key Vault.
	SourceVault SecretSource = "vault"
	// SourceAuto picks the vault in staging and production and the
	// environment everywhere else.
	SourceAuto SecretSource = "auto"
)

// ProviderConfig configures secret resolution.
type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Provider resolves named secrets from the configured source. The secret
// name doubles as the environment variable name in environment mode and as
// the Key Vault secret name in vault mode.
type Provider struct {
	source SecretSource
	vault  *VaultClient
	logger *zap.Logger
}

// NewProvider builds a provider for the resolved source. Vault mode fails
// fast when no vault name is configured so a misdeployed instance does not
// silently run on environment defaults.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := resolveSource(cfg.Source, cfg.Environment)

	p := &Provider{source: source, logger: logger}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required for vault secret source")
		}
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vault = vault
	}

	logger.Info("secrets provider ready",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

func resolveSource(source SecretSource, environment string) SecretSource {
	if source != SourceAuto {
		return source
	}
	switch environment {
	case "", "development", "local":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

// GetSecret resolves a secret by name from the configured source.
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("environment variable %q not set", name)
		}
		return value, nil
	case SourceVault:
		return p.vault.GetSecret(ctx, name)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretOrEnv resolves a secret but lets an explicitly set environment
// variable win even in vault mode, so operators can override a single value
// without touching the vault.
func (p *Provider) GetSecretOrEnv(ctx context.Context, name, envName string) (string, error) {
	if value := os.Getenv(envName); value != "" {
		p.logger.Debug("secret overridden by environment variable", zap.String("env", envName))
		return value, nil
	}
	return p.GetSecret(ctx, name)
}

// Source reports the resolved secret source.
func (p *Provider) Source() SecretSource {
	return p.source
}

// IsVaultEnabled reports whether secrets are served from Key Vault.
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}
