package mostro

import (
	"github.com/mr-tron/base58"

	"github.com/4alls/Mostro-MVP-Program/pkg/config"
	"github.com/4alls/Mostro-MVP-Program/pkg/config/env"
	"github.com/4alls/Mostro-MVP-Program/pkg/config/file"
	"github.com/4alls/Mostro-MVP-Program/pkg/config/memory"
	"github.com/4alls/Mostro-MVP-Program/pkg/config/wrapper"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/mostro"
)

const (
	envConfigPrefix = "MOSTRO_CLIENT_"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = "https://api.devnet.solana.com"

	ProgramIdConfigEnvName = envConfigPrefix + "PROGRAM_ID"

	CommitmentConfigEnvName = envConfigPrefix + "COMMITMENT"
	defaultCommitment       = "confirmed"

	SkipPreflightConfigEnvName = envConfigPrefix + "SKIP_PREFLIGHT"
	defaultSkipPreflight       = false

	RpcRequestsPerSecondConfigEnvName = envConfigPrefix + "RPC_REQUESTS_PER_SECOND"
	defaultRpcRequestsPerSecond       = 0

	PayerMnemonicConfigEnvName = envConfigPrefix + "PAYER_MNEMONIC"
	defaultPayerMnemonic       = ""

	PayerPassphraseConfigEnvName = envConfigPrefix + "PAYER_PASSPHRASE"
	defaultPayerPassphrase       = ""

	PayerPrivateKeyConfigEnvName = envConfigPrefix + "PAYER_PRIVATE_KEY"
	defaultPayerPrivateKey       = ""
)

var defaultProgramId = base58.Encode(mostro.PROGRAM_ID)

type conf struct {
	rpcEndpoint          config.String
	programId            config.String
	commitment           config.String
	skipPreflight        config.Bool
	rpcRequestsPerSecond config.Float64
	payerMnemonic        config.String
	payerPassphrase      config.String
	payerPrivateKey      config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:          env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			programId:            env.NewStringConfig(ProgramIdConfigEnvName, defaultProgramId),
			commitment:           env.NewStringConfig(CommitmentConfigEnvName, defaultCommitment),
			skipPreflight:        env.NewBoolConfig(SkipPreflightConfigEnvName, defaultSkipPreflight),
			rpcRequestsPerSecond: env.NewFloat64Config(RpcRequestsPerSecondConfigEnvName, defaultRpcRequestsPerSecond),
			payerMnemonic:        env.NewStringConfig(PayerMnemonicConfigEnvName, defaultPayerMnemonic),
			payerPassphrase:      env.NewStringConfig(PayerPassphraseConfigEnvName, defaultPayerPassphrase),
			payerPrivateKey:      env.NewStringConfig(PayerPrivateKeyConfigEnvName, defaultPayerPrivateKey),
		}
	}
}

// WithFileConfigs returns configuration read from a flat YAML file whose
// keys are the environment variable names without the MOSTRO_CLIENT_
// prefix, in any case:
//
//	rpc_endpoint: http://localhost:8899
//	commitment: finalized
func WithFileConfigs(path string) (ConfigProvider, error) {
	store, err := file.LoadYAMLFile(path, envConfigPrefix)
	if err != nil {
		return nil, err
	}
	return func() *conf {
		return storeConfigs(store)
	}, nil
}

// Overrides are explicit config values. Zero values fall back to defaults.
type Overrides struct {
	RpcEndpoint          string
	ProgramId            string
	Commitment           string
	SkipPreflight        bool
	RpcRequestsPerSecond float64
	PayerMnemonic        string
	PayerPassphrase      string
	PayerPrivateKey      string
}

// WithOverrides returns configuration backed by an in memory store keyed by
// the environment variable names. Zero valued fields are left unset.
func WithOverrides(overrides *Overrides) ConfigProvider {
	return func() *conf {
		store := memory.NewStore()
		if overrides != nil {
			setIfNonZero(store, RpcEndpointConfigEnvName, overrides.RpcEndpoint)
			setIfNonZero(store, ProgramIdConfigEnvName, overrides.ProgramId)
			setIfNonZero(store, CommitmentConfigEnvName, overrides.Commitment)
			setIfNonZero(store, SkipPreflightConfigEnvName, overrides.SkipPreflight)
			setIfNonZero(store, RpcRequestsPerSecondConfigEnvName, overrides.RpcRequestsPerSecond)
			setIfNonZero(store, PayerMnemonicConfigEnvName, overrides.PayerMnemonic)
			setIfNonZero(store, PayerPassphraseConfigEnvName, overrides.PayerPassphrase)
			setIfNonZero(store, PayerPrivateKeyConfigEnvName, overrides.PayerPrivateKey)
		}
		return storeConfigs(store)
	}
}

func storeConfigs(store *memory.Store) *conf {
	return &conf{
		rpcEndpoint:          wrapper.NewStringConfig(store.Config(RpcEndpointConfigEnvName), defaultRpcEndpoint),
		programId:            wrapper.NewStringConfig(store.Config(ProgramIdConfigEnvName), defaultProgramId),
		commitment:           wrapper.NewStringConfig(store.Config(CommitmentConfigEnvName), defaultCommitment),
		skipPreflight:        wrapper.NewBoolConfig(store.Config(SkipPreflightConfigEnvName), defaultSkipPreflight),
		rpcRequestsPerSecond: wrapper.NewFloat64Config(store.Config(RpcRequestsPerSecondConfigEnvName), defaultRpcRequestsPerSecond),
		payerMnemonic:        wrapper.NewStringConfig(store.Config(PayerMnemonicConfigEnvName), defaultPayerMnemonic),
		payerPassphrase:      wrapper.NewStringConfig(store.Config(PayerPassphraseConfigEnvName), defaultPayerPassphrase),
		payerPrivateKey:      wrapper.NewStringConfig(store.Config(PayerPrivateKeyConfigEnvName), defaultPayerPrivateKey),
	}
}

func setIfNonZero[T comparable](store *memory.Store, key string, v T) {
	var zero T
	if v != zero {
		store.Set(key, v)
	}
}
