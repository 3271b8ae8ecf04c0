package app

import (
	"fmt"
	"log/slog"

	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/arvorebank/overdraft/pkg/idx"
	"github.com/arvorebank/overdraft/pkg/jwtx"
)

// initSigningKeys generates an ephemeral Ed25519 signing key on startup.
// Outstanding partner tokens become invalid when the service restarts, which
// is acceptable at a 1h token lifetime.
func initSigningKeys(issuer string, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, *jwtx.KeySet, error) {
	pemKey, err := cryptox.GenerateEd25519PEM()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	kid := idx.New().String()
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to register signing key: %w", err)
	}

	logger.Info("ephemeral signing key generated", "kid", kid, "alg", signer.Alg())
	return signer, jwtx.NewCommonEdDSA(keys, issuer), keys, nil
}
