package biometric

import "context"

// StaticGate always answers with a fixed result. Used in tests and headless
// deployments where the operator explicitly opts out of gating.
type StaticGate struct {
	Allow bool
}

func (g *StaticGate) Capability() Capability {
	return Capability{
		IsAvailable:   true,
		BiometricType: TypeNone,
		IsEnrolled:    true,
	}
}

func (g *StaticGate) Authenticate(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return g.Allow, nil
}
