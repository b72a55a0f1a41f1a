package testutil

import "context"

// MockVerifier is a mock captcha verifier for testing.
type MockVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (bool, error)
}

// Verify calls the mock function if set, otherwise accepts the token.
func (m *MockVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return true, nil
}
