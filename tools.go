//go:build tools

package tools

// Mocks under pkg/sdk/mocks are generated by mockery v3, used as an
// installed binary. Run: mockery (from the repository root).
