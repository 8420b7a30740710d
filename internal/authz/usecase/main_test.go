package usecase

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no goroutines leak from use case tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
