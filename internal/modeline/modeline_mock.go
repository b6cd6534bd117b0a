package modeline

import (
	"context"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
	"github.com/stretchr/testify/mock"
)

// MockCalculator is a mock implementation of ModelineCalculator for testing.
type MockCalculator struct {
	mock.Mock
}

var _ contract.ModelineCalculator = &MockCalculator{} // Compile-time check

// CalcModelineBulk implements the ModelineCalculator interface.
func (m *MockCalculator) CalcModelineBulk(ctx context.Context, cfg schema.ModelineConfig, games []*schema.Game) (map[string]schema.ModelineCalculation, error) {
	args := m.Called(ctx, cfg, games)
	calcs, _ := args.Get(0).(map[string]schema.ModelineCalculation)
	return calcs, args.Error(1)
}
