package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockLedgerClientForTest creates a new mock LedgerClient for testing
func NewMockLedgerClientForTest(t *testing.T) *MockLedgerClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockLedgerClient(ctrl)
}

// NewMockWalletProviderForTest creates a new mock WalletProvider for testing
func NewMockWalletProviderForTest(t *testing.T) *MockWalletProvider {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockWalletProvider(ctrl)
}

// NewMockEventPublisherForTest creates a new mock EventPublisher for testing
func NewMockEventPublisherForTest(t *testing.T) *MockEventPublisher {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEventPublisher(ctrl)
}

// NewMockRouteServiceForTest creates a new mock RouteService for testing
func NewMockRouteServiceForTest(t *testing.T) *MockRouteService {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockRouteService(ctrl)
}
