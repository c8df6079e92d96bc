package download

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/claytonburns/asprofile/interfaces"
)

// MockFetcher mocks the interfaces.ProfileFetcher interface for testing.
type MockFetcher struct {
	mock.Mock
}

// FetchProfile implements the ProfileFetcher interface for testing.
// The behavior is determined by how the mock is configured in tests.
func (m *MockFetcher) FetchProfile(ctx context.Context, username string, credential interfaces.Credential, autologin bool) ([]byte, error) {
	args := m.Called(ctx, username, credential, autologin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
