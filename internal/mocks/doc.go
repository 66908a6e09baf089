// Package mocks provides centralized mock implementations for testing.
//
// Each mock is a struct with one function field per interface method; a nil
// field falls back to a simple in-memory default, so tests only override the
// behavior they care about:
//
//	users := mocks.NewMockUserStore()
//	users.CreateFn = func(ctx context.Context, u *domain.User) error {
//	    return store.ErrUsernameExists
//	}
package mocks
