// Package vcstest provides a testify mock of the vcs.Facade interface for
// reducer and runtime tests.
package vcstest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/vcs"
)

// MockFacade is a mock.Mock-backed vcs.Facade.
type MockFacade struct {
	mock.Mock
}

var _ vcs.Facade = (*MockFacade)(nil)

func (m *MockFacade) GetOperationLog(ctx context.Context, q vcs.LogQuery) (*domain.RepoStatus, error) {
	args := m.Called(ctx, q)
	if st := args.Get(0); st != nil {
		return st.(*domain.RepoStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFacade) GetCommitDiff(ctx context.Context, id domain.CommitId) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockFacade) Evolog(ctx context.Context, id domain.CommitId) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockFacade) OperationLog(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockFacade) DescribeRevision(ctx context.Context, id domain.CommitId, message string) error {
	return m.Called(ctx, id, message).Error(0)
}

func (m *MockFacade) Commit(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockFacade) Snapshot(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockFacade) Edit(ctx context.Context, id domain.CommitId) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFacade) Squash(ctx context.Context, ids []domain.CommitId) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockFacade) NewChild(ctx context.Context, id domain.CommitId) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFacade) Abandon(ctx context.Context, ids []domain.CommitId) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockFacade) Revert(ctx context.Context, ids []domain.CommitId) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockFacade) Absorb(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockFacade) Duplicate(ctx context.Context, ids []domain.CommitId) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockFacade) Parallelize(ctx context.Context, ids []domain.CommitId) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockFacade) Rebase(ctx context.Context, sources []domain.CommitId, destination domain.CommitId) error {
	return m.Called(ctx, sources, destination).Error(0)
}

func (m *MockFacade) SetBookmark(ctx context.Context, id domain.CommitId, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockFacade) DeleteBookmark(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockFacade) Undo(ctx context.Context) error  { return m.Called(ctx).Error(0) }
func (m *MockFacade) Redo(ctx context.Context) error  { return m.Called(ctx).Error(0) }
func (m *MockFacade) Fetch(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockFacade) Push(ctx context.Context, bookmark string) error {
	return m.Called(ctx, bookmark).Error(0)
}

func (m *MockFacade) InitRepo(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockFacade) WorkspaceRoot() string { return m.Called().String(0) }
func (m *MockFacade) IsValid() bool         { return m.Called().Bool(0) }
