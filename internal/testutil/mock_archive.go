package testutil

import (
	"context"

	"github.com/flexprice/invoicer/internal/s3"
	"github.com/stretchr/testify/mock"
)

var _ s3.Service = (*MockArchive)(nil)

// MockArchive implements s3.Service with testify expectations
type MockArchive struct {
	mock.Mock
}

func NewMockArchive() *MockArchive {
	return &MockArchive{}
}

func (m *MockArchive) UploadDocument(ctx context.Context, document *s3.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockArchive) GetPresignedUrl(ctx context.Context, ref s3.DocumentRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *MockArchive) GetDocument(ctx context.Context, ref s3.DocumentRef) ([]byte, error) {
	args := m.Called(ctx, ref)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *MockArchive) Exists(ctx context.Context, ref s3.DocumentRef) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}
