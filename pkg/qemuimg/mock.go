package qemuimg

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient 是 QemuImgClient 的 mock 实现
// 用于测试，不需要真实的 qemu-img 命令
type MockClient struct {
	mock.Mock
}

// NewMockClient 创建新的 MockClient
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Create 实现 QemuImgClient 接口
func (m *MockClient) Create(ctx context.Context, opts CreateOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

// Info 实现 QemuImgClient 接口
func (m *MockClient) Info(ctx context.Context, imagePath string) (string, error) {
	args := m.Called(ctx, imagePath)
	return args.String(0), args.Error(1)
}

// VirtualSize 实现 QemuImgClient 接口
func (m *MockClient) VirtualSize(ctx context.Context, imagePath string) (int64, error) {
	args := m.Called(ctx, imagePath)
	return args.Get(0).(int64), args.Error(1)
}

// Resize 实现 QemuImgClient 接口
func (m *MockClient) Resize(ctx context.Context, imagePath, size string, shrink bool) error {
	args := m.Called(ctx, imagePath, size, shrink)
	return args.Error(0)
}

// MockRunner 是 Runner 的 mock 实现
type MockRunner struct {
	mock.Mock
}

// NewMockRunner 创建新的 MockRunner
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Run 实现 Runner 接口
// 期望以 (ctx, name, []string{args...}) 的形式注册
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (*RunResult, error) {
	ret := m.Called(ctx, name, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*RunResult), ret.Error(1)
}
