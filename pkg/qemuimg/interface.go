package qemuimg

import "context"

// QemuImgClient 定义了 qemu-img 客户端的接口
// 用于抽象 qemu-img 操作，便于测试和 mock
type QemuImgClient interface {
	// Create 创建新镜像
	Create(ctx context.Context, opts CreateOptions) error
	// Info 获取镜像信息
	Info(ctx context.Context, imagePath string) (string, error)
	// VirtualSize 获取镜像的 virtual size（字节）
	VirtualSize(ctx context.Context, imagePath string) (int64, error)
	// Resize 调整镜像大小
	Resize(ctx context.Context, imagePath, size string, shrink bool) error
}

var _ QemuImgClient = (*Client)(nil)
