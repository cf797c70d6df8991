package qemuimg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ToolError 表示 qemu-img 以非 0 退出码结束
type ToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("qemu-img %s exited with code %d: %s",
		strings.Join(e.Args, " "), e.ExitCode, strings.TrimSpace(e.Stderr))
}

// ErrVirtualSizeNotFound 表示 qemu-img info 的输出中没有可解析的 virtual size 行
var ErrVirtualSizeNotFound = errors.New("virtual size not found in qemu-img info output")

// Client 封装 qemu-img 命令行工具的操作
type Client struct {
	qemuImgPath string
	timeout     time.Duration
	runner      Runner
}

// New 创建新的 qemuimg client
// qemuImgPath 是 qemu-img 的路径，如果为空则使用默认的 "qemu-img"
func New(qemuImgPath string) *Client {
	if qemuImgPath == "" {
		qemuImgPath = "qemu-img"
	}
	return &Client{
		qemuImgPath: qemuImgPath,
		runner:      ExecRunner{},
	}
}

// WithTimeout 设置单次命令的超时时间，0 表示不设置超时
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithRunner 替换子进程执行器
func (c *Client) WithRunner(runner Runner) *Client {
	c.runner = runner
	return c
}

// run 执行 qemu-img 子命令，非 0 退出码转换为 *ToolError
func (c *Client) run(ctx context.Context, args ...string) (*RunResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, err := c.runner.Run(ctx, c.qemuImgPath, args...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, &ToolError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

// CreateOptions 是 qemu-img create 的参数
type CreateOptions struct {
	// Format 镜像格式（如 "qcow2", "raw"）
	Format string
	// Options 透传给 -o 的选项字符串，为空时不传 -o
	Options string
	// Path 输出文件路径
	Path string
	// Size 镜像大小，原样透传给 qemu-img（如 "5", "10G"）
	Size string
}

// Args 返回 create 子命令的参数列表
func (o CreateOptions) Args() []string {
	args := []string{"create", "-f", o.Format}
	if o.Options != "" {
		args = append(args, "-o", o.Options)
	}
	return append(args, o.Path, o.Size)
}

// Create 创建新镜像
//
// 示例：
//
//	err := client.Create(ctx, qemuimg.CreateOptions{
//		Format:  "qcow2",
//		Options: "preallocation=metadata",
//		Path:    "/path/to/new.qcow2",
//		Size:    "10G",
//	})
func (c *Client) Create(ctx context.Context, opts CreateOptions) error {
	if _, err := c.run(ctx, opts.Args()...); err != nil {
		return fmt.Errorf("failed to create image %s: %w", opts.Path, err)
	}
	return nil
}

// Info 获取镜像信息
// 返回 qemu-img info 的原始输出
func (c *Client) Info(ctx context.Context, imagePath string) (string, error) {
	res, err := c.run(ctx, "info", imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to get image info for %s: %w", imagePath, err)
	}
	return res.Stdout, nil
}

// VirtualSize 获取镜像的 virtual size（字节）
func (c *Client) VirtualSize(ctx context.Context, imagePath string) (int64, error) {
	info, err := c.Info(ctx, imagePath)
	if err != nil {
		return 0, err
	}
	size, err := ParseVirtualSize(info)
	if err != nil {
		return 0, fmt.Errorf("parse virtual size of %s: %w", imagePath, err)
	}
	return size, nil
}

// Resize 调整镜像大小
// size 原样透传给 qemu-img，支持 "+1G" 这样的相对大小
// 缩小镜像时需要 shrink=true，否则 qemu-img 会拒绝
func (c *Client) Resize(ctx context.Context, imagePath, size string, shrink bool) error {
	args := []string{"resize"}
	if shrink {
		args = append(args, "--shrink")
	}
	args = append(args, imagePath, size)

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to resize image %s to %s: %w", imagePath, size, err)
	}
	return nil
}
