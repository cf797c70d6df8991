// Package qemuimg 封装 qemu-img 命令行工具的操作
//
// 该包提供了对 qemu-img 常用操作的封装，包括：
//   - 创建镜像（Create）
//   - 获取镜像信息（Info）
//   - 读取镜像的 virtual size（VirtualSize）
//   - 调整镜像大小（Resize）
//
// 所有子进程调用都通过 Runner 接口执行，测试时可以替换为 MockRunner，
// 不需要真实的 qemu-img 命令。
//
// 示例：
//
//	client := qemuimg.New("")
//
//	// 创建 5M 的 raw 镜像
//	err := client.Create(ctx, qemuimg.CreateOptions{
//		Format: "raw",
//		Path:   "/tmp/testimg",
//		Size:   "5M",
//	})
//
//	// 读取 virtual size（字节）
//	size, err := client.VirtualSize(ctx, "/tmp/testimg")
//
//	// 扩容到 6M
//	err = client.Resize(ctx, "/tmp/testimg", "6M", false)
package qemuimg
