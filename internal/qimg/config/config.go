package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultQemuImgPath = "qemu-img"
	defaultAddress     = "127.0.0.1:7780"
)

type Config struct {
	// QemuImgPath 是 qemu-img 的路径或命令名
	// 可以通过环境变量 QIMG_QEMU_IMG_PATH 配置
	// 默认：qemu-img（从 PATH 中查找）
	QemuImgPath string

	// Timeout 是单次 qemu-img 调用的超时时间，0 表示不设置超时
	// 可以通过环境变量 QIMG_TIMEOUT 配置，格式为 Go duration（如 "30m"）
	Timeout time.Duration

	// LogLevel 日志级别
	// 可以通过环境变量 QIMG_LOG_LEVEL 配置，默认 info
	LogLevel zerolog.Level

	// Address 是 serve 模式的监听地址
	// 可以通过环境变量 QIMG_ADDRESS 配置
	Address string
}

func New() (*Config, error) {
	timeout, err := getTimeout()
	if err != nil {
		return nil, err
	}
	level, err := getLogLevel()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		QemuImgPath: getQemuImgPath(),
		Timeout:     timeout,
		LogLevel:    level,
		Address:     getAddress(),
	}
	return cfg, nil
}

// getQemuImgPath 获取 qemu-img 路径，优先使用环境变量
func getQemuImgPath() string {
	if path := os.Getenv("QIMG_QEMU_IMG_PATH"); path != "" {
		return path
	}
	return defaultQemuImgPath
}

func getTimeout() (time.Duration, error) {
	v := os.Getenv("QIMG_TIMEOUT")
	if v == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse QIMG_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("QIMG_TIMEOUT must not be negative: %s", v)
	}
	return timeout, nil
}

func getLogLevel() (zerolog.Level, error) {
	v := os.Getenv("QIMG_LOG_LEVEL")
	if v == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(v)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse QIMG_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// getAddress 获取绑定地址，优先使用环境变量 QIMG_ADDRESS
func getAddress() string {
	if addr := os.Getenv("QIMG_ADDRESS"); addr != "" {
		return addr
	}
	return defaultAddress
}
