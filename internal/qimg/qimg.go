// Package qimg 提供 qimg 的组装逻辑：qemu-img client、Reconciler 和 HTTP API
package qimg

import (
	"context"
	"io"
	"time"

	"github.com/jimmicro/grace"
	"github.com/jimyag/qimg/internal/qimg/api"
	"github.com/jimyag/qimg/internal/qimg/config"
	"github.com/jimyag/qimg/internal/qimg/service"
	"github.com/jimyag/qimg/pkg/qemuimg"
	"github.com/rs/zerolog"
)

// NewLogger 创建根 logger 并设置为 zerolog 的默认 context logger
// stdout 用于输出结果，日志统一写到 w（通常是 stderr）
func NewLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).Level(cfg.LogLevel).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

// NewReconciler 根据配置创建 Reconciler
func NewReconciler(cfg *config.Config) *service.Reconciler {
	client := qemuimg.New(cfg.QemuImgPath).WithTimeout(cfg.Timeout)
	return service.NewReconciler(client)
}

type Server struct {
	cfg *config.Config
	api *api.API
}

func New(cfg *config.Config) *Server {
	return &Server{
		cfg: cfg,
		api: api.New(cfg.Address, NewReconciler(cfg)),
	}
}

func (s *Server) Run(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().
		Str("address", s.cfg.Address).
		Str("qemu_img", s.cfg.QemuImgPath).
		Msg("Starting qimg API")

	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{}),
	)

	shepherd.Start(ctx)
	return nil
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct{}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	event := zerolog.DefaultContextLogger.Info()
	if len(args) > 0 {
		event.Msgf(msg, args...)
	} else {
		event.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	event := zerolog.DefaultContextLogger.Error()
	if len(args) > 0 {
		event.Msgf(msg, args...)
	} else {
		event.Msg(msg)
	}
}
