package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qimg/internal/qimg/entity"
	"github.com/jimyag/qimg/pkg/apierror"
	"github.com/jimyag/qimg/pkg/ginx"
	"github.com/rs/zerolog"
)

// Reconciler 定义镜像收敛服务的接口
type Reconciler interface {
	Reconcile(ctx context.Context, spec entity.ImageSpec, checkOnly bool) (*entity.Result, error)
}

type Image struct {
	reconciler Reconciler
}

func NewImage(reconciler Reconciler) *Image {
	return &Image{
		reconciler: reconciler,
	}
}

func (i *Image) RegisterRoutes(router *gin.RouterGroup) {
	imageRouter := router.Group("/images")
	imageRouter.POST("/reconcile", ginx.Adapt5(i.Reconcile))
}

func (i *Image) Reconcile(ctx *gin.Context, req *entity.ReconcileRequest) (*entity.Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Interface("request", req).
		Msg("Reconcile called")

	spec, err := req.ToSpec()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInvalidInput, "invalid reconcile request", err)
	}

	result, err := i.reconciler.Reconcile(ctx, spec, req.IsCheckMode())
	if err != nil {
		if result != nil {
			ginx.SetRequestID(ctx, result.RunID)
		}
		logger.Error().
			Err(err).
			Str("dest", spec.Dest).
			Msg("Failed to reconcile image")
		return nil, apierror.From(err)
	}

	return result, nil
}

func healthz(*gin.Context) string {
	return "ok"
}
