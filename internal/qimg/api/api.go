package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qimg/pkg/ginx"
)

type API struct {
	engine *gin.Engine
	server *http.Server

	image *Image
}

func New(address string, reconciler Reconciler) *API {
	engine := gin.Default()
	api := &API{
		engine: engine,
		image:  NewImage(reconciler),
	}
	api.image.RegisterRoutes(engine.Group("/api"))
	engine.GET("/healthz", ginx.Adapt2(healthz))

	api.server = &http.Server{
		Addr:    address,
		Handler: engine,
	}
	return api
}

// Handler 返回 HTTP handler，便于测试
func (a *API) Handler() http.Handler {
	return a.engine
}

func (a *API) Run(ctx context.Context) error {
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Name 实现 grace.Grace 接口
func (a *API) Name() string {
	return "qimg API"
}
