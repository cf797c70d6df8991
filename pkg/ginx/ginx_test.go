package ginx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qimg/pkg/apierror"
	"github.com/jimyag/qimg/pkg/ginx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Name string `json:"name"`
}

func (args *echoArgs) IsValid() error {
	if args.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type echoResp struct {
	Greeting string `json:"greeting"`
}

func newRouter(fn func(*gin.Context, *echoArgs) (*echoResp, error)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/echo", ginx.Adapt5(fn))
	router.GET("/healthz", ginx.Adapt2(func(c *gin.Context) string { return "ok" }))
	return router
}

func doPost(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAdapt2(t *testing.T) {
	t.Parallel()

	router := newRouter(nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestAdapt5(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		handler    func(*gin.Context, *echoArgs) (*echoResp, error)
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "success",
			body: `{"name":"disk"}`,
			handler: func(c *gin.Context, args *echoArgs) (*echoResp, error) {
				return &echoResp{Greeting: "hello " + args.Name}, nil
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"greeting":"hello disk"}`, string(body))
			},
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation failure",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				var resp apierror.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "name is required", resp.Errors[0].Message)
			},
		},
		{
			name: "coded error uses its status and request id",
			body: `{"name":"disk"}`,
			handler: func(c *gin.Context, args *echoArgs) (*echoResp, error) {
				ginx.SetRequestID(c, "run-42")
				return nil, apierror.WrapError(apierror.ErrExternalTool, "qemu-img failed", nil)
			},
			wantStatus: http.StatusBadGateway,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t,
					`{"errors":[{"code":"ExternalToolError","message":"qemu-img failed"}],"requestID":"run-42"}`,
					string(body))
			},
		},
		{
			name: "plain error is internal",
			body: `{"name":"disk"}`,
			handler: func(c *gin.Context, args *echoArgs) (*echoResp, error) {
				return nil, errors.New("permission denied")
			},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body []byte) {
				var resp apierror.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "permission denied", resp.Errors[0].Message)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := doPost(newRouter(tt.handler), tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.check != nil {
				tt.check(t, w.Body.Bytes())
			}
		})
	}
}
