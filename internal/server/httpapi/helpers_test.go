package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pzubov/products-api/internal/logging"
	"github.com/pzubov/products-api/internal/server/models"
	"github.com/pzubov/products-api/internal/server/services"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Function-field fakes for the consumer interfaces the handlers depend on.

type fakeAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (*models.User, string, error)
	registerFn func(ctx context.Context, email, password, name string) (*models.User, string, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	return f.registerFn(ctx, email, password, name)
}

type fakeResetService struct {
	forgotFn func(ctx context.Context, email string) (string, time.Time, error)
	resetFn  func(ctx context.Context, token, newPassword string) (*models.User, error)
}

func (f *fakeResetService) ForgotPassword(ctx context.Context, email string) (string, time.Time, error) {
	return f.forgotFn(ctx, email)
}

func (f *fakeResetService) ResetPassword(ctx context.Context, token, newPassword string) (*models.User, error) {
	return f.resetFn(ctx, token, newPassword)
}

type fakeProductService struct {
	listFn   func(ctx context.Context, params services.ListProductsParams) (*services.ListProductsResult, error)
	getFn    func(ctx context.Context, id string) (*models.Product, error)
	createFn func(ctx context.Context, params services.CreateProductParams) (*models.Product, error)
	updateFn func(ctx context.Context, id string, params services.UpdateProductParams) (*models.Product, error)
	deleteFn func(ctx context.Context, id string) (*models.Product, error)
}

func (f *fakeProductService) List(ctx context.Context, params services.ListProductsParams) (*services.ListProductsResult, error) {
	return f.listFn(ctx, params)
}

func (f *fakeProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return f.getFn(ctx, id)
}

func (f *fakeProductService) Create(ctx context.Context, params services.CreateProductParams) (*models.Product, error) {
	return f.createFn(ctx, params)
}

func (f *fakeProductService) Update(ctx context.Context, id string, params services.UpdateProductParams) (*models.Product, error) {
	return f.updateFn(ctx, id, params)
}

func (f *fakeProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	return f.deleteFn(ctx, id)
}

type fakeUserGetter struct {
	getFn func(ctx context.Context, id string) (*models.User, error)
}

func (f *fakeUserGetter) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.getFn(ctx, id)
}

// doRequest runs req through the handler and decodes the JSON envelope into
// a generic map for assertions.
func doRequest(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" &&
		rec.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}
