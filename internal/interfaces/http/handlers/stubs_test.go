package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/internal/interfaces/http/middleware"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/utils"
)

func asUser(id uuid.UUID, role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.UserEmailKey, "caller@example.com")
		c.Set(middleware.UserRoleKey, string(role))
		c.Next()
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, _ := json.Marshal(b)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field, name, contentType string
	data                     []byte
}

func doMultipart(t *testing.T, r http.Handler, path string, fields map[string]string, file *formFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

type contractServiceStub struct {
	checkoutFn       func(ctx context.Context, actor usecases.Actor, input *entities.CheckoutInput) (*entities.CheckoutResult, error)
	uploadFn         func(ctx context.Context, actor usecases.Actor, contractID string, file *entities.UploadedFile) (*entities.UploadResult, error)
	assignFn         func(ctx context.Context, input *entities.AssignContractInput) (*entities.Contract, error)
	updateStatusFn   func(ctx context.Context, actor usecases.Actor, input *entities.UpdateStatusInput) (*entities.Contract, error)
	completeFn       func(ctx context.Context, actor usecases.Actor, input *entities.CompleteReviewInput) (*entities.Contract, error)
	uploadReviewedFn func(ctx context.Context, actor usecases.Actor, contractID string, file *entities.UploadedFile) (*entities.Contract, error)
	deleteFn         func(ctx context.Context, actor usecases.Actor, contractID string) (*entities.DeleteResult, error)
	listFn           func(ctx context.Context, actor usecases.Actor, status entities.ContractStatus, p utils.PaginationParams) ([]*entities.Contract, int64, error)
	getFn            func(ctx context.Context, actor usecases.Actor, contractID string) (*entities.Contract, error)
}

func (s contractServiceStub) Pricing() []entities.TierInfo { return entities.PricingCatalogue() }
func (s contractServiceStub) Checkout(ctx context.Context, actor usecases.Actor, input *entities.CheckoutInput) (*entities.CheckoutResult, error) {
	return s.checkoutFn(ctx, actor, input)
}
func (s contractServiceStub) Upload(ctx context.Context, actor usecases.Actor, contractID string, file *entities.UploadedFile) (*entities.UploadResult, error) {
	return s.uploadFn(ctx, actor, contractID, file)
}
func (s contractServiceStub) Assign(ctx context.Context, input *entities.AssignContractInput) (*entities.Contract, error) {
	return s.assignFn(ctx, input)
}
func (s contractServiceStub) UpdateStatus(ctx context.Context, actor usecases.Actor, input *entities.UpdateStatusInput) (*entities.Contract, error) {
	return s.updateStatusFn(ctx, actor, input)
}
func (s contractServiceStub) CompleteReview(ctx context.Context, actor usecases.Actor, input *entities.CompleteReviewInput) (*entities.Contract, error) {
	return s.completeFn(ctx, actor, input)
}
func (s contractServiceStub) UploadReviewed(ctx context.Context, actor usecases.Actor, contractID string, file *entities.UploadedFile) (*entities.Contract, error) {
	return s.uploadReviewedFn(ctx, actor, contractID, file)
}
func (s contractServiceStub) Delete(ctx context.Context, actor usecases.Actor, contractID string) (*entities.DeleteResult, error) {
	return s.deleteFn(ctx, actor, contractID)
}
func (s contractServiceStub) List(ctx context.Context, actor usecases.Actor, status entities.ContractStatus, p utils.PaginationParams) ([]*entities.Contract, int64, error) {
	return s.listFn(ctx, actor, status, p)
}
func (s contractServiceStub) Get(ctx context.Context, actor usecases.Actor, contractID string) (*entities.Contract, error) {
	return s.getFn(ctx, actor, contractID)
}

type paymentServiceStub struct {
	handleFn     func(ctx context.Context, event *entities.GatewayEvent) (string, error)
	initializeFn func(ctx context.Context, input *entities.InitializePaymentInput) (*entities.PaymentInitialization, error)
	verifyFn     func(ctx context.Context, reference string) (*entities.PaymentVerification, error)
}

func (s paymentServiceStub) HandleEvent(ctx context.Context, event *entities.GatewayEvent) (string, error) {
	return s.handleFn(ctx, event)
}
func (s paymentServiceStub) Initialize(ctx context.Context, input *entities.InitializePaymentInput) (*entities.PaymentInitialization, error) {
	return s.initializeFn(ctx, input)
}
func (s paymentServiceStub) Verify(ctx context.Context, reference string) (*entities.PaymentVerification, error) {
	return s.verifyFn(ctx, reference)
}
