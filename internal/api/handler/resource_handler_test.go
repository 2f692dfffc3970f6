package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

type stubResourceService struct {
	uploadFn  func(ctx context.Context, input ports.UploadResourceInput) (*ports.ResourceView, error)
	getFn     func(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) (*ports.ResourceView, error)
	shareFn   func(ctx context.Context, input ports.ShareResourceInput) (*domain.ShareGrant, error)
	unshareFn func(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor, userID string) error
}

func (s *stubResourceService) Upload(ctx context.Context, input ports.UploadResourceInput) (*ports.ResourceView, error) {
	return s.uploadFn(ctx, input)
}

func (s *stubResourceService) Get(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) (*ports.ResourceView, error) {
	return s.getFn(ctx, kind, id, actor)
}

func (s *stubResourceService) List(context.Context, domain.ResourceKind, domain.Actor, string) ([]ports.ResourceView, error) {
	return nil, nil
}

func (s *stubResourceService) Update(context.Context, ports.UpdateResourceInput) (*ports.ResourceView, error) {
	return nil, nil
}

func (s *stubResourceService) SetVisibility(context.Context, domain.ResourceKind, string, domain.Actor, bool) (*ports.ResourceView, error) {
	return nil, nil
}

func (s *stubResourceService) Delete(context.Context, domain.ResourceKind, string, domain.Actor) error {
	return nil
}

func (s *stubResourceService) Share(ctx context.Context, input ports.ShareResourceInput) (*domain.ShareGrant, error) {
	return s.shareFn(ctx, input)
}

func (s *stubResourceService) Unshare(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor, userID string) error {
	return s.unshareFn(ctx, kind, id, actor, userID)
}

func authedContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)
	return c, rec
}

func multipartBody(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	fw, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(fileContent)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestResourceHandler_Upload(t *testing.T) {
	stub := &stubResourceService{
		uploadFn: func(ctx context.Context, input ports.UploadResourceInput) (*ports.ResourceView, error) {
			if input.Kind != domain.KindTraining {
				t.Fatalf("expected training kind, got %s", input.Kind)
			}
			if input.Owner.ID != "u1" {
				t.Fatalf("owner not taken from token: %s", input.Owner.ID)
			}
			if !input.IsPublic {
				t.Fatalf("is_public form value not parsed")
			}
			return &ports.ResourceView{ID: "r1", Kind: input.Kind, OwnerID: input.Owner.ID, Title: input.Title}, nil
		},
	}
	h := NewResourceHandler(stub, domain.KindTraining, 1<<20)

	body, contentType := multipartBody(t, map[string]string{
		"title":     "onboarding",
		"is_public": "true",
	}, "intro.mp4", "content")
	req := httptest.NewRequest(http.MethodPost, "/api/trainings", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c, rec := authedContext(t, req)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "r1" || resp["kind"] != "training" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestResourceHandler_Upload_MissingFile(t *testing.T) {
	stub := &stubResourceService{
		uploadFn: func(ctx context.Context, input ports.UploadResourceInput) (*ports.ResourceView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewResourceHandler(stub, domain.KindPost, 1<<20)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "no file")
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	c, _ := authedContext(t, req)

	err := h.Upload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestResourceHandler_Upload_TooLarge(t *testing.T) {
	stub := &stubResourceService{
		uploadFn: func(ctx context.Context, input ports.UploadResourceInput) (*ports.ResourceView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewResourceHandler(stub, domain.KindPost, 4)

	body, contentType := multipartBody(t, map[string]string{"title": "big"}, "big.bin", "way too large")
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c, _ := authedContext(t, req)

	err := h.Upload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestResourceHandler_Get_Forbidden(t *testing.T) {
	stub := &stubResourceService{
		getFn: func(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) (*ports.ResourceView, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewResourceHandler(stub, domain.KindPost, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/r1", nil)
	c, _ := authedContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResourceHandler_Get_Unauthenticated(t *testing.T) {
	stub := &stubResourceService{
		getFn: func(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) (*ports.ResourceView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewResourceHandler(stub, domain.KindPost, 1<<20)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/r1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no claims injected

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestResourceHandler_Share(t *testing.T) {
	stub := &stubResourceService{
		shareFn: func(ctx context.Context, input ports.ShareResourceInput) (*domain.ShareGrant, error) {
			if input.Email != "bob@example.com" {
				t.Fatalf("unexpected email: %s", input.Email)
			}
			if input.CanView != nil {
				t.Fatalf("omitted flag must stay nil")
			}
			if input.CanEdit == nil || !*input.CanEdit {
				t.Fatalf("can_edit not forwarded")
			}
			return &domain.ShareGrant{ResourceID: input.ID, UserID: "u2", CanView: true, CanEdit: true}, nil
		},
	}
	h := NewResourceHandler(stub, domain.KindPost, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/r1/share",
		bytes.NewReader([]byte(`{"email":"bob@example.com","can_edit":true}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Share(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["can_view"] != true || resp["can_edit"] != true {
		t.Fatalf("unexpected grant payload: %+v", resp)
	}
}

func TestResourceHandler_Share_InvalidEmail(t *testing.T) {
	stub := &stubResourceService{
		shareFn: func(ctx context.Context, input ports.ShareResourceInput) (*domain.ShareGrant, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewResourceHandler(stub, domain.KindPost, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/r1/share",
		bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := authedContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	err := h.Share(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestResourceHandler_Unshare(t *testing.T) {
	stub := &stubResourceService{
		unshareFn: func(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor, userID string) error {
			if id != "r1" || userID != "u2" {
				t.Fatalf("unexpected args: %s %s", id, userID)
			}
			return nil
		},
	}
	h := NewResourceHandler(stub, domain.KindPost, 1<<20)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/r1/share/u2", nil)
	c, rec := authedContext(t, req)
	c.SetParamNames("id", "userId")
	c.SetParamValues("r1", "u2")

	if err := h.Unshare(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
