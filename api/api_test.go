package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/netriktechworks/site-backend/auth"
	"github.com/netriktechworks/site-backend/database"
	"github.com/netriktechworks/site-backend/models"
	"github.com/netriktechworks/site-backend/services"
	"github.com/netriktechworks/site-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdmin    = "admin"
	testPassword = "s3cret-pass"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []services.Message
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) Notify(_ context.Context, msg services.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

func (n *recordingNotifier) received() []services.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]services.Message(nil), n.messages...)
}

type testServer struct {
	handler    http.Handler
	uploadDir  string
	notifier   *recordingNotifier
	adminToken string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour, auth.NewCredentialStore(map[string]string{testAdmin: hash}))
	require.NoError(t, err)

	uploadDir := t.TempDir()
	files, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	handler := newRouter(database.New(db), Dependencies{
		Tokens:   tokens,
		Files:    files,
		Notifier: notifier,
		Now:      func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
	})

	token, _, err := tokens.Issue(testAdmin)
	require.NoError(t, err)

	return &testServer{handler: handler, uploadDir: uploadDir, notifier: notifier, adminToken: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+s.adminToken)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) upload(t *testing.T, path, fileName, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.adminToken)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) createProject(t *testing.T) models.Project {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/admin/projects", map[string]any{
		"title":           "Office network refresh",
		"description":     "Structured cabling and Wi-Fi for a 40 seat office",
		"client":          "Kedai Maju",
		"category":        "networking",
		"tags":            []string{"wifi", "cabling"},
		"completion_date": "2025-11-02",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Project](t, rec)
}

func (s *testServer) createTestimonial(t *testing.T) models.Testimonial {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/admin/testimonials", map[string]any{
		"name":    "Aina",
		"role":    "Owner",
		"content": "Fast and tidy work",
		"rating":  5,
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Testimonial](t, rec)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-image-data")

func TestAdminRoutesRejectMissingOrBadToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/admin/projects", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "error", decode[ErrorResponse](t, rec).Status)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/quotations", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Username: testAdmin, Password: testPassword}, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	session := decode[auth.Session](t, rec)
	assert.Equal(t, "bearer", session.TokenType)
	require.NotEmpty(t, session.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Username: testAdmin, Password: "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Username: "", Password: "x"}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Netrik Techworks API v1.0.0", decode[MessageResponse](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", health["status"])
}

func TestContactSubmissionFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/contact", ContactSubmissionRequest{
		Name:    "Hafiz",
		Email:   "hafiz@example.com",
		Phone:   "+60 12-345 6789",
		Service: "IT Support",
		Message: "Our printer keeps dropping off the network",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	submission := decode[models.ContactSubmission](t, rec)
	assert.False(t, submission.IsRead)
	assert.NotEqual(t, uuid.Nil, submission.ID)
	assert.False(t, submission.SubmittedAt.IsZero())

	assert.Eventually(t, func() bool { return len(s.notifier.received()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "hafiz@example.com", s.notifier.received()[0].ReplyTo)

	rec = s.do(t, http.MethodGet, "/api/admin/contact-submissions?unread_only=true", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.ContactSubmission](t, rec), 1)

	rec = s.do(t, http.MethodPatch, "/api/admin/contact-submissions/"+submission.ID.String()+"/read", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Submission marked as read", decode[MessageResponse](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/admin/contact-submissions?unread_only=true", nil, true)
	assert.Len(t, decode[[]models.ContactSubmission](t, rec), 0)

	rec = s.do(t, http.MethodGet, "/api/admin/contact-submissions", nil, true)
	all := decode[[]models.ContactSubmission](t, rec)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead)
}

func TestContactSubmissionValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/contact", ContactSubmissionRequest{Name: "Hafiz", Email: "hafiz@example.com"}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "phone", decode[ErrorResponse](t, rec).Field)

	rec = s.do(t, http.MethodPost, "/api/contact", ContactSubmissionRequest{
		Name: "Hafiz", Email: "not-an-email", Phone: "1", Service: "x", Message: "y",
	}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decode[ErrorResponse](t, rec).Field)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, s.notifier.received())
}

func TestQuotationTotalsAndPDF(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/quotations", map[string]any{
		"client_name":    "Syarikat Contoh Sdn Bhd",
		"client_email":   "accounts@contoh.my",
		"client_phone":   "+60 3-1234 5678",
		"client_address": "Jalan Ampang, Kuala Lumpur",
		"items": []map[string]any{
			{"description": "Server setup", "quantity": 1, "unit_price": 5000, "total": 5000},
			{"description": "Backup configuration", "quantity": 1, "unit_price": 1500, "total": 1500},
		},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	quotation := decode[models.Quotation](t, rec)
	assert.Equal(t, "NT-2026-0001", quotation.QuoteNumber)
	assert.Equal(t, 6500.0, quotation.Subtotal)
	assert.Equal(t, 0.06, quotation.TaxRate)
	assert.Equal(t, 390.0, quotation.TaxAmount)
	assert.Equal(t, 6890.0, quotation.TotalAmount)
	assert.Equal(t, models.QuotationStatusDraft, quotation.Status)
	assert.Equal(t, quotation.CreatedAt.AddDate(0, 0, 30).Unix(), quotation.ValidUntil.Unix())

	rec = s.do(t, http.MethodGet, "/api/admin/quotations/"+quotation.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, quotation.QuoteNumber, decode[models.Quotation](t, rec).QuoteNumber)

	rec = s.do(t, http.MethodGet, "/api/admin/quotations/"+quotation.ID.String()+"/pdf", nil, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "quotation_NT-2026-0001.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	stored, err := os.ReadFile(filepath.Join(s.uploadDir, "invoices", "quotation_NT-2026-0001.pdf"))
	require.NoError(t, err)
	assert.Equal(t, rec.Body.Bytes(), stored)

	rec = s.do(t, http.MethodPost, "/api/admin/quotations", map[string]any{
		"client_name":    "Second client",
		"client_email":   "second@example.com",
		"client_phone":   "+60 12-000 0000",
		"client_address": "Penang",
		"items":          []map[string]any{{"description": "Audit", "quantity": 1, "unit_price": 100, "total": 100}},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "NT-2026-0002", decode[models.Quotation](t, rec).QuoteNumber)

	rec = s.do(t, http.MethodGet, "/api/admin/quotations", nil, true)
	list := decode[[]models.Quotation](t, rec)
	require.Len(t, list, 2)
}

func TestQuotationRequiresItems(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/quotations", map[string]any{
		"client_name":    "Nobody",
		"client_email":   "nobody@example.com",
		"client_phone":   "+60 12-000 0000",
		"client_address": "Ipoh",
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "items", decode[ErrorResponse](t, rec).Field)

	rec = s.do(t, http.MethodGet, "/api/admin/quotations/"+uuid.NewString()+"/pdf", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuotationRejectsBadClientDetails(t *testing.T) {
	s := newTestServer(t)
	items := []map[string]any{{"description": "Audit", "quantity": 1, "unit_price": 100, "total": 100}}

	rec := s.do(t, http.MethodPost, "/api/admin/quotations", map[string]any{
		"client_name":    "Kedai Baru",
		"client_email":   "not-an-email",
		"client_phone":   "+60 12-000 0000",
		"client_address": "Melaka",
		"items":          items,
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "client_email", decode[ErrorResponse](t, rec).Field)

	rec = s.do(t, http.MethodPost, "/api/admin/quotations", map[string]any{
		"client_name":  "Kedai Baru",
		"client_email": "kedai@example.com",
		"items":        items,
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "client_phone", decode[ErrorResponse](t, rec).Field)

	rec = s.do(t, http.MethodGet, "/api/admin/quotations", nil, true)
	assert.Empty(t, decode[[]models.Quotation](t, rec))
}

func TestProjectPartialUpdate(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)

	rec := s.do(t, http.MethodPatch, "/api/admin/projects/"+project.ID.String(), map[string]any{"is_featured": true}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Project](t, rec)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, project.Title, updated.Title)
	assert.Equal(t, []string{"wifi", "cabling"}, []string(updated.Tags))

	rec = s.do(t, http.MethodGet, "/api/projects?featured_only=true", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Project](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/projects?category=web", nil, false)
	assert.Len(t, decode[[]models.Project](t, rec), 0)

	rec = s.do(t, http.MethodDelete, "/api/admin/projects/"+project.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Project deleted successfully", decode[MessageResponse](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/projects/"+project.ID.String(), nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectCreateRequiresFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"title": "Only a title"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "description", decode[ErrorResponse](t, rec).Field)
}

func TestFirstUploadedImageBecomesFeatured(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)
	path := "/api/admin/projects/" + project.ID.String() + "/images"

	rec := s.upload(t, path, "front.PNG", "image/png", pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[ImageUploadResponse](t, rec)
	assert.Equal(t, "Image uploaded successfully", first.Message)
	assert.True(t, strings.HasPrefix(first.ImageURL, "/uploads/projects/"))
	assert.True(t, strings.HasSuffix(first.ImageURL, ".png"))

	rec = s.upload(t, path, "back.png", "image/png", pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decode[ImageUploadResponse](t, rec)
	assert.NotEqual(t, first.ImageURL, second.ImageURL)

	rec = s.do(t, http.MethodGet, "/api/projects/"+project.ID.String(), nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[models.Project](t, rec)
	require.NotNil(t, stored.FeaturedImage)
	assert.Equal(t, first.ImageURL, *stored.FeaturedImage)
	assert.Equal(t, []string{first.ImageURL, second.ImageURL}, []string(stored.Images))

	rec = s.do(t, http.MethodGet, first.ImageURL, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = s.do(t, http.MethodGet, "/api"+first.ImageURL, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngBytes, rec.Body.Bytes())
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}

func TestUploadRejectsNonImage(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)

	rec := s.upload(t, "/api/admin/projects/"+project.ID.String()+"/images", "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	entries, err := os.ReadDir(filepath.Join(s.uploadDir, "projects"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	rec = s.upload(t, "/api/admin/projects/"+uuid.NewString()+"/images", "a.png", "image/png", pngBytes)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsImageTypeWithScriptableExtension(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)
	path := "/api/admin/projects/" + project.ID.String() + "/images"

	for _, name := range []string{"x.html", "x.svg", "x"} {
		rec := s.upload(t, path, name, "image/png", []byte("<script>alert(1)</script>"))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Equal(t, "file", decode[ErrorResponse](t, rec).Field)
	}

	entries, _ := os.ReadDir(filepath.Join(s.uploadDir, "projects"))
	assert.Empty(t, entries)
}

func TestUploadsServeNonImagesAsAttachments(t *testing.T) {
	s := newTestServer(t)
	dir := filepath.Join(s.uploadDir, "projects")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("<script>alert(1)</script>"), 0o644))

	rec := s.do(t, http.MethodGet, "/uploads/projects/page.html", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="page.html"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestTestimonialLifecycle(t *testing.T) {
	s := newTestServer(t)
	testimonial := s.createTestimonial(t)
	assert.Equal(t, int64(0), testimonial.Likes)

	rec := s.do(t, http.MethodPatch, "/api/admin/testimonials/"+testimonial.ID.String(), map[string]any{"rating": 0}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/admin/testimonials/"+testimonial.ID.String(), map[string]any{"is_featured": true}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Testimonial](t, rec)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, 5, updated.Rating)

	rec = s.upload(t, "/api/admin/testimonials/"+testimonial.ID.String()+"/image", "aina.jpg", "image/jpeg", pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	imageURL := decode[ImageUploadResponse](t, rec).ImageURL
	assert.True(t, strings.HasPrefix(imageURL, "/uploads/testimonials/"))

	for i := 1; i <= 2; i++ {
		rec = s.do(t, http.MethodPost, "/api/testimonials/"+testimonial.ID.String()+"/like", nil, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(i), decode[LikeResponse](t, rec).Likes)
	}

	rec = s.do(t, http.MethodGet, "/api/testimonials?featured_only=true", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	public := decode[[]models.Testimonial](t, rec)
	require.Len(t, public, 1)
	assert.Equal(t, int64(2), public[0].Likes)
	require.NotNil(t, public[0].Image)
	assert.Equal(t, imageURL, *public[0].Image)

	rec = s.do(t, http.MethodDelete, "/api/admin/testimonials/"+testimonial.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Testimonial deleted successfully", decode[MessageResponse](t, rec).Message)
}

func TestTestimonialRatingOutOfRange(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/testimonials", map[string]any{
		"name": "Aina", "role": "Owner", "content": "ok", "rating": 6,
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "rating", decode[ErrorResponse](t, rec).Field)
}

func TestUnknownIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPatch, "/api/admin/testimonials/"+uuid.NewString(), map[string]any{"rating": 4}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/admin/testimonials/not-a-uuid", map[string]any{"rating": 4}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/testimonials/"+uuid.NewString()+"/like", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/admin/contact-submissions/"+uuid.NewString()+"/read", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadsRouteOnlyServesKnownFolders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/uploads/secrets/passwd", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/uploads/projects/missing.png", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/uploads/secrets/passwd", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoverPanicsWritesJSON500(t *testing.T) {
	h := RecoverPanics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decode[ErrorResponse](t, rec).Status)
}

func TestRejectDisallowedPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RejectDisallowedPreflight([]string{"https://netriktechworks.com"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://netriktechworks.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
