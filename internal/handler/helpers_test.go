package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/voyage/backend/internal/auth"
	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/geocode"
	"github.com/pkordes/voyage/backend/internal/handler"
	"github.com/pkordes/voyage/backend/internal/service"
)

// ---- mocks -----------------------------------------------------------------
// Each mock has one function field per method: set only the ones a test needs.

type mockTripServicer struct {
	generate func(ctx context.Context, userID uuid.UUID, prefs domain.Preferences) (domain.Trip, bool, error)
	getByID  func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	list     func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
	delete   func(ctx context.Context, userID, id uuid.UUID) error
	markers  func(ctx context.Context, userID, id uuid.UUID, q service.MarkerQuery) (geocode.View, error)
}

func (m *mockTripServicer) Generate(ctx context.Context, userID uuid.UUID, prefs domain.Preferences) (domain.Trip, bool, error) {
	return m.generate(ctx, userID, prefs)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	return m.list(ctx, userID, p)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockTripServicer) Markers(ctx context.Context, userID, id uuid.UUID, q service.MarkerQuery) (geocode.View, error) {
	return m.markers(ctx, userID, id, q)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockAuthServicer struct {
	register func(ctx context.Context, name, email, password string) (service.Session, error)
	login    func(ctx context.Context, email, password string) (service.Session, error)
	me       func(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, name, email, password string) (service.Session, error) {
	return m.register(ctx, name, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (service.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.me(ctx, userID)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, userID, tripID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- auth ------------------------------------------------------------------

// testUser is the identity behind testToken.
var testUser = uuid.MustParse("7b0c2f4e-2f6a-4c8e-9a55-1d2e3f405060")

const testToken = "valid-token"

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (auth.Identity, error) {
	if token != testToken {
		return auth.Identity{}, errors.New("bad token")
	}
	return auth.Identity{UserID: testUser, Email: "asha@example.com"}, nil
}

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server over deps exactly as serve does, minus the
// process-level middleware.
func newRouter(deps handler.Deps) http.Handler {
	deps.Verifier = stubVerifier{}
	return handler.NewServer(deps).Routes()
}

// do sends one request. body may be nil; authed adds the test bearer token.
func do(t *testing.T, h http.Handler, method, target string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
