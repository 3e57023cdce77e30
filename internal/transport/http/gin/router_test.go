package httpgin

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioskgym/kioskgym/internal/catalog"
	"github.com/kioskgym/kioskgym/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *catalog.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.New()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svcs := service.NewServices(cat, nil, nil, nil, nil, logger, service.Config{})

	return NewRouter(svcs, cat, nil, logger), cat
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createSession(t *testing.T, r *gin.Engine, storefront string) SessionView {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/sessions", CreateSessionRequest{Storefront: storefront})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[SessionView](t, w)
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateSession(t *testing.T) {
	r, _ := newTestRouter(t)

	sess := createSession(t, r, "burger")
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "burger", sess.Storefront)
	assert.Equal(t, "MENU", sess.Stage)
	assert.NotEmpty(t, sess.MissionText)
}

func TestCreateSessionInvalidStorefront(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", CreateSessionRequest{Storefront: "bakery"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, "cafe")

	w := doJSON(t, r, http.MethodDelete, "/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuardRefusalIsNotAnError(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, "burger")

	// the burger storefront has no booking wizard to start
	w := doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/booking/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[MutationResponse](t, w)
	assert.False(t, resp.Changed)
	assert.Equal(t, "MENU", resp.Session.Stage)
}

func TestAddLineUnknownItem(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, "burger")

	w := doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/cart/lines", AddLineRequest{
		ItemID:   "nope",
		Quantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	r, cat := newTestRouter(t)
	sess := createSession(t, r, "burger")

	item := cat.Menu("burger")[0]
	w := doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/cart/lines", AddLineRequest{
		ItemID:   item.ID,
		Quantity: 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[MutationResponse](t, w)
	require.True(t, resp.Changed)
	require.Len(t, resp.Session.Lines, 1)
	assert.Equal(t, 2, resp.Session.TotalQuantity)
	assert.Equal(t, 2*item.Price, resp.Session.TotalPrice)

	w = doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/cart/lines/change", ChangeLineRequest{
		Key:   resp.Session.Lines[0].Key,
		Delta: -1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[MutationResponse](t, w)
	assert.Equal(t, 1, resp.Session.TotalQuantity)

	w = doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[MutationResponse](t, w)
	assert.True(t, resp.Changed)
	assert.Equal(t, "RESULT", resp.Session.Stage)
	assert.NotEmpty(t, resp.Session.Outcome)
}

func TestCheckoutEmptyCart(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, "restaurant")

	w := doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[MutationResponse](t, w)
	assert.False(t, resp.Changed)
	assert.Equal(t, "MENU", resp.Session.Stage)
}

func TestCatalogMenuWithETag(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/catalog/cafe/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	items := decode[[]ItemView](t, w)
	assert.NotEmpty(t, items)

	req := httptest.NewRequest(http.MethodGet, "/catalog/cafe/menu", nil)
	req.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotModified, w2.Code)
}

func TestCatalogUnknownStorefront(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/catalog/bakery/menu", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogMoviesAndTheaters(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/catalog/movies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[[]MovieView](t, w))

	w = doJSON(t, r, http.MethodGet, "/catalog/theaters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[[]TheaterView](t, w))
}

func TestHistoryEmptyWithoutStore(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestBookingWizardOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, "cinema")
	require.Equal(t, "HOME", sess.Stage)

	w := doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/booking/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[MutationResponse](t, w)
	require.True(t, resp.Changed)
	assert.Equal(t, "BOOKING", resp.Session.Stage)
	assert.Equal(t, "MOVIE", resp.Session.BookingStep)

	w = doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/booking/movie", SelectMovieRequest{MovieID: "m1"})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[MutationResponse](t, w)
	require.True(t, resp.Changed)
	assert.Equal(t, "TIME", resp.Session.BookingStep)

	w = doJSON(t, r, http.MethodPost, "/sessions/"+sess.ID+"/booking/movie", SelectMovieRequest{MovieID: "zzz"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
