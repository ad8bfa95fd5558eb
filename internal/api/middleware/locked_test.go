package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

type stubFinder struct {
	users map[string]*domain.User
	err   error
}

func (s *stubFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func runRejectLocked(t *testing.T, finder *stubFinder, method, uid string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/v1/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set("uid", uid)
	}

	handler := RejectLocked(finder)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRejectLocked_BlocksLockedWrites(t *testing.T) {
	finder := &stubFinder{users: map[string]*domain.User{
		"u1": {ID: "u1", Locked: true},
	}}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		_, err := runRejectLocked(t, finder, method, "u1")
		if !errors.Is(err, domain.ErrUserLocked) {
			t.Errorf("%s: got %v, want ErrUserLocked", method, err)
		}
	}
}

func TestRejectLocked_AllowsLockedReads(t *testing.T) {
	finder := &stubFinder{users: map[string]*domain.User{
		"u1": {ID: "u1", Locked: true},
	}}

	rec, err := runRejectLocked(t, finder, http.MethodGet, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRejectLocked_AllowsUnlockedWrites(t *testing.T) {
	finder := &stubFinder{users: map[string]*domain.User{
		"u1": {ID: "u1"},
	}}

	rec, err := runRejectLocked(t, finder, http.MethodPost, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRejectLocked_UnknownProfilePasses(t *testing.T) {
	finder := &stubFinder{users: map[string]*domain.User{}}

	_, err := runRejectLocked(t, finder, http.MethodPost, "fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRejectLocked_MissingPrincipal(t *testing.T) {
	finder := &stubFinder{users: map[string]*domain.User{}}

	_, err := runRejectLocked(t, finder, http.MethodPost, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("got %v, want 401", err)
	}
}

func TestRejectLocked_StoreErrorPropagates(t *testing.T) {
	finder := &stubFinder{err: errors.New("store down")}

	_, err := runRejectLocked(t, finder, http.MethodPost, "u1")
	if err == nil || err.Error() != "store down" {
		t.Errorf("got %v, want store error", err)
	}
}
