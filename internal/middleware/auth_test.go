package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func requestWithSession(sess *Session) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if sess != nil {
		req = req.WithContext(WithSession(req.Context(), sess))
	}
	return req
}

func TestRequireRole_Allows(t *testing.T) {
	next, called := okHandler()
	handler := RequireRole("SITE_ADMIN")(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(&Session{UserID: uuid.New(), Role: "SITE_ADMIN"}))

	if !*called || rr.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got code %d called=%v", rr.Code, *called)
	}
}

func TestRequireRole_Denies(t *testing.T) {
	next, called := okHandler()
	handler := RequireRole("SITE_ADMIN")(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(&Session{UserID: uuid.New(), Role: "CREATIVE"}))

	if *called {
		t.Fatal("handler must not run for wrong role")
	}
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestRequireAdmin_AcceptsBothAdminRoles(t *testing.T) {
	for _, role := range []string{"SITE_OWNER", "SITE_ADMIN"} {
		next, called := okHandler()
		handler := RequireAdmin()(next)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestWithSession(&Session{UserID: uuid.New(), Role: role}))

		if !*called {
			t.Fatalf("%s should pass RequireAdmin", role)
		}
	}
}

func TestRequireCustomer_NeedsCompanyScope(t *testing.T) {
	next, called := okHandler()
	handler := RequireCustomer()(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(&Session{UserID: uuid.New(), Role: "CUSTOMER"}))

	if *called {
		t.Fatal("customer without company scope must be rejected")
	}
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}

	next2, called2 := okHandler()
	handler2 := RequireCustomer()(next2)
	companyID := uuid.New()

	rr2 := httptest.NewRecorder()
	handler2.ServeHTTP(rr2, requestWithSession(&Session{UserID: uuid.New(), Role: "CUSTOMER", CompanyID: &companyID}))

	if !*called2 {
		t.Fatal("customer with company scope should pass")
	}
}

func TestRequireRole_NoSession(t *testing.T) {
	next, called := okHandler()
	handler := RequireRole("CREATIVE")(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(nil))

	if *called {
		t.Fatal("unauthenticated request must be rejected")
	}
}
