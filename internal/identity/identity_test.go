package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := BearerToken(r); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestClerkVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/v1/sessions/good/verify":
			_, _ = w.Write([]byte(`{"id":"sess_1","user_id":"user_42","status":"active"}`))
		case "/v1/sessions/ended/verify":
			_, _ = w.Write([]byte(`{"id":"sess_2","user_id":"user_42","status":"ended"}`))
		case "/v1/sessions/broken/verify":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	v := NewClerkVerifier("sk_test", srv.URL)
	ctx := context.Background()

	id, err := v.Verify(ctx, "good")
	if err != nil {
		t.Fatalf("Verify(good): %v", err)
	}
	if id.Subject != "user_42" || id.SessionID != "sess_1" {
		t.Errorf("identity = %+v", id)
	}

	if _, err := v.Verify(ctx, "ended"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(ended) err = %v, want ErrInvalidToken", err)
	}
	if _, err := v.Verify(ctx, "unknown"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(unknown) err = %v, want ErrInvalidToken", err)
	}
	if _, err := v.Verify(ctx, "broken"); err == nil || errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(broken) err = %v, want upstream error", err)
	}
	if _, err := v.Verify(ctx, ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Verify(\"\") err = %v, want ErrMissingToken", err)
	}

	if NewClerkVerifier(" ", "") != nil {
		t.Error("expected nil verifier without secret key")
	}
}

func TestNewJWTVerifierRejectsBlankSecret(t *testing.T) {
	for _, secret := range []string{"", "   ", "\t\n"} {
		if NewJWTVerifier(secret, "") != nil {
			t.Errorf("NewJWTVerifier(%q) should be nil", secret)
		}
	}
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("s3cret", "https://auth.example.com")
	ctx := context.Background()
	valid := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_7",
			Issuer:    "https://auth.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "ada@example.com",
	}

	id, err := v.Verify(ctx, signToken(t, "s3cret", valid))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.Subject != "user_7" || id.Email != "ada@example.com" {
		t.Errorf("identity = %+v", id)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signToken(t, "other", valid)},
		{"wrong issuer", signToken(t, "s3cret", func() Claims { c := valid; c.Issuer = "evil"; return c }())},
		{"expired", signToken(t, "s3cret", func() Claims {
			c := valid
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
			return c
		}())},
		{"no subject", signToken(t, "s3cret", func() Claims { c := valid; c.Subject = ""; return c }())},
		{"garbage", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(ctx, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

type countingVerifier struct {
	calls atomic.Int32
	err   error
}

func (c *countingVerifier) Verify(_ context.Context, token string) (Identity, error) {
	c.calls.Add(1)
	if c.err != nil {
		return Identity{}, c.err
	}
	return Identity{Subject: "sub-" + token}, nil
}

func TestCachedVerifier(t *testing.T) {
	next := &countingVerifier{}
	v, err := NewCachedVerifier(next, time.Minute)
	if err != nil {
		t.Fatalf("NewCachedVerifier: %v", err)
	}
	defer v.Close()
	ctx := context.Background()

	id, err := v.Verify(ctx, "tok")
	if err != nil || id.Subject != "sub-tok" {
		t.Fatalf("Verify = %+v, %v", id, err)
	}
	v.cache.Wait()

	id, err = v.Verify(ctx, "tok")
	if err != nil || id.Subject != "sub-tok" {
		t.Fatalf("second Verify = %+v, %v", id, err)
	}
	if n := next.calls.Load(); n != 1 {
		t.Errorf("underlying calls = %d, want 1", n)
	}
}

func TestCachedVerifierDoesNotCacheFailures(t *testing.T) {
	next := &countingVerifier{err: ErrInvalidToken}
	v, err := NewCachedVerifier(next, time.Minute)
	if err != nil {
		t.Fatalf("NewCachedVerifier: %v", err)
	}
	defer v.Close()

	for i := 0; i < 2; i++ {
		if _, err := v.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
		v.cache.Wait()
	}
	if n := next.calls.Load(); n != 2 {
		t.Errorf("underlying calls = %d, want 2", n)
	}
}

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{Identity: Identity{Subject: "local"}}
	if id, err := v.Verify(context.Background(), "anything"); err != nil || id.Subject != "local" {
		t.Errorf("Verify = %+v, %v", id, err)
	}
	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("err = %v, want ErrMissingToken", err)
	}
}
