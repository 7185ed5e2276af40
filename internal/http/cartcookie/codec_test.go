package cartcookie

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	c := New([]byte("secret"), "undiyu_cart", false)

	v := c.Encode("session-123")
	id, err := c.Decode(v)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if id != "session-123" {
		t.Fatalf("id = %q", id)
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := New([]byte("secret"), "undiyu_cart", false)
	v := c.Encode("session-123")

	// swap the session id, keep the signature
	parts := strings.SplitN(v, ".", 2)
	forged := "session-456." + parts[1]
	if _, err := c.Decode(forged); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}

	// a different secret must not verify
	other := New([]byte("other-secret"), "undiyu_cart", false)
	if _, err := other.Decode(v); !errors.Is(err, ErrInvalid) {
		t.Fatalf("cross-secret err = %v, want ErrInvalid", err)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	c := New([]byte("secret"), "undiyu_cart", false)

	for _, v := range []string{"", "no-dot", ".sig-only", "a.b.c"} {
		if _, err := c.Decode(v); err == nil {
			t.Errorf("Decode(%q) accepted", v)
		}
	}
}

func TestSetAndGetSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New([]byte("secret"), "undiyu_cart", false)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(ctx, "session-123")

	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "undiyu_cart" || !ck.HttpOnly {
		t.Fatalf("cookie: %+v", ck)
	}

	// feed the cookie back in
	w2 := httptest.NewRecorder()
	ctx2, _ := gin.CreateTestContext(w2)
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	ctx2.Request = req

	id, ok := c.GetSessionID(ctx2)
	if !ok || id != "session-123" {
		t.Fatalf("GetSessionID = %q, %v", id, ok)
	}
}

func TestGetSessionIDInvalidCookieClears(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New([]byte("secret"), "undiyu_cart", false)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "undiyu_cart", Value: "garbage"})
	ctx.Request = req

	if _, ok := c.GetSessionID(ctx); ok {
		t.Fatal("garbage cookie accepted")
	}
	// the bad cookie gets expired so the browser stops sending it
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected expiring cookie, got %+v", cookies)
	}
}
