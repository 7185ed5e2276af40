package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Divyanshi070700/Undiyu-2/internal/http/cartcookie"
	"github.com/Divyanshi070700/Undiyu-2/internal/shared/apperr"
)

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r.Use(RequestID(), ErrorHandler(logger), Recovery(logger))
	return r
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := testEngine()
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rid": GetRequestID(c)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	hdr := w.Header().Get(HeaderRequestID)
	if hdr == "" {
		t.Fatal("no request id header set")
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["rid"] != hdr {
		t.Fatalf("context rid %q != header %q", resp["rid"], hdr)
	}
}

func TestRequestIDPreservesIncoming(t *testing.T) {
	r := testEngine()
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(HeaderRequestID, "rid-from-client")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "rid-from-client" {
		t.Fatalf("request id = %q", got)
	}
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	r := testEngine()
	r.GET("/x", func(c *gin.Context) {
		Fail(c, apperr.InvalidErr("Bad input.", map[string]string{"qty": "Invalid value."}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Bad input." {
		t.Errorf("error = %v", resp["error"])
	}
	if resp["fields"].(map[string]any)["qty"] != "Invalid value." {
		t.Errorf("fields = %v", resp["fields"])
	}
	if resp["request_id"] == "" {
		t.Error("request_id missing")
	}
}

func TestErrorHandlerHidesInternalDetail(t *testing.T) {
	r := testEngine()
	r.GET("/x", func(c *gin.Context) {
		Fail(c, errors.New("dsn=user:password@tcp(db)/shop"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Something went wrong. Please try again." {
		t.Fatalf("internal detail leaked: %v", resp["error"])
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	r := testEngine()
	r.GET("/x", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCartSessionMintsAndReuses(t *testing.T) {
	r := testEngine()
	ck := cartcookie.New([]byte("secret"), "undiyu_cart", false)
	r.GET("/x", CartSession(ck), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sid": CartSessionID(c)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	var first map[string]string
	json.Unmarshal(w.Body.Bytes(), &first)
	if first["sid"] == "" {
		t.Fatal("no session id minted")
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	// second request with the cookie keeps the same session
	req := httptest.NewRequest("GET", "/x", nil)
	req.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	var second map[string]string
	json.Unmarshal(w2.Body.Bytes(), &second)
	if second["sid"] != first["sid"] {
		t.Fatalf("session changed: %q -> %q", first["sid"], second["sid"])
	}
}

func adminEngine(user, hash string) *gin.Engine {
	r := testEngine()
	r.GET("/admin", RequireAdmin(user, hash), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	t.Run("no hash -> 404", func(t *testing.T) {
		r := adminEngine("admin", "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("no credentials -> 401", func(t *testing.T) {
		r := adminEngine("admin", string(hash))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
		if w.Header().Get("WWW-Authenticate") == "" {
			t.Error("WWW-Authenticate missing")
		}
	})

	t.Run("wrong password -> 401", func(t *testing.T) {
		r := adminEngine("admin", string(hash))
		req := httptest.NewRequest("GET", "/admin", nil)
		req.SetBasicAuth("admin", "wrong")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("wrong user -> 401", func(t *testing.T) {
		r := adminEngine("admin", string(hash))
		req := httptest.NewRequest("GET", "/admin", nil)
		req.SetBasicAuth("root", "s3cret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("valid credentials -> 200", func(t *testing.T) {
		r := adminEngine("admin", string(hash))
		req := httptest.NewRequest("GET", "/admin", nil)
		req.SetBasicAuth("admin", "s3cret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})
}
