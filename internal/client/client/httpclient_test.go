package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/dmitrijs2005/gradebook/internal/client/session"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	paths []string
}

func (r *recordingNavigator) HardRedirect(path string) { r.paths = append(r.paths, path) }

type fixture struct {
	srv   *httptest.Server
	store *session.MemoryStore
	nav   *recordingNavigator
	c     *HTTPClient
}

func newFixture(t *testing.T, r *mux.Router, timeout time.Duration) *fixture {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	nav := &recordingNavigator{}
	c, err := New(srv.URL+"/api/", timeout, store, WithNavigator(nav))
	require.NoError(t, err)
	return &fixture{srv: srv, store: store, nav: nav, c: c}
}

func seedSession(t *testing.T, s *session.MemoryStore) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), session.Session{
		AccessToken: "t1",
		UserID:      "1",
		Role:        models.RoleAdmin,
		Username:    "admin1",
	}))
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("ftp://host/api", 0, session.NewMemoryStore())
	require.Error(t, err)

	_, err = New("://nope", 0, session.NewMemoryStore())
	require.Error(t, err)

	c, err := New("http://127.0.0.1:5000/api", 0, session.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
}

func TestDoJSON_AttachesBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	r := mux.NewRouter()
	r.HandleFunc("/api/admin/classes", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotReqID = req.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}).Methods(http.MethodGet)

	f := newFixture(t, r, 0)
	seedSession(t, f.store)

	var out json.RawMessage
	require.NoError(t, f.c.DoJSON(context.Background(), http.MethodGet, "/admin/classes", nil, nil, &out))
	assert.JSONEq(t, `[{"id":1}]`, string(out))
	assert.Equal(t, "Bearer t1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestDoJSON_NoTokenSendsUnauthenticated(t *testing.T) {
	var hadHeader bool
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register_config", func(w http.ResponseWriter, req *http.Request) {
		_, hadHeader = req.Header["Authorization"]
		_, _ = w.Write([]byte(`{"allow_register":true}`))
	})

	f := newFixture(t, r, 0)

	var cfg models.RegisterConfig
	require.NoError(t, f.c.DoJSON(context.Background(), http.MethodGet, "/auth/register_config", nil, nil, &cfg))
	assert.True(t, cfg.AllowRegister)
	assert.False(t, hadHeader)
}

func TestDoJSON_SendsBodyAndQuery(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/admin/students", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "3", req.URL.Query().Get("class_id"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		b, _ := io.ReadAll(req.Body)
		assert.JSONEq(t, `{"name":"Li"}`, string(b))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"msg":"ok"}`))
	}).Methods(http.MethodPost)

	f := newFixture(t, r, 0)

	var msg models.Message
	err := f.c.DoJSON(context.Background(), http.MethodPost, "/admin/students",
		url.Values{"class_id": {"3"}}, map[string]string{"name": "Li"}, &msg)
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Msg)
}

func TestResponseInterceptor_SessionExpiry(t *testing.T) {
	for _, tc := range []struct {
		status int
		want   error
	}{
		{status: http.StatusUnauthorized, want: ErrUnauthorized},
		{status: http.StatusForbidden, want: ErrForbidden},
	} {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/api/admin/pending_users", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"msg":"denied"}`))
			})
			f := newFixture(t, r, 0)
			seedSession(t, f.store)

			err := f.c.DoJSON(context.Background(), http.MethodGet, "/admin/pending_users", nil, nil, nil)
			require.ErrorIs(t, err, tc.want)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, "denied", apiErr.Message)

			assert.Equal(t, 0, f.store.Len(), "every session key must be wiped")
			assert.Equal(t, []string{LoginPath}, f.nav.paths)
		})
	}
}

func TestResponseInterceptor_OtherFailuresPropagate(t *testing.T) {
	for _, tc := range []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrValidation},
		{status: http.StatusNotFound, want: ErrValidation},
		{status: http.StatusInternalServerError, want: ErrServer},
	} {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/api/admin/classes/{id}", func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "plain text reason", tc.status)
			}).Methods(http.MethodDelete)
			f := newFixture(t, r, 0)
			seedSession(t, f.store)

			err := f.c.DoJSON(context.Background(), http.MethodDelete, "/admin/classes/9", nil, nil, nil)
			require.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "plain text reason")

			assert.Equal(t, len(session.Keys), f.store.Len(), "session must survive")
			assert.Empty(t, f.nav.paths)
		})
	}
}

func TestDo_NetworkFailureIsUnavailable(t *testing.T) {
	f := newFixture(t, mux.NewRouter(), 0)
	f.srv.Close()

	err := f.c.DoJSON(context.Background(), http.MethodGet, "/admin/subjects", nil, nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, f.nav.paths)
}

func TestDo_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	r := mux.NewRouter()
	r.HandleFunc("/api/admin/subjects", func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-release:
		case <-req.Context().Done():
		}
	})
	f := newFixture(t, r, 50*time.Millisecond)
	t.Cleanup(func() { close(release) })

	err := f.c.DoJSON(context.Background(), http.MethodGet, "/admin/subjects", nil, nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDownload_ReturnsBytesAndFileName(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/admin/stats/score_template", func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		assert.JSONEq(t, `{"entry_year":2023}`, string(b))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="2023%E7%BA%A7.xlsx"`)
		_, _ = w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	}).Methods(http.MethodPost)
	f := newFixture(t, r, 0)

	file, err := f.c.Download(context.Background(), http.MethodPost, "/admin/stats/score_template", nil, map[string]int{"entry_year": 2023})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, file.Data)
	assert.Equal(t, "2023级.xlsx", file.Name)
	assert.True(t, strings.HasPrefix(file.ContentType, "application/vnd.openxmlformats"))
}

func TestUpload_SendsMultipartFileAndFields(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/teacher/import_scores", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		assert.Equal(t, "5", req.FormValue("exam_task_id"))
		assert.Equal(t, "2", req.FormValue("class_id"))

		file, hdr, err := req.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		b, _ := io.ReadAll(file)
		assert.Equal(t, "scores.xlsx", hdr.Filename)
		assert.Equal(t, "sheet-bytes", string(b))

		_, _ = w.Write([]byte(`{"msg":"imported 30"}`))
	}).Methods(http.MethodPost)
	f := newFixture(t, r, 0)

	var msg models.Message
	err := f.c.Upload(context.Background(), "/teacher/import_scores", models.Upload{
		FileName: "scores.xlsx",
		Content:  strings.NewReader("sheet-bytes"),
		Fields:   map[string]string{"exam_task_id": "5", "class_id": "2"},
	}, &msg)
	require.NoError(t, err)
	assert.Equal(t, "imported 30", msg.Msg)
}

func TestCookiesAreKeptBetweenRequests(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
		_, _ = w.Write([]byte(`{}`))
	})
	var got string
	r.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		if c, err := req.Cookie("sid"); err == nil {
			got = c.Value
		}
	})
	f := newFixture(t, r, 0)

	require.NoError(t, f.c.DoJSON(context.Background(), http.MethodPost, "/auth/login", nil, nil, nil))
	require.NoError(t, f.c.DoJSON(context.Background(), http.MethodPost, "/auth/logout", nil, nil, nil))
	assert.Equal(t, "abc", got)
}

func TestExtractMessage(t *testing.T) {
	assert.Equal(t, "bad", extractMessage([]byte(`{"msg":"bad"}`)))
	assert.Equal(t, "oops", extractMessage([]byte(`{"error":"oops"}`)))
	assert.Equal(t, "text", extractMessage([]byte("  text \n")))
	assert.Len(t, extractMessage([]byte(strings.Repeat("x", 500))), 200)
}

func TestExtractMessage_TruncatesOnRuneBoundary(t *testing.T) {
	// "成" is three bytes, so 200 falls inside the 67th rune.
	got := extractMessage([]byte(strings.Repeat("成", 100)))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("成", 66), got)

	mixed := "x" + strings.Repeat("绩", 100)
	got = extractMessage([]byte(mixed))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "x"+strings.Repeat("绩", 66), got)
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "a.xlsx", attachmentName(`attachment; filename=a.xlsx`))
	assert.Equal(t, "成绩.xlsx", attachmentName(`attachment; filename*=UTF-8''%E6%88%90%E7%BB%A9.xlsx`))
	assert.Empty(t, attachmentName(""))
	assert.Empty(t, attachmentName("attachment; filename"))
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(401), ErrUnauthorized)
	assert.ErrorIs(t, classify(403), ErrForbidden)
	assert.ErrorIs(t, classify(422), ErrValidation)
	assert.ErrorIs(t, classify(503), ErrServer)
}
