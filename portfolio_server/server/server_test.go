package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/pkg/config"
	"portfolio-server/pkg/log"
	"portfolio-server/pkg/xerrors"
	"portfolio-server/portfolio_server/data"
	"portfolio-server/portfolio_server/music"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMusic struct {
	page      music.Page
	err       error
	refreshed int
}

func (m *fakeMusic) Page(context.Context) (music.Page, error) {
	return m.page, m.err
}

func (m *fakeMusic) Refresh(context.Context) (music.Snapshot, music.Report, error) {
	m.refreshed++
	if m.err != nil {
		return music.Snapshot{}, music.Report{}, m.err
	}
	return m.page.Snapshot, music.Report{
		Artists: music.SectionResult{Status: music.SectionOK, Count: len(m.page.Artists)},
		Songs:   music.SectionResult{Status: music.SectionOK, Count: len(m.page.Songs)},
	}, nil
}

type fakeSettings struct {
	values map[string]string
}

func (s *fakeSettings) GetAll(context.Context) ([]data.SettingEntity, error) {
	out := make([]data.SettingEntity, 0, len(s.values))
	for _, name := range []string{"LAST_FM_API_KEY", "LAST_FM_USERNAME"} {
		if v, ok := s.values[name]; ok {
			out = append(out, data.SettingEntity{Name: name, Value: v})
		}
	}
	return out, nil
}

func (s *fakeSettings) Set(_ context.Context, name, value string) error {
	s.values[name] = value
	return nil
}

func newTestServer(m MusicService, st SettingsStore) *gin.Engine {
	logger := log.NewLogger()
	logger.SetOutput(io.Discard)
	conf := &config.Config{}
	conf.Server.AccessToken = "secret"
	s := &portfolioServer{
		config:   func() *config.Config { return conf },
		log:      logger,
		music:    m,
		settings: st,
		now:      func() time.Time { return time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC) },
		updated:  "Fri Mar 1 00:00:00 2019",
	}
	return s.routes()
}

func do(t *testing.T, r http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestPages(t *testing.T) {
	r := newTestServer(&fakeMusic{}, nil)
	cases := []struct {
		path string
		page string
		key  string
	}{
		{"/", "about", "about"},
		{"/resume", "resume", "jobs"},
		{"/projects", "projects", "projects"},
		{"/contact", "contact", "links"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w, body := do(t, r, http.MethodGet, tc.path, "", "")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.page, body["page"])
			assert.Equal(t, "Fri Mar 1 00:00:00 2019", body["updated"])
			assert.Contains(t, body, "now")
			assert.Contains(t, body, tc.key)
		})
	}
}

func TestResumeUsesCurrentTime(t *testing.T) {
	r := newTestServer(&fakeMusic{}, nil)
	_, body := do(t, r, http.MethodGet, "/resume", "", "")
	jobs, ok := body["jobs"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, jobs)
	first := jobs[0].(map[string]any)
	assert.Equal(t, "Starting June 2019", first["timeline"])
}

func TestNotFound(t *testing.T) {
	r := newTestServer(&fakeMusic{}, nil)
	w, body := do(t, r, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "404", body["page"])
	assert.Equal(t, "/nope", body["path"])
}

func TestHealthz(t *testing.T) {
	r := newTestServer(&fakeMusic{}, nil)
	w, body := do(t, r, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestMusicPage(t *testing.T) {
	t.Run("should render the cached snapshot", func(t *testing.T) {
		m := &fakeMusic{page: music.Page{
			Snapshot: music.Snapshot{
				Artists: []music.Artist{{Name: "Radiohead", Rank: 1}},
				Songs:   []music.Song{{Title: "Reckoner", Artist: "Radiohead", Rank: 1}},
			},
			UpdatedAgo: "1 hour ago",
		}}
		r := newTestServer(m, nil)
		w, body := do(t, r, http.MethodGet, "/music", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "music", body["page"])
		assert.Len(t, body["artists"], 1)
		assert.Len(t, body["songs"], 1)
		assert.Equal(t, "1 hour ago", body["updated_ago"])
		assert.Equal(t, false, body["stale"])
	})
	t.Run("should report missing configuration as unavailable", func(t *testing.T) {
		m := &fakeMusic{err: xerrors.Newf(xerrors.KindConfigurationMissing, "LAST_FM_API_KEY is not configured")}
		r := newTestServer(m, nil)
		w, body := do(t, r, http.MethodGet, "/music", "", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, body["error"], "LAST_FM_API_KEY")
	})
	t.Run("should hide internal errors", func(t *testing.T) {
		m := &fakeMusic{err: errors.New("connection refused")}
		r := newTestServer(m, nil)
		w, body := do(t, r, http.MethodGet, "/music", "", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), body["error"])
	})
}

func TestAdmin(t *testing.T) {
	t.Run("should reject requests without token", func(t *testing.T) {
		m := &fakeMusic{}
		r := newTestServer(m, &fakeSettings{values: map[string]string{}})
		w, _ := do(t, r, http.MethodPost, "/admin/music/refresh", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, m.refreshed)
	})
	t.Run("should refresh music and return the report", func(t *testing.T) {
		m := &fakeMusic{page: music.Page{Snapshot: music.Snapshot{Artists: []music.Artist{{Name: "a", Rank: 1}}}}}
		r := newTestServer(m, nil)
		w, body := do(t, r, http.MethodPost, "/admin/music/refresh", "secret", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, m.refreshed)
		report := body["report"].(map[string]any)
		artists := report["artists"].(map[string]any)
		assert.Equal(t, "ok", artists["status"])
		assert.EqualValues(t, 1, artists["count"])
	})
	t.Run("should list settings without values", func(t *testing.T) {
		st := &fakeSettings{values: map[string]string{"LAST_FM_API_KEY": "key", "LAST_FM_USERNAME": data.NotSetValue}}
		r := newTestServer(&fakeMusic{}, st)
		w, body := do(t, r, http.MethodGet, "/admin/settings", "secret", "")
		assert.Equal(t, http.StatusOK, w.Code)
		list := body["settings"].([]any)
		require.Len(t, list, 2)
		first := list[0].(map[string]any)
		assert.Equal(t, "LAST_FM_API_KEY", first["name"])
		assert.Equal(t, true, first["set"])
		assert.NotContains(t, first, "value")
		assert.Equal(t, false, list[1].(map[string]any)["set"])
	})
	t.Run("should update a setting", func(t *testing.T) {
		st := &fakeSettings{values: map[string]string{}}
		r := newTestServer(&fakeMusic{}, st)
		w, _ := do(t, r, http.MethodPut, "/admin/settings/LAST_FM_USERNAME", "secret", `{"value":"someone"}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "someone", st.values["LAST_FM_USERNAME"])
	})
	t.Run("should reject an empty value", func(t *testing.T) {
		st := &fakeSettings{values: map[string]string{}}
		r := newTestServer(&fakeMusic{}, st)
		w, _ := do(t, r, http.MethodPut, "/admin/settings/LAST_FM_USERNAME", "secret", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, st.values)
	})
	t.Run("should not register settings routes without a store", func(t *testing.T) {
		r := newTestServer(&fakeMusic{}, nil)
		w, _ := do(t, r, http.MethodGet, "/admin/settings", "secret", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
