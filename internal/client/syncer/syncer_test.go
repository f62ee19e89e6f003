package syncer_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/client/mirror"
	"github.com/aussiebroadwan/rosterra/internal/client/syncer"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/stretchr/testify/require"
)

const goodToken = "good-token"

// fakeServer is a minimal in-memory roster API. mode switches it between
// answering normally, failing with 503 and rejecting every token.
type fakeServer struct {
	mu       sync.Mutex
	mode     string
	roasters []rostersdk.Roaster
	seq      int
}

func (f *fakeServer) setMode(m string) {
	f.mu.Lock()
	f.mode = m
	f.mu.Unlock()
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rostersdk.LoginResponse{
			Token: goodToken,
			User:  rostersdk.User{ID: "u1", Name: "Ann", Email: "ann@x.co", Role: "staff", Status: "approved"},
		})
	})
	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rostersdk.VerifyResponse{User: rostersdk.User{ID: "u1", Name: "Ann"}})
	})
	mux.HandleFunc("GET /api/roasters", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.roasters)
	})
	mux.HandleFunc("POST /api/roasters", func(w http.ResponseWriter, r *http.Request) {
		var in rostersdk.RoasterInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, http.StatusCreated, f.add(in))
	})
	mux.HandleFunc("POST /api/roasters/bulk", func(w http.ResponseWriter, r *http.Request) {
		var req rostersdk.BulkRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		resp := rostersdk.BulkResponse{Success: true}
		for i, in := range req.Roasters {
			ro := f.add(in)
			resp.Results = append(resp.Results, rostersdk.BulkResult{Index: i, Success: true, Roaster: &ro})
			resp.Created++
		}
		writeJSON(w, http.StatusCreated, resp)
	})
	mux.HandleFunc("PUT /api/roasters/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in rostersdk.RoasterInput
		_ = json.NewDecoder(r.Body).Decode(&in)

		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.roasters {
			if f.roasters[i].ID == r.PathValue("id") {
				if in.Name != nil {
					f.roasters[i].Name = *in.Name
				}
				writeJSON(w, http.StatusOK, f.roasters[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, rostersdk.ErrorResponse{Error: "Roaster not found"})
	})
	mux.HandleFunc("DELETE /api/roasters/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.roasters {
			if f.roasters[i].ID == r.PathValue("id") {
				f.roasters = append(f.roasters[:i], f.roasters[i+1:]...)
				writeJSON(w, http.StatusOK, rostersdk.MessageResponse{Success: true})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, rostersdk.ErrorResponse{Error: "Roaster not found"})
	})
	mux.HandleFunc("DELETE /api/roasters/clear/all", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		n := len(f.roasters)
		f.roasters = nil
		writeJSON(w, http.StatusOK, rostersdk.ClearResponse{Success: true, DeletedCount: int64(n)})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		mode := f.mode
		f.mu.Unlock()

		switch {
		case mode == "down":
			writeJSON(w, http.StatusServiceUnavailable, rostersdk.ErrorResponse{Error: "down"})
		case mode == "unauthorized" && r.URL.Path != "/api/auth/login":
			writeJSON(w, http.StatusUnauthorized, rostersdk.ErrorResponse{Error: "Token expired", Code: "token_expired"})
		default:
			mux.ServeHTTP(w, r)
		}
	})
}

func (f *fakeServer) add(in rostersdk.RoasterInput) rostersdk.Roaster {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	ro := rostersdk.Roaster{ID: fmt.Sprintf("srv-%d", f.seq), Status: "pending", CreatedAt: time.Now().UTC()}
	if in.Name != nil {
		ro.Name = *in.Name
	}
	f.roasters = append([]rostersdk.Roaster{ro}, f.roasters...)
	return ro
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newSyncer(t *testing.T) (*syncer.Syncer, *fakeServer, *httptest.Server) {
	t.Helper()

	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	m, err := mirror.Open(t.Context(), filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	return syncer.New(rostersdk.NewSDKClient(srv.URL+"/api"), m), fake, srv
}

func login(t *testing.T, s *syncer.Syncer) {
	t.Helper()
	_, err := s.Login(t.Context(), "ann@x.co", "secret1")
	require.NoError(t, err)
}

func TestCreateRoaster_Policy(t *testing.T) {
	s, fake, _ := newSyncer(t)
	ctx := t.Context()

	t.Run("no token stores locally", func(t *testing.T) {
		res, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Name: rostersdk.String("Offline")})
		require.NoError(t, err)
		require.True(t, res.Local)
		require.True(t, res.Roaster.LocalOnly)
		require.Equal(t, syncer.NoticeLoggedOut, res.Notice)
		require.Equal(t, "pending", res.Roaster.Status)
		require.Len(t, res.Roaster.ID, 36, "uuid")
	})

	login(t, s)

	t.Run("server success", func(t *testing.T) {
		res, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Name: rostersdk.String("Online")})
		require.NoError(t, err)
		require.False(t, res.Local)
		require.Equal(t, syncer.NoticeSaved, res.Notice)
		require.Equal(t, "srv-1", res.Roaster.ID)
	})

	t.Run("server down stores locally", func(t *testing.T) {
		fake.setMode("down")
		defer fake.setMode("")

		res, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Name: rostersdk.String("Fallback")})
		require.NoError(t, err)
		require.True(t, res.Local)
		require.Equal(t, syncer.NoticeUnavailable, res.Notice)
		require.Len(t, fake.roasters, 1, "no server record created")
	})

	t.Run("validation is not a fallback", func(t *testing.T) {
		_, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Platform: rostersdk.String("X")})
		var verr *rostersdk.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestCreateRoaster_ServerUnreachable(t *testing.T) {
	s, _, srv := newSyncer(t)
	login(t, s)
	srv.Close()

	res, err := s.CreateRoaster(t.Context(), rostersdk.RoasterInput{Name: rostersdk.String("Net")})
	require.NoError(t, err)
	require.True(t, res.Local)
	require.Equal(t, syncer.NoticeUnavailable, res.Notice)
}

func TestListRoasters(t *testing.T) {
	s, fake, _ := newSyncer(t)
	ctx := t.Context()

	_, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Name: rostersdk.String("Mine")})
	require.NoError(t, err)

	list, err := s.ListRoasters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "mirror only without a token")

	login(t, s)
	fake.add(rostersdk.RoasterInput{Name: rostersdk.String("Server")})

	list, err = s.ListRoasters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Server", list[0].Name)
	require.True(t, list[1].LocalOnly, "local records survive a refresh")

	fake.setMode("down")
	list, err = s.ListRoasters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "mirror when the server is down")

	fake.setMode("unauthorized")
	_, err = s.ListRoasters(ctx)
	require.NoError(t, err)

	acc, err := s.CurrentAccount(ctx)
	require.NoError(t, err)
	require.Nil(t, acc, "401 discards the session")
}

func TestUpdateAndDelete(t *testing.T) {
	s, fake, _ := newSyncer(t)
	ctx := t.Context()

	local, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Name: rostersdk.String("Local"), Age: rostersdk.Int(30)})
	require.NoError(t, err)

	login(t, s)
	remote, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Name: rostersdk.String("Remote")})
	require.NoError(t, err)

	// Local-only records never reach the server.
	res, err := s.UpdateRoaster(ctx, local.Roaster.ID, rostersdk.RoasterInput{
		Status: rostersdk.String("accepted"),
		Age:    rostersdk.FlexInt{Set: true, Empty: true},
	})
	require.NoError(t, err)
	require.True(t, res.Local)
	require.Equal(t, syncer.NoticeLocalOnly, res.Notice)
	require.Equal(t, "accepted", res.Roaster.Status)
	require.Nil(t, res.Roaster.Age)

	res, err = s.UpdateRoaster(ctx, remote.Roaster.ID, rostersdk.RoasterInput{Name: rostersdk.String("Renamed")})
	require.NoError(t, err)
	require.False(t, res.Local)
	require.Equal(t, "Renamed", fake.roasters[0].Name)

	res, err = s.DeleteRoaster(ctx, remote.Roaster.ID)
	require.NoError(t, err)
	require.False(t, res.Local)
	require.Empty(t, fake.roasters)

	res, err = s.DeleteRoaster(ctx, local.Roaster.ID)
	require.NoError(t, err)
	require.True(t, res.Local)

	_, err = s.DeleteRoaster(ctx, "missing")
	require.ErrorIs(t, err, mirror.ErrNotFound)
}

func TestDeleteRoaster_AlreadyGoneOnServer(t *testing.T) {
	s, fake, _ := newSyncer(t)
	ctx := t.Context()
	login(t, s)

	created, err := s.CreateRoaster(ctx, rostersdk.RoasterInput{Name: rostersdk.String("Doomed")})
	require.NoError(t, err)

	// Someone else clears the roster; the mirror still has the record.
	fake.mu.Lock()
	fake.roasters = nil
	fake.mu.Unlock()

	res, err := s.DeleteRoaster(ctx, created.Roaster.ID)
	require.NoError(t, err)
	require.False(t, res.Local)
	require.Equal(t, syncer.NoticeSaved, res.Notice)

	_, err = s.Mirror.GetProfile(ctx, mirror.Roasters, created.Roaster.ID)
	require.ErrorIs(t, err, mirror.ErrNotFound)

	tok, err := s.Mirror.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, goodToken, tok, "a 404 keeps the session")
}

func TestCreateRoaster_StatusCaseFolded(t *testing.T) {
	s, _, _ := newSyncer(t)

	res, err := s.CreateRoaster(t.Context(), rostersdk.RoasterInput{
		Name:   rostersdk.String("Offline"),
		Status: rostersdk.String(" Accepted "),
	})
	require.NoError(t, err)
	require.True(t, res.Local)
	require.Equal(t, "accepted", res.Roaster.Status)

	stored, err := s.Mirror.GetProfile(t.Context(), mirror.Roasters, res.Roaster.ID)
	require.NoError(t, err)
	require.Equal(t, "accepted", stored.Status)
}

func TestBulkAndClear(t *testing.T) {
	s, fake, _ := newSyncer(t)
	ctx := t.Context()
	login(t, s)

	res, err := s.CreateRoastersBulk(ctx, []rostersdk.RoasterInput{
		{Name: rostersdk.String("A")},
		{Platform: rostersdk.String("missing name")},
		{Name: rostersdk.String("B")},
	})
	require.NoError(t, err)
	require.False(t, res.Local)
	require.Len(t, res.Created, 2)
	require.Len(t, res.Failed, 1)
	require.Equal(t, 1, res.Failed[0].Index)

	fake.setMode("down")
	res, err = s.CreateRoastersBulk(ctx, []rostersdk.RoasterInput{{Name: rostersdk.String("C")}})
	require.NoError(t, err)
	require.True(t, res.Local)
	require.Equal(t, syncer.NoticeUnavailable, res.Notice)
	fake.setMode("")

	n, notice, err := s.ClearRoasters(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, syncer.NoticeSaved, notice)

	list, err := s.Mirror.List(ctx, mirror.Roasters)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSessionLifecycle(t *testing.T) {
	s, fake, _ := newSyncer(t)
	ctx := t.Context()

	_, err := s.Verify(ctx)
	require.ErrorIs(t, err, syncer.ErrNotLoggedIn)

	_, err = s.CountPendingUsers(ctx)
	require.ErrorIs(t, err, syncer.ErrNotLoggedIn)

	login(t, s)
	u, err := s.Verify(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)

	fake.setMode("unauthorized")
	_, err = s.Verify(ctx)
	require.True(t, rostersdk.IsUnauthorized(err))

	tok, err := s.Mirror.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	fake.setMode("")
	login(t, s)
	require.NoError(t, s.Logout(ctx))
	tok, err = s.Mirror.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestLocalProfiles(t *testing.T) {
	s, _, _ := newSyncer(t)
	ctx := t.Context()

	added, err := s.AddProfiles(ctx, []rostersdk.RoasterInput{
		{Name: rostersdk.String("P1"), Followers: rostersdk.Int(10)},
		{Name: rostersdk.String("P2")},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)

	p, err := s.UpdateProfile(ctx, added[0].ID, rostersdk.RoasterInput{Followers: rostersdk.FlexInt{Set: true, Empty: true}})
	require.NoError(t, err)
	require.Zero(t, p.Followers)
	require.Equal(t, "P1", p.Name)

	n, err := s.DeleteProfiles(ctx, added[1].ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	list, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.ClearProfiles(ctx))
	list, err = s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	// Roasters collection is separate.
	roasters, err := s.Mirror.List(ctx, mirror.Roasters)
	require.NoError(t, err)
	require.Empty(t, roasters)
}
