// Package syncer applies the client's local-first write policy: writes go to
// the server when a token is stored and the server answers, and fall back
// to the local mirror otherwise. Local-only records are never retried or
// reconciled with the server.
package syncer

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/client/mirror"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

// Notices shown to the user after a write.
const (
	NoticeSaved       = "Data entry saved successfully to database!"
	NoticeUnavailable = "Data saved locally (database unavailable)"
	NoticeLoggedOut   = "Data saved locally! Login to save to database."
	NoticeLocalOnly   = "Data saved locally (record exists only on this device)"
)

var ErrNotLoggedIn = errors.New("syncer: not logged in")

// Result is the outcome of a single-record write.
type Result struct {
	Roaster rostersdk.Roaster
	Local   bool // stored in the mirror only
	Notice  string
}

type Syncer struct {
	Client *rostersdk.SDKClient
	Mirror *mirror.Mirror

	Now func() time.Time
}

func New(client *rostersdk.SDKClient, m *mirror.Mirror) *Syncer {
	return &Syncer{Client: client, Mirror: m}
}

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// session returns a session for the stored token, or nil when logged out.
func (s *Syncer) session(ctx context.Context) (*rostersdk.Session, error) {
	token, err := s.Mirror.Token(ctx)
	if err != nil || token == "" {
		return nil, err
	}
	return s.Client.NewSession(token), nil
}

// requireSession is session for calls that have no local fallback.
func (s *Syncer) requireSession(ctx context.Context) (*rostersdk.Session, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

// fallback reports whether err from the server should degrade the write to
// local-only storage, and with which notice. A rejected token is discarded.
func (s *Syncer) fallback(ctx context.Context, err error) (string, bool) {
	l := slogx.FromContext(ctx)

	switch {
	case rostersdk.IsUnavailable(err):
		l.Warn("server unavailable, storing locally", "err", err)
		return NoticeUnavailable, true
	case rostersdk.IsUnauthorized(err):
		l.Info("stored token rejected, logging out", "err", err)
		if cerr := s.Mirror.ClearSession(ctx); cerr != nil {
			l.Error("clear session failed", "err", cerr)
		}
		return NoticeLoggedOut, true
	}
	return "", false
}

func (s *Syncer) dropSessionOn401(ctx context.Context, err error) {
	if rostersdk.IsUnauthorized(err) {
		if cerr := s.Mirror.ClearSession(ctx); cerr != nil {
			slogx.FromContext(ctx).Error("clear session failed", "err", cerr)
		}
	}
}
