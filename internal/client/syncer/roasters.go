package syncer

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/rosterra/internal/client/mirror"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

// BulkResult is the outcome of CreateRoastersBulk.
type BulkResult struct {
	Created []rostersdk.Roaster
	Failed  []rostersdk.BulkResult // server-side per-item failures
	Local   bool
	Notice  string
}

// ListRoasters returns the roster. With a token the server copy replaces the
// mirrored one; without a token, or when the fetch fails, the mirror is
// returned as is. A rejected token is discarded.
func (s *Syncer) ListRoasters(ctx context.Context) ([]rostersdk.Roaster, error) {
	l := slogx.FromContext(ctx)

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return s.Mirror.List(ctx, mirror.Roasters)
	}

	list, err := sess.ListRoasters(ctx)
	if err != nil {
		l.Warn("fetch roasters failed, using local copy", "err", err)
		s.dropSessionOn401(ctx, err)
		return s.Mirror.List(ctx, mirror.Roasters)
	}

	if err := s.Mirror.Replace(ctx, mirror.Roasters, list); err != nil {
		return nil, err
	}
	return s.Mirror.List(ctx, mirror.Roasters)
}

// CreateRoaster validates in and stores it on the server, or locally when
// there is no token or the server cannot take it.
func (s *Syncer) CreateRoaster(ctx context.Context, in rostersdk.RoasterInput) (Result, error) {
	in.Normalize()
	if err := in.Validate(true); err != nil {
		return Result{}, err
	}

	sess, err := s.session(ctx)
	if err != nil {
		return Result{}, err
	}
	if sess == nil {
		return s.createLocal(ctx, in, NoticeLoggedOut)
	}

	created, err := sess.CreateRoaster(ctx, in)
	if err != nil {
		if notice, ok := s.fallback(ctx, err); ok {
			return s.createLocal(ctx, in, notice)
		}
		return Result{}, err
	}

	if err := s.Mirror.Add(ctx, mirror.Roasters, *created); err != nil {
		return Result{}, err
	}
	return Result{Roaster: *created, Notice: NoticeSaved}, nil
}

func (s *Syncer) createLocal(ctx context.Context, in rostersdk.RoasterInput, notice string) (Result, error) {
	r := newLocalRoaster(in, s.now())
	if err := s.Mirror.Add(ctx, mirror.Roasters, r); err != nil {
		return Result{}, err
	}
	return Result{Roaster: r, Local: true, Notice: notice}, nil
}

// CreateRoastersBulk creates many records. Entries failing client-side
// validation are reported in Failed and never sent. When the server cannot
// be used every valid entry is stored locally.
func (s *Syncer) CreateRoastersBulk(ctx context.Context, items []rostersdk.RoasterInput) (BulkResult, error) {
	var (
		out   BulkResult
		valid []rostersdk.RoasterInput
	)
	for i, in := range items {
		in.Normalize()
		if err := in.Validate(true); err != nil {
			out.Failed = append(out.Failed, rostersdk.BulkResult{Index: i, Error: err.Error()})
			continue
		}
		valid = append(valid, in)
	}
	if len(valid) == 0 {
		return out, nil
	}

	sess, err := s.session(ctx)
	if err != nil {
		return BulkResult{}, err
	}
	if sess == nil {
		return s.bulkLocal(ctx, out, valid, NoticeLoggedOut)
	}

	resp, err := sess.CreateRoastersBulk(ctx, valid)
	if err != nil {
		if notice, ok := s.fallback(ctx, err); ok {
			return s.bulkLocal(ctx, out, valid, notice)
		}
		return BulkResult{}, err
	}

	for _, res := range resp.Results {
		if res.Roaster != nil {
			out.Created = append(out.Created, *res.Roaster)
		} else {
			out.Failed = append(out.Failed, res)
		}
	}
	if err := s.Mirror.Add(ctx, mirror.Roasters, out.Created...); err != nil {
		return BulkResult{}, err
	}
	out.Notice = NoticeSaved
	return out, nil
}

func (s *Syncer) bulkLocal(ctx context.Context, out BulkResult, items []rostersdk.RoasterInput, notice string) (BulkResult, error) {
	now := s.now()
	for _, in := range items {
		out.Created = append(out.Created, newLocalRoaster(in, now))
	}
	if err := s.Mirror.Add(ctx, mirror.Roasters, out.Created...); err != nil {
		return BulkResult{}, err
	}
	out.Local = true
	out.Notice = notice
	return out, nil
}

// UpdateRoaster changes a record. Local-only records are only ever changed
// locally.
func (s *Syncer) UpdateRoaster(ctx context.Context, id string, in rostersdk.RoasterInput) (Result, error) {
	in.Normalize()
	if err := in.Validate(false); err != nil {
		return Result{}, err
	}

	cached, cacheErr := s.Mirror.GetProfile(ctx, mirror.Roasters, id)
	if cacheErr != nil && !errors.Is(cacheErr, mirror.ErrNotFound) {
		return Result{}, cacheErr
	}

	sess, err := s.session(ctx)
	if err != nil {
		return Result{}, err
	}

	if sess != nil && !cached.LocalOnly {
		updated, err := sess.UpdateRoaster(ctx, id, in)
		if err == nil {
			if err := s.Mirror.Put(ctx, mirror.Roasters, *updated); err != nil {
				return Result{}, err
			}
			return Result{Roaster: *updated, Notice: NoticeSaved}, nil
		}

		notice, ok := s.fallback(ctx, err)
		if !ok {
			return Result{}, err
		}
		return s.updateLocal(ctx, cached, cacheErr, in, notice)
	}

	notice := NoticeLoggedOut
	if sess != nil {
		notice = NoticeLocalOnly
	}
	return s.updateLocal(ctx, cached, cacheErr, in, notice)
}

func (s *Syncer) updateLocal(
	ctx context.Context,
	cached rostersdk.Roaster,
	cacheErr error,
	in rostersdk.RoasterInput,
	notice string,
) (Result, error) {
	if cacheErr != nil {
		return Result{}, cacheErr
	}

	applyInput(&cached, in, s.now())
	if err := s.Mirror.Put(ctx, mirror.Roasters, cached); err != nil {
		return Result{}, err
	}
	return Result{Roaster: cached, Local: true, Notice: notice}, nil
}

// DeleteRoaster removes a record from the server (when possible) and from
// the mirror. A record the server no longer has counts as deleted there.
func (s *Syncer) DeleteRoaster(ctx context.Context, id string) (Result, error) {
	cached, err := s.Mirror.GetProfile(ctx, mirror.Roasters, id)
	if err != nil && !errors.Is(err, mirror.ErrNotFound) {
		return Result{}, err
	}

	sess, err := s.session(ctx)
	if err != nil {
		return Result{}, err
	}

	res := Result{Roaster: cached, Local: true, Notice: NoticeLoggedOut}
	if sess != nil {
		res.Notice = NoticeLocalOnly
	}

	goneRemotely := false
	if sess != nil && !cached.LocalOnly {
		_, err := sess.DeleteRoaster(ctx, id)
		switch {
		case err == nil:
			res.Local = false
			res.Notice = NoticeSaved
		case rostersdk.IsNotFound(err):
			slogx.FromContext(ctx).Info("roaster already deleted on server", "id", id)
			res.Local = false
			res.Notice = NoticeSaved
			goneRemotely = true
		default:
			notice, ok := s.fallback(ctx, err)
			if !ok {
				return Result{}, err
			}
			res.Notice = notice
		}
	}

	n, err := s.Mirror.Remove(ctx, mirror.Roasters, id)
	if err != nil {
		return Result{}, err
	}
	if n == 0 && (res.Local || goneRemotely) {
		return Result{}, mirror.ErrNotFound
	}
	return res, nil
}

// ClearRoasters deletes every record on the server (when possible) and
// empties the mirrored collection. It reports how many server records went.
func (s *Syncer) ClearRoasters(ctx context.Context) (int64, string, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return 0, "", err
	}

	notice := NoticeLoggedOut
	var deleted int64
	if sess != nil {
		resp, err := sess.ClearRoasters(ctx)
		switch {
		case err == nil:
			deleted = resp.DeletedCount
			notice = NoticeSaved
		default:
			var ok bool
			if notice, ok = s.fallback(ctx, err); !ok {
				return 0, "", err
			}
		}
	}

	if err := s.Mirror.Clear(ctx, mirror.Roasters); err != nil {
		return 0, "", err
	}
	return deleted, notice, nil
}
