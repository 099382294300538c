// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

// Package artifact keeps local copies of remotely versioned artifacts
// ("online update"). Given a logical artifact name it ensures a cached copy
// exists and is up to date with the remote source, returning the local path.
//
// Cache layout is one file per artifact name under the cache root, plus a
// "<name>.version" sidecar recording the last synced remote version. All
// cache writes go through a temp-then-rename discipline, so a reader never
// observes a partially written entry.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mstepanek/go-dialog-config/internal/config"
	"github.com/mstepanek/go-dialog-config/internal/logger"
)

const defaultRequestTimeout = 15 * time.Second

// Sync synchronises named artifacts from a remote source into a local cache
// directory. It is safe for concurrent use: requests for the same artifact
// name are collapsed into a single fetch (single-flight), with every waiter
// receiving the identical resulting path.
type Sync struct {
	cacheDir  string
	cacheOnly bool
	client    *resty.Client
	group     singleflight.Group
	log       *logger.Logger
}

// remoteMeta is the version manifest served per artifact by the remote
// source at GET /artifacts/{name}/version.
type remoteMeta struct {
	Version string `json:"version"`
}

// New constructs a Sync over cfg.CacheDir, creating the directory when it
// does not exist yet. When cfg.RemoteURL is empty the Sync operates
// cache-only: every freshness check fails as a fetch error and cached copies
// are served as fallback. A zero cfg.RequestTimeout defaults to 15 seconds.
func New(cfg config.Artifacts, log *logger.Logger) (*Sync, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("artifact cache directory must not be empty")
	}
	cacheDir, err := filepath.Abs(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("resolve cache directory: %w", err)
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	cli := resty.New().SetTimeout(timeout)
	if cfg.RemoteURL != "" {
		cli.SetBaseURL(strings.TrimRight(cfg.RemoteURL, "/"))
	}

	return &Sync{
		cacheDir:  cacheDir,
		cacheOnly: cfg.RemoteURL == "",
		client:    cli,
		log:       log,
	}, nil
}

// EnsureLocal returns the absolute local path of a valid cached copy of the
// named artifact, fetching or refreshing it first when the remote source has
// a newer version.
//
// Concurrent calls for the same name share one fetch. If ctx is cancelled
// while waiting, EnsureLocal returns [ErrCancelled] immediately but the
// in-flight fetch keeps running so the cache is populated for future
// attempts. Remote failures fall back to a cached copy with a warning
// ([ErrFetch] is not surfaced then); without a cached copy they surface as
// [ErrUnavailable].
func (s *Sync) EnsureLocal(ctx context.Context, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	// The fetch runs on a detached context: a cancelled caller must not
	// abort cache population for everyone else.
	ch := s.group.DoChan(name, func() (any, error) {
		return s.sync(context.WithoutCancel(ctx), name)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("artifact %q: %w: %v", name, ErrCancelled, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// sync performs one cache check / fetch round for name. It is only ever
// executed single-flight per name.
func (s *Sync) sync(ctx context.Context, name string) (string, error) {
	local := filepath.Join(s.cacheDir, name)
	cached := fileExists(local)

	meta, err := s.remoteVersion(ctx, name)
	if err != nil {
		if cached {
			s.log.Warn().Str("artifact", name).Err(err).
				Msg("remote version check failed, falling back to cached copy")
			return local, nil
		}
		return "", fmt.Errorf("artifact %q: %w (%w)", name, ErrUnavailable, err)
	}

	if cached && s.localVersion(local) == meta.Version {
		s.log.Debug().Str("artifact", name).Str("version", meta.Version).
			Msg("cached copy is up to date")
		return local, nil
	}

	if err := s.download(ctx, name, local); err != nil {
		if cached {
			s.log.Warn().Str("artifact", name).Err(err).
				Msg("artifact download failed, falling back to cached copy")
			return local, nil
		}
		return "", fmt.Errorf("artifact %q: %w (%w)", name, ErrUnavailable, err)
	}

	if err := s.writeVersion(local, meta.Version); err != nil {
		return "", fmt.Errorf("artifact %q: record version: %w", name, err)
	}

	s.log.Info().Str("artifact", name).Str("version", meta.Version).
		Str("path", local).Msg("artifact synchronised")
	return local, nil
}

// remoteVersion asks the remote source for the current version of name.
// Every failure mode (no remote configured, transport error, non-2xx
// status) is reported as [ErrFetch].
func (s *Sync) remoteVersion(ctx context.Context, name string) (*remoteMeta, error) {
	if s.cacheOnly {
		return nil, fmt.Errorf("%w: no remote source configured", ErrFetch)
	}

	var meta remoteMeta
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&meta).
		SetPathParam("name", name).
		Get("/artifacts/{name}/version")
	if err != nil {
		return nil, fmt.Errorf("%w: version request: %v", ErrFetch, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: version request returned %s", ErrFetch, resp.Status())
	}

	return &meta, nil
}

// download fetches the artifact body into a temp file inside the cache
// directory and renames it over the final path, so no reader ever sees a
// partially written entry.
func (s *Sync) download(ctx context.Context, name, local string) error {
	tmp := filepath.Join(s.cacheDir, fmt.Sprintf(".%s-%s.tmp", name, uuid.NewString()))

	resp, err := s.client.R().
		SetContext(ctx).
		SetOutput(tmp).
		SetPathParam("name", name).
		Get("/artifacts/{name}")
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: download: %v", ErrFetch, err)
	}
	if resp.IsError() {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: download returned %s", ErrFetch, resp.Status())
	}

	if err := os.Rename(tmp, local); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// localVersion reads the version sidecar of a cached entry. A missing or
// unreadable sidecar reads as "", which never matches a remote version and
// therefore forces a refetch.
func (s *Sync) localVersion(local string) string {
	data, err := os.ReadFile(local + ".version")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// writeVersion records the synced remote version next to the cache entry,
// using the same temp-then-rename discipline as the entry itself.
func (s *Sync) writeVersion(local, version string) error {
	tmp := local + ".version." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, []byte(version+"\n"), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, local+".version"); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// checkName rejects artifact names that would escape the cache directory.
// Names are logical identifiers, not paths.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("artifact name %q: %w: not a valid logical name", name, ErrUnavailable)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
