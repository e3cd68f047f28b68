// Package resolve determines which forge repository a command acts on.
package resolve

import (
	"context"
	"fmt"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/git-pr/internal/forge"
	"github.com/jmcampanini/git-pr/internal/git"
)

// RemoteLister is the part of git.Git the resolver queries.
type RemoteLister interface {
	ListRemotes() ([]git.Remote, error)
}

// MetadataReader is the part of forge.Gateway the resolver queries.
type MetadataReader interface {
	Read(ctx context.Context, path string, out any) error
}

// Options configures a Resolver.
type Options struct {
	Host     string // forge hostname matched against remote URLs
	Override string // repository used verbatim when non-empty
}

// Resolution is the outcome of resolving the current checkout.
type Resolution struct {
	DefaultBranch string             // upstream default branch; empty when Override was used
	Fork          bool               // Local is a fork of Upstream
	Local         forge.RepositoryID // repository named by the local remote
	Upstream      forge.RepositoryID // repository every operation targets
}

type Resolver struct {
	api      MetadataReader
	host     string
	log      *clog.Logger
	override string
	remotes  RemoteLister
}

func New(remotes RemoteLister, api MetadataReader, opts Options) *Resolver {
	return &Resolver{
		api:      api,
		host:     opts.Host,
		log:      clog.Default().WithPrefix("resolve"),
		override: opts.Override,
		remotes:  remotes,
	}
}

// ResolveRepository returns the upstream repository for the current checkout.
func (r *Resolver) ResolveRepository(ctx context.Context) (forge.RepositoryID, error) {
	res, err := r.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return res.Upstream, nil
}

// Resolve finds the repository named by the first forge fetch remote and
// normalizes a fork to its parent. An override skips discovery and the forge
// lookup entirely.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	if r.override != "" {
		r.log.Debug("Using repository override", "repository", r.override)
		id := forge.RepositoryID(r.override)
		return Resolution{Local: id, Upstream: id}, nil
	}

	candidate, err := r.discover()
	if err != nil {
		return Resolution{}, err
	}

	var meta forge.Repository
	if err := r.api.Read(ctx, forge.RepositoryPath(candidate), &meta); err != nil {
		return Resolution{}, fmt.Errorf("failed to fetch repository %s: %w", candidate, err)
	}

	if !meta.Fork {
		r.log.Debug("Resolved repository", "repository", candidate)
		return Resolution{
			DefaultBranch: meta.DefaultBranch,
			Local:         candidate,
			Upstream:      candidate,
		}, nil
	}

	if meta.Parent == nil || meta.Parent.FullName == "" {
		return Resolution{}, fmt.Errorf("repository %s is a fork but its parent is unknown", candidate)
	}
	parent, err := forge.ParseRepositoryID(meta.Parent.FullName)
	if err != nil {
		return Resolution{}, fmt.Errorf("repository %s has an invalid parent: %w", candidate, err)
	}

	r.log.Debug("Resolved fork to parent", "fork", candidate, "parent", parent)
	return Resolution{
		DefaultBranch: meta.Parent.DefaultBranch,
		Fork:          true,
		Local:         candidate,
		Upstream:      parent,
	}, nil
}

// discover returns the repository of the first fetch remote on the forge host.
func (r *Resolver) discover() (forge.RepositoryID, error) {
	remotes, err := r.remotes.ListRemotes()
	if err != nil {
		return "", &forge.EnvironmentError{Message: "failed to list git remotes", Err: err}
	}

	for _, remote := range remotes {
		if remote.Direction != git.RemoteDirectionFetch {
			continue
		}
		if id, ok := ParseRemoteURL(remote.URL, r.host); ok {
			r.log.Debug("Found forge remote", "remote", remote.Name, "url", remote.URL, "repository", id)
			return id, nil
		}
	}

	return "", &forge.EnvironmentError{
		Message: fmt.Sprintf("no git remote points at %s; add one or set the repository explicitly", r.host),
	}
}
