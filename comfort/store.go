package comfort

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Source records where a collection came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"

	// SourceSnapshot marks a collection restored from the local
	// snapshot database: real data, possibly stale.
	SourceSnapshot Source = "snapshot"
)

// Loader is the read side of the resource client. Every method is
// total: on any remote failure it returns the compiled-in fallback
// collection and reports SourceFallback.
type Loader interface {
	ListProjects(ctx context.Context) ([]Project, Source)
	ListArticles(ctx context.Context) ([]Article, Source)
	ListPartners(ctx context.Context) ([]Partner, Source)
	ListUsers(ctx context.Context) ([]User, Source)
	ListDonations(ctx context.Context) ([]Donation, Source)
	ListTeam(ctx context.Context) ([]TeamMember, Source)
	ListTestimonials(ctx context.Context) ([]Testimonial, Source)
	GetSettings(ctx context.Context) (SiteSettings, Source)
}

// Store owns the authoritative in-memory copies of every collection.
// It is populated once at startup and refreshed per kind after
// administrative writes. Getters hand out the stored slices directly;
// callers treat them as read-only.
type Store struct {
	loader Loader

	mu           sync.RWMutex
	projects     []Project
	articles     []Article
	partners     []Partner
	users        []User
	donations    []Donation
	team         []TeamMember
	testimonials []Testimonial
	settings     SiteSettings
	sources      map[Kind]Source
}

func NewStore(loader Loader) *Store {
	return &Store{
		loader:  loader,
		sources: make(map[Kind]Source),
	}
}

// Init loads every collection. Kinds load concurrently; there is no
// ordering dependency between them. Init never fails: each load
// degrades to fallback data on its own.
func (s *Store) Init(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range Kinds() {
		g.Go(func() error {
			s.Refresh(ctx, kind)
			return nil
		})
	}
	_ = g.Wait()
}

// Refresh reloads a single collection from the loader.
func (s *Store) Refresh(ctx context.Context, kind Kind) {
	switch kind {
	case KindProjects:
		projects, src := s.loader.ListProjects(ctx)
		s.set(kind, src, func() { s.projects = projects })
	case KindArticles:
		articles, src := s.loader.ListArticles(ctx)
		s.set(kind, src, func() { s.articles = articles })
	case KindPartners:
		partners, src := s.loader.ListPartners(ctx)
		s.set(kind, src, func() { s.partners = partners })
	case KindUsers:
		users, src := s.loader.ListUsers(ctx)
		s.set(kind, src, func() { s.users = users })
	case KindDonations:
		donations, src := s.loader.ListDonations(ctx)
		s.set(kind, src, func() { s.donations = donations })
	case KindTeam:
		team, src := s.loader.ListTeam(ctx)
		s.set(kind, src, func() { s.team = team })
	case KindTestimonials:
		testimonials, src := s.loader.ListTestimonials(ctx)
		s.set(kind, src, func() { s.testimonials = testimonials })
	case KindSettings:
		settings, src := s.loader.GetSettings(ctx)
		s.set(kind, src, func() { s.settings = settings })
	}
}

func (s *Store) set(kind Kind, src Source, assign func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assign()
	s.sources[kind] = src
}

// Restore replaces a collection with a snapshot payload. It is used
// at startup to prefer last-known-good remote data over compiled-in
// samples when the API is down.
func (s *Store) Restore(kind Kind, payload []byte) error {
	unmarshal := func(v any) error { return json.Unmarshal(payload, v) }

	var err error
	switch kind {
	case KindProjects:
		var projects []Project
		if err = unmarshal(&projects); err == nil {
			s.set(kind, SourceSnapshot, func() { s.projects = projects })
		}
	case KindArticles:
		var articles []Article
		if err = unmarshal(&articles); err == nil {
			s.set(kind, SourceSnapshot, func() { s.articles = articles })
		}
	case KindPartners:
		var partners []Partner
		if err = unmarshal(&partners); err == nil {
			s.set(kind, SourceSnapshot, func() { s.partners = partners })
		}
	case KindUsers:
		var users []User
		if err = unmarshal(&users); err == nil {
			s.set(kind, SourceSnapshot, func() { s.users = users })
		}
	case KindDonations:
		var donations []Donation
		if err = unmarshal(&donations); err == nil {
			s.set(kind, SourceSnapshot, func() { s.donations = donations })
		}
	case KindTeam:
		var team []TeamMember
		if err = unmarshal(&team); err == nil {
			s.set(kind, SourceSnapshot, func() { s.team = team })
		}
	case KindTestimonials:
		var testimonials []Testimonial
		if err = unmarshal(&testimonials); err == nil {
			s.set(kind, SourceSnapshot, func() { s.testimonials = testimonials })
		}
	case KindSettings:
		var settings SiteSettings
		if err = unmarshal(&settings); err == nil {
			s.set(kind, SourceSnapshot, func() { s.settings = settings })
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	if err != nil {
		return fmt.Errorf("failed to restore %s snapshot: %w", kind, err)
	}
	return nil
}

// SourceOf reports where a collection last came from. Kinds that have
// never loaded report SourceFallback.
func (s *Store) SourceOf(kind Kind) Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if src, ok := s.sources[kind]; ok {
		return src
	}
	return SourceFallback
}

func (s *Store) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects
}

func (s *Store) Articles() []Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.articles
}

func (s *Store) Partners() []Partner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partners
}

func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users
}

func (s *Store) Donations() []Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.donations
}

func (s *Store) Team() []TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.team
}

func (s *Store) Testimonials() []Testimonial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.testimonials
}

func (s *Store) Settings() SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}
