package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cinevibe/internal/data/entity"
	"cinevibe/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return fmt.Errorf("duplicate username %s", user.Username)
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	cp := *session
	f.sessions[session.Token.String()] = &cp
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil || s.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

type fakeFilmRepo struct {
	films map[uuid.UUID]*entity.Film
}

func newFakeFilmRepo() *fakeFilmRepo {
	return &fakeFilmRepo{films: make(map[uuid.UUID]*entity.Film)}
}

func (f *fakeFilmRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Film, error) {
	if film, ok := f.films[id]; ok {
		cp := *film
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeFilmRepo) FindAll(_ context.Context) ([]*entity.Film, error) {
	var out []*entity.Film
	for _, film := range f.films {
		cp := *film
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeFilmRepo) GetOrCreate(_ context.Context, film *entity.Film) (*entity.Film, error) {
	for _, existing := range f.films {
		if strings.EqualFold(existing.Title, film.Title) {
			cp := *existing
			return &cp, nil
		}
	}
	cp := *film
	f.films[film.ID] = &cp
	out := cp
	return &out, nil
}

type fakeReviewRepo struct {
	reviews    map[uuid.UUID]*entity.Review
	users      *fakeUserRepo
	filmsRepo  *fakeFilmRepo
	failCreate bool
	dropDetail bool
}

func newFakeReviewRepo(users *fakeUserRepo, films *fakeFilmRepo) *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:   make(map[uuid.UUID]*entity.Review),
		users:     users,
		filmsRepo: films,
	}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	if f.failCreate {
		return fmt.Errorf("insert failed")
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	if r, ok := f.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) detail(r *entity.Review) *entity.ReviewDetail {
	d := &entity.ReviewDetail{Review: *r}
	if u := f.users.users[r.UserID]; u != nil {
		d.Username = u.Username
	}
	if film := f.filmsRepo.films[r.FilmID]; film != nil {
		d.FilmTitle = film.Title
	}
	return d
}

func (f *fakeReviewRepo) FindDetailByID(_ context.Context, id uuid.UUID) (*entity.ReviewDetail, error) {
	if f.dropDetail {
		return nil, nil
	}
	if r, ok := f.reviews[id]; ok {
		return f.detail(r), nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.ReviewDetail, error) {
	var out []*entity.ReviewDetail
	for _, r := range f.reviews {
		out = append(out, f.detail(r))
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ReviewDetail, error) {
	var out []*entity.ReviewDetail
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, f.detail(r))
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.reviews)), nil
}

func (f *fakeReviewRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return fmt.Errorf("review %s not found", review.ID.String())
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return fmt.Errorf("review %s not found", id.String())
	}
	delete(f.reviews, id)
	return nil
}

// fakePhotoStore records stored and removed names without touching disk.
type fakePhotoStore struct {
	saved    map[string]bool
	removed  []string
	seq      int
	failSave bool
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{saved: make(map[string]bool)}
}

func (f *fakePhotoStore) Save(_ context.Context, r io.Reader, originalName string) (string, error) {
	if f.failSave {
		return "", fmt.Errorf("disk full")
	}
	io.Copy(io.Discard, r)
	f.seq++
	name := fmt.Sprintf("%d_%s", f.seq, originalName)
	f.saved[name] = true
	return name, nil
}

func (f *fakePhotoStore) Remove(name string) error {
	delete(f.saved, name)
	f.removed = append(f.removed, name)
	return nil
}

func newTestRepository(users *fakeUserRepo, sessions *fakeSessionRepo, films *fakeFilmRepo, reviews *fakeReviewRepo) *repository.Repository {
	return &repository.Repository{
		User:    users,
		Session: sessions,
		Film:    films,
		Review:  reviews,
	}
}
