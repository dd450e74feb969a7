package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"cinevibe/internal/data/entity"
	"cinevibe/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reviewFixture struct {
	svc     ReviewService
	users   *fakeUserRepo
	films   *fakeFilmRepo
	reviews *fakeReviewRepo
	photos  *fakePhotoStore
	alice   uuid.UUID
	bob     uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	films := newFakeFilmRepo()
	reviews := newFakeReviewRepo(users, films)
	photos := newFakePhotoStore()

	repo := newTestRepository(users, sessions, films, reviews)
	log := zap.NewNop()
	svc := NewReviewService(repo, NewFilmService(repo, log), photos, log)

	fix := &reviewFixture{
		svc:     svc,
		users:   users,
		films:   films,
		reviews: reviews,
		photos:  photos,
		alice:   uuid.New(),
		bob:     uuid.New(),
	}

	users.users[fix.alice] = &entity.User{
		BaseSimple: entity.BaseSimple{ID: fix.alice, CreatedAt: time.Now()},
		Username:   "alice",
	}
	users.users[fix.bob] = &entity.User{
		BaseSimple: entity.BaseSimple{ID: fix.bob, CreatedAt: time.Now()},
		Username:   "bob",
	}

	return fix
}

func validForm() *request.ReviewForm {
	return &request.ReviewForm{
		Title:   "Mind-bending masterpiece",
		Rating:  5,
		Content: "Dune redefined sci-fi cinema.",
		NewFilm: "Dune",
	}
}

func TestCreateReviewForNewFilm(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	resp, err := fix.svc.Create(ctx, fix.alice.String(), validForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if resp.FilmTitle != "Dune" {
		t.Errorf("film title = %q, want Dune", resp.FilmTitle)
	}
	if resp.Username != "alice" {
		t.Errorf("username = %q, want alice", resp.Username)
	}
	if resp.Rating != 5 {
		t.Errorf("rating = %d, want 5", resp.Rating)
	}
	if len(fix.films.films) != 1 {
		t.Fatalf("film count = %d, want 1", len(fix.films.films))
	}

	// A second review typing the title in different case reuses the film
	form := validForm()
	form.NewFilm = "dune"
	form.Title = "Second take"
	if _, err := fix.svc.Create(ctx, fix.bob.String(), form); err != nil {
		t.Fatalf("second create: %v", err)
	}
	if len(fix.films.films) != 1 {
		t.Errorf("film count after second review = %d, want 1", len(fix.films.films))
	}
	if len(fix.reviews.reviews) != 2 {
		t.Errorf("review count = %d, want 2", len(fix.reviews.reviews))
	}
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{-1, 0, 6, 100} {
		form := validForm()
		form.Rating = rating

		_, err := fix.svc.Create(ctx, fix.alice.String(), form)
		if err == nil {
			t.Fatalf("rating %d should be rejected", rating)
		}
		if !strings.Contains(err.Error(), "validation failed") {
			t.Errorf("rating %d error = %v, want validation failure", rating, err)
		}
	}

	if len(fix.reviews.reviews) != 0 {
		t.Errorf("review count = %d, want 0", len(fix.reviews.reviews))
	}
}

func TestCreateReviewRequiresFields(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	for _, mutate := range []func(*request.ReviewForm){
		func(f *request.ReviewForm) { f.Title = "" },
		func(f *request.ReviewForm) { f.Content = "" },
	} {
		form := validForm()
		mutate(form)
		if _, err := fix.svc.Create(ctx, fix.alice.String(), form); err == nil {
			t.Error("form with missing required field should be rejected")
		}
	}
}

func TestCreateReviewRejectsBadFileType(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	form := validForm()
	form.Photo = &request.PhotoUpload{
		File:     strings.NewReader("MZ"),
		Filename: "poster.exe",
	}

	_, err := fix.svc.Create(ctx, fix.alice.String(), form)
	if err == nil {
		t.Fatal("exe upload should be rejected")
	}
	if !strings.Contains(err.Error(), "invalid file type") {
		t.Errorf("error = %v, want invalid file type", err)
	}

	if len(fix.photos.saved) != 0 {
		t.Errorf("stored photos = %d, want 0", len(fix.photos.saved))
	}
	if len(fix.reviews.reviews) != 0 {
		t.Errorf("review count = %d, want 0", len(fix.reviews.reviews))
	}
}

func TestCreateReviewStoresPhoto(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	form := validForm()
	form.Photo = &request.PhotoUpload{
		File:     strings.NewReader("png bytes"),
		Filename: "poster.png",
	}

	resp, err := fix.svc.Create(ctx, fix.alice.String(), form)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if resp.PhotoURL == nil || !strings.HasPrefix(*resp.PhotoURL, "/uploads/") {
		t.Errorf("photo URL = %v, want /uploads/ prefix", resp.PhotoURL)
	}
	if len(fix.photos.saved) != 1 {
		t.Errorf("stored photos = %d, want 1", len(fix.photos.saved))
	}
}

func TestCreateReviewCleansUpPhotoOnInsertFailure(t *testing.T) {
	fix := newReviewFixture(t)
	fix.reviews.failCreate = true
	ctx := context.Background()

	form := validForm()
	form.Photo = &request.PhotoUpload{
		File:     strings.NewReader("png bytes"),
		Filename: "poster.png",
	}

	if _, err := fix.svc.Create(ctx, fix.alice.String(), form); err == nil {
		t.Fatal("create should fail when the insert fails")
	}

	if len(fix.photos.saved) != 0 {
		t.Errorf("stored photos after failed insert = %d, want 0", len(fix.photos.saved))
	}
	if len(fix.photos.removed) != 1 {
		t.Errorf("removed photos = %d, want 1", len(fix.photos.removed))
	}
}

func TestUpdateReviewOwnershipAndRating(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	created, err := fix.svc.Create(ctx, fix.alice.String(), validForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Bob cannot edit alice's review
	form := validForm()
	form.FilmID = created.FilmID
	form.NewFilm = ""
	form.Rating = 1
	_, err = fix.svc.Update(ctx, created.ID, fix.bob.String(), form)
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("non-owner edit error = %v, want forbidden", err)
	}

	stored := fix.reviews.reviews[uuid.MustParse(created.ID)]
	if stored.Rating != 5 {
		t.Errorf("rating after forbidden edit = %d, want unchanged 5", stored.Rating)
	}

	// Alice lowers the rating to 3, film stays the same
	form.Rating = 3
	updated, err := fix.svc.Update(ctx, created.ID, fix.alice.String(), form)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Rating != 3 {
		t.Errorf("rating = %d, want 3", updated.Rating)
	}
	if updated.FilmID != created.FilmID {
		t.Errorf("film changed from %s to %s", created.FilmID, updated.FilmID)
	}
	if len(fix.films.films) != 1 {
		t.Errorf("film count = %d, want 1", len(fix.films.films))
	}
}

func TestUpdateReviewReplacesPhoto(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	form := validForm()
	form.Photo = &request.PhotoUpload{File: strings.NewReader("a"), Filename: "old.png"}
	created, err := fix.svc.Create(ctx, fix.alice.String(), form)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	oldName := strings.TrimPrefix(*created.PhotoURL, "/uploads/")

	edit := validForm()
	edit.FilmID = created.FilmID
	edit.NewFilm = ""
	edit.Photo = &request.PhotoUpload{File: strings.NewReader("b"), Filename: "new.jpg"}

	updated, err := fix.svc.Update(ctx, created.ID, fix.alice.String(), edit)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.PhotoURL == nil || strings.TrimPrefix(*updated.PhotoURL, "/uploads/") == oldName {
		t.Error("photo should have been replaced")
	}
	if fix.photos.saved[oldName] {
		t.Error("superseded photo should be removed from storage")
	}
	if len(fix.photos.saved) != 1 {
		t.Errorf("stored photos = %d, want 1", len(fix.photos.saved))
	}
}

func TestUpdateReviewKeepsPhotoWithoutNewFile(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	form := validForm()
	form.Photo = &request.PhotoUpload{File: strings.NewReader("a"), Filename: "keep.png"}
	created, err := fix.svc.Create(ctx, fix.alice.String(), form)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	edit := validForm()
	edit.FilmID = created.FilmID
	edit.NewFilm = ""
	edit.Rating = 4

	updated, err := fix.svc.Update(ctx, created.ID, fix.alice.String(), edit)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.PhotoURL == nil || *updated.PhotoURL != *created.PhotoURL {
		t.Errorf("photo URL changed: %v -> %v", created.PhotoURL, updated.PhotoURL)
	}
	if len(fix.photos.removed) != 0 {
		t.Errorf("removed photos = %d, want 0", len(fix.photos.removed))
	}
}

func TestDeleteReview(t *testing.T) {
	fix := newReviewFixture(t)
	ctx := context.Background()

	form := validForm()
	form.Photo = &request.PhotoUpload{File: strings.NewReader("a"), Filename: "gone.gif"}
	created, err := fix.svc.Create(ctx, fix.alice.String(), form)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Bob cannot delete alice's review
	err = fix.svc.Delete(ctx, created.ID, fix.bob.String())
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("non-owner delete error = %v, want forbidden", err)
	}
	if len(fix.reviews.reviews) != 1 {
		t.Fatal("review should survive a forbidden delete")
	}

	// Owner delete removes the row and the stored file
	if err := fix.svc.Delete(ctx, created.ID, fix.alice.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := fix.svc.Get(ctx, created.ID); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("get after delete = %v, want not found", err)
	}
	if len(fix.photos.saved) != 0 {
		t.Errorf("stored photos after delete = %d, want 0", len(fix.photos.saved))
	}
}

func TestCreateReviewVanishedDetailReportsNotFound(t *testing.T) {
	fix := newReviewFixture(t)
	fix.reviews.dropDetail = true

	_, err := fix.svc.Create(context.Background(), fix.alice.String(), validForm())
	if err == nil {
		t.Fatal("create with a missing detail row should fail")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not found", err)
	}
	if strings.Contains(err.Error(), "%!w") {
		t.Errorf("error %v wraps a nil error", err)
	}
}

func TestDeleteMissingReview(t *testing.T) {
	fix := newReviewFixture(t)

	err := fix.svc.Delete(context.Background(), uuid.NewString(), fix.alice.String())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not found", err)
	}
}
