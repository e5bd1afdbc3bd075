// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/filmgraph/internal/config"
	"github.com/tomtom215/filmgraph/internal/models"
)

// testDBSemaphore serializes tests that hold a DuckDB connection.
// It is held for the whole test and released in t.Cleanup.
var testDBSemaphore = make(chan struct{}, 1)

var testDBMutex sync.Mutex

// setupTestDB creates a seeded in-memory database: MPA ratings 1-5 (G first)
// and genres 1-6 (Comedy first).
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
		Threads:   1,
		SeedData:  true,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Failed to close test database: %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkIDs(t *testing.T, name string, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got %v", name, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func filmIDs(films []models.Film) []int64 {
	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	return ids
}

func userIDs(users []models.User) []int64 {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func insertFilm(t *testing.T, db *DB, name string, year int, genres []int64, directors []int64) *models.Film {
	t.Helper()
	f := &models.Film{
		Name:        name,
		Description: "test film",
		ReleaseDate: models.NewDate(year, time.March, 1),
		Duration:    100,
		Mpa:         &models.MpaRating{ID: 1},
	}
	for _, id := range genres {
		f.Genres = append(f.Genres, models.Genre{ID: id})
	}
	for _, id := range directors {
		f.Directors = append(f.Directors, models.Director{ID: id})
	}
	err := db.WithTx(context.Background(), func(tx *Store) error {
		return tx.CreateFilm(context.Background(), f)
	})
	checkNoError(t, err)
	return f
}

func insertUser(t *testing.T, db *DB, login string) *models.User {
	t.Helper()
	u := &models.User{Email: login + "@example.com", Login: login, Name: login}
	checkNoError(t, db.CreateUser(context.Background(), u))
	return u
}

func like(t *testing.T, db *DB, filmID, userID int64) {
	t.Helper()
	_, err := db.AddLike(context.Background(), filmID, userID)
	checkNoError(t, err)
}

func TestNewSeedsDictionaries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ratings, err := db.ListMpa(ctx)
	checkNoError(t, err)
	if len(ratings) != 5 || ratings[0].Name != "G" || ratings[4].Name != "NC-17" {
		t.Errorf("unexpected MPA ratings: %+v", ratings)
	}

	genres, err := db.ListGenres(ctx)
	checkNoError(t, err)
	if len(genres) != 6 || genres[0].Name != "Комедия" {
		t.Errorf("unexpected genres: %+v", genres)
	}

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestFilmLinksKeepInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	d1 := &models.Director{Name: "Second"}
	d2 := &models.Director{Name: "First"}
	checkNoError(t, db.CreateDirector(ctx, d1))
	checkNoError(t, db.CreateDirector(ctx, d2))

	f := insertFilm(t, db, "Ordered", 2001, []int64{3, 1, 5}, []int64{d2.ID, d1.ID})

	got, err := db.GetFilm(ctx, f.ID)
	checkNoError(t, err)
	checkIDs(t, "genres", got.GenreIDs(), []int64{3, 1, 5})
	checkIDs(t, "directors", got.DirectorIDs(), []int64{d2.ID, d1.ID})
	if got.Mpa == nil || got.Mpa.Name != "G" {
		t.Errorf("expected MPA G, got %+v", got.Mpa)
	}
	if !got.ReleaseDate.Equal(f.ReleaseDate.Time) {
		t.Errorf("release date: expected %s, got %s", f.ReleaseDate, got.ReleaseDate)
	}

	// Reorder, keep, drop and add in one update.
	got.Genres = []models.Genre{{ID: 5}, {ID: 2}, {ID: 3}}
	got.Directors = nil
	err = db.WithTx(ctx, func(tx *Store) error {
		return tx.UpdateFilm(ctx, got)
	})
	checkNoError(t, err)

	updated, err := db.GetFilm(ctx, f.ID)
	checkNoError(t, err)
	checkIDs(t, "genres after update", updated.GenreIDs(), []int64{5, 2, 3})
	checkIDs(t, "directors after update", updated.DirectorIDs(), []int64{})

	genres, err := db.FilmGenres(ctx, f.ID)
	checkNoError(t, err)
	if len(genres) != 3 || genres[0].ID != 5 {
		t.Errorf("FilmGenres() = %+v", genres)
	}
}

func TestFilmNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.GetFilm(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetFilm() error = %v, want ErrNotFound", err)
	}
	err := db.UpdateFilm(ctx, &models.Film{ID: 42, Name: "x", Duration: 1, Mpa: &models.MpaRating{ID: 1},
		ReleaseDate: models.NewDate(2000, time.January, 1)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateFilm() error = %v, want ErrNotFound", err)
	}
	if err := db.DeleteFilm(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteFilm() error = %v, want ErrNotFound", err)
	}
}

func TestPopularFilms(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := insertFilm(t, db, "A", 2000, []int64{1}, nil)
	b := insertFilm(t, db, "B", 2005, nil, nil)
	c := insertFilm(t, db, "C", 2005, []int64{1}, nil)
	u1 := insertUser(t, db, "u1")
	u2 := insertUser(t, db, "u2")

	like(t, db, a.ID, u1.ID)
	like(t, db, a.ID, u2.ID)
	like(t, db, b.ID, u2.ID)

	tests := []struct {
		name    string
		count   int
		genreID *int64
		year    *int
		want    []int64
	}{
		{"all by likes then id", 10, nil, nil, []int64{a.ID, b.ID, c.ID}},
		{"limited", 2, nil, nil, []int64{a.ID, b.ID}},
		{"genre filter", 10, ptr(int64(1)), nil, []int64{a.ID, c.ID}},
		{"year filter", 10, nil, ptr(2005), []int64{b.ID, c.ID}},
		{"genre and year", 10, ptr(int64(1)), ptr(2005), []int64{c.ID}},
		{"no match", 10, ptr(int64(2)), nil, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			films, err := db.PopularFilms(ctx, tt.count, tt.genreID, tt.year)
			checkNoError(t, err)
			checkIDs(t, "popular", filmIDs(films), tt.want)
		})
	}

	films, err := db.PopularFilms(ctx, 10, nil, nil)
	checkNoError(t, err)
	if len(films[0].Likes) != 2 || len(films[1].Likes) != 1 {
		t.Errorf("unexpected like sets: %v, %v", films[0].Likes, films[1].Likes)
	}
}

func TestAddLikeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	f := insertFilm(t, db, "Liked", 2010, nil, nil)
	u := insertUser(t, db, "fan")

	like(t, db, f.ID, u.ID)
	like(t, db, f.ID, u.ID)

	got, err := db.GetFilm(ctx, f.ID)
	checkNoError(t, err)
	checkIDs(t, "likes", got.Likes, []int64{u.ID})

	_, err = db.RemoveLike(ctx, f.ID, u.ID)
	checkNoError(t, err)
	_, err = db.RemoveLike(ctx, f.ID, u.ID)
	checkNoError(t, err)

	liked, err := db.LikedFilmIDs(ctx, u.ID)
	checkNoError(t, err)
	checkIDs(t, "liked films", liked, []int64{})
}

func TestCommonFilms(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := insertFilm(t, db, "A", 2000, nil, nil)
	b := insertFilm(t, db, "B", 2000, nil, nil)
	c := insertFilm(t, db, "C", 2000, nil, nil)
	u1 := insertUser(t, db, "u1")
	u2 := insertUser(t, db, "u2")
	u3 := insertUser(t, db, "u3")

	like(t, db, a.ID, u1.ID)
	like(t, db, b.ID, u1.ID)
	like(t, db, c.ID, u1.ID)
	like(t, db, b.ID, u2.ID)
	like(t, db, c.ID, u2.ID)
	like(t, db, c.ID, u3.ID)

	films, err := db.CommonFilms(ctx, u1.ID, u2.ID)
	checkNoError(t, err)
	checkIDs(t, "common", filmIDs(films), []int64{c.ID, b.ID})

	films, err = db.CommonFilms(ctx, u2.ID, u3.ID)
	checkNoError(t, err)
	checkIDs(t, "common", filmIDs(films), []int64{c.ID})
}

func TestSearchFilms(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	d := &models.Director{Name: "Alice Guy"}
	checkNoError(t, db.CreateDirector(ctx, d))

	valid := insertFilm(t, db, "Valid Film", 2000, nil, nil)
	other := insertFilm(t, db, "Other", 2000, nil, []int64{d.ID})
	insertFilm(t, db, "Nothing", 2000, nil, nil)
	u := insertUser(t, db, "u")
	like(t, db, other.ID, u.ID)

	tests := []struct {
		name                string
		query               string
		byTitle, byDirector bool
		want                []int64
	}{
		{"title substring", "al", true, false, []int64{valid.ID}},
		{"title case-insensitive", "VALID", true, false, []int64{valid.ID}},
		{"director", "ALI", false, true, []int64{other.ID}},
		{"both ranked by likes", "al", true, true, []int64{other.ID, valid.ID}},
		{"no match", "zzz", true, true, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			films, err := db.SearchFilms(ctx, tt.query, tt.byTitle, tt.byDirector)
			checkNoError(t, err)
			checkIDs(t, "search", filmIDs(films), tt.want)
		})
	}

	if _, err := db.SearchFilms(ctx, "al", false, false); err == nil {
		t.Error("expected error without a search target")
	}
}

func TestFriendshipLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u1 := insertUser(t, db, "u1")
	u2 := insertUser(t, db, "u2")
	u3 := insertUser(t, db, "u3")

	_, err := db.AddFriend(ctx, u1.ID, u2.ID)
	checkNoError(t, err)

	fs, err := db.GetFriendship(ctx, u1.ID, u2.ID)
	checkNoError(t, err)
	if fs.Status != models.FriendshipPending {
		t.Errorf("expected PENDING, got %s", fs.Status)
	}
	friends, err := db.Friends(ctx, u1.ID)
	checkNoError(t, err)
	checkIDs(t, "friends before confirm", userIDs(friends), []int64{})

	checkNoError(t, db.ConfirmFriend(ctx, u1.ID, u2.ID))
	friends, err = db.Friends(ctx, u1.ID)
	checkNoError(t, err)
	checkIDs(t, "friends after confirm", userIDs(friends), []int64{u2.ID})

	// Re-adding keeps the confirmed status.
	_, err = db.AddFriend(ctx, u1.ID, u2.ID)
	checkNoError(t, err)
	fs, err = db.GetFriendship(ctx, u1.ID, u2.ID)
	checkNoError(t, err)
	if fs.Status != models.FriendshipConfirmed {
		t.Errorf("expected CONFIRMED after re-add, got %s", fs.Status)
	}

	// The reverse edge does not exist.
	if err := db.ConfirmFriend(ctx, u2.ID, u1.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("ConfirmFriend() reverse error = %v, want ErrNotFound", err)
	}

	user, err := db.GetUser(ctx, u1.ID)
	checkNoError(t, err)
	checkIDs(t, "user friends", user.Friends, []int64{u2.ID})

	_, err = db.AddFriend(ctx, u3.ID, u2.ID)
	checkNoError(t, err)
	checkNoError(t, db.ConfirmFriend(ctx, u3.ID, u2.ID))
	common, err := db.CommonFriends(ctx, u1.ID, u3.ID)
	checkNoError(t, err)
	checkIDs(t, "common friends", userIDs(common), []int64{u2.ID})

	_, err = db.RemoveFriend(ctx, u1.ID, u2.ID)
	checkNoError(t, err)
	_, err = db.RemoveFriend(ctx, u1.ID, u2.ID)
	checkNoError(t, err)
	if _, err := db.GetFriendship(ctx, u1.ID, u2.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetFriendship() after remove error = %v, want ErrNotFound", err)
	}
}

func createReview(t *testing.T, db *DB, userID, filmID int64, content string) *models.Review {
	t.Helper()
	positive := true
	r := &models.Review{Content: content, IsPositive: &positive, UserID: userID, FilmID: filmID}
	checkNoError(t, db.CreateReview(context.Background(), r))
	return r
}

func TestReviewVotes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	f := insertFilm(t, db, "A", 2000, nil, nil)
	u1 := insertUser(t, db, "u1")
	u2 := insertUser(t, db, "u2")
	u3 := insertUser(t, db, "u3")

	r := createReview(t, db, u1.ID, f.ID, "Great")
	if r.Useful != 0 {
		t.Errorf("new review useful = %d, want 0", r.Useful)
	}

	steps := []struct {
		name   string
		apply  func() error
		useful int
	}{
		{"u2 likes", func() error { return db.SetVote(ctx, r.ReviewID, u2.ID, true) }, 1},
		{"u3 dislikes", func() error { return db.SetVote(ctx, r.ReviewID, u3.ID, false) }, 0},
		{"u2 switches to dislike", func() error { return db.SetVote(ctx, r.ReviewID, u2.ID, false) }, -2},
		{"remove like that is a dislike", func() error { return db.RemoveVote(ctx, r.ReviewID, u2.ID, true) }, -2},
		{"remove u2 dislike", func() error { return db.RemoveVote(ctx, r.ReviewID, u2.ID, false) }, -1},
	}
	for _, step := range steps {
		checkNoError(t, step.apply())
		got, err := db.GetReview(ctx, r.ReviewID)
		checkNoError(t, err)
		if got.Useful != step.useful {
			t.Errorf("%s: useful = %d, want %d", step.name, got.Useful, step.useful)
		}
		if got.Useful != len(got.Likes)-len(got.Dislikes) {
			t.Errorf("%s: useful %d disagrees with votes %v / %v", step.name, got.Useful, got.Likes, got.Dislikes)
		}
	}

	checkNoError(t, db.SetVote(ctx, r.ReviewID, u2.ID, true))
	checkNoError(t, db.SetVote(ctx, r.ReviewID, u2.ID, false))
	got, err := db.GetReview(ctx, r.ReviewID)
	checkNoError(t, err)
	for _, id := range got.Likes {
		if id == u2.ID {
			t.Error("user is still a liker after disliking")
		}
	}
}

func TestReviewDuplicateIsConflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	f := insertFilm(t, db, "A", 2000, nil, nil)
	u := insertUser(t, db, "u")
	createReview(t, db, u.ID, f.ID, "first")

	positive := false
	err := db.CreateReview(ctx, &models.Review{Content: "second", IsPositive: &positive, UserID: u.ID, FilmID: f.ID})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("CreateReview() duplicate error = %v, want ErrConflict", err)
	}

	has, err := db.HasReview(ctx, u.ID, f.ID)
	checkNoError(t, err)
	if !has {
		t.Error("HasReview() = false, want true")
	}
}

func TestListReviewsByUsefulness(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := insertFilm(t, db, "A", 2000, nil, nil)
	b := insertFilm(t, db, "B", 2000, nil, nil)
	u1 := insertUser(t, db, "u1")
	u2 := insertUser(t, db, "u2")

	r1 := createReview(t, db, u1.ID, a.ID, "one")
	r2 := createReview(t, db, u2.ID, a.ID, "two")
	r3 := createReview(t, db, u1.ID, b.ID, "three")
	checkNoError(t, db.SetVote(ctx, r2.ReviewID, u1.ID, true))
	checkNoError(t, db.SetVote(ctx, r3.ReviewID, u2.ID, false))

	reviews, err := db.ListReviews(ctx, nil, 10)
	checkNoError(t, err)
	got := make([]int64, len(reviews))
	for i, r := range reviews {
		got[i] = r.ReviewID
	}
	checkIDs(t, "all reviews", got, []int64{r2.ReviewID, r1.ReviewID, r3.ReviewID})

	reviews, err = db.ListReviews(ctx, &a.ID, 1)
	checkNoError(t, err)
	if len(reviews) != 1 || reviews[0].ReviewID != r2.ReviewID {
		t.Errorf("ListReviews(film A, 1) = %+v", reviews)
	}
}

func TestDeleteDirectorCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	d := &models.Director{Name: "Gone"}
	checkNoError(t, db.CreateDirector(ctx, d))
	f := insertFilm(t, db, "Directed", 2000, nil, []int64{d.ID})

	films, err := db.DirectorFilms(ctx, d.ID, models.SortByYear)
	checkNoError(t, err)
	checkIDs(t, "director films", filmIDs(films), []int64{f.ID})

	err = db.WithTx(ctx, func(tx *Store) error {
		return tx.DeleteDirector(ctx, d.ID)
	})
	checkNoError(t, err)

	got, err := db.GetFilm(ctx, f.ID)
	checkNoError(t, err)
	checkIDs(t, "directors", got.DirectorIDs(), []int64{})

	films, err = db.DirectorFilms(ctx, d.ID, models.SortByYear)
	checkNoError(t, err)
	checkIDs(t, "director films after delete", filmIDs(films), []int64{})
}

func TestDirectorFilmsSort(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	d := &models.Director{Name: "Prolific"}
	checkNoError(t, db.CreateDirector(ctx, d))
	late := insertFilm(t, db, "Late", 2010, nil, []int64{d.ID})
	early := insertFilm(t, db, "Early", 1990, nil, []int64{d.ID})
	u := insertUser(t, db, "u")
	like(t, db, late.ID, u.ID)

	byYear, err := db.DirectorFilms(ctx, d.ID, models.SortByYear)
	checkNoError(t, err)
	checkIDs(t, "by year", filmIDs(byYear), []int64{early.ID, late.ID})

	byLikes, err := db.DirectorFilms(ctx, d.ID, models.SortByLikes)
	checkNoError(t, err)
	checkIDs(t, "by likes", filmIDs(byLikes), []int64{late.ID, early.ID})
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	f := insertFilm(t, db, "A", 2000, nil, nil)
	u1 := insertUser(t, db, "u1")
	u2 := insertUser(t, db, "u2")

	like(t, db, f.ID, u1.ID)
	_, err := db.AddFriend(ctx, u2.ID, u1.ID)
	checkNoError(t, err)
	checkNoError(t, db.ConfirmFriend(ctx, u2.ID, u1.ID))
	r := createReview(t, db, u1.ID, f.ID, "mine")
	checkNoError(t, db.SetVote(ctx, r.ReviewID, u2.ID, true))
	checkNoError(t, db.InsertFeedEvent(ctx, &models.FeedEvent{
		UserID: u1.ID, EntityID: f.ID, EventType: models.EventLike, Operation: models.OperationAdd,
	}))

	err = db.WithTx(ctx, func(tx *Store) error {
		return tx.DeleteUser(ctx, u1.ID)
	})
	checkNoError(t, err)

	if _, err := db.GetUser(ctx, u1.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser() error = %v, want ErrNotFound", err)
	}
	got, err := db.GetFilm(ctx, f.ID)
	checkNoError(t, err)
	checkIDs(t, "likes", got.Likes, []int64{})

	friends, err := db.Friends(ctx, u2.ID)
	checkNoError(t, err)
	checkIDs(t, "friends of u2", userIDs(friends), []int64{})

	if _, err := db.GetReview(ctx, r.ReviewID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetReview() error = %v, want ErrNotFound", err)
	}
	feed, err := db.UserFeed(ctx, u1.ID)
	checkNoError(t, err)
	if len(feed) != 0 {
		t.Errorf("expected empty feed, got %d events", len(feed))
	}
}

func TestDeleteFilmCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	f := insertFilm(t, db, "A", 2000, []int64{1, 2}, nil)
	u := insertUser(t, db, "u")
	like(t, db, f.ID, u.ID)
	r := createReview(t, db, u.ID, f.ID, "bye")

	err := db.WithTx(ctx, func(tx *Store) error {
		return tx.DeleteFilm(ctx, f.ID)
	})
	checkNoError(t, err)

	exists, err := db.FilmExists(ctx, f.ID)
	checkNoError(t, err)
	if exists {
		t.Error("film still exists")
	}
	liked, err := db.LikedFilmIDs(ctx, u.ID)
	checkNoError(t, err)
	checkIDs(t, "liked", liked, []int64{})
	if _, err := db.GetReview(ctx, r.ReviewID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetReview() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteMpaInUse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	insertFilm(t, db, "Rated G", 2000, nil, nil)

	if err := db.DeleteMpa(ctx, 1); !errors.Is(err, ErrConflict) {
		t.Errorf("DeleteMpa(in use) error = %v, want ErrConflict", err)
	}
	checkNoError(t, db.DeleteMpa(ctx, 5))
	if _, err := db.GetMpa(ctx, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMpa() error = %v, want ErrNotFound", err)
	}
}

func TestMissingReferences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	missing, err := db.MissingGenres(ctx, []int64{1, 99, 6, 100})
	checkNoError(t, err)
	checkIDs(t, "missing genres", missing, []int64{99, 100})

	missing, err = db.MissingDirectors(ctx, []int64{7})
	checkNoError(t, err)
	checkIDs(t, "missing directors", missing, []int64{7})
}

func TestUserFeedOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := insertUser(t, db, "u")
	other := insertUser(t, db, "other")
	for i := int64(1); i <= 3; i++ {
		checkNoError(t, db.InsertFeedEvent(ctx, &models.FeedEvent{
			UserID: u.ID, EntityID: i, EventType: models.EventLike, Operation: models.OperationAdd,
		}))
	}
	checkNoError(t, db.InsertFeedEvent(ctx, &models.FeedEvent{
		UserID: other.ID, EntityID: 9, EventType: models.EventFriend, Operation: models.OperationAdd,
	}))

	feed, err := db.UserFeed(ctx, u.ID)
	checkNoError(t, err)
	if len(feed) != 3 {
		t.Fatalf("expected 3 events, got %d", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].EventID <= feed[i-1].EventID {
			t.Errorf("events out of order: %d after %d", feed[i].EventID, feed[i-1].EventID)
		}
		if feed[i].Timestamp < feed[i-1].Timestamp {
			t.Errorf("timestamps out of order: %d after %d", feed[i].Timestamp, feed[i-1].Timestamp)
		}
	}

	checkNoError(t, db.DeleteEventsByEntityID(ctx, 2, models.EventLike))
	feed, err = db.UserFeed(ctx, u.ID)
	checkNoError(t, err)
	if len(feed) != 2 {
		t.Errorf("expected 2 events after entity cleanup, got %d", len(feed))
	}
}

func TestLikeOverlaps(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := insertFilm(t, db, "A", 2000, nil, nil)
	b := insertFilm(t, db, "B", 2000, nil, nil)
	c := insertFilm(t, db, "C", 2000, nil, nil)
	u1 := insertUser(t, db, "u1")
	u2 := insertUser(t, db, "u2")
	u3 := insertUser(t, db, "u3")
	insertUser(t, db, "loner")

	like(t, db, a.ID, u1.ID)
	like(t, db, b.ID, u1.ID)
	like(t, db, b.ID, u2.ID)
	like(t, db, c.ID, u2.ID)
	like(t, db, a.ID, u3.ID)
	like(t, db, b.ID, u3.ID)

	overlaps, err := db.LikeOverlaps(ctx, u1.ID)
	checkNoError(t, err)
	want := []models.LikeOverlap{{UserID: u3.ID, Common: 2}, {UserID: u2.ID, Common: 1}}
	if len(overlaps) != len(want) {
		t.Fatalf("LikeOverlaps() = %+v, want %+v", overlaps, want)
	}
	for i := range want {
		if overlaps[i] != want[i] {
			t.Errorf("LikeOverlaps()[%d] = %+v, want %+v", i, overlaps[i], want[i])
		}
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithTx(ctx, func(tx *Store) error {
		if err := tx.CreateGenre(ctx, &models.Genre{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}

	genres, err := db.ListGenres(ctx)
	checkNoError(t, err)
	for _, g := range genres {
		if g.Name == "Ghost" {
			t.Error("rolled back genre is visible")
		}
	}
}

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint bool
		conflict   bool
		retryable  bool
	}{
		{"nil", nil, false, false, false},
		{"unique in statement", errors.New("Constraint Error: Duplicate key \"user_id: 1\" violates unique constraint"), true, false, true},
		{"primary key in statement", errors.New("Constraint Error: Duplicate key \"film_id: 3, user_id: 7\" violates primary key constraint"), true, false, true},
		{"primary key at commit", errors.New("commit transaction: Failed to commit: PRIMARY KEY or UNIQUE constraint violation: duplicate key \"3, 7\""), false, false, true},
		{"write-write", errors.New("TransactionContext Error: Catalog write-write conflict on alter with \"x\". Transaction conflict"), false, true, true},
		{"unrelated", errors.New("connection refused"), false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConstraintViolation(tt.err); got != tt.constraint {
				t.Errorf("isConstraintViolation() = %v, want %v", got, tt.constraint)
			}
			if got := isTransactionConflict(tt.err); got != tt.conflict {
				t.Errorf("isTransactionConflict() = %v, want %v", got, tt.conflict)
			}
			if got := isRetryable(tt.err); got != tt.retryable {
				t.Errorf("isRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestWithTxRetriesDuplicateKey(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	calls := 0
	err := db.WithTx(ctx, func(*Store) error {
		calls++
		if calls < 3 {
			return errors.New("Failed to commit: PRIMARY KEY or UNIQUE constraint violation")
		}
		return nil
	})
	checkNoError(t, err)
	if calls != 3 {
		t.Errorf("fn ran %d times, want 3", calls)
	}

	calls = 0
	err = db.WithTx(ctx, func(*Store) error {
		calls++
		return errors.New("Constraint Error: Duplicate key \"id: 1\" violates primary key constraint")
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("WithTx() error = %v, want ErrConflict after %d attempts", err, calls)
	}
	if calls != maxTxAttempts {
		t.Errorf("fn ran %d times, want %d", calls, maxTxAttempts)
	}
}

func ptr[T any](v T) *T { return &v }
