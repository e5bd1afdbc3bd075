// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
)

const userSelect = "SELECT id, email, login, name, birthday FROM users"

func birthdayArg(b *models.Date) any {
	if b == nil || b.IsZero() {
		return nil
	}
	return b.Time
}

// CreateUser inserts a user and sets u.ID.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.q.QueryRowContext(ctx,
		"INSERT INTO users (email, login, name, birthday) VALUES (?, ?, ?, ?) RETURNING id",
		u.Email, u.Login, u.Name, birthdayArg(u.Birthday)).Scan(&u.ID)
	recordQuery("INSERT", "users", start, err)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.Friends = []int64{}
	return nil
}

// UpdateUser overwrites a user's profile. Returns ErrNotFound if absent.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "UPDATE", "users",
		"UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE id = ?",
		u.Email, u.Login, u.Name, birthdayArg(u.Birthday), u.ID)
	if err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("user %d: %w", u.ID, ErrNotFound)
	}
	return nil
}

// GetUser returns a user with confirmed friend ids, or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	users, err := s.UsersByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &users[0], nil
}

// ListUsers returns every user ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "users", userSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, s.attachFriends(ctx, users)
}

// UsersByIDs loads users in the order of ids, skipping unknown ids.
func (s *Store) UsersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	ph, args := placeholders(ids)
	rows, err := s.query(ctx, "users", userSelect+" WHERE id IN ("+ph+")", args...)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	loaded, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	byID := make(map[int64]models.User, len(loaded))
	for _, u := range loaded {
		byID[u.ID] = u
	}
	users := make([]models.User, 0, len(loaded))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, s.attachFriends(ctx, users)
}

// DeleteUser removes a user and everything that references them: friendship
// edges in both directions, likes, their reviews with those reviews' votes,
// their own votes and their feed. Run it inside WithTx.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	cascade := []struct {
		table, query string
		args         []any
	}{
		{"friendships", "DELETE FROM friendships WHERE user_id = ? OR friend_id = ?", []any{id, id}},
		{"likes", "DELETE FROM likes WHERE user_id = ?", []any{id}},
		{"review_votes", "DELETE FROM review_votes WHERE user_id = ? OR review_id IN (SELECT id FROM reviews WHERE user_id = ?)", []any{id, id}},
		{"reviews", "DELETE FROM reviews WHERE user_id = ?", []any{id}},
	}
	for _, c := range cascade {
		if _, err := s.exec(ctx, "DELETE", c.table, c.query, c.args...); err != nil {
			return fmt.Errorf("delete %s of user %d: %w", c.table, id, err)
		}
	}
	if err := s.DeleteEventsByUserID(ctx, id); err != nil {
		return err
	}

	res, err := s.exec(ctx, "DELETE", "users", "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// UserExists reports whether a user with id exists.
func (s *Store) UserExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "users", "SELECT 1 FROM users WHERE id = ?", id)
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	defer closeWithLog(rows, "rows")

	users := make([]models.User, 0)
	for rows.Next() {
		var (
			u        models.User
			birthday sql.NullTime
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &birthday); err != nil {
			return nil, err
		}
		if birthday.Valid {
			u.Birthday = &models.Date{Time: birthday.Time.UTC()}
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// attachFriends fills Friends with each user's confirmed outgoing edges.
func (s *Store) attachFriends(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	index := make(map[int64]int, len(users))
	ids := make([]int64, len(users))
	for i := range users {
		users[i].Friends = []int64{}
		index[users[i].ID] = i
		ids[i] = users[i].ID
	}

	ph, args := placeholders(ids)
	args = append(args, string(models.FriendshipConfirmed))
	rows, err := s.query(ctx, "friendships", `SELECT user_id, friend_id FROM friendships
		WHERE user_id IN (`+ph+`) AND status = ?
		ORDER BY user_id, friend_id`, args...)
	if err != nil {
		return fmt.Errorf("load friends: %w", err)
	}
	err = eachRow(rows, func(r *sql.Rows) error {
		var userID, friendID int64
		if err := r.Scan(&userID, &friendID); err != nil {
			return err
		}
		u := &users[index[userID]]
		u.Friends = append(u.Friends, friendID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan friends: %w", err)
	}
	return nil
}
