// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package service

import (
	"context"
	"strings"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/validation"
)

// UserService manages users and the directed friendship graph between them.
type UserService struct {
	db *database.DB
}

// Create validates and stores a user. A blank name defaults to the login.
func (s *UserService) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if err := s.db.CreateUser(ctx, u); err != nil {
		return nil, Internal("create user", err)
	}
	logging.Ctx(ctx).Debug().Int64("user_id", u.ID).Str("login", u.Login).Msg("User created")
	return s.Get(ctx, u.ID)
}

// Update overwrites a user's profile. A blank name defaults to the login.
func (s *UserService) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if err := s.db.UpdateUser(ctx, u); err != nil {
		return nil, fromStore("update user", describe("user", u.ID), err)
	}
	logging.Ctx(ctx).Debug().Int64("user_id", u.ID).Msg("User updated")
	return s.Get(ctx, u.ID)
}

// Get returns a user with their confirmed friend ids.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.db.GetUser(ctx, id)
	if err != nil {
		return nil, fromStore("get user", describe("user", id), err)
	}
	return u, nil
}

// List returns every user by id.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.db.ListUsers(ctx)
	if err != nil {
		return nil, Internal("list users", err)
	}
	return users, nil
}

// Delete removes a user and every relation and feed event owned by them.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		return fromStore("delete user", describe("user", id), tx.DeleteUser(ctx, id))
	})
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Debug().Int64("user_id", id).Msg("User deleted")
	return nil
}

// AddFriend creates a PENDING request from userID to friendID and appends a
// FRIEND/ADD event on userID's feed. Repeating it keeps the current status.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return Validationf("user %d cannot befriend themselves", userID)
	}
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requirePair(ctx, tx, userID, friendID); err != nil {
			return err
		}
		if _, err := tx.AddFriend(ctx, userID, friendID); err != nil {
			return Internal("add friend", err)
		}
		return emit(ctx, tx, userID, friendID, models.EventFriend, models.OperationAdd)
	})
}

// ConfirmFriend promotes the edge userID -> friendID to CONFIRMED and appends
// a FRIEND/UPDATE event. NotFound when no request exists. Confirming an
// already CONFIRMED edge is a no-op and emits nothing.
func (s *UserService) ConfirmFriend(ctx context.Context, userID, friendID int64) error {
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requirePair(ctx, tx, userID, friendID); err != nil {
			return err
		}
		what := "friend request " + describe("user", userID) + " -> " + describe("user", friendID)
		edge, err := tx.GetFriendship(ctx, userID, friendID)
		if err != nil {
			return fromStore("confirm friend", what, err)
		}
		if edge.Status == models.FriendshipConfirmed {
			return nil
		}
		if err := tx.ConfirmFriend(ctx, userID, friendID); err != nil {
			return fromStore("confirm friend", what, err)
		}
		return emit(ctx, tx, userID, friendID, models.EventFriend, models.OperationUpdate)
	})
}

// RemoveFriend deletes the edge userID -> friendID, if any, and appends a
// FRIEND/REMOVE event.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requirePair(ctx, tx, userID, friendID); err != nil {
			return err
		}
		if _, err := tx.RemoveFriend(ctx, userID, friendID); err != nil {
			return Internal("remove friend", err)
		}
		return emit(ctx, tx, userID, friendID, models.EventFriend, models.OperationRemove)
	})
}

// Friends returns the users on userID's CONFIRMED outgoing edges.
func (s *UserService) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	if err := requireUser(ctx, s.db.Store, userID); err != nil {
		return nil, err
	}
	friends, err := s.db.Friends(ctx, userID)
	if err != nil {
		return nil, Internal("list friends", err)
	}
	return friends, nil
}

// CommonFriends returns users both have confirmed as friends.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	if err := requirePair(ctx, s.db.Store, userID, otherID); err != nil {
		return nil, err
	}
	common, err := s.db.CommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, Internal("common friends", err)
	}
	return common, nil
}

func requirePair(ctx context.Context, s *database.Store, a, b int64) error {
	if err := requireUser(ctx, s, a); err != nil {
		return err
	}
	return requireUser(ctx, s, b)
}

func validateUser(u *models.User) error {
	if u == nil {
		return Validationf("user body is required")
	}
	if verr := validation.ValidateStruct(u); verr != nil {
		return invalid(verr)
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	return nil
}
