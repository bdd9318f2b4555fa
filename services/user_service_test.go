package services

import (
	"errors"
	"strings"
	"testing"

	"catfacts-api/models"
)

func TestCreateUserDerivesAvatar(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Create("Tabby123")
	if err != nil {
		t.Fatalf("expected user to be created, got error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected a server-assigned id")
	}
	want := "https://api.dicebear.com/7.x/avataaars/svg?seed=tabby123"
	if user.Avatar != want {
		t.Fatalf("avatar = %q, want %q", user.Avatar, want)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp to be set")
	}

	// Same name always derives the same avatar.
	if avatarURL("Tabby123") != want {
		t.Fatalf("avatar derivation is not deterministic")
	}
}

func TestCreateUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	cases := []struct {
		name     string
		username string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "ab"},
		{"too long", strings.Repeat("x", 21)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(tc.username); !IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows persisted, found %d", count)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	if _, err := svc.Create("Whiskers"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create("Whiskers"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one row, found %d", count)
	}
}

func TestListUsersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	createTestUser(t, db, "FirstCat")
	createTestUser(t, db, "SecondCat")

	users, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestGetUserMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	if _, err := svc.Get(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := createTestUser(t, db, "Mittens")
	if err := svc.Delete(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second delete: expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserCascadesGames(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(db)
	gameSvc := NewGameService(db)

	user := createTestUser(t, db, "Shadow")
	if _, err := gameSvc.Start(user.ID, models.DifficultyEasy, 6); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := userSvc.Delete(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&models.Game{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected games to cascade on user delete, found %d", count)
	}
}
