package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"catfacts-api/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// avatarURL derives a deterministic avatar for a username. The seed is
// slugified so spaces and case don't produce distinct avatars for what reads
// as the same name.
func avatarURL(name string) string {
	return avatarBaseURL + slug.Make(name)
}

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Create validates the username, derives the avatar and email, and persists
// the profile. Duplicate names fail with ErrUsernameTaken.
func (s *UserService) Create(username string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, validationf("Username is required")
	}
	if utf8.RuneCountInString(username) < 3 {
		return nil, validationf("Username must be at least 3 characters")
	}
	if utf8.RuneCountInString(username) > 20 {
		return nil, validationf("Username must be less than 20 characters")
	}

	var existing models.User
	err := s.DB.Where("name = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Name:   username,
		Email:  fmt.Sprintf("%s@example.com", strings.ToLower(username)),
		Avatar: avatarURL(username),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s (id=%d)", user.Name, user.ID)
	return &user, nil
}

// List returns all users, newest first. No pagination.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Avatar == "" {
			users[i].Avatar = avatarURL(users[i].Name)
		}
	}
	return users, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Avatar == "" {
		user.Avatar = avatarURL(user.Name)
	}
	return &user, nil
}

// Delete removes a user; their games go with them via the FK cascade.
func (s *UserService) Delete(id uint) error {
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
