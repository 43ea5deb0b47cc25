package stores

import (
	"fmt"
	"net/url"

	"github.com/trofybr/trofy-pedidos-api/models"
	"gorm.io/gorm"
)

// LinkStore owns the admin landing-page bookmarks
type LinkStore struct {
	db *gorm.DB
}

// NewLinkStore creates a new LinkStore backed by db
func NewLinkStore(db *gorm.DB) *LinkStore {
	return &LinkStore{db: db}
}

// CreateLinkInput carries the fields accepted when creating a link
type CreateLinkInput struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UpdateLinkInput carries the optional fields of a partial link update
type UpdateLinkInput struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// Create validates and persists a new link
func (s *LinkStore) Create(input CreateLinkInput) (*models.Link, error) {
	if input.Title == "" || input.URL == "" {
		return nil, fmt.Errorf("title and URL are required")
	}
	if !isValidURL(input.URL) {
		return nil, fmt.Errorf("invalid URL format")
	}
	if input.Icon == "" {
		input.Icon = "Link"
	}
	if !models.IsAllowedIcon(input.Icon) {
		return nil, fmt.Errorf("invalid icon")
	}

	link := models.Link{
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
		Icon:        input.Icon,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return &link, nil
}

// FindAll returns all links, newest first
func (s *LinkStore) FindAll() ([]models.Link, error) {
	var links []models.Link
	if err := s.db.Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// FindByID returns a single link; gorm.ErrRecordNotFound for unknown ids
func (s *LinkStore) FindByID(id uint) (*models.Link, error) {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Update applies a partial update. Unset fields keep their prior value;
// at least one field must be provided.
func (s *LinkStore) Update(id uint, input UpdateLinkInput) (*models.Link, error) {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil && *input.Title != "" {
		updates["title"] = *input.Title
	}
	if input.URL != nil && *input.URL != "" {
		if !isValidURL(*input.URL) {
			return nil, fmt.Errorf("invalid URL format")
		}
		updates["url"] = *input.URL
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Icon != nil && *input.Icon != "" {
		if !models.IsAllowedIcon(*input.Icon) {
			return nil, fmt.Errorf("invalid icon")
		}
		updates["icon"] = *input.Icon
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no valid fields to update")
	}

	if err := s.db.Model(&link).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update link %d: %w", id, err)
	}
	if err := s.db.First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete removes a link, reporting whether a row was deleted
func (s *LinkStore) Delete(id uint) (bool, error) {
	result := s.db.Delete(&models.Link{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete link %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
