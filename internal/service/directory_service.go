package service

import (
	"context"
	"fmt"
	"strings"

	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
)

var themes = map[string]bool{"red": true, "purple": true, "blue": true, "pink": true, "slate": true}

const defaultTheme = "slate"

// HelplineView is a helpline as the help screen shows it.
type HelplineView struct {
	models.Helpline
	Theme string `json:"theme"`
}

type DirectoryService interface {
	Resources(ctx context.Context) ([]models.Resource, error)
	Helplines(ctx context.Context) ([]HelplineView, error)
	HelplineAction(ctx context.Context, helplineID string) (string, error)
}

type directoryService struct {
	directoryRepo repository.DirectoryRepository
}

func NewDirectoryService(directoryRepo repository.DirectoryRepository) DirectoryService {
	return &directoryService{directoryRepo: directoryRepo}
}

func (s *directoryService) Resources(ctx context.Context) ([]models.Resource, error) {
	resources, err := s.directoryRepo.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки материалов: %w", err)
	}
	return resources, nil
}

func (s *directoryService) Helplines(ctx context.Context) ([]HelplineView, error) {
	helplines, err := s.directoryRepo.ListHelplines(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки линий помощи: %w", err)
	}

	views := make([]HelplineView, len(helplines))
	for i, h := range helplines {
		views[i] = HelplineView{Helpline: h, Theme: Theme(h.ColorTheme)}
	}
	return views, nil
}

func (s *directoryService) HelplineAction(ctx context.Context, helplineID string) (string, error) {
	helpline, err := s.directoryRepo.GetHelpline(ctx, helplineID)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки линии помощи: %w", err)
	}
	return ActionURL(*helpline)
}

// ActionURL turns a helpline into the URL the device should open.
func ActionURL(h models.Helpline) (string, error) {
	if h.ContactData == nil || strings.TrimSpace(*h.ContactData) == "" {
		return "", ErrContactMissing
	}
	contact := *h.ContactData

	switch strings.ToLower(h.ActionType) {
	case "call":
		return "tel:" + contact, nil
	case "text":
		return "sms:" + contact, nil
	case "web":
		return contact, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, h.ActionType)
	}
}

func Theme(raw *string) string {
	if raw == nil {
		return defaultTheme
	}
	if t := strings.ToLower(strings.TrimSpace(*raw)); themes[t] {
		return t
	}
	return defaultTheme
}
