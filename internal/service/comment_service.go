package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
)

type CommentService interface {
	LoadComments(ctx context.Context, storyID string) ([]models.Comment, error)
	SubmitComment(ctx context.Context, storyID, body string) (*models.Comment, error)
	DeleteComment(ctx context.Context, storyID, commentID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	store       *state.Store
}

func NewCommentService(commentRepo repository.CommentRepository, store *state.Store) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		store:       store,
	}
}

func (s *commentService) LoadComments(ctx context.Context, storyID string) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByStory(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки комментариев: %w", err)
	}

	s.store.Update(func(st state.State) state.State {
		return state.SetComments(st, storyID, comments)
	})
	return comments, nil
}

// SubmitComment attributes the comment to the signed-in user and to this
// device, whichever are known. Local state changes only after the insert.
func (s *commentService) SubmitComment(ctx context.Context, storyID, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: комментарий не может быть пустым", ErrValidation)
	}

	snap := s.store.Snapshot()
	if snap.UserID() == "" && snap.DeviceID == "" {
		return nil, ErrDeviceIDMissing
	}

	comment := &models.Comment{
		PostID:  storyID,
		Content: body,
	}
	if userID := snap.UserID(); userID != "" {
		comment.UserID = &userID
	}
	if deviceID := snap.DeviceID; deviceID != "" {
		comment.CreatorDeviceID = &deviceID
	}

	created, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("ошибка отправки комментария: %w", err)
	}

	s.store.Update(func(st state.State) state.State {
		return state.AddComment(st, *created)
	})
	return created, nil
}

// DeleteComment removes a comment created from this device. Ownership is
// checked locally first and again by the remote delete filter.
func (s *commentService) DeleteComment(ctx context.Context, storyID, commentID string) error {
	snap := s.store.Snapshot()
	if snap.DeviceID == "" {
		return ErrDeviceIDMissing
	}

	owner, err := s.commentOwner(ctx, snap, storyID, commentID)
	if err != nil {
		return err
	}
	if owner != snap.DeviceID {
		return ErrNotCommentOwner
	}

	deleted, err := s.commentRepo.DeleteOwned(ctx, commentID, snap.DeviceID)
	if err != nil {
		return fmt.Errorf("ошибка удаления комментария: %w", err)
	}
	if !deleted {
		return ErrNotCommentOwner
	}

	s.store.Update(func(st state.State) state.State {
		return state.RemoveComment(st, storyID, commentID)
	})

	if _, err := s.LoadComments(ctx, storyID); err != nil {
		slog.Warn("[CommentService] comments not refreshed after delete",
			slog.String("story_id", storyID),
			slog.Any("error", err))
	}
	return nil
}

// commentOwner returns the creating device of a comment, reading the stored
// record when the comment is not loaded locally.
func (s *commentService) commentOwner(ctx context.Context, snap state.State, storyID, commentID string) (string, error) {
	comment, ok := snap.FindComment(storyID, commentID)
	if !ok {
		stored, err := s.commentRepo.GetByID(ctx, commentID)
		if err != nil {
			return "", fmt.Errorf("ошибка получения комментария: %w", err)
		}
		comment = *stored
	}

	if comment.CreatorDeviceID == nil {
		return "", nil
	}
	return *comment.CreatorDeviceID, nil
}
