package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"voiceunheard/internal/models"
)

func TestProfileService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Требуется вход", func(t *testing.T) {
		_, err := NewProfileService(new(MockStoryRepository), new(MockCommentRepository), newTestStore()).Load(ctx)

		assert.ErrorIs(t, err, ErrNotSignedIn)
	})

	t.Run("Частичные ошибки дают значения по умолчанию", func(t *testing.T) {
		storyRepo := new(MockStoryRepository)
		commentRepo := new(MockCommentRepository)
		store := newTestStore()
		signIn(store, "u1", "a@b.c", models.RoleUser)

		storyRepo.On("CountByUser", mock.Anything, "u1").Return(3, nil)
		storyRepo.On("ListByUser", mock.Anything, "u1", 20).Return([]models.Story{{ID: "s1"}}, nil)
		commentRepo.On("CountByUser", mock.Anything, "u1").Return(0, errors.New("column missing"))
		commentRepo.On("ListByUser", mock.Anything, "u1", 20).Return(nil, errors.New("column missing"))

		profile, err := NewProfileService(storyRepo, commentRepo, store).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, models.ProfileStats{PostsCount: 3}, profile.Stats)
		assert.Len(t, profile.Stories, 1)
		assert.NotNil(t, profile.Comments)
		assert.Empty(t, profile.Comments)
	})
}
