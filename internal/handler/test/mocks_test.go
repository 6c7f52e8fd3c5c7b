package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"voiceunheard/internal/device"
	"voiceunheard/internal/models"
	"voiceunheard/internal/service"
	"voiceunheard/internal/state"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionService) SignIn(ctx context.Context, email, password string) (state.State, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockSessionService) SignUp(ctx context.Context, email, password string) (state.State, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockSessionService) SignOut(ctx context.Context) (state.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockSessionService) Current(ctx context.Context) state.State {
	args := m.Called(ctx)
	return args.Get(0).(state.State)
}

func (m *MockSessionService) IsModerator(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockSessionService) SetView(tab models.Tab) (state.State, error) {
	args := m.Called(tab)
	return args.Get(0).(state.State), args.Error(1)
}

type MockDeviceService struct {
	mock.Mock
}

func (m *MockDeviceService) Bootstrap(ctx context.Context) (state.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockDeviceService) CompleteIntroduction(ctx context.Context) (state.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockDeviceService) DescribeLocation(p device.Placemark) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) ToggleLike(ctx context.Context, storyID string) (state.State, error) {
	args := m.Called(ctx, storyID)
	return args.Get(0).(state.State), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) LoadFeed(ctx context.Context, filter string) (state.State, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockFeedService) Refresh(ctx context.Context) (state.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockFeedService) LoadStats(ctx context.Context) models.ImpactStats {
	args := m.Called(ctx)
	return args.Get(0).(models.ImpactStats)
}

func (m *MockFeedService) LoadModerationQueue(ctx context.Context) (state.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockFeedService) RefreshPendingCount(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) LoadComments(ctx context.Context, storyID string) ([]models.Comment, error) {
	args := m.Called(ctx, storyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentService) SubmitComment(ctx context.Context, storyID, body string) (*models.Comment, error) {
	args := m.Called(ctx, storyID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, storyID, commentID string) error {
	args := m.Called(ctx, storyID, commentID)
	return args.Error(0)
}

type MockStoryService struct {
	mock.Mock
}

func (m *MockStoryService) SubmitStory(ctx context.Context, req service.SubmitStoryRequest) (*models.Story, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) Approve(ctx context.Context, storyID string) (state.State, error) {
	args := m.Called(ctx, storyID)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockModerationService) Reject(ctx context.Context, storyID string) (state.State, error) {
	args := m.Called(ctx, storyID)
	return args.Get(0).(state.State), args.Error(1)
}

func (m *MockModerationService) ToggleVerify(ctx context.Context, storyID string) (state.State, error) {
	args := m.Called(ctx, storyID)
	return args.Get(0).(state.State), args.Error(1)
}

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) Resources(ctx context.Context) ([]models.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Resource), args.Error(1)
}

func (m *MockDirectoryService) Helplines(ctx context.Context) ([]service.HelplineView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.HelplineView), args.Error(1)
}

func (m *MockDirectoryService) HelplineAction(ctx context.Context, helplineID string) (string, error) {
	args := m.Called(ctx, helplineID)
	return args.String(0), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Load(ctx context.Context) (*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck() error {
	args := m.Called()
	return args.Error(0)
}

type MockSchemaRepository struct {
	mock.Mock
}

func (m *MockSchemaRepository) CountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSchemaRepository) MissingTables(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
