package service

import (
	"context"
	"fmt"

	"voiceunheard/internal/device"
	"voiceunheard/internal/localstore"
	"voiceunheard/internal/state"
)

// DeviceService loads what this installation remembers about itself into state.
type DeviceService interface {
	Bootstrap(ctx context.Context) (state.State, error)
	CompleteIntroduction(ctx context.Context) (state.State, error)
	DescribeLocation(p device.Placemark) (string, error)
}

type deviceService struct {
	identity *localstore.IdentityStore
	store    *state.Store
}

func NewDeviceService(identity *localstore.IdentityStore, store *state.Store) DeviceService {
	return &deviceService{identity: identity, store: store}
}

func (s *deviceService) Bootstrap(ctx context.Context) (state.State, error) {
	deviceID, err := s.identity.GetOrCreateDeviceID(ctx)
	if err != nil {
		return s.store.Snapshot(), fmt.Errorf("%w: %v", ErrDeviceIDMissing, err)
	}
	introShown := s.identity.HasCompletedIntroduction(ctx)
	liked := s.identity.LoadLikedSet(ctx)

	return s.store.Update(func(st state.State) state.State {
		return state.SetLiked(state.SetDevice(st, deviceID, introShown), liked)
	}), nil
}

func (s *deviceService) CompleteIntroduction(ctx context.Context) (state.State, error) {
	if err := s.identity.MarkIntroductionComplete(ctx); err != nil {
		return s.store.Snapshot(), fmt.Errorf("ошибка сохранения флага знакомства: %w", err)
	}
	return s.store.Update(state.MarkIntroShown), nil
}

// DescribeLocation turns the shell's reverse-geocoded position into the
// free-text location a story carries.
func (s *deviceService) DescribeLocation(p device.Placemark) (string, error) {
	return p.Describe()
}
