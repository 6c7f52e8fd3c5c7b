package service

import (
	"voiceunheard/internal/config"
	"voiceunheard/internal/localstore"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
	"voiceunheard/internal/storage"
)

type Service struct {
	Auth       AuthService
	Session    SessionService
	Device     DeviceService
	Like       LikeService
	Feed       FeedService
	Comment    CommentService
	Story      StoryService
	Moderation ModerationService
	Directory  DirectoryService
	Profile    ProfileService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, kv localstore.KV, store *state.Store) *Service {
	identity := localstore.NewIdentityStore(kv)
	auth := NewAuthService(rep.User, rep.Profile, kv, cfg)
	feed := NewFeedService(rep.Story, rep.Comment, store)

	return &Service{
		Auth:       auth,
		Session:    NewSessionService(auth, rep.Profile, store, feed),
		Device:     NewDeviceService(identity, store),
		Like:       NewLikeService(rep.Story, identity, store, cfg),
		Feed:       feed,
		Comment:    NewCommentService(rep.Comment, store),
		Story:      NewStoryService(rep.Story, storage, store, feed),
		Moderation: NewModerationService(rep.Story, feed, store),
		Directory:  NewDirectoryService(rep.Directory),
		Profile:    NewProfileService(rep.Story, rep.Comment, store),
	}
}
