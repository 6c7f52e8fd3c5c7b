package service

import (
	"errors"

	"voiceunheard/internal/device"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
)

var (
	ErrValidation       = errors.New("ошибка валидации")
	ErrForbidden        = errors.New("недостаточно прав")
	ErrNotSignedIn      = errors.New("требуется вход")
	ErrNotCommentOwner  = errors.New("комментарий принадлежит другому устройству")
	ErrDeviceIDMissing  = errors.New("идентификатор устройства недоступен")
	ErrUnknownAction    = errors.New("неизвестный тип действия")
	ErrContactMissing   = errors.New("контакт не указан")
	ErrStoryNotLoaded   = state.ErrStoryNotLoaded
	ErrNotFound         = repository.ErrNotFound
	ErrPermissionDenied = device.ErrPermissionDenied
)
