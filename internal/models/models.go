package models

import (
	"time"
)

type Role string

const (
	RoleNone      Role = "none"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

type Tab string

const (
	TabFeed    Tab = "feed"
	TabSpeak   Tab = "speak"
	TabAdmin   Tab = "admin"
	TabLearn   Tab = "learn"
	TabHelp    Tab = "help"
	TabProfile Tab = "profile"
)

// Story is a user-submitted narrative. It is visible in the public feed iff IsApproved.
type Story struct {
	ID              string    `json:"id" db:"id"`
	UserID          *string   `json:"userId,omitempty" db:"user_id"`
	Title           string    `json:"title" db:"title"`
	Content         string    `json:"content" db:"content"`
	Category        string    `json:"category" db:"category"`
	IsApproved      bool      `json:"isApproved" db:"is_approved"`
	IsVerified      bool      `json:"isVerified" db:"is_verified"`
	LikesCount      int       `json:"likesCount" db:"likes_count"`
	ImageURL        *string   `json:"imageUrl,omitempty" db:"image_url"`
	Location        *string   `json:"location,omitempty" db:"location"`
	AuthorName      *string   `json:"authorName,omitempty" db:"author_name"`
	AuthorAvatarURL *string   `json:"authorAvatarUrl,omitempty" db:"author_avatar_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	CommentsCount   int       `json:"commentsCount" db:"-"`
}

// Comment is attributed to a signed-in user, a device, or both.
type Comment struct {
	ID              string    `json:"id" db:"id"`
	PostID          string    `json:"postId" db:"post_id"`
	Content         string    `json:"content" db:"content"`
	UserID          *string   `json:"userId,omitempty" db:"user_id"`
	CreatorDeviceID *string   `json:"creatorDeviceId,omitempty" db:"creator_device_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

type Resource struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	URL         string    `json:"url" db:"url"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	Type        string    `json:"type" db:"type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Helpline struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	ActionType  string    `json:"actionType" db:"action_type"`
	ContactData *string   `json:"contactData,omitempty" db:"contact_data"`
	ColorTheme  *string   `json:"colorTheme,omitempty" db:"color_theme"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

// Session is what the auth provider hands out after a successful credential check.
type Session struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type SessionEvent string

const (
	EventInitialSession SessionEvent = "INITIAL_SESSION"
	EventSignedIn       SessionEvent = "SIGNED_IN"
	EventSignedOut      SessionEvent = "SIGNED_OUT"
	EventTokenRefreshed SessionEvent = "TOKEN_REFRESHED"
)

type ImpactStats struct {
	TotalVoices int    `json:"totalVoices"`
	TopCategory string `json:"topCategory"`
	TodayCount  int    `json:"todayCount"`
}

type ProfileStats struct {
	PostsCount    int `json:"postsCount"`
	CommentsCount int `json:"commentsCount"`
}

type Profile struct {
	Stats    ProfileStats `json:"stats"`
	Stories  []Story      `json:"stories"`
	Comments []Comment    `json:"comments"`
}
