package models

import (
	"time"

	"github.com/lib/pq"
)

// Crowd status codes stored in Report.CrowdStatus and Vibe.CrowdStatus.
const (
	CrowdEmpty  = 1
	CrowdBusy   = 2
	CrowdPacked = 3
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         *string   `json:"name,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	JoinedAt     time.Time `gorm:"not null;autoCreateTime" json:"joined_at"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
}

type Report struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Location     Point          `gorm:"type:geometry(Point,4326);not null;index:idx_reports_location,type:gist" json:"-"`
	PlaceName    string         `gorm:"size:100;index;not null" json:"place_name"`
	CrowdStatus  int            `gorm:"not null" json:"crowd_status"`
	DecibelLevel float64        `gorm:"not null" json:"decibel_level"`
	VibeTags     pq.StringArray `gorm:"type:text[]" json:"vibe_tags"`
	UserID       int64          `gorm:"index;not null" json:"user_id"`
	Timestamp    time.Time      `gorm:"not null;default:now()" json:"timestamp"`
}

type Vibe struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       *int64         `gorm:"index" json:"user_id,omitempty"`
	Location     *Point         `gorm:"type:geometry(Point,4326);index:idx_vibes_location,type:gist" json:"-"`
	PlaceName    string         `gorm:"size:150;not null" json:"place_name"`
	CrowdStatus  int            `gorm:"not null" json:"crowd_status"`
	DecibelLevel float64        `gorm:"not null" json:"decibel_level"`
	VibeTags     pq.StringArray `gorm:"type:text[]" json:"vibe_tags"`
	Timestamp    time.Time      `gorm:"not null;autoCreateTime" json:"timestamp"`

	User    *User        `gorm:"foreignKey:UserID" json:"-"`
	Media   []VibeMedia  `gorm:"foreignKey:VibeID" json:"media,omitempty"`
	Metrics *VibeMetrics `gorm:"foreignKey:VibeID" json:"metrics,omitempty"`
}

type VibeMedia struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VibeID       int64     `gorm:"index;not null" json:"vibe_id"`
	MediaType    string    `gorm:"size:10;not null" json:"media_type"`
	FileURL      string    `gorm:"not null" json:"file_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	UploadedAt   time.Time `gorm:"not null;autoCreateTime" json:"uploaded_at"`
}

type VibeMetrics struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VibeID        int64     `gorm:"uniqueIndex;not null" json:"vibe_id"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count"`
	SharesCount   int       `gorm:"not null;default:0" json:"shares_count"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type Follower struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID int64     `gorm:"index;not null" json:"follower_id"`
	FollowedID int64     `gorm:"index;not null" json:"followed_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

type Session struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"index;not null" json:"user_id"`
	Token     string     `gorm:"uniqueIndex;not null" json:"token"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
