package model

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	Name         *string    `gorm:"size:128"`
	Email        string     `gorm:"size:255;uniqueIndex"`
	StudentID    *string    `gorm:"size:64"`
	PasswordHash *string    `gorm:"size:255"`
	CreatedAt    *time.Time `gorm:"autoCreateTime"`
}

// Document is one uploaded source (pdf, txt, or a media file whose transcript
// becomes the text content). Status moves uploaded -> processing -> ready|failed.
type Document struct {
	ID               int64   `gorm:"primaryKey"`
	UserID           int64   `gorm:"index"`
	OriginalFilename *string `gorm:"size:512"`
	FilePath         *string `gorm:"size:1024"`
	Sha256           *string `gorm:"size:64"`
	Status           string  `gorm:"size:32;default:uploaded"`
	UploadedAt       *time.Time
}

type Chunk struct {
	ID               int64 `gorm:"primaryKey"`
	DocumentID       int64 `gorm:"index"`
	ChunkIndex       int32
	PageIndex        *int32
	Content          string `gorm:"type:mediumtext"`
	ContentPreview   *string
	TokenCount       *int
	MilvusCollection string `gorm:"size:128"`
	MilvusID         int64
	ContentHash      string `gorm:"size:64"`
}

// Question stores one generated question. Choices is a JSON-encoded string
// array for multiple-choice items and NULL otherwise; the options are never
// stored as evaluatable source text. IsExtra marks substitution inventory
// banked beyond the requested count.
type Question struct {
	ID           int64   `gorm:"primaryKey"`
	UserID       int64   `gorm:"index"`
	Subject      string  `gorm:"size:255"`
	Subtopic     string  `gorm:"size:255;index"`
	QuestionType string  `gorm:"size:32"`
	QuestionText string  `gorm:"type:text"`
	Choices      *string `gorm:"type:text"`
	AnswerText   string  `gorm:"type:text"`
	Explanation  string  `gorm:"type:text"`
	IsExtra      bool    `gorm:"index"`
	Position     int
	CreatedAt    *time.Time `gorm:"autoCreateTime"`
}

type Room struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"size:255"`
	OwnerID      int64  `gorm:"index"`
	PasswordHash string `gorm:"size:255"`
	StartAt      *time.Time
	EndAt        *time.Time
	CreatedAt    *time.Time `gorm:"autoCreateTime"`
}

type RoomQuestion struct {
	ID         int64 `gorm:"primaryKey"`
	RoomID     int64 `gorm:"index"`
	QuestionID int64
	Position   int
}

type RoomAnswer struct {
	ID         int64 `gorm:"primaryKey"`
	RoomID     int64 `gorm:"index"`
	UserID     int64 `gorm:"index"`
	QuestionID int64
	AnswerText string `gorm:"type:text"`
	IsCorrect  *bool
	CreatedAt  *time.Time `gorm:"autoCreateTime"`
}

type Score struct {
	ID              int64 `gorm:"primaryKey"`
	RoomID          int64 `gorm:"index"`
	UserID          int64 `gorm:"index"`
	PercentageScore float64
	TotalQuestions  int
	CorrectAnswers  int
	CreatedAt       *time.Time `gorm:"autoCreateTime"`
}
