package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 简历生成状态。
const (
	ResumeStatusDraft      = "draft"
	ResumeStatusGenerating = "generating"
	ResumeStatusReady      = "ready"
	ResumeStatusFailed     = "failed"
)

// User 表示系统中的账号信息。邮箱即登录名。
type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:255"`
	Name         string   `gorm:"size:128"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历。结构化内容存放在 Content(JSONB)。
type Resume struct {
	gorm.Model
	Title    string         `gorm:"size:255"`
	Template string         `gorm:"size:64;default:modern"`
	Content  datatypes.JSON `gorm:"type:jsonb"`
	UserID   uint           `gorm:"index"`
	User     User           `gorm:"constraint:OnDelete:CASCADE"`
	PdfURL   string         `gorm:"size:512"`
	Status   string         `gorm:"size:32;default:draft"`
}
