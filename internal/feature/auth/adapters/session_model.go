package adapters

import (
	"time"

	"blog_backend/internal/feature/auth/domain/entity"
)

// SessionModel はsessionsテーブルのGORMモデルです。
type SessionModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	UserAgent string    `gorm:"size:512"`
	IPAddress string    `gorm:"size:45"` // IPv6の最大長
	CreatedAt time.Time `gorm:"not null"`
}

// TableName はGORM用のテーブル名を返します。
func (SessionModel) TableName() string {
	return "sessions"
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
	}
}

// SessionModelFromEntity はドメインエンティティをGORMモデルに変換します。
func SessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
	}
}
