package infrastructure

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Session is a stored browser session.
type Session struct {
	ID         string `gorm:"primaryKey;size:36"`
	Credential string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewMySQLConnection opens the session database and migrates its schema.
func NewMySQLConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DB_DSN is not set in environment")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("connected to MySQL and migrated session schema")
	return db, nil
}

// DBStore keeps credentials server side. The cookie only carries a random
// session id.
type DBStore struct {
	db   *gorm.DB
	opts cookieOptions
}

// NewDBStore creates a database backed session store
func NewDBStore(db *gorm.DB, cfg SessionConfig) *DBStore {
	return &DBStore{db: db, opts: cookieOptions{secure: cfg.CookieSecure, maxAge: cfg.MaxAge}}
}

func (s *DBStore) Load(r *http.Request) (string, error) {
	id := readCookie(r)
	if id == "" {
		return "", nil
	}

	var sess Session
	err := s.db.WithContext(r.Context()).First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if s.opts.maxAge > 0 && time.Since(sess.UpdatedAt) > s.opts.maxAge {
		return "", nil
	}
	return sess.Credential, nil
}

func (s *DBStore) Save(w http.ResponseWriter, r *http.Request, credential string) error {
	// a fresh id on every login; any previous session is dropped
	if old := readCookie(r); old != "" {
		if err := s.db.WithContext(r.Context()).Delete(&Session{}, "id = ?", old).Error; err != nil {
			return fmt.Errorf("failed to drop old session: %w", err)
		}
	}

	sess := Session{ID: uuid.NewString(), Credential: credential}
	if err := s.db.WithContext(r.Context()).Create(&sess).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.opts.set(w, sess.ID)
	return nil
}

func (s *DBStore) Clear(w http.ResponseWriter, r *http.Request) error {
	s.opts.expire(w)
	id := readCookie(r)
	if id == "" {
		return nil
	}
	if err := s.db.WithContext(r.Context()).Delete(&Session{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
