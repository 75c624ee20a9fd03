package services

import (
	"context"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/upstream"
	"gorm.io/gorm"
)

const sessionTTL = 72 * time.Hour

// SessionService owns the portal session lifecycle: init on login, refresh on
// the who-am-I check, teardown on logout or upstream rejection. Each session
// caches the upstream bearer token; clearing that token kills the session.
type SessionService struct {
	db     *gorm.DB
	api    *upstream.Client
	secret []byte
}

func NewSessionService(db *gorm.DB, api *upstream.Client, jwtSecret string) *SessionService {
	return &SessionService{db: db, api: api, secret: []byte(jwtSecret)}
}

// PortalUser converts a wire user into the portal's normalized record.
func PortalUser(u upstream.User) models.PortalUser {
	return models.PortalUser{
		ID:             string(u.ID),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           models.NormalizeRole(u.Role),
		IsActive:       u.IsActive,
		ReferralCode:   u.ReferralCode,
		DiscountAmount: u.DiscountAmount,
		CreatedAt:      u.CreatedAt,
	}
}

// Login exchanges credentials upstream, persists a session around the issued
// bearer token, and signs the portal JWT the dashboard presents from then on.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Session, string, error) {
	token, wireUser, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	user := PortalUser(wireUser)
	sess := models.Session{
		ID:            uuid.New(),
		UserID:        user.ID,
		FullName:      user.FullName(),
		Email:         user.Email,
		Role:          user.Role,
		UpstreamToken: token,
		ExpiresAt:     time.Now().Add(sessionTTL),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return nil, "", err
	}

	signed, err := s.sign(&sess)
	if err != nil {
		return nil, "", err
	}
	return &sess, signed, nil
}

func (s *SessionService) sign(sess *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sess.ID.String(),
		"user_id":    sess.UserID,
		"role":       sess.Role,
		"exp":        sess.ExpiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *SessionService) Find(id uuid.UUID) (*models.Session, error) {
	var sess models.Session
	if err := s.db.First(&sess, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

// Current re-validates the session against the who-am-I endpoint and
// refreshes the cached user snapshot. A rejected token tears the session
// down; the caller answers 401 and the staff member logs in again.
func (s *SessionService) Current(ctx context.Context, sess *models.Session) (models.PortalUser, error) {
	wireUser, err := s.api.CurrentUser(ctx, sess.UpstreamToken)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			s.Teardown(sess)
		}
		return models.PortalUser{}, err
	}

	user := PortalUser(wireUser)
	sess.UserID = user.ID
	sess.FullName = user.FullName()
	sess.Email = user.Email
	sess.Role = user.Role
	if err := s.db.Save(sess).Error; err != nil {
		log.Printf("Failed to refresh session %s: %v", sess.ID, err)
	}
	return user, nil
}

// Teardown deletes the session outright.
func (s *SessionService) Teardown(sess *models.Session) {
	if err := s.db.Delete(&models.Session{}, "id = ?", sess.ID).Error; err != nil {
		log.Printf("Failed to delete session %s: %v", sess.ID, err)
	}
}

// ClearToken blanks the stored upstream token wherever it appears. Wired as
// the API client's 401 hook: the token is dead, so every session holding it
// must re-authenticate.
func (s *SessionService) ClearToken(token string) {
	err := s.db.Model(&models.Session{}).
		Where("upstream_token = ?", token).
		Update("upstream_token", "").Error
	if err != nil {
		log.Printf("Failed to clear rejected upstream token: %v", err)
	}
}
