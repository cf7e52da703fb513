// Package session holds the logged-in credential and profile for one deployment,
// mirrored into durable storage so a restart keeps the user logged in.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/storage"
	"github.com/shiptrain/portal/pkg/logger"
)

// Keys names the two storage entries a deployment persists
type Keys struct {
	Credential string
	Profile    string
}

// KeysFor returns the storage keys configured for a deployment
func KeysFor(d config.DeploymentConfig) Keys {
	return Keys{Credential: d.CredentialKey, Profile: d.ProfileKey}
}

// Profile is the persisted user profile
type Profile struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	RoleDisplay string `json:"roleDisplay,omitempty"`
	AccountID   int64  `json:"accountId,omitempty"`
}

// DisplayName is the user's full name, empty when the profile has none
func (p Profile) DisplayName() string {
	return p.Name
}

// Store is safe for concurrent use
type Store struct {
	mu         sync.RWMutex
	kv         storage.Storage
	keys       Keys
	credential string
	profile    Profile
}

// NewStore rehydrates the session from kv. A missing or unreadable profile
// becomes an empty profile.
func NewStore(kv storage.Storage, keys Keys) *Store {
	s := &Store{kv: kv, keys: keys}

	credential, _, err := kv.Get(keys.Credential)
	if err != nil {
		logger.Warn("Failed to read stored credential", zap.String("key", keys.Credential), zap.Error(err))
	}
	s.credential = credential

	raw, ok, err := kv.Get(keys.Profile)
	switch {
	case err != nil:
		logger.Warn("Failed to read stored profile", zap.String("key", keys.Profile), zap.Error(err))
	case ok && raw != "":
		if err := json.Unmarshal([]byte(raw), &s.profile); err != nil {
			logger.Warn("Stored profile is corrupt, starting with an empty profile",
				zap.String("key", keys.Profile), zap.Error(err))
			s.profile = Profile{}
		}
	}

	return s
}

// Login records the credential and profile in memory and storage
func (s *Store) Login(credential string, profile Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// memory follows storage only once both keys are written
	if err := s.kv.Set(s.keys.Credential, credential); err != nil {
		return err
	}
	if err := s.kv.Set(s.keys.Profile, string(data)); err != nil {
		if rbErr := s.restoreCredential(); rbErr != nil {
			logger.Warn("Failed to roll back stored credential",
				zap.String("key", s.keys.Credential), zap.Error(rbErr))
		}
		return err
	}

	s.credential = credential
	s.profile = profile
	return nil
}

// restoreCredential puts the previous credential back in storage, or removes the
// key when there was none. Callers hold s.mu.
func (s *Store) restoreCredential() error {
	if s.credential == "" {
		return s.kv.Remove(s.keys.Credential)
	}
	return s.kv.Set(s.keys.Credential, s.credential)
}

// Logout forgets the session. Calling it when logged out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = ""
	s.profile = Profile{}

	return errors.Join(
		s.kv.Remove(s.keys.Credential),
		s.kv.Remove(s.keys.Profile),
	)
}

// Clear is Logout under the name the API client expects
func (s *Store) Clear() error {
	return s.Logout()
}

func (s *Store) IsLoggedIn() bool {
	return s.Credential() != ""
}

func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Store) UserName() string {
	return s.Profile().DisplayName()
}

func (s *Store) UserRole() string {
	return s.Profile().Role
}

// Keys returns the storage keys this store writes
func (s *Store) Keys() Keys {
	return s.keys
}
