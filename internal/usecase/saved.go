package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultStorageKey is the key the saved list is persisted under.
const DefaultStorageKey = "rb_saved_resumes_v1"

// UnreadableSuffix names the key an undecodable saved list is moved to.
const UnreadableSuffix = "_unreadable"

// SavedManager owns the saved-resume list. Every mutation is written through
// to the store before it returns. When the write fails the in-memory change
// is kept and the returned error wraps ErrPersist.
type SavedManager struct {
	mu    sync.Mutex
	store KeyValueStore
	key   string
	log   *zap.Logger
	now   func() time.Time
	newID func() string
	list  []domain.SavedResume
}

type SavedOption func(*SavedManager)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) SavedOption {
	return func(m *SavedManager) { m.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() string) SavedOption {
	return func(m *SavedManager) { m.newID = gen }
}

// NewSavedManager loads the persisted list. A missing key, a failed read or
// content that does not decode all start from an empty list.
func NewSavedManager(ctx context.Context, store KeyValueStore, key string, log *zap.Logger, opts ...SavedOption) *SavedManager {
	if key == "" {
		key = DefaultStorageKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &SavedManager{
		store: store,
		key:   key,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		list:  []domain.SavedResume{},
	}
	for _, o := range opts {
		o(m)
	}
	m.list = m.load(ctx)
	return m
}

func (m *SavedManager) load(ctx context.Context) []domain.SavedResume {
	raw, err := m.store.Load(ctx, m.key)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		return []domain.SavedResume{}
	case err != nil:
		m.log.Warn("load saved resumes", zap.String("key", m.key), zap.Error(err))
		return []domain.SavedResume{}
	}
	if len(raw) == 0 {
		return []domain.SavedResume{}
	}
	list, err := model.DecodeSavedList(raw)
	if err != nil {
		m.quarantine(ctx, raw, err)
		return []domain.SavedResume{}
	}
	if list == nil {
		list = []domain.SavedResume{}
	}
	m.log.Debug("loaded saved resumes", zap.Int("count", len(list)))
	return list
}

// quarantine copies an unreadable payload aside before the next write-through
// replaces it.
func (m *SavedManager) quarantine(ctx context.Context, raw []byte, cause error) {
	backup := m.key + UnreadableSuffix
	if err := m.store.Save(ctx, backup, raw); err != nil {
		m.log.Error("back up unreadable saved resumes",
			zap.String("key", m.key),
			zap.Int("bytes", len(raw)),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	m.log.Warn("discarding unreadable saved resumes",
		zap.String("key", m.key),
		zap.String("backup", backup),
		zap.Int("bytes", len(raw)),
		zap.Error(cause),
	)
}

// List returns the saved resumes, newest first.
func (m *SavedManager) List() []domain.SavedResume {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SavedResume, len(m.list))
	for i, s := range m.list {
		out[i] = cloneSaved(s)
	}
	return out
}

// Get returns one saved resume.
func (m *SavedManager) Get(id string) (domain.SavedResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return domain.SavedResume{}, ErrResumeNotFound
	}
	return cloneSaved(m.list[i]), nil
}

// Add stores a snapshot of data at the head of the list. An empty name is
// derived from the full name, then from the id.
func (m *SavedManager) Add(ctx context.Context, name, templateID string, data domain.ResumeData) (domain.SavedResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := domain.SavedResume{
		ID:         m.newID(),
		TemplateID: strings.TrimSpace(templateID),
		CreatedAt:  m.now(),
		Data:       data.Clone(),
	}
	s.Name = savedName(name, data.PersonalInfo.FullName, s.ID)

	m.list = append([]domain.SavedResume{s}, m.list...)
	return cloneSaved(s), m.persist(ctx, "add", s.ID)
}

// Remove deletes a saved resume.
func (m *SavedManager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrResumeNotFound
	}
	m.list = append(m.list[:i:i], m.list[i+1:]...)
	return m.persist(ctx, "remove", id)
}

// Update changes the name and/or template of a saved resume. Names are
// trimmed and must not end up empty.
func (m *SavedManager) Update(ctx context.Context, id string, upd domain.SavedResumeUpdate) (domain.SavedResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return domain.SavedResume{}, ErrResumeNotFound
	}
	s := m.list[i]
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return domain.SavedResume{}, ErrInvalidName
		}
		s.Name = name
	}
	if upd.TemplateID != nil {
		s.TemplateID = strings.TrimSpace(*upd.TemplateID)
	}
	m.list[i] = s
	return cloneSaved(s), m.persist(ctx, "update", id)
}

// Rename is Update with only a name.
func (m *SavedManager) Rename(ctx context.Context, id, name string) (domain.SavedResume, error) {
	return m.Update(ctx, id, domain.SavedResumeUpdate{Name: &name})
}

// Clear removes every saved resume.
func (m *SavedManager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = []domain.SavedResume{}
	return m.persist(ctx, "clear", "")
}

// persist writes the whole list. Callers hold m.mu.
func (m *SavedManager) persist(ctx context.Context, op, id string) error {
	raw, err := json.Marshal(m.list)
	if err == nil {
		err = m.store.Save(ctx, m.key, raw)
	}
	if err != nil {
		m.log.Error("persist saved resumes",
			zap.String("op", op),
			zap.String("id", id),
			zap.String("key", m.key),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (m *SavedManager) indexOf(id string) int {
	for i, s := range m.list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func savedName(explicit, fullName, id string) string {
	if name := strings.TrimSpace(explicit); name != "" {
		return name
	}
	if name := strings.TrimSpace(fullName); name != "" {
		return whitespaceRun.ReplaceAllString(name, "_") + "_Resume"
	}
	return "Resume_" + id
}

func cloneSaved(s domain.SavedResume) domain.SavedResume {
	s.Data = s.Data.Clone()
	return s
}
