package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
)

// table keeps rows by id plus their insertion order, since map iteration order is random
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) insert(id string, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

// each visits rows in insertion order until fn returns false
func (t *table[T]) each(fn func(T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock replaces the wall clock used for createdAt stamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random id generator
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// Store is the process-lifetime in-memory entity store shared by all repositories.
// All access goes through mu; values handed out are copies.
type Store struct {
	mu sync.RWMutex

	users         *table[models.User]
	students      *table[models.Student]
	mentors       *table[models.Mentor]
	mentorships   *table[models.Mentorship]
	voiceMessages *table[models.VoiceMessage]

	now         func() time.Time
	newID       func() string
	lastCreated time.Time
}

// NewStore creates an empty store
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		users:         newTable[models.User](),
		students:      newTable[models.Student](),
		mentors:       newTable[models.Mentor](),
		mentorships:   newTable[models.Mentorship](),
		voiceMessages: newTable[models.VoiceMessage](),
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stamp returns a createdAt strictly after every stamp issued before. Caller holds mu.
func (s *Store) stamp() time.Time {
	t := s.now().UTC().Round(0)
	if !t.After(s.lastCreated) {
		t = s.lastCreated.Add(time.Nanosecond)
	}
	s.lastCreated = t
	return t
}

// assignID keeps a preset id (seed data) and generates one otherwise. Caller holds mu.
func (s *Store) assignID(id string) string {
	if id != "" {
		return id
	}
	return s.newID()
}

// Counts reports how many records each collection holds
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"users":         len(s.users.order),
		"students":      len(s.students.order),
		"mentors":       len(s.mentors.order),
		"mentorships":   len(s.mentorships.order),
		"voiceMessages": len(s.voiceMessages.order),
	}
}

// joins below assume mu is held

func (s *Store) studentWithUser(st models.Student) (models.StudentWithUser, bool) {
	u, ok := s.users.get(st.UserID)
	if !ok {
		return models.StudentWithUser{}, false
	}
	return models.StudentWithUser{Student: st.Clone(), User: u.Clone()}, true
}

func (s *Store) mentorWithUser(m models.Mentor) (models.MentorWithUser, bool) {
	u, ok := s.users.get(m.UserID)
	if !ok {
		return models.MentorWithUser{}, false
	}
	return models.NewMentorWithUser(m.Clone(), u.Clone()), true
}

func (s *Store) mentorshipWithDetails(ms models.Mentorship) (models.MentorshipWithDetails, bool) {
	st, ok := s.students.get(ms.StudentID)
	if !ok {
		return models.MentorshipWithDetails{}, false
	}
	student, ok := s.studentWithUser(st)
	if !ok {
		return models.MentorshipWithDetails{}, false
	}
	m, ok := s.mentors.get(ms.MentorID)
	if !ok {
		return models.MentorshipWithDetails{}, false
	}
	mentor, ok := s.mentorWithUser(m)
	if !ok {
		return models.MentorshipWithDetails{}, false
	}
	return models.MentorshipWithDetails{Mentorship: ms, Student: student, Mentor: mentor}, true
}

func (s *Store) voiceMessageWithSender(v models.VoiceMessage) (models.VoiceMessageWithSender, bool) {
	u, ok := s.users.get(v.SenderID)
	if !ok {
		return models.VoiceMessageWithSender{}, false
	}
	return models.VoiceMessageWithSender{VoiceMessage: v.Clone(), Sender: u.Clone()}, true
}
