package repositories

// Repositories holds all the repository instances
type Repositories struct {
	Store                  *Store
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	MentorRepository       *MentorRepository
	MentorshipRepository   *MentorshipRepository
	VoiceMessageRepository *VoiceMessageRepository
}

// NewRepositories initializes all repositories over one store
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Store:                  store,
		UserRepository:         NewUserRepository(store),
		StudentRepository:      NewStudentRepository(store),
		MentorRepository:       NewMentorRepository(store),
		MentorshipRepository:   NewMentorshipRepository(store),
		VoiceMessageRepository: NewVoiceMessageRepository(store),
	}
}
