package services

// Services defined in this package:
// - UserService: creates and looks up users
// - StudentService: student profiles and their partial updates
// - MentorService: mentor profiles and mentor search
// - MentorshipService: student/mentor pairings with joined details
// - VoiceMessageService: audio upload, transcription and the voice message threads

// ThreadNotifier pushes thread events to live subscribers
type ThreadNotifier interface {
	BroadcastToMentorship(mentorshipID, eventType string, payload any)
}

type noopNotifier struct{}

func (noopNotifier) BroadcastToMentorship(string, string, any) {}

// NoopNotifier is used when the live feed is disabled
var NoopNotifier ThreadNotifier = noopNotifier{}
