package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/search"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/logger"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/session"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/voice/playback"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/voice/recorder"
)

func profileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true, Usage: "display name"},
		&cli.StringFlag{Name: "email"},
		&cli.StringFlag{Name: "phone"},
		&cli.StringFlag{Name: "location", Usage: "city and state"},
		&cli.StringSliceFlag{Name: "language", Aliases: []string{"l"}, Usage: "spoken language (repeatable)"},
		&cli.StringFlag{Name: "field", Usage: "study field or field of expertise"},
		&cli.PathFlag{Name: "intro", Usage: "audio file to send as the voice introduction"},
		&cli.DurationFlag{Name: "hold", Usage: "keep the recording open this long before stopping"},
	}
}

func (rt *runtime) createUser(c *cli.Context, role models.RoleType) (*models.User, error) {
	return rt.client.CreateUser(c.Context, dto.CreateUserRequest{
		Role:      role,
		Name:      c.String("name"),
		Email:     c.String("email"),
		Phone:     c.String("phone"),
		Location:  c.String("location"),
		Languages: c.StringSlice("language"),
	})
}

// recordIntro runs the recording pipeline over an audio file. An empty path means no intro.
func (rt *runtime) recordIntro(c *cli.Context) (*recorder.Result, error) {
	path := c.Path("intro")
	if path == "" {
		return nil, nil
	}
	res, err := rt.record(c.Context, c.App.Writer, path, c.Duration("hold"))
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (rt *runtime) record(ctx context.Context, out io.Writer, path string, hold time.Duration) (recorder.Result, error) {
	rec := recorder.New(recorder.FileMicrophone{Path: path}, recorder.NewMemoryClips(),
		recorder.WithUploader(rt.client),
		recorder.WithTranscriber(rt.client),
		recorder.WithLogger(logger.WithComponent("recorder")),
		recorder.OnTick(func(d time.Duration) {
			fmt.Fprintf(out, "\rRecording... %s", recorder.FormatElapsed(d))
		}),
	)
	defer rec.Close()

	if err := rec.Start(ctx); err != nil {
		return recorder.Result{}, err
	}
	select {
	case <-ctx.Done():
	case <-rec.Drained():
	}
	if hold > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(hold):
		}
		fmt.Fprintln(out)
	}

	res, err := rec.Stop(ctx)
	if err != nil {
		return recorder.Result{}, err
	}
	if res.UploadErr != nil {
		fmt.Fprintf(out, "Upload failed, keeping local recording (%v)\n", res.UploadErr)
	} else if res.TranscribeErr != nil {
		fmt.Fprintf(out, "Transcription failed (%v)\n", res.TranscribeErr)
	}
	fmt.Fprintf(out, "Transcription: %s\n", res.Transcription)
	return res, nil
}

func (rt *runtime) onboardStudentCommand() *cli.Command {
	flags := append(profileFlags(),
		&cli.IntFlag{Name: "age"},
		&cli.StringFlag{Name: "goals"},
	)
	return &cli.Command{
		Name:  "onboard-student",
		Usage: "create a student profile and sign in as that student",
		Flags: flags,
		Action: func(c *cli.Context) error {
			intro, err := rt.recordIntro(c)
			if err != nil {
				return err
			}
			user, err := rt.createUser(c, models.RoleStudent)
			if err != nil {
				return err
			}

			req := dto.CreateStudentRequest{
				UserID:             user.ID,
				StudyField:         c.String("field"),
				Goals:              c.String("goals"),
				PreferredLanguages: c.StringSlice("language"),
			}
			if c.IsSet("age") {
				age := c.Int("age")
				req.Age = &age
			}
			if intro != nil && intro.Uploaded {
				req.VoiceIntroURL = intro.AudioURL
				req.Transcription = intro.Transcription
			}
			student, err := rt.client.CreateStudent(c.Context, req)
			if err != nil {
				return err
			}

			if err := rt.sessions.Save(session.Identity{
				UserID: user.ID, Role: user.Role, Name: user.Name, StudentID: student.ID,
			}); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Welcome %s! Student profile %s created.\n", user.Name, student.ID)
			return nil
		},
	}
}

func (rt *runtime) onboardMentorCommand() *cli.Command {
	flags := append(profileFlags(),
		&cli.IntFlag{Name: "experience", Usage: "years of experience"},
		&cli.StringFlag{Name: "bio"},
		&cli.StringFlag{Name: "availability", Usage: "e.g. weekends, evenings"},
	)
	return &cli.Command{
		Name:  "onboard-mentor",
		Usage: "create a mentor profile and sign in as that mentor",
		Flags: flags,
		Action: func(c *cli.Context) error {
			intro, err := rt.recordIntro(c)
			if err != nil {
				return err
			}
			user, err := rt.createUser(c, models.RoleMentor)
			if err != nil {
				return err
			}

			req := dto.CreateMentorRequest{
				UserID:           user.ID,
				FieldOfExpertise: c.String("field"),
				Bio:              c.String("bio"),
				Availability:     c.String("availability"),
			}
			if c.IsSet("experience") {
				years := c.Int("experience")
				req.Experience = &years
			}
			if intro != nil && intro.Uploaded {
				req.VoiceIntroURL = intro.AudioURL
				if req.Bio == "" {
					req.Bio = intro.Transcription
				}
			}
			mentor, err := rt.client.CreateMentor(c.Context, req)
			if err != nil {
				return err
			}

			if err := rt.sessions.Save(session.Identity{
				UserID: user.ID, Role: user.Role, Name: user.Name, MentorID: mentor.ID,
			}); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Welcome %s! Mentor profile %s created.\n", user.Name, mentor.ID)
			return nil
		},
	}
}

func (rt *runtime) currentIdentity() (*session.Identity, error) {
	id, err := rt.sessions.Current()
	if errors.Is(err, session.ErrNoSession) {
		return nil, errors.New("not signed in; run onboard-student or onboard-mentor first")
	}
	return id, err
}

func (rt *runtime) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user",
		Action: func(c *cli.Context) error {
			id, err := rt.currentIdentity()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s (%s)\nuser:    %s\nprofile: %s\n", id.Name, id.Role, id.UserID, id.ProfileID())
			return nil
		},
	}
}

func (rt *runtime) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the signed-in user",
		Action: func(c *cli.Context) error {
			if err := rt.sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "Signed out.")
			return nil
		},
	}
}

func renderStars(rating int) string {
	full, half := models.Stars(rating)
	var b strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case i < full:
			b.WriteString("★")
		case i == full && half:
			b.WriteString("⯪")
		default:
			b.WriteString("☆")
		}
	}
	return b.String()
}

func (rt *runtime) searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "find mentors by field, language and experience",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "field", Value: search.AllFields},
			&cli.StringSliceFlag{Name: "language", Aliases: []string{"l"}},
			&cli.StringFlag{Name: "experience", Value: search.AnyExperience, Usage: "minimum years or \"any\""},
		},
		Action: func(c *cli.Context) error {
			criteria := search.Criteria{FieldOfExpertise: c.String("field"), Languages: c.StringSlice("language")}
			if raw := strings.TrimSpace(c.String("experience")); raw != "" && raw != search.AnyExperience {
				years, err := strconv.Atoi(raw)
				if err != nil {
					return fmt.Errorf("experience must be a number of years or %q", search.AnyExperience)
				}
				criteria.MinExperience = &years
			}

			mentors, err := rt.client.SearchMentors(c.Context, criteria)
			if err != nil {
				return err
			}
			if len(mentors) == 0 {
				fmt.Fprintln(c.App.Writer, "No mentors match those filters.")
				return nil
			}
			for _, m := range mentors {
				fmt.Fprintf(c.App.Writer, "%s  %s %s (%d reviews)\n", m.User.Name, renderStars(m.Rating), m.RatingDisplay, m.TotalReviews)
				fmt.Fprintf(c.App.Writer, "  id: %s  field: %s  experience: %d years  languages: %s\n",
					m.ID, m.FieldOfExpertise, m.YearsOfExperience(), strings.Join(m.User.Languages, ", "))
				if m.Bio != "" {
					fmt.Fprintf(c.App.Writer, "  %s\n", m.Bio)
				}
			}
			return nil
		},
	}
}

func (rt *runtime) connectCommand() *cli.Command {
	return &cli.Command{
		Name:      "connect",
		Usage:     "start a mentorship with a mentor",
		ArgsUsage: "<mentor-id>",
		Action: func(c *cli.Context) error {
			mentorID := c.Args().First()
			if mentorID == "" {
				return errors.New("mentor id is required")
			}
			id, err := rt.currentIdentity()
			if err != nil {
				return err
			}
			if id.Role != models.RoleStudent {
				return errors.New("only students can start a mentorship")
			}
			ms, err := rt.client.CreateMentorship(c.Context, dto.CreateMentorshipRequest{StudentID: id.StudentID, MentorID: mentorID})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Mentorship %s started (%s).\n", ms.ID, ms.Status)
			return nil
		},
	}
}

func (rt *runtime) mentorshipsCommand() *cli.Command {
	return &cli.Command{
		Name:  "mentorships",
		Usage: "list your mentorships",
		Action: func(c *cli.Context) error {
			id, err := rt.currentIdentity()
			if err != nil {
				return err
			}
			var list []models.MentorshipWithDetails
			if id.Role == models.RoleMentor {
				list, err = rt.client.MentorshipsByMentor(c.Context, id.MentorID)
			} else {
				list, err = rt.client.MentorshipsByStudent(c.Context, id.StudentID)
			}
			if err != nil {
				return err
			}
			for _, ms := range list {
				other := ms.Mentor.User.Name
				if id.Role == models.RoleMentor {
					other = ms.Student.User.Name
				}
				fmt.Fprintf(c.App.Writer, "%s  with %s  [%s]\n", ms.ID, other, ms.Status)
			}
			return nil
		},
	}
}

func (rt *runtime) sendVoiceCommand() *cli.Command {
	return &cli.Command{
		Name:      "send-voice",
		Usage:     "record an audio file into a mentorship thread",
		ArgsUsage: "<mentorship-id> <audio-file>",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "hold", Usage: "keep the recording open this long before stopping"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("usage: send-voice <mentorship-id> <audio-file>")
			}
			id, err := rt.currentIdentity()
			if err != nil {
				return err
			}

			res, err := rt.record(c.Context, c.App.Writer, c.Args().Get(1), c.Duration("hold"))
			if err != nil {
				return err
			}
			if !res.Uploaded {
				return errors.New("recording could not be uploaded; message not sent")
			}

			req := dto.CreateVoiceMessageRequest{
				MentorshipID:  c.Args().Get(0),
				SenderID:      id.UserID,
				AudioURL:      res.AudioURL,
				Transcription: res.Transcription,
			}
			if secs := wholeSeconds(res.Duration); secs > 0 {
				req.Duration = &secs
			}
			msg, err := rt.client.CreateVoiceMessage(c.Context, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Sent voice message %s.\n", msg.ID)
			return nil
		},
	}
}

func (rt *runtime) threadCommand() *cli.Command {
	return &cli.Command{
		Name:      "thread",
		Usage:     "show the voice messages of a mentorship",
		ArgsUsage: "<mentorship-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "play", Usage: "play every message through the progress player"},
			&cli.Float64Flag{Name: "rate", Value: 1, Usage: "playback speed multiplier"},
			&cli.BoolFlag{Name: "mark-read", Usage: "mark listed messages as read"},
		},
		Action: func(c *cli.Context) error {
			mentorshipID := c.Args().First()
			if mentorshipID == "" {
				return errors.New("mentorship id is required")
			}
			messages, err := rt.client.VoiceMessages(c.Context, mentorshipID)
			if err != nil {
				return err
			}

			durations := make(map[string]time.Duration, len(messages))
			for _, m := range messages {
				var d time.Duration
				if m.Duration != nil {
					d = time.Duration(*m.Duration) * time.Second
				}
				durations[m.AudioURL] = d
				unread := ""
				if !m.IsRead {
					unread = " *"
				}
				fmt.Fprintf(c.App.Writer, "[%s] %s (%s)%s\n  %s\n",
					m.CreatedAt.Local().Format("Jan 2 15:04"), m.Sender.Name, playback.FormatClock(d), unread, m.Transcription)
			}

			if c.Bool("mark-read") {
				read := true
				for _, m := range messages {
					if m.IsRead {
						continue
					}
					if _, err := rt.client.UpdateVoiceMessage(c.Context, m.ID, dto.UpdateVoiceMessageRequest{IsRead: &read}); err != nil {
						return err
					}
				}
			}

			if !c.Bool("play") {
				return nil
			}
			backend := playback.ClockBackend{
				Lookup: func(_ context.Context, ref string) (time.Duration, error) {
					d, ok := durations[ref]
					if !ok || d <= 0 {
						return 0, fmt.Errorf("unknown length for %s", ref)
					}
					return d, nil
				},
				Rate: c.Float64("rate"),
			}
			for _, m := range messages {
				if durations[m.AudioURL] <= 0 {
					fmt.Fprintf(c.App.Writer, "Skipping %s: length unknown\n", rt.client.ResolveURL(m.AudioURL))
					continue
				}
				playMessage(c.Context, c.App.Writer, backend, rt.client.ResolveURL(m.AudioURL), m.AudioURL)
			}
			return nil
		},
	}
}

func playMessage(ctx context.Context, out io.Writer, backend playback.ClockBackend, display, ref string) {
	player := playback.NewPlayer(backend, ref, logger.WithComponent("playback"))
	defer player.Close()

	if !player.Toggle(ctx) {
		fmt.Fprintf(out, "Cannot play %s: %v\n", display, player.Err())
		return
	}
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for player.Playing() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		fmt.Fprintf(out, "\r%s %s / %s", progressBar(player.Progress(), 20),
			playback.FormatClock(player.Position()), playback.FormatClock(player.Duration()))
	}
	fmt.Fprintf(out, "\r%s %s\n", progressBar(1, 20), playback.FormatClock(player.Duration()))
}

// wholeSeconds rounds up so any captured audio reports at least one second
func wholeSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func progressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
