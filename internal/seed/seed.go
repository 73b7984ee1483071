// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"playlsd/internal/models"
	"playlsd/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumSubmissions int
	NumChat        int
	ShouldClean    bool
}

var genres = []string{
	"Deep House", "Techno", "Ambient", "Drum & Bass", "Psytrance",
	"Downtempo", "Progressive House", "Minimal", "Breakbeat", "IDM",
	"Dub Techno", "Melodic Techno", "Acid", "Trance", "Lo-Fi",
}

var vibes = []string{
	"Dreamy", "Hypnotic", "Dark", "Euphoric", "Mellow",
	"Driving", "Spacey", "Groovy", "Melancholic", "Uplifting",
}

// Seeder populates the database with development data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder for the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll removes all seedable data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	tables := []string{
		"chat_messages", "admin_notifications", "submissions",
		"playlist_posts", "news_posts", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run executes the full seeding pass.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Seeding %d users, %d submissions, %d chat messages...",
		opts.NumUsers, opts.NumSubmissions, opts.NumChat)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	playlists, news, err := s.SeedCatalog()
	if err != nil {
		return fmt.Errorf("failed to create catalog posts: %w", err)
	}
	log.Printf("✓ %d playlist posts, %d news posts created", playlists, news)

	subs, err := s.SeedSubmissions(opts.NumSubmissions)
	if err != nil {
		return fmt.Errorf("failed to create submissions: %w", err)
	}
	log.Printf("✓ %d submissions created", subs)

	chat, err := s.SeedChat(users, opts.NumChat)
	if err != nil {
		return fmt.Errorf("failed to create chat messages: %w", err)
	}
	log.Printf("✓ %d chat messages created", chat)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// SeedUsers creates n regular accounts plus one admin. All accounts get the
// password "password123".
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n+1)

	admin := &models.User{
		Username:    "lsd_curator",
		Email:       "curator@playlsd.dev",
		Password:    string(hashed),
		DisplayName: "LSD Curator",
		IsAdmin:     true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < n; i++ {
		user := &models.User{
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:     gofakeit.Email(),
			Password:  string(hashed),
			Bio:       gofakeit.Sentence(10),
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedCatalog creates the built-in playlist and news posts.
func (s *Seeder) SeedCatalog() (int, int, error) {
	playlists := []*models.PlaylistPost{
		{
			Title:       "Deep House Mix",
			Description: "An hour of hypnotic deep house for late night sessions. Warm pads, rolling basslines and just enough vocal to keep you company.",
			EmbedURL:    "https://open.spotify.com/playlist/37i9dQZF1DX2TRYkJECvfC",
			EmbedType:   models.EmbedTypeSpotify,
			ImageURL:    "https://picsum.photos/seed/deep-house/800/800",
			Tags:        models.StringList{"deep house", "late night"},
			Genres:      models.StringList{"Deep House"},
			Artists:     models.StringList{"Maya Jane Coles", "Lane 8"},
			Keywords:    models.StringList{"hypnotic", "warm", "rolling"},
			Author:      "LSD Curator",
			Published:   true,
			Featured:    true,
		},
		{
			Title:       "Midnight Techno Sessions",
			Description: "Peak time techno selected for the hours when the floor stops being polite. Expect relentless kicks and acid flourishes.",
			EmbedURL:    "https://soundcloud.com/playlsd/sets/midnight-techno",
			EmbedType:   models.EmbedTypeSoundCloud,
			ImageURL:    "https://picsum.photos/seed/midnight-techno/800/800",
			Tags:        models.StringList{"techno", "peak time"},
			Genres:      models.StringList{"Techno", "Acid"},
			Artists:     models.StringList{"Amelie Lens", "999999999"},
			Keywords:    models.StringList{"relentless", "acid"},
			Author:      "LSD Curator",
			Published:   true,
		},
		{
			Title:       "Ambient Voyages",
			Description: "Long-form ambient works for deep focus or deep rest. No beats, no urgency, just slowly unfolding texture.",
			EmbedURL:    "https://www.youtube.com/playlist?list=PLQkQfzsIUwRYkTTsNHcL2fuNLLleTFhVX",
			EmbedType:   models.EmbedTypeYouTube,
			Tags:        models.StringList{"ambient", "focus"},
			Genres:      models.StringList{"Ambient", "Downtempo"},
			Artists:     models.StringList{"Stars of the Lid", "Biosphere"},
			Keywords:    models.StringList{"texture", "drone"},
			Author:      "LSD Curator",
		},
	}

	for _, p := range playlists {
		p.Slug = slug.Make(p.Title)
		if err := s.db.Create(p).Error; err != nil {
			return 0, 0, err
		}
	}

	news := []*models.NewsPost{
		{
			Title:     "Welcome to PlayLSD",
			Content:   "PlayLSD is live. Browse the curated playlists, drop into the chat, and if you make music yourself, send it our way through the submission form. We listen to everything.",
			Tags:      models.StringList{"announcement"},
			Author:    "LSD Curator",
			Published: true,
			Featured:  true,
		},
		{
			Title:     "Submissions Are Open",
			Content:   "Both submission forms are now open: pitch a track at one of our curated playlists, or send us a song for general consideration. Pending submissions are reviewed weekly.",
			Tags:      models.StringList{"submissions", "announcement"},
			Author:    "LSD Curator",
			Published: true,
		},
		{
			Title:   "Upcoming: Label Spotlight Series",
			Content: "Draft notes for the label spotlight series. First candidates: Kompakt, Hyperdub, Ninja Tune. Publish once interviews are confirmed.",
			Tags:    models.StringList{"editorial"},
			Author:  "LSD Curator",
		},
	}

	for _, n := range news {
		if err := s.db.Create(n).Error; err != nil {
			return 0, 0, err
		}
	}

	return len(playlists), len(news), nil
}

// SeedSubmissions creates a couple of fixed submissions plus n random ones.
func (s *Seeder) SeedSubmissions(n int) (int, error) {
	fixed := []*models.Submission{
		{
			ID:            uuid.NewString(),
			Type:          models.SubmissionTypeSong,
			ArtistName:    "Cosmic Waves",
			Title:         "Journey to Andromeda",
			StreamingLink: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			Email:         "cosmic@example.com",
			Genre:         "Ambient",
			Vibe:          "Dreamy",
			Message:       "Second single from our upcoming EP, would love your thoughts.",
			Status:        models.SubmissionStatusPending,
		},
		{
			ID:             uuid.NewString(),
			Type:           models.SubmissionTypePlaylist,
			ArtistName:     "Deep Minds",
			TrackLink:      "https://soundcloud.com/deepminds/undertow",
			TargetPlaylist: "Deep House Mix",
			Email:          "deep@example.com",
			Genre:          "Deep House",
			Vibe:           "Hypnotic",
			Status:         models.SubmissionStatusApproved,
		},
	}

	count := 0
	for _, sub := range fixed {
		if err := s.db.Create(sub).Error; err != nil {
			return count, err
		}
		count++
	}

	statuses := []models.SubmissionStatus{
		models.SubmissionStatusPending,
		models.SubmissionStatusPending,
		models.SubmissionStatusApproved,
		models.SubmissionStatusRejected,
	}

	for i := 0; i < n; i++ {
		sub := &models.Submission{
			ID:         uuid.NewString(),
			ArtistName: gofakeit.Name(),
			Email:      gofakeit.Email(),
			Genre:      genres[s.r.Intn(len(genres))],
			Vibe:       vibes[s.r.Intn(len(vibes))],
			Status:     statuses[s.r.Intn(len(statuses))],
		}
		if s.r.Intn(2) == 0 {
			sub.Type = models.SubmissionTypeSong
			sub.Title = gofakeit.Sentence(3)
			sub.StreamingLink = gofakeit.URL()
		} else {
			sub.Type = models.SubmissionTypePlaylist
			sub.TrackLink = gofakeit.URL()
			sub.TargetPlaylist = "Deep House Mix"
		}
		if s.r.Intn(3) == 0 {
			sub.Message = gofakeit.Sentence(12)
		}
		if err := s.db.Create(sub).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// SeedChat creates n chat messages spread over the last few hours, all
// expiring 24 hours after their creation time.
func (s *Seeder) SeedChat(users []*models.User, n int) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	now := time.Now()
	for i := 0; i < n; i++ {
		created := now.Add(-time.Duration(s.r.Intn(6*3600)) * time.Second)
		msg := &models.ChatMessage{
			UserID:    users[s.r.Intn(len(users))].ID,
			Content:   gofakeit.Sentence(8),
			CreatedAt: created,
			ExpiresAt: created.Add(24 * time.Hour),
		}
		if s.r.Intn(4) == 0 {
			msg.TrackURL = gofakeit.URL()
		}
		if err := s.db.Create(msg).Error; err != nil {
			return i, err
		}
	}
	return n, nil
}
