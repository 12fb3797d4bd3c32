package migrations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSeedCatalog, downSeedCatalog)
}

// seedNamespace derives stable ids for the seeded rows, so that links to a
// service survive a rebuilt database.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://healer.lk/"))

func seedID(kind, slug string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(kind+"/"+slug))
}

type seedService struct {
	slug, title, description string
	minutes, price           int
}

var services = []seedService{
	{"ayurveda", "Ayurvedic Healing & Consultation", "Traditional Ayurvedic treatments tailored to balance your doshas and restore natural harmony through personalized herbal remedies.", 60, 5000},
	{"ayurveda-lecture", "Ayurveda Basic Lecture", "Educational session on fundamental Ayurvedic principles, doshas, and lifestyle practices for holistic wellness.", 90, 3000},
	{"panchakarma", "Panchakarma Consultation", "Traditional Ayurvedic detoxification therapy to cleanse and rejuvenate the body, mind, and spirit.", 120, 8000},
	{"yoga", "Yoga Therapy", "Personalized yoga sessions designed to improve flexibility, strength, and mental clarity through ancient practices.", 75, 4000},
	{"marma", "Marma Therapy", "Ayurvedic pressure point healing to release blocked energy and promote natural healing throughout the body.", 60, 4500},
	{"sound-healing", "Sound Healing with Bhajans", "Therapeutic sound vibrations using singing bowls, gongs, and devotional bhajans to promote deep relaxation and spiritual connection.", 45, 3500},
	{"pranayama", "Pranayama & Breathwork", "Advanced breathing techniques and pranayama practices to enhance vitality, calm the mind, and balance energy.", 45, 3000},
	{"meditation", "Guided Meditation", "Mindfulness and Buddhist meditation practices to reduce stress, enhance inner peace, and cultivate spiritual awareness.", 30, 2500},
}

type seedTestimonial struct {
	name, title, text string
}

var testimonials = []seedTestimonial{
	{"Priya Jayawardena", "Yoga Enthusiast", "Dr. Umesha's holistic approach transformed my life. The combination of Ayurveda and yoga therapy helped me overcome chronic pain that I had been dealing with for years."},
	{"Rohan Fernando", "Business Professional", "The sound healing sessions are incredibly powerful. I feel more centered and focused after each session. Highly recommend to anyone dealing with stress."},
	{"Sanduni Perera", "Teacher", "Dr. Umesha's meditation guidance has been life-changing. I've learned to manage anxiety and find peace in my daily life. Truly grateful for this healing journey."},
}

type seedPost struct {
	slug, title, excerpt, category string
	tags                           []string
}

var posts = []seedPost{
	{"ayurvedic-tips-better-sleep", "5 Ayurvedic Tips for Better Sleep", "Discover ancient Ayurvedic wisdom to improve your sleep quality naturally and wake up refreshed every morning.", "ayurveda", []string{"sleep", "wellness", "ayurveda"}},
	{"yoga-poses-stress-relief", "Yoga Poses for Stress Relief", "Learn simple yet effective yoga poses that can help you release tension and find calm in your busy day.", "yoga", []string{"stress", "yoga", "relaxation"}},
	{"healing-power-of-sound", "The Healing Power of Sound", "Explore how sound vibrations can promote healing, reduce anxiety, and enhance your overall well-being.", "sound-healing", []string{"sound healing", "meditation", "wellness"}},
	{"mindfulness-for-beginners", "Mindfulness for Beginners", "Start your meditation journey with these simple mindfulness practices perfect for beginners.", "meditation", []string{"mindfulness", "meditation", "beginners"}},
}

func upSeedCatalog(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM service").Scan(&count); err != nil {
		return fmt.Errorf("counting services: %w", err)
	}
	if count > 0 {
		return nil
	}

	// Listed order is newest first.
	now := time.Now().UTC()

	for i, s := range services {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO service(id, slug, title, description, short_description, duration_minutes, price, is_active, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`,
			seedID("service", s.slug).String(), s.slug, s.title, s.description, s.description, s.minutes, s.price, i+1)
		if err != nil {
			return fmt.Errorf("seeding service %s: %w", s.slug, err)
		}
	}

	for i, t := range testimonials {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO testimonial(id, client_name, client_title, testimonial, rating, is_featured, is_approved, created_at)
			 VALUES (?, ?, ?, ?, 5, 1, 1, ?)`,
			seedID("testimonial", t.name).String(), t.name, t.title, t.text, now.Add(-time.Duration(i)*time.Minute))
		if err != nil {
			return fmt.Errorf("seeding testimonial of %s: %w", t.name, err)
		}
	}

	for i, p := range posts {
		tags, err := json.Marshal(p.tags)
		if err != nil {
			return fmt.Errorf("encoding tags of %s: %w", p.slug, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post(id, slug, title, excerpt, content, category, tags, is_published, published_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`,
			seedID("post", p.slug).String(), p.slug, p.title, p.excerpt, p.excerpt, p.category, string(tags), now.Add(-time.Duration(i)*time.Minute))
		if err != nil {
			return fmt.Errorf("seeding post %s: %w", p.slug, err)
		}
	}
	return nil
}

func downSeedCatalog(ctx context.Context, tx *sql.Tx) error {
	for _, s := range services {
		if _, err := tx.ExecContext(ctx, "DELETE FROM service WHERE id = ?", seedID("service", s.slug).String()); err != nil {
			return fmt.Errorf("removing service %s: %w", s.slug, err)
		}
	}
	for _, t := range testimonials {
		if _, err := tx.ExecContext(ctx, "DELETE FROM testimonial WHERE id = ?", seedID("testimonial", t.name).String()); err != nil {
			return fmt.Errorf("removing testimonial of %s: %w", t.name, err)
		}
	}
	for _, p := range posts {
		if _, err := tx.ExecContext(ctx, "DELETE FROM post WHERE id = ?", seedID("post", p.slug).String()); err != nil {
			return fmt.Errorf("removing post %s: %w", p.slug, err)
		}
	}
	return nil
}
