package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
)

func TestServiceRepo_ActiveServices(t *testing.T) {
	t.Run("should return the seeded catalog in sort order", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		got, err := repo.ActiveServices()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(got) != 8 {
			t.Fatalf("\nwanted:\n8\ngot:\n%d", len(got))
		}
		if got[0].Slug != "ayurveda" || got[7].Slug != "meditation" {
			t.Fatalf("\nwanted:\nayurveda ... meditation\ngot:\n%s ... %s", got[0].Slug, got[7].Slug)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].SortOrder > got[i].SortOrder {
				t.Fatalf("services out of order at %d", i)
			}
		}
		if got[2].Title != "Panchakarma Consultation" || got[2].DurationMinutes != 120 || got[2].Price != 8000 {
			t.Fatalf("\nwanted:\nPanchakarma Consultation 120 min LKR 8000\ngot:\n%+v", got[2])
		}
	})

	t.Run("should skip inactive services", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		if _, err := repo.dbConn.Exec(`UPDATE service SET is_active = 0 WHERE slug = 'marma'`); err != nil {
			t.Fatalf("deactivating service: %v", err)
		}
		got, err := repo.ActiveServices()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(got) != 7 {
			t.Fatalf("\nwanted:\n7\ngot:\n%d", len(got))
		}
		for _, s := range got {
			if s.Slug == "marma" {
				t.Fatalf("wanted marma to be hidden")
			}
		}
	})
}

func TestServiceRepo_GetService(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	want := firstService(t, repo)
	got, err := repo.GetService(want.ID)
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	if *got != *want {
		t.Fatalf("\nwanted:\n%+v\ngot:\n%+v", want, got)
	}

	_, err = repo.GetService(uuid.New())
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrServiceNotFound, err)
	}
}
