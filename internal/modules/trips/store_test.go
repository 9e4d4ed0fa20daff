package trips

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	req, itin := sampleTrip()

	saved := SavedItinerary{
		ID:        uuid.New(),
		Request:   req,
		Itinerary: itin,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := store.Insert(ctx, saved); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Itinerary.Days) != 2 || len(got.Itinerary.Days[0].Activities) != 2 {
		t.Fatalf("days = %+v", got.Itinerary.Days)
	}
	if got.Itinerary.Days[0].Activities[1].Name != "Louvre Museum" {
		t.Errorf("activity order lost: %+v", got.Itinerary.Days[0].Activities)
	}
	if got.Itinerary.Days[0].Activities[1].Cost.Amount != 17 || got.Itinerary.Days[0].Activities[1].Cost.Currency.Code != "EUR" {
		t.Errorf("cost = %+v", got.Itinerary.Days[0].Activities[1].Cost)
	}
	if got.Itinerary.Summary.TotalTravelCost.Amount != 60 {
		t.Errorf("summary = %+v", got.Itinerary.Summary)
	}
	if !got.Request.ArrivalDateTime.Equal(req.ArrivalDateTime) {
		t.Errorf("arrival = %v", got.Request.ArrivalDateTime)
	}

	if _, err := store.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id err = %v", err)
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("PLANNER_TEST_DSN")
	if dsn == "" {
		t.Skip("PLANNER_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE activities, itinerary_days, itineraries"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return NewStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_init.sql"))
	if err != nil {
		return err
	}
	for _, stmt := range splitSQL(stripSQLComments(string(content))) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
