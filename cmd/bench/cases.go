package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass    = "PASS"
	statusFail    = "FAIL"
	statusPending = "PENDING"
	statusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func tripBody(city string, arrival time.Time, days int) map[string]any {
	return map[string]any{
		"city":              city,
		"hotel":             "Hotel Lutetia",
		"arrivalDateTime":   arrival.Format("2006-01-02T15:04"),
		"departureDateTime": arrival.Add(time.Duration(days) * 24 * time.Hour).Format("2006-01-02T15:04"),
	}
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	arrival := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	missing := uuid.NewString()

	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "persistence reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "shared rate table reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "apply migration SQL",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "tables from migrations/0001_init.sql",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name:  "API: health",
			Focus: "server reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				resp, err := r.httpc.Get(base + "/health")
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
				}
				return Result{Status: statusPass, Latency: time.Since(start)}
			},
		},

		// Validation happens before the model is called, so these are free.
		httpCase("Validate: missing city -> 400", base+"/api/itineraries/generate",
			tripBody("", arrival, 3), []int{400}, nil),
		httpCase("Validate: departure before arrival -> 400", base+"/api/itineraries/generate",
			tripBody("Paris", arrival, -1), []int{400}, nil),
		httpCase("Validate: 15 days -> 400", base+"/api/itineraries/generate",
			tripBody("Paris", arrival, 15), []int{400}, nil),
		httpCase("Validate: unreadable dates -> 400", base+"/api/itineraries/generate", map[string]any{
			"city":              "Paris",
			"hotel":             "Hotel Lutetia",
			"arrivalDateTime":   "tomorrow",
			"departureDateTime": "later",
		}, []int{400}, nil),
		httpCase("Hotel: missing city -> 400", base+"/api/hotels/recommend", map[string]any{
			"priceRange": "mid",
		}, []int{400}, nil),

		// Persistence; 503 means the server runs without a DSN.
		httpCaseMethod("Trips: malformed id -> 400", http.MethodGet, base+"/api/itineraries/not-a-uuid", nil, []int{400}, []int{503}),
		httpCaseMethod("Trips: unknown id -> 404", http.MethodGet, base+"/api/itineraries/"+missing, nil, []int{404}, []int{503}),
		httpCaseMethod("Trips: unknown calendar -> 404", http.MethodGet, base+"/api/itineraries/"+missing+"/calendar.ics", nil, []int{404}, []int{503}),
		httpCase("Trips: save empty itinerary -> 400", base+"/api/itineraries", map[string]any{
			"request":   tripBody("Paris", arrival, 2),
			"itinerary": map[string]any{"days": []any{}},
		}, []int{400}, []int{503}),
		{
			Name:  "Trips: save then fetch",
			Focus: "round trip through Postgres",
			Run: func(ctx context.Context, r *Runner) Result {
				return saveAndFetch(ctx, r, base, arrival)
			},
		},

		{
			Name:  "Generate: two-day trip",
			Focus: "full model call and parse",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Generate {
					return Result{Status: statusSkip, Note: "generate=false"}
				}
				return generateTrip(ctx, r, base+"/api/itineraries/generate", tripBody("Lisbon", arrival, 2))
			},
		},

		{
			Name:  "Concurrency: parallel validation",
			Focus: "every rejected request answers 400",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentRejects(ctx, r, base+"/api/itineraries/generate", tripBody("", arrival, 2))
			},
		},
		{
			Name:  "Perf: health throughput",
			Focus: "router and middleware overhead",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/health", nil)
			},
		},
		{
			Name:  "Perf: validation throughput",
			Focus: "request decoding and validation",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodPost, base+"/api/itineraries/generate", tripBody("Paris", arrival, 20))
			},
		},
	}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := r.send(ctx, method, url, body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			note := fmt.Sprintf("status=%d", status)
			if contains(okStatuses, status) {
				return Result{Status: statusPass, Latency: latency, Note: note}
			}
			if contains(pendingStatuses, status) {
				return Result{Status: statusPending, Latency: latency, Note: note}
			}
			return Result{Status: statusFail, Latency: latency, Note: note}
		},
	}
}

func (r *Runner) send(ctx context.Context, method, url string, body any) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, time.Since(start), nil
}

type benchItinerary struct {
	Days []struct {
		Date       string `json:"date"`
		Activities []struct {
			Name string `json:"name"`
		} `json:"activities"`
	} `json:"days"`
}

func saveAndFetch(ctx context.Context, r *Runner, base string, arrival time.Time) Result {
	payload := map[string]any{
		"request": tripBody("Paris", arrival, 1),
		"itinerary": map[string]any{
			"days": []any{map[string]any{
				"date":       arrival.Format("Monday, January 2, 2006"),
				"activities": []any{map[string]any{"name": "Louvre Museum"}},
			}},
		},
	}
	status, data, latency, err := r.send(ctx, http.MethodPost, base+"/api/itineraries", payload)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status == http.StatusServiceUnavailable {
		return Result{Status: statusPending, Note: "storage not configured"}
	}
	if status != http.StatusCreated {
		return Result{Status: statusFail, Note: fmt.Sprintf("save status=%d", status)}
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}

	status, data, _, err = r.send(ctx, http.MethodGet, base+"/api/itineraries/"+created.ID, nil)
	if err != nil || status != http.StatusOK {
		return Result{Status: statusFail, Note: fmt.Sprintf("get status=%d err=%v", status, err)}
	}
	var saved struct {
		Itinerary benchItinerary `json:"itinerary"`
	}
	if err := json.Unmarshal(data, &saved); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if len(saved.Itinerary.Days) != 1 || len(saved.Itinerary.Days[0].Activities) != 1 {
		return Result{Status: statusFail, Note: "saved itinerary changed shape"}
	}
	return Result{Status: statusPass, Latency: latency, Note: "id=" + created.ID}
}

func generateTrip(ctx context.Context, r *Runner, url string, body any) Result {
	status, data, latency, err := r.send(ctx, http.MethodPost, url, body)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusOK {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d body=%s", status, data)}
	}
	var itin benchItinerary
	if err := json.Unmarshal(data, &itin); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if len(itin.Days) == 0 {
		return Result{Status: statusFail, Latency: latency, Note: "no days"}
	}
	return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("days=%d first=%q", len(itin.Days), itin.Days[0].Date)}
}

func concurrentRejects(ctx context.Context, r *Runner, url string, payload any) Result {
	var wg sync.WaitGroup
	var rejected, other atomic.Int64

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _, _, err := r.send(ctx, http.MethodPost, url, payload)
			if err == nil && status == http.StatusBadRequest {
				rejected.Add(1)
				return
			}
			other.Add(1)
		}()
	}
	wg.Wait()

	if other.Load() > 0 {
		return Result{Status: statusFail, Note: fmt.Sprintf("rejected=%d other=%d", rejected.Load(), other.Load())}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("rejected=%d", rejected.Load())}
}

func perfLoad(ctx context.Context, r *Runner, method, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				if _, _, _, err := r.send(ctx, method, url, payload); err != nil {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

var createTablePattern = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	matches := createTablePattern.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
