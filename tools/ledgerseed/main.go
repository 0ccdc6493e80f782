package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type config struct {
	baseURL    string
	facilityID string
	month      string
	days       int
	skipDays   string
	seed       int64
	runExport  bool
}

func main() {
	cfg := parseConfig()
	if cfg.baseURL == "" {
		log.Fatal("base-url is required")
	}
	if cfg.facilityID == "" {
		log.Fatal("facility-id is required")
	}

	monthStart, err := parseMonth(cfg.month)
	if err != nil {
		log.Fatalf("invalid month: %v", err)
	}
	days := cfg.days
	if days <= 0 {
		days = daysInMonth(monthStart)
	}
	skip := parseSkipDays(cfg.skipDays)

	ctx := context.Background()
	client := &http.Client{Timeout: 30 * time.Second}
	rng := rand.New(rand.NewSource(cfg.seed))

	seeded := 0
	for day := 1; day <= days; day++ {
		if _, skipped := skip[day]; skipped {
			continue
		}
		date := monthStart.AddDate(0, 0, day-1).Format(dateLayout)
		if err := submitEntry(ctx, client, cfg.baseURL, cfg.facilityID, date, rng); err != nil {
			log.Fatalf("submit %s: %v", date, err)
		}
		seeded++
	}
	log.Printf("seeded %d entries for facility %s month %s", seeded, cfg.facilityID, monthStart.Format("2006-01"))

	if cfg.runExport {
		fileName, err := runExport(ctx, client, cfg.baseURL, cfg.facilityID, len(skip) > 0)
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		log.Printf("exported %s", fileName)
	}
}

func parseConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.baseURL, "base-url", envOrDefault("BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.facilityID, "facility-id", envOrDefault("FACILITY_ID", "facility-demo"), "facility id to seed")
	flag.StringVar(&cfg.month, "month", envOrDefault("MONTH", ""), "month to seed (YYYY-MM, defaults to current)")
	flag.IntVar(&cfg.days, "days", envOrInt("DAYS", 0), "number of days to seed (0 = whole month)")
	flag.StringVar(&cfg.skipDays, "skip-days", envOrDefault("SKIP_DAYS", ""), "comma separated day numbers to leave out")
	flag.Int64Var(&cfg.seed, "seed", 1, "random seed for entry amounts")
	flag.BoolVar(&cfg.runExport, "export", false, "trigger an export after seeding")
	flag.Parse()
	return cfg
}

func parseMonth(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func daysInMonth(monthStart time.Time) int {
	return time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseSkipDays(value string) map[int]struct{} {
	skip := map[int]struct{}{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			log.Fatalf("invalid skip day %q", part)
		}
		skip[day] = struct{}{}
	}
	return skip
}

func submitEntry(ctx context.Context, client *http.Client, baseURL, facilityID, date string, rng *rand.Rand) error {
	base5 := round2(50 + rng.Float64()*100)
	tax5 := round2(base5 * 0.05)
	base19 := round2(100 + rng.Float64()*400)
	tax19 := round2(base19 * 0.19)
	base0 := round2(rng.Float64() * 50)
	base23 := round2(rng.Float64() * 200)
	tax23 := round2(base23 * 0.23)
	total := round2(base5 + tax5 + base19 + tax19 + base0 + base23 + tax23)

	body := map[string]any{
		"datum":         date,
		"dph5Zaklad":    base5,
		"dph5Dan":       tax5,
		"dph19Zaklad":   base19,
		"dph19Dan":      tax19,
		"dph0Zaklad":    base0,
		"dph23Zaklad":   base23,
		"dph23Dan":      tax23,
		"kreditnaKarta": round2(total * 0.4),
		"trzbaSpolu":    total,
		"dkp":           "1234567890",
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/dph/"+facilityID, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return nil
}

func runExport(ctx context.Context, client *http.Client, baseURL, facilityID string, bypassGapCheck bool) (string, error) {
	payload, _ := json.Marshal(map[string]any{"bypassGapCheck": bypassGapCheck})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/dph/export/"+facilityID, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}
	var respBody struct {
		FileName string `json:"fileName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", err
	}
	return respBody.FileName, nil
}

func round2(value float64) float64 {
	return float64(int64(value*100+0.5)) / 100
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
