package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/haruapp/haru-backend/internal/analysis"
)

// EntrySource supplies diary entries for aggregation. Implemented by
// the diary package; faked in tests.
type EntrySource interface {
	// ListEntries returns non-deleted entries in [from, to] inclusive.
	ListEntries(userID uuid.UUID, from, to time.Time) ([]EntryRecord, error)
	// CountEntries returns the user's lifetime entry count.
	CountEntries(userID uuid.UUID) (int64, error)
	// ListUserIDs returns every user that has at least one entry.
	ListUserIDs() ([]uuid.UUID, error)
}

// SnapshotStore persists MonthlyStat rows. Latest returns (nil, nil)
// when no snapshot exists for the pair.
type SnapshotStore interface {
	Latest(userID uuid.UUID, month time.Time) (*MonthlyStat, error)
	Create(snap *MonthlyStat) error
	Save(snap *MonthlyStat) error
}

// ProfileSource looks up profile metadata echoed on the response.
type ProfileSource interface {
	GetProfile(userID uuid.UUID) (ProfileInfo, error)
}

// Analyzer extracts an emotion score and keyword candidates from raw
// entry text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*analysis.Result, error)
}

const topKeywordCount = 5

// Service composes the monthly statistics: snapshot load/generate,
// live-count reconciliation, keyword accumulation, achievements,
// month-over-month changes and daily trends. The snapshot row is the
// only shared mutable state; everything else here is stateless.
type Service struct {
	entries   EntrySource
	snapshots SnapshotStore
	profiles  ProfileSource
	analyzer  Analyzer

	// Per-user locks serialize keyword read-merge-write so two entries
	// created concurrently cannot drop each other's increments.
	userLocks sync.Map
}

// NewService creates a stats Service.
func NewService(entries EntrySource, snapshots SnapshotStore, profiles ProfileSource, analyzer Analyzer) *Service {
	return &Service{
		entries:   entries,
		snapshots: snapshots,
		profiles:  profiles,
		analyzer:  analyzer,
	}
}

// GetMonthlyStatistics returns the composed statistics for one
// (user, month). It never fails: any error or panic along the way
// degrades to the "still generating" placeholder response.
func (s *Service) GetMonthlyStatistics(userID uuid.UUID, year int, month time.Month) (resp *MonthlyStatisticsResponse) {
	monthStart, monthEnd := monthBounds(year, month)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("statistics read panicked", "user_id", userID, "month", monthStart.Format("2006-01"), "panic", r)
			sentry.CaptureException(fmt.Errorf("statistics read panic: %v", r))
			resp = generatingResponse(monthStart)
		}
	}()

	entries, err := s.entries.ListEntries(userID, monthStart, monthEnd)
	if err != nil {
		slog.Error("failed to load diary entries for stats", "user_id", userID, "error", err)
		return generatingResponse(monthStart)
	}

	snap, err := s.snapshots.Latest(userID, monthStart)
	if err != nil {
		slog.Error("failed to load monthly snapshot", "user_id", userID, "error", err)
		return generatingResponse(monthStart)
	}

	liveCounts := CountEmotions(entries, monthStart, monthEnd)

	if snap == nil {
		snap, err = s.generateSnapshot(userID, monthStart, entries, liveCounts)
		if err != nil {
			slog.Error("snapshot generation failed", "user_id", userID, "error", err)
			return generatingResponse(monthStart)
		}
	} else if !equalCounts(DecodeEmotionCounts(snap.EmotionCounts), liveCounts) {
		// Entries were edited or deleted since the snapshot was
		// written. Counts and texts are corrected in place; keywords,
		// achievements and trends are computed live anyway.
		snap.EmotionCounts = EncodeEmotionCounts(liveCounts)
		snap.StatisticsText = generateStatisticsText(liveCounts)
		snap.GuardianAdvice = generateGuardianAdvice(liveCounts)
		if err := s.snapshots.Save(snap); err != nil {
			slog.Error("snapshot reconciliation failed", "user_id", userID, "error", err)
		}
	}

	return s.compose(userID, monthStart, entries, liveCounts, snap)
}

// generateSnapshot builds and persists the first snapshot for a
// (user, month): live counts, narrative texts and the keyword table
// accumulated from every entry's text. Concurrent first-time readers
// may both generate; the newest row simply wins on the next read.
func (s *Service) generateSnapshot(userID uuid.UUID, monthStart time.Time, entries []EntryRecord, counts map[EmotionType]int) (*MonthlyStat, error) {
	keywords := s.extractKeywords(entries)

	snap := &MonthlyStat{
		ID:             uuid.New(),
		UserID:         userID,
		Month:          monthStart,
		EmotionCounts:  EncodeEmotionCounts(counts),
		TopKeywords:    EncodeKeywordCounts(keywords),
		StatisticsText: generateStatisticsText(counts),
		GuardianAdvice: generateGuardianAdvice(counts),
	}
	if err := s.snapshots.Create(snap); err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}
	return snap, nil
}

// extractKeywords runs every entry through the analyzer and merges the
// validated candidates into one frequency table. Analyzer failures for
// a single entry are logged and skipped.
func (s *Service) extractKeywords(entries []EntryRecord) map[string]int {
	keywords := map[string]int{}
	for _, entry := range entries {
		if entry.Content == "" {
			continue
		}
		result, err := s.analyzer.Analyze(context.Background(), entry.Content)
		if err != nil {
			slog.Warn("entry analysis failed, skipping keywords", "error", err)
			continue
		}
		keywords = MergeKeywords(keywords, result.Keywords, entry.Content)
	}
	return keywords
}

// AccumulateEntryKeywords merges one new entry's keywords into the
// user's current month snapshot. The merge is a read-merge-write
// against the latest row, serialized per user.
func (s *Service) AccumulateEntryKeywords(userID uuid.UUID, content string, at time.Time) error {
	if content == "" {
		return nil
	}

	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	monthStart := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)

	result, err := s.analyzer.Analyze(context.Background(), content)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	snap, err := s.snapshots.Latest(userID, monthStart)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if snap == nil {
		snap = &MonthlyStat{
			ID:            uuid.New(),
			UserID:        userID,
			Month:         monthStart,
			EmotionCounts: EncodeEmotionCounts(CountEmotions(nil, monthStart, monthStart)),
			TopKeywords:   EncodeKeywordCounts(MergeKeywords(nil, result.Keywords, content)),
		}
		return s.snapshots.Create(snap)
	}

	merged := MergeKeywords(DecodeKeywordCounts(snap.TopKeywords), result.Keywords, content)
	snap.TopKeywords = EncodeKeywordCounts(merged)
	return s.snapshots.Save(snap)
}

func (s *Service) lockFor(userID uuid.UUID) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// RegenerateAll rebuilds the snapshot for every known user for the
// given month. Used by the monthly scheduler for the just-completed
// month. Per-user failures are logged and do not stop the batch.
func (s *Service) RegenerateAll(month time.Time) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	userIDs, err := s.entries.ListUserIDs()
	if err != nil {
		slog.Error("failed to list users for regeneration", "error", err)
		sentry.CaptureException(err)
		return
	}

	slog.Info("monthly snapshot regeneration started", "month", monthStart.Format("2006-01"), "users", len(userIDs))

	regenerated := 0
	for _, userID := range userIDs {
		if err := s.regenerateUser(userID, monthStart); err != nil {
			slog.Error("snapshot regeneration failed for user", "user_id", userID, "error", err)
			continue
		}
		regenerated++
	}

	slog.Info("monthly snapshot regeneration finished", "month", monthStart.Format("2006-01"), "regenerated", regenerated, "failed", len(userIDs)-regenerated)
}

func (s *Service) regenerateUser(userID uuid.UUID, monthStart time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("regeneration panicked: %v", r)
		}
	}()

	_, monthEnd := monthBounds(monthStart.Year(), monthStart.Month())
	entries, err := s.entries.ListEntries(userID, monthStart, monthEnd)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	counts := CountEmotions(entries, monthStart, monthEnd)
	keywords := s.extractKeywords(entries)

	snap, err := s.snapshots.Latest(userID, monthStart)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if snap == nil {
		snap = &MonthlyStat{ID: uuid.New(), UserID: userID, Month: monthStart}
		snap.EmotionCounts = EncodeEmotionCounts(counts)
		snap.TopKeywords = EncodeKeywordCounts(keywords)
		snap.StatisticsText = generateStatisticsText(counts)
		snap.GuardianAdvice = generateGuardianAdvice(counts)
		return s.snapshots.Create(snap)
	}

	snap.EmotionCounts = EncodeEmotionCounts(counts)
	snap.TopKeywords = EncodeKeywordCounts(keywords)
	snap.StatisticsText = generateStatisticsText(counts)
	snap.GuardianAdvice = generateGuardianAdvice(counts)
	return s.snapshots.Save(snap)
}

// compose assembles the full response from the reconciled snapshot and
// the live entry set.
func (s *Service) compose(userID uuid.UUID, monthStart time.Time, entries []EntryRecord, counts map[EmotionType]int, snap *MonthlyStat) *MonthlyStatisticsResponse {
	_, monthEnd := monthBounds(monthStart.Year(), monthStart.Month())

	keywordCounts := DecodeKeywordCounts(snap.TopKeywords)

	previousCounts := s.previousMonthCounts(userID, monthStart)

	totalEntries, err := s.entries.CountEntries(userID)
	if err != nil {
		slog.Warn("failed to count lifetime entries", "user_id", userID, "error", err)
		totalEntries = int64(len(entries))
	}

	achievements := CalculateAchievements(
		int(totalEntries),
		len(entries),
		distinctEmotions(counts),
		len(keywordCounts),
	)

	profile := s.profileOrDefault(userID)
	profile.TotalEntries = totalEntries

	return &MonthlyStatisticsResponse{
		Month:          monthStart.Format("2006-01"),
		Generating:     false,
		EmotionRatios:  emotionRatios(counts),
		TopKeywords:    TopKeywords(keywordCounts, topKeywordCount),
		MonthlyChanges: CompareMonths(counts, previousCounts),
		Achievements:   achievements,
		DailyTrends:    SummarizeTrends(entries, monthStart, monthEnd),
		StatisticsText: snap.StatisticsText,
		GuardianAdvice: snap.GuardianAdvice,
		Profile:        profile,
	}
}

// previousMonthCounts loads last month's snapshot counts, defaulting
// to all-zero when no snapshot exists or the row is unreadable.
func (s *Service) previousMonthCounts(userID uuid.UUID, monthStart time.Time) map[EmotionType]int {
	prevMonth := monthStart.AddDate(0, -1, 0)
	prev, err := s.snapshots.Latest(userID, prevMonth)
	if err != nil || prev == nil {
		if err != nil {
			slog.Warn("failed to load previous month snapshot", "user_id", userID, "error", err)
		}
		return CountEmotions(nil, monthStart, monthStart)
	}
	return DecodeEmotionCounts(prev.EmotionCounts)
}

// profileOrDefault fetches the profile, falling back to the fixed
// default identity on any lookup failure.
func (s *Service) profileOrDefault(userID uuid.UUID) ProfileInfo {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		slog.Warn("profile lookup failed, using default", "user_id", userID, "error", err)
		return ProfileInfo{Nickname: "BIF_" + shortID(userID)}
	}
	return profile
}

func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// emotionRatios converts counts to percentage rows, one decimal place,
// ordered GREAT through ANGRY.
func emotionRatios(counts map[EmotionType]int) []EmotionRatio {
	total := 0
	for _, v := range counts {
		total += v
	}

	ratios := make([]EmotionRatio, 0, len(AllEmotions))
	for _, e := range AllEmotions {
		pct := 0.0
		if total > 0 {
			pct = roundToOneDecimal(float64(counts[e]) / float64(total) * 100)
		}
		ratios = append(ratios, EmotionRatio{
			Emotion:    e,
			Label:      e.Label(),
			Emoji:      e.Emoji(),
			Count:      counts[e],
			Percentage: pct,
		})
	}
	return ratios
}

func distinctEmotions(counts map[EmotionType]int) []EmotionType {
	distinct := make([]EmotionType, 0, len(AllEmotions))
	for _, e := range AllEmotions {
		if counts[e] > 0 {
			distinct = append(distinct, e)
		}
	}
	return distinct
}

func equalCounts(a, b map[EmotionType]int) bool {
	for _, e := range AllEmotions {
		if a[e] != b[e] {
			return false
		}
	}
	return true
}

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// generatingResponse is the fixed placeholder returned whenever
// generation or reconciliation fails: well-formed, empty, never an
// error to the caller.
func generatingResponse(monthStart time.Time) *MonthlyStatisticsResponse {
	return &MonthlyStatisticsResponse{
		Month:          monthStart.Format("2006-01"),
		Generating:     true,
		EmotionRatios:  emotionRatios(CountEmotions(nil, monthStart, monthStart)),
		TopKeywords:    []KeywordCount{},
		MonthlyChanges: []MonthlyChange{},
		Achievements:   defaultAchievementResult(),
		DailyTrends:    []EmotionTrendPoint{},
		StatisticsText: "Your statistics are still being generated.",
		GuardianAdvice: "",
		Profile:        ProfileInfo{},
	}
}
