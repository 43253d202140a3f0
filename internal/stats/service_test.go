package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/haruapp/haru-backend/internal/analysis"
)

type fakeEntrySource struct {
	entries map[uuid.UUID][]EntryRecord
	listErr error
}

func (f *fakeEntrySource) ListEntries(userID uuid.UUID, from, to time.Time) ([]EntryRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []EntryRecord
	for _, e := range f.entries[userID] {
		if !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntrySource) CountEntries(userID uuid.UUID) (int64, error) {
	return int64(len(f.entries[userID])), nil
}

func (f *fakeEntrySource) ListUserIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(f.entries))
	for id := range f.entries {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeSnapshotStore struct {
	mu        sync.Mutex
	snaps     map[string]*MonthlyStat
	createErr error
	saves     int
	creates   int
}

func snapKey(userID uuid.UUID, month time.Time) string {
	return userID.String() + "|" + month.Format("2006-01")
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snaps: map[string]*MonthlyStat{}}
}

func (f *fakeSnapshotStore) Latest(userID uuid.UUID, month time.Time) (*MonthlyStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.snaps[snapKey(userID, month)]
	if !ok {
		return nil, nil
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeSnapshotStore) Create(snap *MonthlyStat) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	cp := *snap
	f.snaps[snapKey(snap.UserID, snap.Month)] = &cp
	return nil
}

func (f *fakeSnapshotStore) Save(snap *MonthlyStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	cp := *snap
	f.snaps[snapKey(snap.UserID, snap.Month)] = &cp
	return nil
}

type fakeProfileSource struct {
	profile ProfileInfo
	err     error
}

func (f *fakeProfileSource) GetProfile(uuid.UUID) (ProfileInfo, error) {
	if f.err != nil {
		return ProfileInfo{}, f.err
	}
	return f.profile, nil
}

type fakeAnalyzer struct {
	keywords []string
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (*analysis.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &analysis.Result{Keywords: f.keywords}, nil
}

func monthlyEntries(userID uuid.UUID, month time.Time, emotions ...string) []EntryRecord {
	entries := make([]EntryRecord, 0, len(emotions))
	for i, e := range emotions {
		entries = append(entries, EntryRecord{
			Emotion:   e,
			Content:   "가족과 운동을 했다",
			CreatedAt: month.AddDate(0, 0, i%28).Add(9 * time.Hour),
		})
	}
	return entries
}

func TestGetMonthlyStatisticsEndToEnd(t *testing.T) {
	userID := uuid.New()
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	emotions := make([]string, 0, 10)
	for i := 0; i < 6; i++ {
		emotions = append(emotions, "EXCELLENT")
	}
	for i := 0; i < 4; i++ {
		emotions = append(emotions, "NEUTRAL")
	}

	entries := &fakeEntrySource{entries: map[uuid.UUID][]EntryRecord{
		userID: monthlyEntries(userID, month, emotions...),
	}}
	store := newFakeSnapshotStore()
	svc := NewService(entries, store, &fakeProfileSource{profile: ProfileInfo{Nickname: "BIF_tester"}}, &fakeAnalyzer{keywords: []string{"가족", "운동"}})

	resp := svc.GetMonthlyStatistics(userID, 2026, time.July)

	if resp.Generating {
		t.Fatal("expected a generated response")
	}
	if resp.Month != "2026-07" {
		t.Errorf("Month = %q", resp.Month)
	}

	if len(resp.EmotionRatios) != 5 {
		t.Fatalf("expected 5 ratios, got %d", len(resp.EmotionRatios))
	}
	if resp.EmotionRatios[0].Emotion != EmotionGreat || resp.EmotionRatios[0].Percentage != 60.0 {
		t.Errorf("GREAT ratio = %+v, want 60.0", resp.EmotionRatios[0])
	}
	if resp.EmotionRatios[2].Emotion != EmotionOkay || resp.EmotionRatios[2].Percentage != 40.0 {
		t.Errorf("OKAY ratio = %+v, want 40.0", resp.EmotionRatios[2])
	}
	for i, e := range AllEmotions {
		if resp.EmotionRatios[i].Emotion != e {
			t.Errorf("ratio position %d: got %v, want %v", i, resp.EmotionRatios[i].Emotion, e)
		}
	}

	if len(resp.TopKeywords) != 2 {
		t.Errorf("TopKeywords = %v", resp.TopKeywords)
	}
	if resp.Profile.Nickname != "BIF_tester" {
		t.Errorf("Nickname = %q", resp.Profile.Nickname)
	}
	if resp.Profile.TotalEntries != 10 {
		t.Errorf("TotalEntries = %d, want 10", resp.Profile.TotalEntries)
	}
	if resp.StatisticsText == "" || resp.GuardianAdvice == "" {
		t.Error("expected narrative texts to be generated")
	}

	// Lazy generation persisted a snapshot on first read.
	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
}

func TestGetMonthlyStatisticsLazyGenerationOnce(t *testing.T) {
	userID := uuid.New()
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	entries := &fakeEntrySource{entries: map[uuid.UUID][]EntryRecord{
		userID: monthlyEntries(userID, month, "JOY", "JOY"),
	}}
	store := newFakeSnapshotStore()
	svc := NewService(entries, store, &fakeProfileSource{}, &fakeAnalyzer{})

	svc.GetMonthlyStatistics(userID, 2026, time.July)
	svc.GetMonthlyStatistics(userID, 2026, time.July)

	if store.creates != 1 {
		t.Errorf("creates = %d, want 1 (second read must reuse the snapshot)", store.creates)
	}
}

func TestGetMonthlyStatisticsReconcilesStaleSnapshot(t *testing.T) {
	userID := uuid.New()
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	entries := &fakeEntrySource{entries: map[uuid.UUID][]EntryRecord{
		userID: monthlyEntries(userID, month, "JOY", "JOY", "SAD"),
	}}
	store := newFakeSnapshotStore()

	// Stale snapshot says 5 JOY; live data says 2 JOY + 1 SAD.
	store.snaps[snapKey(userID, month)] = &MonthlyStat{
		ID:            uuid.New(),
		UserID:        userID,
		Month:         month,
		EmotionCounts: EncodeEmotionCounts(map[EmotionType]int{EmotionGood: 5}),
		TopKeywords:   []byte(`{}`),
	}

	svc := NewService(entries, store, &fakeProfileSource{}, &fakeAnalyzer{})
	resp := svc.GetMonthlyStatistics(userID, 2026, time.July)

	if store.saves != 1 {
		t.Errorf("saves = %d, want 1 reconciliation write", store.saves)
	}
	if resp.EmotionRatios[1].Count != 2 {
		t.Errorf("GOOD count after reconciliation = %d, want 2", resp.EmotionRatios[1].Count)
	}
	if resp.EmotionRatios[3].Count != 1 {
		t.Errorf("DOWN count after reconciliation = %d, want 1", resp.EmotionRatios[3].Count)
	}

	stored, _ := store.Latest(userID, month)
	counts := DecodeEmotionCounts(stored.EmotionCounts)
	if counts[EmotionGood] != 2 || counts[EmotionDown] != 1 {
		t.Errorf("persisted counts not corrected: %v", counts)
	}
}

func TestGetMonthlyStatisticsFailureReturnsPlaceholder(t *testing.T) {
	userID := uuid.New()
	entries := &fakeEntrySource{listErr: errors.New("db down")}
	svc := NewService(entries, newFakeSnapshotStore(), &fakeProfileSource{}, &fakeAnalyzer{})

	resp := svc.GetMonthlyStatistics(userID, 2026, time.July)

	if !resp.Generating {
		t.Fatal("expected the still-generating placeholder")
	}
	if resp.Month != "2026-07" {
		t.Errorf("Month = %q", resp.Month)
	}
	if len(resp.EmotionRatios) != 5 {
		t.Errorf("placeholder must carry all 5 zero ratios, got %d", len(resp.EmotionRatios))
	}
	if len(resp.TopKeywords) != 0 || len(resp.DailyTrends) != 0 {
		t.Error("placeholder must be empty")
	}
}

func TestGetMonthlyStatisticsCreateFailureReturnsPlaceholder(t *testing.T) {
	userID := uuid.New()
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	entries := &fakeEntrySource{entries: map[uuid.UUID][]EntryRecord{
		userID: monthlyEntries(userID, month, "JOY"),
	}}
	store := newFakeSnapshotStore()
	store.createErr = errors.New("insert failed")

	svc := NewService(entries, store, &fakeProfileSource{}, &fakeAnalyzer{})
	resp := svc.GetMonthlyStatistics(userID, 2026, time.July)

	if !resp.Generating {
		t.Fatal("expected the still-generating placeholder when persistence fails")
	}
}

func TestAccumulateEntryKeywords(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	store := newFakeSnapshotStore()
	svc := NewService(&fakeEntrySource{}, store, &fakeProfileSource{}, &fakeAnalyzer{keywords: []string{"가족"}})

	if err := svc.AccumulateEntryKeywords(userID, "가족과 저녁", at); err != nil {
		t.Fatalf("first accumulate: %v", err)
	}
	if err := svc.AccumulateEntryKeywords(userID, "가족 여행", at); err != nil {
		t.Fatalf("second accumulate: %v", err)
	}

	snap, _ := store.Latest(userID, month)
	if snap == nil {
		t.Fatal("expected a snapshot row")
	}
	counts := DecodeKeywordCounts(snap.TopKeywords)
	if counts["가족"] != 2 {
		t.Errorf("가족 = %d, want 2", counts["가족"])
	}
}

func TestAccumulateEntryKeywordsConcurrent(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	store := newFakeSnapshotStore()
	svc := NewService(&fakeEntrySource{}, store, &fakeProfileSource{}, &fakeAnalyzer{keywords: []string{"운동"}})

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = svc.AccumulateEntryKeywords(userID, "아침 운동 완료", at)
		}()
	}
	wg.Wait()

	snap, _ := store.Latest(userID, month)
	counts := DecodeKeywordCounts(snap.TopKeywords)
	if counts["운동"] != n {
		t.Errorf("운동 = %d, want %d (lost increments under concurrency)", counts["운동"], n)
	}
}

func TestAccumulateEntryKeywordsEmptyContent(t *testing.T) {
	store := newFakeSnapshotStore()
	svc := NewService(&fakeEntrySource{}, store, &fakeProfileSource{}, &fakeAnalyzer{})

	if err := svc.AccumulateEntryKeywords(uuid.New(), "", time.Now()); err != nil {
		t.Fatalf("empty content must be a no-op, got %v", err)
	}
	if store.creates != 0 && store.saves != 0 {
		t.Error("empty content must not touch the store")
	}
}

func TestRegenerateAllRebuildsSnapshots(t *testing.T) {
	okUser := uuid.New()
	month := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	entries := &fakeEntrySource{entries: map[uuid.UUID][]EntryRecord{
		okUser: monthlyEntries(okUser, month, "EXCELLENT", "JOY"),
	}}
	store := newFakeSnapshotStore()
	svc := NewService(entries, store, &fakeProfileSource{}, &fakeAnalyzer{})

	svc.RegenerateAll(month)

	snap, _ := store.Latest(okUser, month)
	if snap == nil {
		t.Fatal("expected a regenerated snapshot")
	}
	counts := DecodeEmotionCounts(snap.EmotionCounts)
	if counts[EmotionGreat] != 1 || counts[EmotionGood] != 1 {
		t.Errorf("regenerated counts = %v", counts)
	}
}

func TestProfileLookupFailureUsesDefault(t *testing.T) {
	userID := uuid.New()
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	entries := &fakeEntrySource{entries: map[uuid.UUID][]EntryRecord{
		userID: monthlyEntries(userID, month, "JOY"),
	}}
	svc := NewService(entries, newFakeSnapshotStore(), &fakeProfileSource{err: errors.New("no profile")}, &fakeAnalyzer{})

	resp := svc.GetMonthlyStatistics(userID, 2026, time.July)
	want := "BIF_" + userID.String()[:8]
	if resp.Profile.Nickname != want {
		t.Errorf("Nickname = %q, want %q", resp.Profile.Nickname, want)
	}
}
