package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"globetrotter/internal/model"
)

type fakeProvider struct {
	mu         sync.Mutex
	dests      []model.Destination
	bonus      *model.BonusQuestion
	destErr    error
	bonusErr   error
	bonusSeeds [][]string

	blockFetch   chan struct{}
	fetchStarted chan struct{}
}

func (p *fakeProvider) FetchDestinations(ctx context.Context, n int) ([]model.Destination, error) {
	if p.blockFetch != nil {
		select {
		case p.fetchStarted <- struct{}{}:
		default:
		}
		<-p.blockFetch
	}
	if p.destErr != nil {
		return nil, p.destErr
	}
	batch := make([]model.Destination, len(p.dests))
	copy(batch, p.dests)
	return batch, nil
}

func (p *fakeProvider) FetchBonusQuestion(ctx context.Context, emojiSet []string) (*model.BonusQuestion, error) {
	p.mu.Lock()
	p.bonusSeeds = append(p.bonusSeeds, append([]string(nil), emojiSet...))
	p.mu.Unlock()
	if p.bonusErr != nil {
		return nil, p.bonusErr
	}
	q := *p.bonus
	q.Options = append([]string(nil), p.bonus.Options...)
	return &q, nil
}

type fakeSink struct {
	mu      sync.Mutex
	answers []string
	patches []model.ScorePatch
	finals  []model.FinalStats
}

func (s *fakeSink) RecordAnswer(ctx context.Context, gameID string, dest model.Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, dest.City)
	return nil
}

func (s *fakeSink) UpdateScore(ctx context.Context, gameID string, patch model.ScorePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches = append(s.patches, patch)
	return nil
}

func (s *fakeSink) FinalizeSession(ctx context.Context, gameID string, stats model.FinalStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finals = append(s.finals, stats)
	return nil
}

func (s *fakeSink) finalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.finals)
}

func testProvider() *fakeProvider {
	return &fakeProvider{
		dests: []model.Destination{
			{City: "Lisbon", Country: "Portugal", Emoji: "🚋", Clues: []string{"Trams and tiles"}},
			{City: "Oslo", Country: "Norway", Emoji: "⛷️", Clues: []string{"Fjord capital"}},
			{City: "Lima", Country: "Peru", Emoji: "🦙", Clues: []string{"Pacific coast capital"}},
			{City: "Hanoi", Country: "Vietnam", Emoji: "🍜", Clues: []string{"Old Quarter streets"}},
		},
		bonus: &model.BonusQuestion{
			Question:     "Which of these countries borders the Pacific?",
			Options:      []string{"Portugal", "Norway", "Peru", "Vietnam"},
			CorrectIndex: 2,
		},
	}
}

func startedSession(t *testing.T, provider ContentProvider, sink ResultSink) *Session {
	t.Helper()
	s := NewSession("sess-1", "game-1", "ana", provider, sink, zerolog.Nop())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return s
}

func answerCorrectly(t *testing.T, s *Session) {
	t.Helper()
	snap := s.Snapshot()
	if snap.Question == nil {
		t.Fatalf("no current question in status %s", snap.Status)
	}
	s.Answer(snap.Question.Destination.City)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestStartServesFirstQuestion(t *testing.T) {
	s := startedSession(t, testProvider(), nil)

	snap := s.Snapshot()
	if snap.Status != StatusAwaitingAnswer {
		t.Fatalf("expected status %s, got %s", StatusAwaitingAnswer, snap.Status)
	}
	if snap.QuestionIndex != 1 {
		t.Fatalf("expected question index 1, got %d", snap.QuestionIndex)
	}
	if snap.Timer != TimerSeconds {
		t.Fatalf("expected timer %d, got %d", TimerSeconds, snap.Timer)
	}
	if snap.Question == nil || len(snap.Question.Options) != OptionCount {
		t.Fatalf("expected %d options, got %+v", OptionCount, snap.Question)
	}

	found := false
	for _, opt := range snap.Question.Options {
		if opt == snap.Question.Destination.City {
			found = true
		}
	}
	if !found {
		t.Fatalf("correct city %q missing from options %v", snap.Question.Destination.City, snap.Question.Options)
	}
}

func TestStartWithoutPlayer(t *testing.T) {
	s := NewSession("sess-1", "game-1", "", testProvider(), nil, zerolog.Nop())
	if err := s.Start(context.Background()); err != ErrNoPlayer {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
	if s.Snapshot().Status != StatusNotStarted {
		t.Fatalf("session should stay not started")
	}
}

func TestFastAnswerScoring(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	answerCorrectly(t, s)

	snap := s.Snapshot()
	if snap.Status != StatusAnswerRevealed {
		t.Fatalf("expected status %s, got %s", StatusAnswerRevealed, snap.Status)
	}
	if !snap.AnswerCorrect {
		t.Fatalf("answer should be marked correct")
	}
	if snap.Score != BasePoints+FastBonus {
		t.Fatalf("expected score %d, got %d", BasePoints+FastBonus, snap.Score)
	}
	if snap.TimerBonus != FastBonus {
		t.Fatalf("expected timer bonus %d, got %d", FastBonus, snap.TimerBonus)
	}
	if snap.CorrectCount != 1 || len(snap.CollectedEmojis) != 1 {
		t.Fatalf("expected one correct answer and one emoji, got %d/%d", snap.CorrectCount, len(snap.CollectedEmojis))
	}
}

func TestMediumAnswerScoring(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	for i := 0; i < 15; i++ {
		s.Tick()
	}
	answerCorrectly(t, s)

	snap := s.Snapshot()
	if snap.Score != BasePoints+MediumBonus {
		t.Fatalf("expected score %d, got %d", BasePoints+MediumBonus, snap.Score)
	}
}

func TestSlowAnswerScoring(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	for i := 0; i < 25; i++ {
		s.Tick()
	}
	answerCorrectly(t, s)

	snap := s.Snapshot()
	if snap.Score != BasePoints {
		t.Fatalf("expected score %d, got %d", BasePoints, snap.Score)
	}
	if snap.TimerBonus != 0 {
		t.Fatalf("expected no timer bonus, got %d", snap.TimerBonus)
	}
}

func TestWrongAnswerClampsAtZero(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	s.Answer("Atlantis")

	snap := s.Snapshot()
	if snap.AnswerCorrect {
		t.Fatalf("answer should be marked wrong")
	}
	if snap.Score != 0 {
		t.Fatalf("score should clamp at zero, got %d", snap.Score)
	}
	if len(snap.CollectedEmojis) != 0 {
		t.Fatalf("wrong answer must not collect an emoji")
	}
}

func TestWrongAnswerDeductsPenalty(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	answerCorrectly(t, s)
	s.Advance(context.Background())
	s.Answer("Atlantis")

	snap := s.Snapshot()
	want := BasePoints + FastBonus - WrongPenalty
	if snap.Score != want {
		t.Fatalf("expected score %d, got %d", want, snap.Score)
	}
}

func TestTimerExpiryResolvesAsWrong(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	for i := 0; i < TimerSeconds; i++ {
		s.Tick()
	}

	snap := s.Snapshot()
	if snap.Status != StatusAnswerRevealed {
		t.Fatalf("expected expiry to reveal the answer, got %s", snap.Status)
	}
	if snap.AnswerCorrect {
		t.Fatalf("expiry should resolve as a wrong answer")
	}
	if snap.Timer != 0 {
		t.Fatalf("expected timer at zero, got %d", snap.Timer)
	}
	if snap.SelectedAnswer == snap.Question.Destination.City {
		t.Fatalf("expiry must not select the correct city")
	}

	// A click arriving after expiry changes nothing.
	before := s.Snapshot()
	s.Answer(before.Question.Destination.City)
	after := s.Snapshot()
	if after.Score != before.Score || after.Status != before.Status {
		t.Fatalf("late answer mutated a resolved question")
	}
}

func TestExpiryAfterAnswerIsNoOp(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	answerCorrectly(t, s)

	before := s.Snapshot()
	s.TimerExpires()
	after := s.Snapshot()
	if after.Score != before.Score || after.AnswerCorrect != before.AnswerCorrect {
		t.Fatalf("expiry mutated an already answered question")
	}
}

func TestBonusRoundAfterFifthQuestion(t *testing.T) {
	provider := testProvider()
	s := startedSession(t, provider, nil)

	ctx := context.Background()
	for i := 0; i < BonusInterval; i++ {
		answerCorrectly(t, s)
		s.Advance(ctx)
	}

	snap := s.Snapshot()
	if snap.Status != StatusBonusPending {
		t.Fatalf("expected bonus round after question %d, got %s", BonusInterval, snap.Status)
	}
	if snap.Bonus == nil || snap.Bonus.SelectedIndex != -1 {
		t.Fatalf("expected unanswered bonus state, got %+v", snap.Bonus)
	}
	if snap.QuestionIndex != BonusInterval {
		t.Fatalf("bonus round must not advance the question index, got %d", snap.QuestionIndex)
	}

	provider.mu.Lock()
	seeds := provider.bonusSeeds
	provider.mu.Unlock()
	if len(seeds) != 1 || len(seeds[0]) != EmojiSeedLimit {
		t.Fatalf("expected one seed of %d emojis, got %v", EmojiSeedLimit, seeds)
	}
	for i, emoji := range seeds[0] {
		if emoji != snap.CollectedEmojis[i] {
			t.Fatalf("seed %v should be the trailing collected emojis %v", seeds[0], snap.CollectedEmojis)
		}
	}

	// Correct bonus answer pays out and reveals.
	scoreBefore := snap.Score
	s.AnswerBonus(snap.Bonus.Question.CorrectIndex)
	snap = s.Snapshot()
	if snap.Status != StatusBonusRevealed {
		t.Fatalf("expected status %s, got %s", StatusBonusRevealed, snap.Status)
	}
	if snap.Score != scoreBefore+BonusPoints {
		t.Fatalf("expected score %d, got %d", scoreBefore+BonusPoints, snap.Score)
	}

	// Advancing out of the bonus serves question six, never another bonus.
	s.Advance(ctx)
	snap = s.Snapshot()
	if snap.Status != StatusAwaitingAnswer || snap.QuestionIndex != BonusInterval+1 {
		t.Fatalf("expected question %d, got index %d in status %s", BonusInterval+1, snap.QuestionIndex, snap.Status)
	}
}

func TestWrongBonusAnswerHasNoPenalty(t *testing.T) {
	s := startedSession(t, testProvider(), nil)
	ctx := context.Background()
	for i := 0; i < BonusInterval; i++ {
		answerCorrectly(t, s)
		s.Advance(ctx)
	}

	snap := s.Snapshot()
	wrong := (snap.Bonus.Question.CorrectIndex + 1) % len(snap.Bonus.Question.Options)
	s.AnswerBonus(wrong)

	after := s.Snapshot()
	if after.Score != snap.Score {
		t.Fatalf("wrong bonus answer changed score from %d to %d", snap.Score, after.Score)
	}
	if after.Bonus.Correct {
		t.Fatalf("bonus should be marked wrong")
	}

	// Second submission is a no-op.
	s.AnswerBonus(snap.Bonus.Question.CorrectIndex)
	if got := s.Snapshot(); got.Score != after.Score || got.Bonus.SelectedIndex != wrong {
		t.Fatalf("repeated bonus answer mutated state")
	}
}

func TestGameOverAfterQuestionLimit(t *testing.T) {
	sink := &fakeSink{}
	s := startedSession(t, testProvider(), sink)
	ctx := context.Background()

	for i := 0; i < QuestionLimit; i++ {
		answerCorrectly(t, s)
		s.Advance(ctx)
		snap := s.Snapshot()
		if snap.Status == StatusBonusPending {
			s.AnswerBonus(snap.Bonus.Question.CorrectIndex)
			s.Advance(ctx)
		}
	}

	snap := s.Snapshot()
	if snap.Status != StatusGameOver {
		t.Fatalf("expected game over after %d questions, got %s", QuestionLimit, snap.Status)
	}
	if snap.Question != nil || snap.Bonus != nil {
		t.Fatalf("game over should clear the active question and bonus")
	}

	// One bonus round fires at question five; the limit check wins at ten.
	want := QuestionLimit*(BasePoints+FastBonus) + BonusPoints
	if snap.Score != want {
		t.Fatalf("expected final score %d, got %d", want, snap.Score)
	}
	if snap.CorrectCount != QuestionLimit || len(snap.CollectedEmojis) != QuestionLimit {
		t.Fatalf("expected %d correct answers and emojis, got %d/%d",
			QuestionLimit, snap.CorrectCount, len(snap.CollectedEmojis))
	}

	waitFor(t, "final flush", func() bool { return sink.finalCount() == 1 })

	if s.Tick() {
		t.Fatalf("Tick should report false after game over")
	}
}

func TestEndMidGame(t *testing.T) {
	sink := &fakeSink{}
	s := startedSession(t, testProvider(), sink)
	answerCorrectly(t, s)

	s.End()
	snap := s.Snapshot()
	if snap.Status != StatusGameOver {
		t.Fatalf("expected game over, got %s", snap.Status)
	}
	if snap.Score != BasePoints+FastBonus {
		t.Fatalf("ending must keep the accumulated score, got %d", snap.Score)
	}

	waitFor(t, "final flush", func() bool { return sink.finalCount() == 1 })

	// Ending again does not flush twice.
	s.End()
	time.Sleep(20 * time.Millisecond)
	if sink.finalCount() != 1 {
		t.Fatalf("repeated End flushed again")
	}
}

func TestProviderFailureFallsBackToBundledSet(t *testing.T) {
	provider := testProvider()
	provider.destErr = context.DeadlineExceeded
	s := startedSession(t, provider, nil)

	snap := s.Snapshot()
	if snap.Status != StatusAwaitingAnswer {
		t.Fatalf("fallback should still serve a question, got %s", snap.Status)
	}
	if snap.Question == nil || len(snap.Question.Options) != OptionCount {
		t.Fatalf("fallback question incomplete: %+v", snap.Question)
	}
}

func TestBonusFallbackToDefaultQuestion(t *testing.T) {
	provider := testProvider()
	provider.bonusErr = context.DeadlineExceeded
	s := startedSession(t, provider, nil)
	ctx := context.Background()
	for i := 0; i < BonusInterval; i++ {
		answerCorrectly(t, s)
		s.Advance(ctx)
	}

	snap := s.Snapshot()
	if snap.Status != StatusBonusPending {
		t.Fatalf("expected bonus round, got %s", snap.Status)
	}
	if snap.Bonus.Question.Question != DefaultBonusQuestion.Question {
		t.Fatalf("expected the default bonus question, got %q", snap.Bonus.Question.Question)
	}
	if len(snap.Bonus.Question.EmojiSet) != EmojiSeedLimit {
		t.Fatalf("default bonus question should carry the emoji seed")
	}
}

func TestEndDiscardsInFlightFetch(t *testing.T) {
	provider := testProvider()
	s := startedSession(t, provider, nil)
	answerCorrectly(t, s)

	provider.blockFetch = make(chan struct{})
	provider.fetchStarted = make(chan struct{}, 1)

	done := make(chan struct{})
	go func() {
		s.Advance(context.Background())
		close(done)
	}()

	<-provider.fetchStarted
	s.End()
	close(provider.blockFetch)
	<-done

	snap := s.Snapshot()
	if snap.Status != StatusGameOver {
		t.Fatalf("stale fetch resurrected the session into %s", snap.Status)
	}
	if snap.Question != nil {
		t.Fatalf("stale fetch installed a question after game over")
	}
}

func TestEmojiSeedPadding(t *testing.T) {
	seed := emojiSeed([]string{"🗽", "🗼"})
	if len(seed) != EmojiSeedLimit {
		t.Fatalf("expected seed of %d, got %d", EmojiSeedLimit, len(seed))
	}
	if seed[0] != "🗽" || seed[1] != "🗼" {
		t.Fatalf("collected emojis should lead the seed, got %v", seed)
	}

	long := emojiSeed([]string{"a", "b", "c", "d", "e", "f", "g"})
	if len(long) != EmojiSeedLimit || long[0] != "c" || long[4] != "g" {
		t.Fatalf("expected trailing window of %d, got %v", EmojiSeedLimit, long)
	}
}
