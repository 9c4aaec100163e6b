package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"globetrotter/internal/model"
)

// Session owns all mutable state for one player's game. Operations are
// guarded by the current status: a call that does not match the status is a
// silent no-op, which is what resolves the race between a manual answer and
// the countdown reaching zero (first writer wins, the other no-ops).
//
// Content fetches release the lock while in flight; the generation counter
// makes a fetch that settles after End discard its result instead of
// mutating a finished session.
type Session struct {
	mu sync.Mutex

	id     string
	gameID string
	player string

	status        Status
	score         int
	questionIndex int
	correctCount  int
	emojis        []string

	current       *Question
	selected      string
	answerCorrect bool
	remaining     int
	timerBonus    int

	bonus *BonusState

	loading bool
	gen     int

	provider ContentProvider
	sink     ResultSink
	notifier Notifier
	logger   zerolog.Logger
}

// NewSession creates a session for the given player. The provider and sink
// are injected once here; both may be nil in tests.
func NewSession(id, gameID, player string, provider ContentProvider, sink ResultSink, logger zerolog.Logger) *Session {
	return &Session{
		id:       id,
		gameID:   gameID,
		player:   player,
		status:   StatusNotStarted,
		provider: provider,
		sink:     sink,
		logger:   logger.With().Str("sessionId", id).Str("player", player).Logger(),
	}
}

// SetNotifier sets the notifier for presentation-layer events.
func (s *Session) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// GameID returns the persisted game record identifier.
func (s *Session) GameID() string { return s.gameID }

// Player returns the owning player's username.
func (s *Session) Player() string { return s.player }

// Start resets the counters and serves the first question. It is the only
// operation that can fail: a session without a player identity is rejected
// before any state mutation.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.player == "" {
		s.mu.Unlock()
		return ErrNoPlayer
	}
	if s.status != StatusNotStarted || s.loading {
		s.mu.Unlock()
		return nil
	}
	s.score = 0
	s.questionIndex = 0
	s.correctCount = 0
	s.emojis = nil
	s.timerBonus = 0
	s.loading = true
	gen := s.gen
	s.mu.Unlock()

	batch := s.fetchBatch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.loading = false
	s.questionIndex = 1
	s.serveQuestionLocked(batch)
	return nil
}

// Answer resolves the current question with the player's choice. Valid only
// while awaiting an answer; late or duplicate clicks are no-ops.
func (s *Session) Answer(choice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAwaitingAnswer || s.loading || s.current == nil {
		return
	}
	s.resolveAnswerLocked(choice)
}

// TimerExpires resolves the current question as if a random wrong option had
// been picked. No-op unless the session is still awaiting an answer, so a
// tick racing a manual answer cannot resolve the question twice.
func (s *Session) TimerExpires() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAwaitingAnswer || s.loading || s.current == nil {
		return
	}
	s.expireLocked()
}

// Tick counts the question timer down by one second. It reports false once
// the session is over so the driving timer goroutine can exit.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusGameOver {
		return false
	}
	if s.status != StatusAwaitingAnswer || s.loading || s.current == nil {
		return true
	}
	if s.remaining > 0 {
		s.remaining--
		s.notifyLocked(EventTimerTick, map[string]int{"timer": s.remaining})
	}
	if s.remaining == 0 {
		s.expireLocked()
	}
	return true
}

// Advance moves past a revealed answer: into the bonus round after every
// fifth regular question, to game over once the question limit is reached,
// and to the next regular question otherwise. The bonus round never chains
// into another bonus.
func (s *Session) Advance(ctx context.Context) {
	s.mu.Lock()
	if s.loading || (s.status != StatusAnswerRevealed && s.status != StatusBonusRevealed) {
		s.mu.Unlock()
		return
	}
	if s.questionIndex >= QuestionLimit {
		s.finishLocked()
		s.mu.Unlock()
		return
	}
	fromBonus := s.status == StatusBonusRevealed
	s.loading = true
	gen := s.gen
	if !fromBonus && s.questionIndex%BonusInterval == 0 {
		seed := emojiSeed(s.emojis)
		s.mu.Unlock()
		s.advanceToBonus(ctx, gen, seed)
		return
	}
	s.mu.Unlock()
	s.advanceToNext(ctx, gen)
}

// AnswerBonus resolves the pending bonus question. Exactly one scoring event
// per bonus round; repeated calls are no-ops.
func (s *Session) AnswerBonus(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusBonusPending || s.loading || s.bonus == nil {
		return
	}
	if s.bonus.SelectedIndex >= 0 {
		return
	}
	s.bonus.SelectedIndex = index
	s.bonus.Correct = index == s.bonus.Question.CorrectIndex
	s.status = StatusBonusRevealed

	patch := model.ScorePatch{BonusAnsweredDelta: 1}
	if s.bonus.Correct {
		s.score += BonusPoints
		score := s.score
		patch.Score = &score
		patch.BonusCorrectDelta = 1
	}
	s.dispatchUpdateScore(patch)
	s.notifyLocked(EventBonusRevealed, s.snapshotLocked())
}

// End finishes the session from any in-flight state. The final flush is best
// effort; the session reaches game over even if it fails. Ending an already
// finished or never started session changes nothing.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusGameOver || s.status == StatusNotStarted {
		return
	}
	s.loading = false
	s.finishLocked()
}

// Snapshot returns a copy of every observable field.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) resolveAnswerLocked(choice string) {
	dest := s.current.Destination
	correct := choice == dest.City
	s.selected = choice
	s.answerCorrect = correct
	s.status = StatusAnswerRevealed

	if correct {
		s.timerBonus = speedBonus(s.remaining)
		s.score += BasePoints + s.timerBonus
		s.correctCount++
		s.emojis = append(s.emojis, dest.Emoji)
		s.dispatchRecordAnswer(dest)
	} else {
		s.timerBonus = 0
		if s.score < WrongPenalty {
			s.score = 0
		} else {
			s.score -= WrongPenalty
		}
		score := s.score
		s.dispatchUpdateScore(model.ScorePatch{Score: &score})
	}
	s.notifyLocked(EventAnswerRevealed, s.snapshotLocked())
}

func (s *Session) expireLocked() {
	wrong := make([]string, 0, len(s.current.Options))
	for _, opt := range s.current.Options {
		if opt != s.current.Destination.City {
			wrong = append(wrong, opt)
		}
	}
	s.remaining = 0
	if len(wrong) == 0 {
		s.resolveAnswerLocked("")
		return
	}
	s.resolveAnswerLocked(wrong[rand.Intn(len(wrong))])
}

func (s *Session) advanceToBonus(ctx context.Context, gen int, seed []string) {
	q := s.fetchBonus(ctx, seed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	s.current = nil
	s.selected = ""
	s.answerCorrect = false
	s.bonus = &BonusState{Question: *q, SelectedIndex: -1}
	s.status = StatusBonusPending
	s.notifyLocked(EventBonusQuestion, s.snapshotLocked())
}

func (s *Session) advanceToNext(ctx context.Context, gen int) {
	batch := s.fetchBatch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	s.questionIndex++
	s.serveQuestionLocked(batch)
}

func (s *Session) finishLocked() {
	s.gen++
	s.status = StatusGameOver
	s.current = nil
	s.bonus = nil
	stats := model.FinalStats{
		Score:        s.score,
		CorrectCount: s.correctCount,
		Emojis:       append([]string(nil), s.emojis...),
	}
	s.dispatchFinalize(stats)
	s.notifyLocked(EventGameOver, s.snapshotLocked())
}

// serveQuestionLocked installs a fresh question and restarts the countdown.
func (s *Session) serveQuestionLocked(batch []model.Destination) {
	options := make([]string, 0, len(batch))
	for _, d := range batch {
		options = append(options, d.City)
	}
	rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	s.current = &Question{Destination: batch[0], Options: options}
	s.selected = ""
	s.answerCorrect = false
	s.bonus = nil
	s.remaining = TimerSeconds
	s.timerBonus = 0
	s.status = StatusAwaitingAnswer
	s.notifyLocked(EventQuestion, s.snapshotLocked())
}

// fetchBatch asks the provider for a question batch and falls back to the
// bundled sample set when the result is short, duplicated, or an error.
func (s *Session) fetchBatch(ctx context.Context) []model.Destination {
	if s.provider != nil {
		batch, err := s.provider.FetchDestinations(ctx, OptionCount)
		if err == nil {
			batch = distinctByCity(batch)
			if len(batch) >= OptionCount {
				return batch[:OptionCount]
			}
		}
		s.logger.Warn().Err(err).Int("got", len(batch)).Msg("destination fetch fell back to bundled set")
	}
	return SampleDestinations(OptionCount)
}

func (s *Session) fetchBonus(ctx context.Context, seed []string) *model.BonusQuestion {
	if s.provider != nil {
		q, err := s.provider.FetchBonusQuestion(ctx, seed)
		if err == nil && q.Valid() {
			return q
		}
		s.logger.Warn().Err(err).Msg("bonus question fetch fell back to default")
	}
	q := DefaultBonusQuestion
	q.Options = append([]string(nil), DefaultBonusQuestion.Options...)
	q.EmojiSet = seed
	return &q
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:              s.id,
		GameID:          s.gameID,
		Player:          s.player,
		Status:          s.status,
		Score:           s.score,
		QuestionIndex:   s.questionIndex,
		CorrectCount:    s.correctCount,
		CollectedEmojis: append([]string(nil), s.emojis...),
		Timer:           s.remaining,
		TimerBonus:      s.timerBonus,
		SelectedAnswer:  s.selected,
		AnswerCorrect:   s.answerCorrect,
	}
	if s.current != nil {
		q := *s.current
		q.Options = append([]string(nil), s.current.Options...)
		snap.Question = &q
	}
	if s.bonus != nil {
		b := *s.bonus
		b.Question.Options = append([]string(nil), s.bonus.Question.Options...)
		snap.Bonus = &b
	}
	return snap
}

func (s *Session) notifyLocked(event string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.SessionEvent(s.id, event, payload)
	}
}

// Sink calls run detached after the local transition has committed. Failures
// are logged and swallowed; they never touch session state.

func (s *Session) dispatchRecordAnswer(dest model.Destination) {
	if s.sink == nil {
		return
	}
	gameID, logger := s.gameID, s.logger
	sink := s.sink
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sink.RecordAnswer(ctx, gameID, dest); err != nil {
			logger.Warn().Err(err).Str("gameId", gameID).Msg("record answer failed")
		}
	}()
}

func (s *Session) dispatchUpdateScore(patch model.ScorePatch) {
	if s.sink == nil {
		return
	}
	gameID, logger := s.gameID, s.logger
	sink := s.sink
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sink.UpdateScore(ctx, gameID, patch); err != nil {
			logger.Warn().Err(err).Str("gameId", gameID).Msg("score update failed")
		}
	}()
}

func (s *Session) dispatchFinalize(stats model.FinalStats) {
	if s.sink == nil {
		return
	}
	gameID, logger := s.gameID, s.logger
	sink := s.sink
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sink.FinalizeSession(ctx, gameID, stats); err != nil {
			logger.Warn().Err(err).Str("gameId", gameID).Msg("final flush failed")
		}
	}()
}

func speedBonus(remaining int) int {
	switch {
	case remaining >= 20:
		return FastBonus
	case remaining >= 10:
		return MediumBonus
	default:
		return 0
	}
}

// emojiSeed takes the trailing window of collected emojis and pads it from
// the default set up to the seed limit.
func emojiSeed(emojis []string) []string {
	start := 0
	if len(emojis) > EmojiSeedLimit {
		start = len(emojis) - EmojiSeedLimit
	}
	seed := append([]string(nil), emojis[start:]...)
	for i := 0; len(seed) < EmojiSeedLimit; i++ {
		seed = append(seed, DefaultEmojiSet[i%len(DefaultEmojiSet)])
	}
	return seed
}

func distinctByCity(batch []model.Destination) []model.Destination {
	seen := make(map[string]bool, len(batch))
	out := batch[:0]
	for _, d := range batch {
		if d.City == "" || seen[d.City] {
			continue
		}
		seen[d.City] = true
		out = append(out, d)
	}
	return out
}
