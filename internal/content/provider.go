package content

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

// Provider implements game.ContentProvider over the destination store, the
// stored bonus-question pool and the AI generator. Bonus questions are tried
// generator first, stored pool second; the session itself holds the final
// fixed fallback.
type Provider struct {
	destinations repository.DestinationRepo
	bonuses      repository.BonusRepo
	generator    *Generator
	logger       zerolog.Logger
}

// NewProvider creates a new content provider
func NewProvider(destinations repository.DestinationRepo, bonuses repository.BonusRepo, generator *Generator, logger zerolog.Logger) *Provider {
	return &Provider{
		destinations: destinations,
		bonuses:      bonuses,
		generator:    generator,
		logger:       logger,
	}
}

// FetchDestinations draws a random batch. Destinations missing clues or fun
// facts are topped up by the generator, best effort.
func (p *Provider) FetchDestinations(ctx context.Context, n int) ([]model.Destination, error) {
	dests, err := p.destinations.GetRandom(ctx, n)
	if err != nil {
		return nil, err
	}

	if p.generator != nil {
		for i := range dests {
			if len(dests[i].Clues) == 0 {
				if clue, err := p.generator.GenerateClue(ctx, dests[i]); err == nil && clue != "" {
					dests[i].Clues = append(dests[i].Clues, clue)
				}
			}
			if len(dests[i].FunFacts) == 0 {
				if fact, err := p.generator.GenerateFunFact(ctx, dests[i]); err == nil && fact != "" {
					dests[i].FunFacts = append(dests[i].FunFacts, fact)
				}
			}
		}
	}
	return dests, nil
}

// FetchBonusQuestion builds a bonus question for the emoji seed.
func (p *Provider) FetchBonusQuestion(ctx context.Context, emojiSet []string) (*model.BonusQuestion, error) {
	if p.generator != nil {
		cities := p.recentCityNames(ctx)
		q, err := p.generator.GenerateBonusQuestion(ctx, emojiSet, cities)
		if err == nil && q.Valid() {
			return q, nil
		}
		if err != nil && !errors.Is(err, ErrDisabled) {
			p.logger.Warn().Err(err).Msg("bonus question generation failed, trying stored pool")
		}
	}

	if p.bonuses != nil {
		q, err := p.bonuses.GetByEmojiSet(ctx, emojiSet)
		if err == nil && q == nil {
			q, err = p.bonuses.GetRandom(ctx)
		}
		if err != nil {
			return nil, err
		}
		if q.Valid() {
			return q, nil
		}
	}
	return nil, errors.New("no bonus question available")
}

// recentCityNames pulls a handful of city names to theme the generated
// question with.
func (p *Provider) recentCityNames(ctx context.Context) []string {
	dests, err := p.destinations.GetRandom(ctx, 5)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, d.City)
	}
	return names
}
