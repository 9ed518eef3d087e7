package storage

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lixenwraith/roadrunner/config"
)

// Store keys
const (
	KeyBestScore = "best_score"
	KeyUnlocked  = "unlocked"
)

// Records is the persisted progress: best score and the unlocked presets
type Records struct {
	Best     int
	Unlocked []string
}

// LoadRecords reads records; missing keys are zero values
func LoadRecords(s Store) (Records, error) {
	var r Records

	best, err := s.Get(KeyBestScore)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return r, fmt.Errorf("load best score: %w", err)
	default:
		n, err := strconv.Atoi(strings.TrimSpace(best))
		if err != nil {
			return r, fmt.Errorf("load best score %q: %w", best, err)
		}
		r.Best = n
	}

	unlocked, err := s.Get(KeyUnlocked)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return r, fmt.Errorf("load unlocks: %w", err)
	default:
		for _, name := range strings.Split(unlocked, ",") {
			if name = strings.TrimSpace(name); name != "" {
				r.Unlocked = append(r.Unlocked, name)
			}
		}
	}
	return r, nil
}

// SaveRecords writes both keys
func SaveRecords(s Store, r Records) error {
	if err := s.Set(KeyBestScore, strconv.Itoa(r.Best)); err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	if err := s.Set(KeyUnlocked, strings.Join(r.Unlocked, ",")); err != nil {
		return fmt.Errorf("save unlocks: %w", err)
	}
	return nil
}

// Submit folds a finished run's score into the records
// Returns whether the best improved and which presets were newly unlocked
func (r *Records) Submit(score int, unlocks config.Unlocks) (bool, []string) {
	improved := score > r.Best
	if improved {
		r.Best = score
	}

	var fresh []string
	for _, name := range unlocks.Earned(r.Best) {
		if !slices.Contains(r.Unlocked, name) {
			r.Unlocked = append(r.Unlocked, name)
			fresh = append(fresh, name)
		}
	}
	return improved, fresh
}

// Has reports whether preset is recorded as unlocked
func (r Records) Has(preset string) bool {
	return slices.Contains(r.Unlocked, preset)
}
