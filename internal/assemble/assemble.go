package assemble

import (
	"math/rand"
	"sort"

	"quizbank/internal/bank"
	"quizbank/internal/domain"
	"quizbank/internal/logger"

	"go.uber.org/zap"
)

// Assemble resolves a quiz definition against the store into a concrete
// ordered question list, then applies pick and shuffle policy in that
// fixed order. It is pure with respect to the store: items are copied
// out, never mutated.
//
// Randomness is fully determined by seed so builds are reproducible:
// identical input and seed give identical output order.
func Assemble(def domain.QuizDefinition, store *bank.Store, seed int64) ([]domain.QuestionItem, error) {
	ids, err := Resolve(def, store)
	if err != nil {
		return nil, err
	}

	// Pick and shuffle draw from independent sources; picking never
	// reorders survivors.
	if def.Pick != nil {
		if *def.Pick < 1 {
			return nil, domain.NewError(domain.ErrValidation, "pick must be a positive integer", nil)
		}
		ids, err = pick(ids, *def.Pick, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
	}
	if def.ShuffleQuestions {
		shuffleRng := rand.New(rand.NewSource(seed + shuffleSeedOffset))
		shuffleRng.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
	}

	items := make([]domain.QuestionItem, len(ids))
	for i, id := range ids {
		item, ok := store.Get(id)
		if !ok {
			// Resolve already checked every id; a miss here is a defect.
			return nil, domain.NewInternalError("resolved id vanished from store: "+id, nil)
		}
		items[i] = item
	}
	return items, nil
}

// shuffleSeedOffset separates the shuffle stream from the pick stream so
// the two draws stay independent under a single caller-facing seed.
const shuffleSeedOffset = 0x9e3779b9

// Resolve expands each reference entry of the definition, in listed
// order, into concrete item ids. Literal entries must exist; wildcard
// entries (trailing '*') expand to every id with the pattern's prefix in
// store insertion order and must match at least one item.
func Resolve(def domain.QuizDefinition, store *bank.Store) ([]string, error) {
	var ids []string
	seen := make(map[string]string, len(def.Items))

	for _, entry := range def.Items {
		var expansion []string
		if domain.IsWildcard(entry) {
			matches := store.MatchPrefix(domain.WildcardPrefix(entry))
			if len(matches) == 0 {
				return nil, domain.NewEmptyWildcardMatchError(entry)
			}
			expansion = matches
		} else {
			if _, ok := store.Get(entry); !ok {
				return nil, domain.NewUnresolvedReferenceError(entry)
			}
			expansion = []string{entry}
		}

		for _, id := range expansion {
			// The same id arriving via two entries is not an error, but it
			// usually means an authoring mistake, so surface it.
			if prev, dup := seen[id]; dup {
				logger.Get().Warn("item resolved more than once",
					zap.String("quiz", def.ID),
					zap.String("item", id),
					zap.String("first_entry", prev),
					zap.String("second_entry", entry),
				)
			} else {
				seen[id] = entry
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// pick samples exactly k ids without replacement, uniformly at random,
// keeping the survivors in their original resolution order. A request
// larger than the pool is an error, never a silent truncation.
func pick(ids []string, k int, rng *rand.Rand) ([]string, error) {
	n := len(ids)
	if k > n {
		return nil, domain.NewPickExceedsPoolError(k, n)
	}
	if k == n {
		return ids, nil
	}
	chosen := rng.Perm(n)[:k]
	sort.Ints(chosen)
	out := make([]string, 0, k)
	for _, i := range chosen {
		out = append(out, ids[i])
	}
	return out, nil
}
