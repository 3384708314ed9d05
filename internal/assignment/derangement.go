package assignment

import (
	"math/rand/v2"

	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/models"
)

// DefaultMaxAttempts bounds the shuffles tried before giving up.
const DefaultMaxAttempts = 100

var (
	ErrInsufficientParticipants            = apperr.New(apperr.ErrInvalidState, "need at least 2 participants to draw assignments")
	ErrInsufficientParticipantsForFairness = apperr.New(apperr.ErrInvalidState, "need at least 3 participants for Secret Santa to work properly")
	ErrDerangementRetriesExhausted         = apperr.New(apperr.ErrTransient, "could not generate valid assignments, please try again")
)

// Pair is one giver and the receiver they buy for.
type Pair struct {
	Giver    models.Participant
	Receiver models.Participant
}

// Generator produces derangements: permutations where nobody draws
// themselves. Two participants are the same person when their emails match.
type Generator struct {
	MaxAttempts int
	// Intn returns a uniform int in [0, n). Replaceable for tests.
	Intn func(n int) int
}

func NewGenerator(maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{MaxAttempts: maxAttempts, Intn: rand.IntN}
}

// CheckParticipantCount rejects groups too small to draw. Two people could
// only ever draw each other, which makes the result obvious to both.
func CheckParticipantCount(n int) error {
	if n < 2 {
		return ErrInsufficientParticipants
	}
	if n == 2 {
		return ErrInsufficientParticipantsForFairness
	}
	return nil
}

// Generate pairs givers[i] with a shuffled receivers[i], reshuffling until
// no position matches. Givers keep the input order. The input is not mutated.
func (g *Generator) Generate(participants []models.Participant) ([]Pair, error) {
	n := len(participants)
	if err := CheckParticipantCount(n); err != nil {
		return nil, err
	}

	receivers := make([]models.Participant, n)
	copy(receivers, participants)

	for attempt := 0; attempt < g.MaxAttempts; attempt++ {
		g.shuffle(receivers)
		if isDerangement(participants, receivers) {
			pairs := make([]Pair, n)
			for i := range participants {
				pairs[i] = Pair{Giver: participants[i], Receiver: receivers[i]}
			}
			return pairs, nil
		}
	}
	return nil, ErrDerangementRetriesExhausted
}

// shuffle is Fisher–Yates: i from n-1 down to 1, j uniform in [0, i].
func (g *Generator) shuffle(p []models.Participant) {
	intn := g.Intn
	if intn == nil {
		intn = rand.IntN
	}
	for i := len(p) - 1; i > 0; i-- {
		j := intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

func isDerangement(givers, receivers []models.Participant) bool {
	for i := range givers {
		if givers[i].Email == receivers[i].Email {
			return false
		}
	}
	return true
}
