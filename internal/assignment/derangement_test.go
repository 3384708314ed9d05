package assignment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func people(n int) []models.Participant {
	out := make([]models.Participant, n)
	for i := range out {
		out[i] = models.Participant{
			Name:  fmt.Sprintf("Person %d", i),
			Email: fmt.Sprintf("p%d@example.com", i),
		}
	}
	return out
}

func TestCheckParticipantCount(t *testing.T) {
	tests := []struct {
		n    int
		want error
	}{
		{0, ErrInsufficientParticipants},
		{1, ErrInsufficientParticipants},
		{2, ErrInsufficientParticipantsForFairness},
		{3, nil},
		{50, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, CheckParticipantCount(tt.n))
		})
	}
}

func TestGenerateIsBijectiveDerangement(t *testing.T) {
	g := NewGenerator(DefaultMaxAttempts)
	for n := 3; n <= 12; n++ {
		for run := 0; run < 50; run++ {
			in := people(n)
			pairs, err := g.Generate(in)
			require.NoError(t, err)
			require.Len(t, pairs, n)

			givers := map[string]bool{}
			receivers := map[string]bool{}
			for i, p := range pairs {
				assert.Equal(t, in[i].Email, p.Giver.Email, "givers keep input order")
				assert.NotEqual(t, p.Giver.Email, p.Receiver.Email)
				givers[p.Giver.Email] = true
				receivers[p.Receiver.Email] = true
			}
			assert.Len(t, givers, n)
			assert.Len(t, receivers, n)
		}
	}
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	in := people(6)
	before := append([]models.Participant(nil), in...)

	_, err := NewGenerator(0).Generate(in)
	require.NoError(t, err)
	assert.Equal(t, before, in)
}

func TestGenerateWithFixedSource(t *testing.T) {
	// j is always 0, so every Fisher–Yates pass rotates the slice left by one.
	g := &Generator{MaxAttempts: 1, Intn: func(int) int { return 0 }}

	pairs, err := g.Generate(people(4))
	require.NoError(t, err)
	for i, p := range pairs {
		assert.Equal(t, fmt.Sprintf("p%d@example.com", (i+1)%4), p.Receiver.Email)
	}
}

func TestGenerateRetriesExhausted(t *testing.T) {
	calls := 0
	// j == i is a no-op swap: the identity permutation, rejected every time.
	g := &Generator{MaxAttempts: 7, Intn: func(n int) int { calls++; return n - 1 }}

	pairs, err := g.Generate(people(3))
	assert.Nil(t, pairs)
	assert.Equal(t, ErrDerangementRetriesExhausted, err)
	assert.True(t, errors.Is(err, apperr.ErrTransient))
	assert.Equal(t, 7*2, calls)
}

func TestGenerateTooFew(t *testing.T) {
	g := NewGenerator(DefaultMaxAttempts)

	_, err := g.Generate(people(1))
	assert.Equal(t, ErrInsufficientParticipants, err)

	_, err = g.Generate(people(2))
	assert.Equal(t, ErrInsufficientParticipantsForFairness, err)
}

func TestNewGeneratorDefaults(t *testing.T) {
	g := NewGenerator(-5)
	assert.Equal(t, DefaultMaxAttempts, g.MaxAttempts)
	assert.NotNil(t, g.Intn)
}
