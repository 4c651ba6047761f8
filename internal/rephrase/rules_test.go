package rephrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/textshield/textshield/internal/models"
)

func TestRuleBasedWarning(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "offensive terms swapped for neutral synonyms",
			input: "I hate this stupid product, it sucks",
			want:  "I dislike this misguided product, it is inadequate",
		},
		{
			name:  "no matches leaves text untouched",
			input: "a perfectly reasonable sentence about gardening",
			want:  "a perfectly reasonable sentence about gardening",
		},
		{
			name:  "substring of a mapped word survives",
			input: "the assassin crept past the classroom",
			want:  "the assassin crept past the classroom",
		},
		{
			name:  "case-insensitive whole-word replacement",
			input: "What an IDIOT move",
			want:  "What an person move",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuleBased(tt.input, models.VerdictWarning)
			req.Equal(tt.input, got.Original, tt.name)
			req.Equal(tt.want, got.Rephrased, tt.name)
			req.Equal(models.VerdictWarning, got.Type, tt.name)
		})
	}
}

func TestRuleBasedNegative(t *testing.T) {
	req := require.New(t)

	t.Run("phrase substitution then balancing wrap", func(t *testing.T) {
		got := RuleBased("this is terrible", models.VerdictNegative)
		req.Equal("While there are challenges with this could be improved, there may also be opportunities for improvement.", got.Rephrased)
	})

	t.Run("offensive words replaced on the negative path too", func(t *testing.T) {
		got := RuleBased("i hate this stupid thing", models.VerdictNegative)
		req.Contains(got.Rephrased, "misguided")
		req.NotContains(got.Rephrased, "stupid")
	})

	t.Run("text at the wrap boundary is not wrapped", func(t *testing.T) {
		input := strings.Repeat("a", 100)
		got := RuleBased(input, models.VerdictNegative)
		req.Equal(input, got.Rephrased)
	})

	t.Run("text just under the wrap boundary is wrapped", func(t *testing.T) {
		input := strings.Repeat("a", 99)
		got := RuleBased(input, models.VerdictNegative)
		req.True(strings.HasPrefix(got.Rephrased, "While there are challenges with "))
		req.Contains(got.Rephrased, input)
	})
}

func TestRuleBasedInfo(t *testing.T) {
	req := require.New(t)

	got := RuleBased("Everyone knows this always works", models.VerdictInfo)
	req.Equal("This perspective is one viewpoint: some believe this sometimes works. Consider consulting multiple sources.", got.Rephrased)
	req.Equal("Everyone knows this always works", got.Original)
}

func TestRuleBasedDeterministic(t *testing.T) {
	req := require.New(t)

	input := "i hate this, it never works and sucks"
	for _, verdictType := range []models.VerdictType{models.VerdictWarning, models.VerdictNegative, models.VerdictInfo} {
		first := RuleBased(input, verdictType)
		second := RuleBased(input, verdictType)
		req.Equal(first, second, string(verdictType))
	}
}
