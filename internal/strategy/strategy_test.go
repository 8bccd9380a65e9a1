// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package strategy

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paperfetch/internal/match"
)

func testNorm() *match.Normalizer {
	return match.NewNormalizer(nil)
}

func TestStrategiesBaseOrder(t *testing.T) {
	title := "ADOPT: Modified Adam Can Converge with Any Beta Under Smoothness Conditions"
	specs := Strategies(title, false, testNorm())

	if len(specs) != 4 {
		t.Fatalf("len(specs) = %d, want 4 base strategies", len(specs))
	}

	// Strategy 1: raw title as an exact title-field phrase, cap 5.
	if specs[0].Terms != title || !specs[0].Phrase || !specs[0].TitleField || specs[0].MaxResults != 5 {
		t.Errorf("strategy 1 = %+v", specs[0])
	}

	// Normalized: adopt modified adam can converge any beta under smoothness conditions
	if specs[1].Terms != "adopt modified adam can converge any beta under" {
		t.Errorf("strategy 2 terms = %q", specs[1].Terms)
	}
	if !specs[1].Phrase || !specs[1].TitleField || specs[1].MaxResults != 10 {
		t.Errorf("strategy 2 = %+v", specs[1])
	}

	if specs[2].Terms != "adopt modified adam can converge" {
		t.Errorf("strategy 3 terms = %q", specs[2].Terms)
	}

	// Strategy 4: three longest tokens, descending length, free text.
	if specs[3].Terms != "smoothness conditions modified" {
		t.Errorf("strategy 4 terms = %q", specs[3].Terms)
	}
	if specs[3].Phrase || specs[3].TitleField || specs[3].MaxResults != 10 {
		t.Errorf("strategy 4 = %+v", specs[3])
	}
}

func TestStrategiesSpecialVenue(t *testing.T) {
	title := "Sharpness-Aware Minimization for Efficiently Improving Generalization"
	specs := Strategies(title, true, testNorm())

	if len(specs) != 7 {
		t.Fatalf("len(specs) = %d, want 7 with venue strategies", len(specs))
	}

	// Strategy 5: normalized main concept (text before " for ") as a phrase.
	if specs[4].Terms != "sharpness aware minimization" {
		t.Errorf("strategy 5 terms = %q", specs[4].Terms)
	}
	if !specs[4].Phrase || specs[4].TitleField || specs[4].MaxResults != 20 {
		t.Errorf("strategy 5 = %+v", specs[4])
	}

	// Strategy 6: tokens longer than 4 chars, original order, unquoted.
	if specs[5].Terms != "sharpness aware minimization efficiently improving generalization" {
		t.Errorf("strategy 6 terms = %q", specs[5].Terms)
	}
	if specs[5].Phrase || specs[5].MaxResults != 20 {
		t.Errorf("strategy 6 = %+v", specs[5])
	}

	// Strategy 7: full normalized title, unquoted.
	if specs[6].Terms != "sharpness aware minimization efficiently improving generalization" {
		t.Errorf("strategy 7 terms = %q", specs[6].Terms)
	}
	if specs[6].Phrase || specs[6].MaxResults != 20 {
		t.Errorf("strategy 7 = %+v", specs[6])
	}
}

func TestStrategiesDeterministic(t *testing.T) {
	title := "Adam: A Method for Stochastic Optimization"
	a := Strategies(title, true, testNorm())
	b := Strategies(title, true, testNorm())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("strategies differ between invocations:\n%v\n%v", a, b)
	}
}

func TestStrategiesStopWordTitle(t *testing.T) {
	// A title that normalizes to nothing keeps only the raw-title strategy.
	specs := Strategies("Of The And", false, testNorm())
	if len(specs) != 1 {
		t.Fatalf("len(specs) = %d, want 1", len(specs))
	}
	if specs[0].Terms != "Of The And" {
		t.Errorf("surviving strategy = %+v", specs[0])
	}
}

func TestMainConcept(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"for separator", "SAM for Efficient Training", "SAM"},
		{"with separator", "Training with Noise", "Training"},
		{"no separator", "Adam Optimizer", "Adam Optimizer"},
		{"list order wins", "Methods for Learning with Noise", "Methods"},
		{"list order beats position", "Gains with Clipping for Stability", "Gains with Clipping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mainConcept(tt.title); got != tt.want {
				t.Errorf("mainConcept(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestLongestTokensTieOrder(t *testing.T) {
	got := longestTokens([]string{"abc", "zz", "def", "wxyz"}, 3)
	want := []string{"wxyz", "abc", "def"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("longestTokens = %v, want %v", got, want)
	}
}
