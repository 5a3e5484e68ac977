// Package view turns a validated verdict into renderable view-models.
// Everything here is pure: no I/O, no clocks, no shared state.
package view

import (
	"truthguard-bot/api/internal/truthguard"
)

// Bucket is the coarse three-level display classification.
type Bucket string

const (
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

// BucketFor maps a trust score to its bucket. The thresholds are a fixed
// contract, not runtime configuration.
func BucketFor(score float64) Bucket {
	switch {
	case score >= 80:
		return BucketHigh
	case score >= 60:
		return BucketMedium
	default:
		return BucketLow
	}
}

// Rank orders buckets low < medium < high for monotonicity checks.
func (b Bucket) Rank() int {
	switch b {
	case BucketHigh:
		return 2
	case BucketMedium:
		return 1
	default:
		return 0
	}
}

type ClaimView struct {
	Text        string
	Level       truthguard.TrustLevel
	Confidence  float64
	Explanation string
	// Empty means "render no techniques section", not an empty section.
	Techniques []string
}

func (c ClaimView) HasTechniques() bool { return len(c.Techniques) > 0 }

type TechniqueView struct {
	Name          string
	Description   string
	DetectionTips []string
}

type EducationView struct {
	Techniques         []TechniqueView
	VerificationTips   []string
	TrustedSources     []string
	FactCheckResources []string
}

type ResultViewModel struct {
	Bucket      Bucket
	Score       float64
	Verdict     string
	Explanation string
	Claims      []ClaimView
	Sources     []string
	Education   *EducationView
}

// PlaceholderDescription is shown for a detected technique that has no
// matching explanation entry; the technique itself is never dropped.
const PlaceholderDescription = "No explanation available for this technique yet."

// Project derives the view-model for one verdict. Claim order is preserved
// verbatim: it reflects the detection engine's ranking and must not be
// re-sorted here.
func Project(vr *truthguard.VerdictResponse) ResultViewModel {
	vm := ResultViewModel{
		Bucket:      BucketFor(vr.OverallTrustScore),
		Score:       vr.OverallTrustScore,
		Verdict:     vr.OverallVerdict,
		Explanation: vr.Explanation,
		Claims:      make([]ClaimView, 0, len(vr.Claims)),
		Sources:     append([]string(nil), vr.Sources...),
	}
	for _, c := range vr.Claims {
		vm.Claims = append(vm.Claims, ClaimView{
			Text:        c.ClaimText,
			Level:       c.TrustLevel,
			Confidence:  c.Confidence,
			Explanation: c.Explanation,
			Techniques:  append([]string(nil), c.ManipulationTechniques...),
		})
	}
	if vr.EducationalInsights != nil {
		vm.Education = projectEducation(vr.EducationalInsights)
	}
	return vm
}

func projectEducation(in *truthguard.EducationalInsights) *EducationView {
	ev := &EducationView{
		Techniques:         make([]TechniqueView, 0, len(in.ManipulationTechniquesDetected)),
		VerificationTips:   append([]string(nil), in.VerificationTips...),
		TrustedSources:     append([]string(nil), in.TrustedSources...),
		FactCheckResources: append([]string(nil), in.FactCheckResources...),
	}
	for _, name := range in.ManipulationTechniquesDetected {
		tv := TechniqueView{Name: name, Description: PlaceholderDescription}
		// Exact string key match against the explanations map.
		if exp, ok := in.TechniqueExplanations[name]; ok && exp.Description != "" {
			tv.Description = exp.Description
			tv.DetectionTips = append([]string(nil), exp.DetectionTips...)
		}
		ev.Techniques = append(ev.Techniques, tv)
	}
	return ev
}
