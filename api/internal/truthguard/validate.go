package truthguard

import (
	"encoding/json"
	"log"
	"strconv"
)

// Loose wire shapes: pointers distinguish absent/null from zero values.
type rawVerdict struct {
	OverallTrustScore   *float64     `json:"overall_trust_score"`
	OverallVerdict      *string      `json:"overall_verdict"`
	Claims              *[]rawClaim  `json:"claims"`
	Explanation         *string      `json:"explanation"`
	Sources             *[]string    `json:"sources"`
	EducationalInsights *rawInsights `json:"educational_insights"`
	ProcessingTime      float64      `json:"processing_time"`
	ContentHash         string       `json:"content_hash"`
}

type rawClaim struct {
	ClaimText              *string  `json:"claim_text"`
	TrustLevel             *string  `json:"trust_level"`
	Confidence             *float64 `json:"confidence"`
	Explanation            *string  `json:"explanation"`
	ManipulationTechniques []string `json:"manipulation_techniques"`
}

type rawInsights struct {
	ManipulationTechniquesDetected []string                        `json:"manipulation_techniques_detected"`
	TechniqueExplanations          map[string]TechniqueExplanation `json:"technique_explanations"`
	VerificationTips               []string                        `json:"verification_tips"`
	TrustedSources                 []string                        `json:"trusted_sources"`
	FactCheckResources             []string                        `json:"fact_check_resources"`
}

// ParseVerdict validates a raw verdict payload. Structural problems (missing
// required field, wrong type) return *SchemaError. Out-of-range numbers are
// clamped and logged, not rejected; unknown trust levels fall back to MEDIUM
// and are logged. Callers must have ruled out non-JSON bodies already.
func ParseVerdict(raw []byte) (*VerdictResponse, error) {
	var rv rawVerdict
	if err := json.Unmarshal(raw, &rv); err != nil {
		if te, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, &SchemaError{Field: te.Field, Reason: "expected " + te.Type.String() + ", got " + te.Value}
		}
		return nil, &SchemaError{Reason: err.Error()}
	}

	switch {
	case rv.OverallTrustScore == nil:
		return nil, &SchemaError{Field: "overall_trust_score", Reason: "missing"}
	case rv.OverallVerdict == nil:
		return nil, &SchemaError{Field: "overall_verdict", Reason: "missing"}
	case rv.Claims == nil:
		return nil, &SchemaError{Field: "claims", Reason: "missing"}
	case rv.Explanation == nil:
		return nil, &SchemaError{Field: "explanation", Reason: "missing"}
	case rv.Sources == nil:
		return nil, &SchemaError{Field: "sources", Reason: "missing"}
	}

	out := &VerdictResponse{
		OverallTrustScore: clampScore("overall_trust_score", *rv.OverallTrustScore),
		OverallVerdict:    *rv.OverallVerdict,
		Claims:            make([]Claim, 0, len(*rv.Claims)),
		Explanation:       *rv.Explanation,
		Sources:           *rv.Sources,
		ProcessingTime:    rv.ProcessingTime,
		ContentHash:       rv.ContentHash,
	}

	for i, rc := range *rv.Claims {
		switch {
		case rc.ClaimText == nil:
			return nil, &SchemaError{Field: claimField(i, "claim_text"), Reason: "missing"}
		case rc.TrustLevel == nil:
			return nil, &SchemaError{Field: claimField(i, "trust_level"), Reason: "missing"}
		case rc.Confidence == nil:
			return nil, &SchemaError{Field: claimField(i, "confidence"), Reason: "missing"}
		case rc.Explanation == nil:
			return nil, &SchemaError{Field: claimField(i, "explanation"), Reason: "missing"}
		}
		level, known := NormalizeTrustLevel(*rc.TrustLevel)
		if !known {
			log.Printf("verdict: unrecognized trust_level %q in claim %d, using MEDIUM", *rc.TrustLevel, i)
		}
		techniques := rc.ManipulationTechniques
		if techniques == nil {
			techniques = []string{}
		}
		out.Claims = append(out.Claims, Claim{
			ClaimText:              *rc.ClaimText,
			TrustLevel:             level,
			Confidence:             clampScore(claimField(i, "confidence"), *rc.Confidence),
			Explanation:            *rc.Explanation,
			ManipulationTechniques: techniques,
		})
	}

	if rv.EducationalInsights != nil {
		out.EducationalInsights = &EducationalInsights{
			ManipulationTechniquesDetected: rv.EducationalInsights.ManipulationTechniquesDetected,
			TechniqueExplanations:          rv.EducationalInsights.TechniqueExplanations,
			VerificationTips:               rv.EducationalInsights.VerificationTips,
			TrustedSources:                 rv.EducationalInsights.TrustedSources,
			FactCheckResources:             rv.EducationalInsights.FactCheckResources,
		}
	}

	return out, nil
}

// clampScore keeps a minor upstream scoring glitch from crashing the client:
// the value is pulled to the nearest bound and reported as a diagnostic.
func clampScore(field string, v float64) float64 {
	switch {
	case v < 0:
		log.Printf("verdict: %s=%v out of range, clamped to 0", field, v)
		return 0
	case v > 100:
		log.Printf("verdict: %s=%v out of range, clamped to 100", field, v)
		return 100
	default:
		return v
	}
}

func claimField(i int, name string) string {
	return "claims[" + strconv.Itoa(i) + "]." + name
}
