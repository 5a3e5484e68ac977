package truthguard

import (
	"fmt"
	"strings"
)

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

// Language codes accepted by the TruthGuard service. Hinglish travels as
// "hi-en" on the wire.
type Language string

const (
	LangEnglish  Language = "en"
	LangHindi    Language = "hi"
	LangTelugu   Language = "te"
	LangBengali  Language = "bn"
	LangTamil    Language = "ta"
	LangHinglish Language = "hi-en"
)

var languageNames = map[Language]string{
	LangEnglish:  "English",
	LangHindi:    "Hindi",
	LangTelugu:   "Telugu",
	LangBengali:  "Bengali",
	LangTamil:    "Tamil",
	LangHinglish: "Hinglish",
}

// ParseLanguage maps a selector value to a supported language code.
// The set is closed; anything else is a local validation failure.
func ParseLanguage(s string) (Language, error) {
	v := Language(strings.ToLower(strings.TrimSpace(s)))
	if v == "hinglish" {
		v = LangHinglish
	}
	if _, ok := languageNames[v]; !ok {
		return "", &ValidationError{Field: "language", Err: fmt.Errorf("%w: %q", ErrUnknownLanguage, s)}
	}
	return v, nil
}

func (l Language) DisplayName() string {
	if n, ok := languageNames[l]; ok {
		return n
	}
	return string(l)
}

func SupportedLanguages() []Language {
	return []Language{LangEnglish, LangHindi, LangTelugu, LangBengali, LangTamil, LangHinglish}
}

// TrustLevel is the normalized three-level claim classification.
type TrustLevel string

const (
	TrustHigh   TrustLevel = "HIGH"
	TrustMedium TrustLevel = "MEDIUM"
	TrustLow    TrustLevel = "LOW"
)

// NormalizeTrustLevel folds a wire trust_level into the fixed set,
// case-insensitively. Unrecognized values map to MEDIUM (conservative
// default, never HIGH); ok=false tells the caller to log the value.
func NormalizeTrustLevel(s string) (TrustLevel, bool) {
	switch TrustLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case TrustHigh:
		return TrustHigh, true
	case TrustMedium:
		return TrustMedium, true
	case TrustLow:
		return TrustLow, true
	default:
		return TrustMedium, false
	}
}

// AnalysisRequest is an immutable, validated submission. Language and the
// education flag are captured at build time so later UI changes cannot race
// an in-flight call.
type AnalysisRequest struct {
	ContentType      ContentType
	Content          string // text mode
	Image            []byte // image mode
	ImageName        string
	ImageMIME        string
	Language         Language
	IncludeEducation bool
}

type Claim struct {
	ClaimText              string     `json:"claim_text"`
	TrustLevel             TrustLevel `json:"trust_level"`
	Confidence             float64    `json:"confidence"`
	Explanation            string     `json:"explanation"`
	ManipulationTechniques []string   `json:"manipulation_techniques"`
}

type TechniqueExplanation struct {
	Description   string   `json:"description"`
	Example       string   `json:"example,omitempty"`
	DetectionTips []string `json:"detection_tips,omitempty"`
}

// EducationalInsights is optional at the top level; every internal field is
// independently optional and absence is never an error.
type EducationalInsights struct {
	ManipulationTechniquesDetected []string                        `json:"manipulation_techniques_detected"`
	TechniqueExplanations          map[string]TechniqueExplanation `json:"technique_explanations"`
	VerificationTips               []string                        `json:"verification_tips,omitempty"`
	TrustedSources                 []string                        `json:"trusted_sources,omitempty"`
	FactCheckResources             []string                        `json:"fact_check_resources,omitempty"`
}

// VerdictResponse is the validated verdict for one submission. Claims may be
// empty but never nil. ContentHash keys the local cache and history.
type VerdictResponse struct {
	OverallTrustScore   float64              `json:"overall_trust_score"`
	OverallVerdict      string               `json:"overall_verdict"`
	Claims              []Claim              `json:"claims"`
	Explanation         string               `json:"explanation"`
	Sources             []string             `json:"sources"`
	EducationalInsights *EducationalInsights `json:"educational_insights,omitempty"`
	ProcessingTime      float64              `json:"processing_time,omitempty"`
	ContentHash         string               `json:"content_hash,omitempty"`
}

// Stats mirrors GET /stats.
type Stats struct {
	TotalFactPatterns     int `json:"total_fact_patterns"`
	SupportedLanguages    int `json:"supported_languages"`
	EducationalTechniques int `json:"educational_techniques"`
	TrustedSources        int `json:"trusted_sources"`
	FactCheckResources    int `json:"fact_check_resources"`
}

// HealthStatus mirrors GET /health.
type HealthStatus struct {
	Status              string `json:"status"`
	Timestamp           string `json:"timestamp"`
	DatabaseStatus      string `json:"database_status"`
	FactDatabaseEntries int    `json:"fact_database_entries"`
}
