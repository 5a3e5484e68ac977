package truthguard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"truthguard-bot/api/internal/truthguard"
)

const minimalVerdict = `{
	"overall_trust_score": 92,
	"overall_verdict": "Verified",
	"claims": [],
	"explanation": "Looks accurate.",
	"sources": ["RBI"]
}`

func TestParseVerdictMinimal(t *testing.T) {
	vr, err := truthguard.ParseVerdict([]byte(minimalVerdict))
	require.NoError(t, err)
	require.Equal(t, 92.0, vr.OverallTrustScore)
	require.Equal(t, "Verified", vr.OverallVerdict)
	require.NotNil(t, vr.Claims)
	require.Empty(t, vr.Claims)
	require.Nil(t, vr.EducationalInsights)
}

func TestParseVerdictClampsOutOfRangeScores(t *testing.T) {
	vr, err := truthguard.ParseVerdict([]byte(`{
		"overall_trust_score": 150,
		"overall_verdict": "Verified",
		"claims": [
			{"claim_text":"c","trust_level":"LOW","confidence":-5,"explanation":"e","manipulation_techniques":[]}
		],
		"explanation": "x",
		"sources": []
	}`))
	require.NoError(t, err, "out-of-range numbers are recovered, not rejected")
	require.Equal(t, 100.0, vr.OverallTrustScore)
	require.Equal(t, 0.0, vr.Claims[0].Confidence)
}

func TestParseVerdictNormalizesTrustLevel(t *testing.T) {
	cases := map[string]truthguard.TrustLevel{
		"high":    truthguard.TrustHigh,
		"Low":     truthguard.TrustLow,
		" MEDIUM": truthguard.TrustMedium,
		"unknown": truthguard.TrustMedium, // conservative default, never HIGH
		"SATIRE":  truthguard.TrustMedium,
	}
	for wire, want := range cases {
		vr, err := truthguard.ParseVerdict([]byte(`{
			"overall_trust_score": 50,
			"overall_verdict": "v",
			"claims": [{"claim_text":"c","trust_level":"` + wire + `","confidence":50,"explanation":"e"}],
			"explanation": "x",
			"sources": []
		}`))
		require.NoError(t, err, "trust_level %q", wire)
		require.Equal(t, want, vr.Claims[0].TrustLevel, "trust_level %q", wire)
	}
}

func TestParseVerdictMissingRequiredFields(t *testing.T) {
	cases := map[string]string{
		"score missing":       `{"overall_verdict":"v","claims":[],"explanation":"x","sources":[]}`,
		"verdict missing":     `{"overall_trust_score":50,"claims":[],"explanation":"x","sources":[]}`,
		"claims missing":      `{"overall_trust_score":50,"overall_verdict":"v","explanation":"x","sources":[]}`,
		"claims null":         `{"overall_trust_score":50,"overall_verdict":"v","claims":null,"explanation":"x","sources":[]}`,
		"explanation missing": `{"overall_trust_score":50,"overall_verdict":"v","claims":[],"sources":[]}`,
		"sources missing":     `{"overall_trust_score":50,"overall_verdict":"v","claims":[],"explanation":"x"}`,
		"claim text missing":  `{"overall_trust_score":50,"overall_verdict":"v","claims":[{"trust_level":"LOW","confidence":1,"explanation":"e"}],"explanation":"x","sources":[]}`,
	}
	for name, payload := range cases {
		_, err := truthguard.ParseVerdict([]byte(payload))
		var se *truthguard.SchemaError
		require.ErrorAs(t, err, &se, "%s should be a schema error", name)
	}
}

func TestParseVerdictWrongFieldType(t *testing.T) {
	_, err := truthguard.ParseVerdict([]byte(`{
		"overall_trust_score": "ninety",
		"overall_verdict": "v",
		"claims": [],
		"explanation": "x",
		"sources": []
	}`))
	var se *truthguard.SchemaError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "overall_trust_score", se.Field)
}

func TestParseVerdictOptionalInsightsDegrade(t *testing.T) {
	vr, err := truthguard.ParseVerdict([]byte(`{
		"overall_trust_score": 40,
		"overall_verdict": "Misleading",
		"claims": [{"claim_text":"c","trust_level":"LOW","confidence":80,"explanation":"e"}],
		"explanation": "x",
		"sources": [],
		"educational_insights": {
			"manipulation_techniques_detected": ["Fear Mongering"]
		}
	}`))
	require.NoError(t, err)
	require.NotNil(t, vr.EducationalInsights)
	require.Equal(t, []string{"Fear Mongering"}, vr.EducationalInsights.ManipulationTechniquesDetected)
	require.Nil(t, vr.EducationalInsights.VerificationTips)

	// missing manipulation_techniques on a claim degrades to empty, not nil
	require.NotNil(t, vr.Claims[0].ManipulationTechniques)
	require.Empty(t, vr.Claims[0].ManipulationTechniques)
}

func TestParseVerdictCarriesUpstreamExtras(t *testing.T) {
	vr, err := truthguard.ParseVerdict([]byte(`{
		"overall_trust_score": 92,
		"overall_verdict": "Verified",
		"claims": [],
		"explanation": "x",
		"sources": [],
		"processing_time": 0.134,
		"content_hash": "abc123"
	}`))
	require.NoError(t, err)
	require.Equal(t, 0.134, vr.ProcessingTime)
	require.Equal(t, "abc123", vr.ContentHash)
}
