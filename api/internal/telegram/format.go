package telegram

import (
	"errors"
	"fmt"
	"strings"

	"truthguard-bot/api/internal/truthguard"
	"truthguard-bot/api/internal/util"
	"truthguard-bot/api/internal/view"
)

func bucketIcon(b view.Bucket) string {
	switch b {
	case view.BucketHigh:
		return "🟢"
	case view.BucketMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

func levelIcon(l truthguard.TrustLevel) string {
	switch l {
	case truthguard.TrustHigh:
		return "✅"
	case truthguard.TrustLow:
		return "❌"
	default:
		return "❓"
	}
}

// renderResult turns a projected verdict into one chat message. It only
// reads the view-model; all decisions were made in the projector.
func renderResult(vm view.ResultViewModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Trust score: %.0f%% (%s)\n", bucketIcon(vm.Bucket), vm.Score, vm.Bucket)
	if vm.Verdict != "" {
		fmt.Fprintf(&b, "Verdict: %s\n", vm.Verdict)
	}
	if vm.Explanation != "" {
		b.WriteString("\n" + vm.Explanation + "\n")
	}

	for i, c := range vm.Claims {
		fmt.Fprintf(&b, "\n%s Claim %d: %s\n", levelIcon(c.Level), i+1, c.Text)
		fmt.Fprintf(&b, "   %s · %.0f%% confidence\n", c.Level, c.Confidence)
		if c.Explanation != "" {
			fmt.Fprintf(&b, "   %s\n", c.Explanation)
		}
		if c.HasTechniques() {
			fmt.Fprintf(&b, "   🏷 %s\n", strings.Join(c.Techniques, " · "))
		}
	}

	if len(vm.Sources) > 0 {
		b.WriteString("\n📚 Sources: " + strings.Join(vm.Sources, ", ") + "\n")
	}

	if ev := vm.Education; ev != nil {
		if len(ev.Techniques) > 0 {
			b.WriteString("\n🎓 Manipulation techniques detected:\n")
			for _, t := range ev.Techniques {
				fmt.Fprintf(&b, "• %s — %s\n", t.Name, t.Description)
				for _, tip := range t.DetectionTips {
					fmt.Fprintf(&b, "    · %s\n", tip)
				}
			}
		}
		if len(ev.VerificationTips) > 0 {
			b.WriteString("\n💡 How to verify:\n")
			for _, tip := range ev.VerificationTips {
				fmt.Fprintf(&b, "• %s\n", tip)
			}
		}
		if len(ev.FactCheckResources) > 0 {
			b.WriteString("\n🔎 Fact-check at: " + strings.Join(ev.FactCheckResources, ", ") + "\n")
		}
	}

	return util.Truncate(strings.TrimRight(b.String(), "\n"), 3900)
}

// userMessage maps the error taxonomy to non-technical chat text. The raw
// cause stays in the logs only.
func userMessage(err error) string {
	var ve *truthguard.ValidationError
	if errors.As(err, &ve) {
		switch {
		case errors.Is(err, truthguard.ErrEmptyContent):
			return "✏️ There is nothing to check. Send some text or an image."
		case errors.Is(err, truthguard.ErrUnsupportedMedia):
			return "🖼 That file is not an image. Send a photo or an image file."
		case errors.Is(err, truthguard.ErrUnknownLanguage):
			return "Unknown language. Supported: en | hi | te | bn | ta | hinglish"
		default:
			return "✏️ I could not use that input. Please try again."
		}
	}
	var se *truthguard.SchemaError
	if errors.As(err, &se) {
		return "⚠️ Got an unexpected reply from the analysis service. Please try again."
	}
	return "⚠️ The analysis service is unreachable right now. Please try again."
}
