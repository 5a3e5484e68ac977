// One-shot checker: analyze a text string or an image file from the command
// line and print the projected verdict.
//
//	truthguard -text "5G towers spread coronavirus"
//	truthguard -image ./forward.jpg
//	truthguard -lang hi -no-education -text "..."
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"truthguard-bot/api/internal/truthguard"
	"truthguard-bot/api/internal/view"
)

func main() {
	var (
		apiURL    = flag.String("api", os.Getenv("TRUTHGUARD_API_URL"), "TruthGuard API base URL")
		text      = flag.String("text", "", "text to check")
		imagePath = flag.String("image", "", "image file to check")
		langCode  = flag.String("lang", "en", "analysis language (en|hi|te|bn|ta|hinglish)")
		noEdu     = flag.Bool("no-education", false, "skip educational insights")
		stats     = flag.Bool("stats", false, "print service stats and exit")
	)
	flag.Parse()

	if *apiURL == "" {
		log.Fatal("set -api or TRUTHGUARD_API_URL")
	}
	client := truthguard.New(*apiURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *stats {
		st, err := client.Stats(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("fact patterns: %d\nlanguages: %d\ntechniques: %d\ntrusted sources: %d\nfact-check resources: %d\n",
			st.TotalFactPatterns, st.SupportedLanguages, st.EducationalTechniques, st.TrustedSources, st.FactCheckResources)
		return
	}

	req, err := buildRequest(*text, *imagePath, *langCode, !*noEdu)
	if err != nil {
		log.Fatal(err)
	}

	var vr *truthguard.VerdictResponse
	if req.ContentType == truthguard.ContentTypeText {
		vr, err = client.Check(ctx, req)
	} else {
		vr, err = client.CheckImage(ctx, req)
	}
	if err != nil {
		log.Fatal(err)
	}

	printResult(view.Project(vr))
}

func buildRequest(text, imagePath, langCode string, education bool) (*truthguard.AnalysisRequest, error) {
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return nil, err
		}
		return truthguard.NewImageRequest(truthguard.ImageFile{
			Name: filepath.Base(imagePath),
			Data: data,
		})
	}
	lang, err := truthguard.ParseLanguage(langCode)
	if err != nil {
		return nil, err
	}
	return truthguard.NewTextRequest(text, lang, education)
}

func printResult(vm view.ResultViewModel) {
	fmt.Printf("trust score: %.0f%% [%s]\n", vm.Score, vm.Bucket)
	fmt.Printf("verdict:     %s\n", vm.Verdict)
	if vm.Explanation != "" {
		fmt.Printf("\n%s\n", vm.Explanation)
	}
	for i, c := range vm.Claims {
		fmt.Printf("\n%d. [%s %.0f%%] %s\n", i+1, c.Level, c.Confidence, c.Text)
		if c.Explanation != "" {
			fmt.Printf("   %s\n", c.Explanation)
		}
		if c.HasTechniques() {
			fmt.Printf("   techniques: %s\n", strings.Join(c.Techniques, ", "))
		}
	}
	if len(vm.Sources) > 0 {
		fmt.Printf("\nsources: %s\n", strings.Join(vm.Sources, ", "))
	}
	if ev := vm.Education; ev != nil && len(ev.Techniques) > 0 {
		fmt.Println("\nmanipulation techniques detected:")
		for _, t := range ev.Techniques {
			fmt.Printf("  - %s: %s\n", t.Name, t.Description)
		}
	}
}
