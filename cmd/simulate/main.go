package main

import (
	"flag"
	"os"

	"next-action-be/pkg/catalog"
	"next-action-be/pkg/dataset"
	"next-action-be/pkg/feature"
	"next-action-be/pkg/ranking"
	"next-action-be/pkg/ranking/xgb"

	"github.com/fatih/color"
)

// Offline pipeline check: load the ranker and the event snapshot, derive
// the feature vector for one user and print the quantitative ranking.
// No LLM call is made, so it runs without any API key.
func main() {
	modelPath := flag.String("model", "./ranker.json", "path to the ranker model dump")
	dataPath := flag.String("data", "./events.csv", "path to the event dataset")
	descPath := flag.String("desc", "", "optional catalog description file for endpoint tagging")
	userId := flag.String("user", "", "user to derive features for")
	k := flag.Int("k", 5, "number of candidates to print")
	flag.Parse()

	color.Cyan("🚀 Recommendation Pipeline Simulation\n")

	if *userId == "" {
		color.Red("A -user is required")
		os.Exit(1)
	}

	ranker, err := xgb.Load(*modelPath, xgb.UnseenAsMissing)
	if err != nil {
		color.Red("Failed to load model: %v", err)
		os.Exit(1)
	}
	color.Green("Model loaded: %d known actions", len(ranker.Actions()))

	events, err := dataset.Load(*dataPath)
	if err != nil {
		color.Red("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	color.Green("Dataset loaded: %d events", len(events))

	if *descPath != "" {
		raw, err := os.ReadFile(*descPath)
		if err != nil {
			color.Red("Failed to read description: %v", err)
			os.Exit(1)
		}
		cat := catalog.Parse(string(raw))
		color.Green("Catalog parsed: %d templates", cat.Len())

		tagged := 0
		for i, ev := range events {
			if action, ok := cat.Match(ev.Endpoint); ok {
				events[i].Action = action.Label()
				tagged++
			}
		}
		color.Yellow("Tagged %d/%d events against the catalog", tagged, len(events))
	}

	vector, err := feature.Build(nil, events, *userId)
	if err != nil {
		color.Red("Failed to build features: %v", err)
		os.Exit(1)
	}

	color.Yellow("\nFeature vector for %s:", *userId)
	color.White("  seconds_since_midnight=%d day=%d month=%d week=%d year=%d",
		vector.SecondsSinceMidnight, vector.Day, vector.Month, vector.Week, vector.Year)
	for i := 0; i < feature.PrevActionDepth; i++ {
		color.White("  prev_action_%d=%q same_session=%v", i+1, vector.PrevActions[i], vector.SessionContinuity[i])
	}

	engine := ranking.NewEngine(ranker.Actions(), ranker)
	ranked, err := engine.Rank(vector, *k)
	if err != nil {
		color.Red("Ranking failed: %v", err)
		os.Exit(1)
	}

	color.Yellow("\nTop %d actions:", len(ranked))
	for i, ra := range ranked {
		color.Green("  %d. %s (%.4f)", i+1, ra.Action, ra.Score)
	}
}
