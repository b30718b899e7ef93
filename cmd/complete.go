package cmd

import (
	"github.com/finbridge/marginbridge/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completer describes the whole CLI surface for shell completion. A main
// package passes it to complete.Complete before parsing flags, which also
// gives the binary the 'COMP_INSTALL=1 mba' self-install behavior.
func Completer() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"pnl-file":         predict.Files("*.jsonl"),
			"default-currency": predict.Nothing,
			"v":                predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"init": {Flags: map[string]complete.Predictor{
				"name":     predict.Nothing,
				"currency": predict.Nothing,
				"prior":    predict.Nothing,
				"current":  predict.Nothing,
			}},
			"add": {Flags: map[string]complete.Predictor{
				"c":  predict.Nothing,
				"pr": predict.Nothing,
				"pp": predict.Nothing,
				"pc": predict.Nothing,
				"cr": predict.Nothing,
				"cp": predict.Nothing,
				"cc": predict.Nothing,
			}},
			"check": {},
			"report": {Flags: map[string]complete.Predictor{
				"summary": predict.Nothing,
				"drivers": predict.Nothing,
				"json":    predict.Nothing,
				"q":       predict.Nothing,
			}},
			"fmt": {},
			"import": {Flags: map[string]complete.Predictor{
				"i":        predict.Files("*.csv"),
				"currency": predict.Nothing,
				"name":     predict.Nothing,
				"prior":    predict.Nothing,
				"current":  predict.Nothing,
			}},
			"export": {Flags: map[string]complete.Predictor{
				"o": predict.Files("*.csv"),
			}},
			"topic": {Args: complete.PredictFunc(predictTopics)},
			"explain": {},
		},
	}
}

func predictTopics(string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "readme")
}
