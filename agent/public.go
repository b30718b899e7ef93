package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/finbridge/marginbridge"
	"github.com/finbridge/marginbridge/docs"
	"github.com/finbridge/marginbridge/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// The facilitator is never declared to anyone, nobody asks it questions.
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As the facilitator you are in charge of the conversation and of solving the user's request.

			Learn from the Tools what each expert can do, and ask them questions.
			They are at your service and fully dedicated to you, they keep the context of your previous questions.

			The user wants to understand why the aggregate profit margin of their portfolio moved
			between two periods. Ask the Analyst for the figures and the Methodologist for the
			method behind them, then compose the answer.

			Keep answers short, in markdown, and quote effects in basis points.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the expert that reads the dataset and runs the numbers.
func NewAnalyst() *Expert {

	lib := []Function{Attribution, Dataset, Query}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the user's P&L dataset and computes the
		margin attribution between the two periods.
		Ask the Analyst for any figure: margins, weights, performance and mix effects in basis points.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the analyst in charge of the user's P&L dataset.
				You know how to use the Tools to compute the margin attribution and to extract any figure from it.
				You are part of a team of experts, yours is everything numeric about the dataset. They might ask
				you questions in approximative terms, pardon their language and figure out what they meant.

				Use the available tools to get:
				  - the full attribution report
				  - the raw dataset
				  - a single figure through a JSONPath query
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// NewMethodologist creates the expert that knows how the figures are computed.
func NewMethodologist() *Expert {

	lib := []Function{Topic}

	return &Expert{
		Name: "Methodologist",
		Description: `This is the Methodologist. It knows how the margin attribution is computed:
		the formulas, the data formats and the consistency checks.
		Ask the Methodologist whenever a figure needs an explanation of where it comes from.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the methodologist of the team. You answer questions about how the margin
				attribution is computed, never about the user's actual figures.
				Read the reference documentation with the Topic tool before answering, and quote
				the formulas from it rather than inventing your own.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var Attribution = &Func{

	Decl: &genai.FunctionDeclaration{
		Name: "Attribution",
		Description: `Attribution computes the margin attribution of the P&L dataset between its
		two periods and returns the full report.

		The report holds the portfolio margin of both periods, the change in basis points, and for
		each component its margins, weights, performance effect, mix effect and total effect.
		`,
		Parameters: &genai.Schema{Type: genai.TypeObject},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted attribution report with a summary and a per-component table.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {

		report, err := attribution()
		if err != nil {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Attribution",
				Response: map[string]any{
					"error": err.Error(),
				},
			}
		}

		return &genai.FunctionResponse{
			ID:   id,
			Name: "Attribution",
			Response: map[string]any{
				"output": report,
			},
		}
	},
}

var Dataset = &Func{

	Decl: &genai.FunctionDeclaration{
		Name: "Dataset",
		Description: `Dataset returns the raw P&L dataset, one component per line, with the revenue
		and profit of both periods.`,
		Parameters: &genai.Schema{Type: genai.TypeObject},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The dataset in its canonical JSONL form.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {

		listing, err := dataset()
		if err != nil {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Dataset",
				Response: map[string]any{
					"error": err.Error(),
				},
			}
		}

		return &genai.FunctionResponse{
			ID:   id,
			Name: "Dataset",
			Response: map[string]any{
				"output": listing,
			},
		}
	},
}

var Query = &Func{

	Decl: &genai.FunctionDeclaration{
		Name: "Query",
		Description: `Query extracts a single figure from the attribution report with a JSONPath
		expression. Prefer it over Attribution when one precise, full-precision number is needed.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"path": {
					Type: genai.TypeString,
					Description: `The JSONPath expression to evaluate, for example:
					  $.summary.totalBps     the total margin change in basis points
					  $.rows[0].component    the name of the first component
					  $.rows[*].mixBps       the mix effect of every component`,
				},
			},
			Required: []string{"path"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The value at that path, JSON encoded.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {

		arg0 := args["path"]
		path, ok := arg0.(string)
		if !ok {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Query",
				Response: map[string]any{
					"error": fmt.Sprintf("argument 'path' is not a string as expected but %T", arg0),
				},
			}
		}

		out, err := query(path)
		if err != nil {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Query",
				Response: map[string]any{
					"error": err.Error(),
				},
			}
		}

		return &genai.FunctionResponse{
			ID:   id,
			Name: "Query",
			Response: map[string]any{
				"output": out,
			},
		}
	},
}

var Topic = &Func{

	Decl: &genai.FunctionDeclaration{
		Name:        "Topic",
		Description: `Topic returns one chapter of the reference documentation, markdown formatted.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {
					Type: genai.TypeString,
					Description: `The topic to read, or "*" for all of them. Below is the index of available topics:

					` + must(docs.GetTopic("readme")),
				},
			},
			Required: []string{"topic"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The markdown content of the requested topic.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {

		arg0 := args["topic"]
		topic, ok := arg0.(string)
		if !ok {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Topic",
				Response: map[string]any{
					"error": fmt.Sprintf("argument 'topic' is not a string as expected but %T", arg0),
				},
			}
		}

		content, err := docs.GetTopic(topic)
		if err != nil {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Topic",
				Response: map[string]any{
					"error": err.Error(),
				},
			}
		}

		return &genai.FunctionResponse{
			ID:   id,
			Name: "Topic",
			Response: map[string]any{
				"output": content,
			},
		}
	},
}

// attribution renders the full markdown report for the current dataset.
func attribution() (string, error) {
	a, err := computeAttribution()
	if err != nil {
		return "", err
	}
	return renderer.RenderAttribution(renderer.NewAttribution(a)), nil
}

// dataset returns the current dataset in its canonical form.
func dataset() (string, error) {
	p, err := DecodePnL()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := marginbridge.EncodePortfolio(&sb, p); err != nil {
		return "", fmt.Errorf("could not encode the dataset: %w", err)
	}
	return sb.String(), nil
}

// query evaluates a JSONPath expression against the attribution report.
func query(path string) (string, error) {
	a, err := computeAttribution()
	if err != nil {
		return "", err
	}
	v, err := a.Query(path)
	if err != nil {
		return "", fmt.Errorf("invalid query %q: %w", path, err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func computeAttribution() (*marginbridge.Attribution, error) {
	p, err := DecodePnL()
	if err != nil {
		return nil, err
	}
	a, err := marginbridge.NewAttribution(p)
	if err != nil {
		return nil, fmt.Errorf("could not compute the attribution: %w", err)
	}
	return a, nil
}

// DecodePnL decodes the portfolio from the application's P&L file, located
// through the MBA_PNL_FILE variable the way an extension locates it.
// If the file does not exist, it returns a new empty portfolio.
func DecodePnL() (*marginbridge.Portfolio, error) {
	pnlFile := os.Getenv("MBA_PNL_FILE")
	if pnlFile == "" {
		pnlFile = "pnl.jsonl"
	}
	f, err := os.Open(pnlFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// If the file doesn't exist, it's an empty portfolio.
			return marginbridge.NewPortfolio(), nil
		}
		return nil, fmt.Errorf("could not open P&L file %q: %w", pnlFile, err)
	}
	defer f.Close()

	p, err := marginbridge.DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode P&L file %q: %w", pnlFile, err)
	}
	return p, nil
}
