package agent

import (
	"context"
	"fmt"

	"github.com/etnz/wsfolio"
	"github.com/etnz/wsfolio/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator builds the expert in charge of the conversation. It can
// only answer through the other experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user primarily wants information about the securities he holds, his target
			allocation, his funding plan, and the tax impact of his decisions.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader builds the market expert. It grounds its answers with Google
// Search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		very well aware of all the financial products and institutions,
		and of the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading. You can search and find anything related to
			financial institutions, companies, markets, funds etc. You leverage Google
			Search to ground your assertions. You can get the latest news too, and you
			know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAdvisor builds the portfolio expert. It is seeded with the rendered
// portfolio tables and can estimate income tax.
func NewAdvisor(portfolio string) *Expert {
	lib := []Function{TaxEstimate}

	return &Expert{
		Name: "Advisor",
		Description: `This is the Advisor. He knows the user's accounts, their positions,
		the target allocation and its current drift, and the funding guidance.
		He can estimate the income tax of a Canadian resident of Ontario.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an advisor in charge of the user's brokerage accounts.
				You are part of a team of experts, yours is everything about the user's
				accounts and allocation. The tables below are the user's portfolio as of now;
				answer from them, and use the TaxEstimate tool for any tax question.

				` + portfolio}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements Function from a declaration and a callback.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// TaxEstimate estimates income tax for an Ontario resident from
// employment income, an RRSP deduction and taxable capital gains.
var TaxEstimate = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "TaxEstimate",
		Description: `TaxEstimate computes the federal and Ontario income tax of a Canadian
		resident of Ontario, from employment income, an optional RRSP deduction and
		optional taxable capital gains. It also reports the marginal rates on the
		next dollar of income.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"income": {
					Type:        genai.TypeNumber,
					Description: "Employment income, in CAD.",
				},
				"rrsp": {
					Type:        genai.TypeNumber,
					Description: "RRSP deduction, in CAD. Defaults to 0.",
				},
				"gains": {
					Type:        genai.TypeNumber,
					Description: "Taxable capital gains, in CAD. Defaults to 0.",
				},
			},
			Required: []string{"income"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted tax estimation.",
		},
	},
	Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
		income, err := floatArg(args, "income")
		if err == nil && income <= 0 {
			err = fmt.Errorf("'income' must be positive")
		}
		if err != nil {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "TaxEstimate",
				Response: map[string]any{
					"error": err.Error(),
				},
			}
		}
		rrsp, _ := floatArg(args, "rrsp")
		gains, _ := floatArg(args, "gains")

		tax := wsfolio.CalculateIncomeTax(income, rrsp, gains)
		federal, ontario := wsfolio.MarginalTaxRates(income + gains - rrsp)
		return &genai.FunctionResponse{
			ID:   id,
			Name: "TaxEstimate",
			Response: map[string]any{
				"output": renderer.TaxMarkdown(income, rrsp, gains, tax, federal, ontario),
			},
		}
	},
}

func floatArg(args map[string]any, name string) (float64, error) {
	v, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", name)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q is not a number but %T", name, v)
	}
	return f, nil
}
