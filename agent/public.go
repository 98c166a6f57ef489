package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tallyapp/tally"
	"github.com/tallyapp/tally/docs"
	"github.com/tallyapp/tally/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// RegistryFile is the registry the Bookkeeper reads. The command layer
// points it at the same file the other commands use.
var RegistryFile = "tally.json"

// Currency is the display currency used in the Bookkeeper's reports.
var Currency = "USD"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs a small business selling a handful of products. He is here primarily
			to understand how his products perform: what sells, what it costs him, and where
			his money went.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request.

			The user will assume that you know his products, check the registry first to
			understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor creates the market advisor expert, grounded on search.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a small-business advisor,
		well aware of retail pricing, sourcing and seasonal demand.
		Ask the Advisor whenever you need recent or grounding information from the outside world.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in small retail businesses: pricing, sourcing, margins and demand.
			You leverage Google Search to ground your assertions in solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper creates the expert in charge of reading the user's
// registry.
func NewBookkeeper() *Expert {
	lib := []Function{Products, ProductStats, Dashboard}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's product registry.
		He can list the registered products, derive the figures of any product, and produce the
		business-wide dashboard.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's product registry.
				You know how to use the Tools to extract relevant information about the user's
				products, sales and expenses. You are part of a team of experts, yours is
				everything recorded in the registry. They might ask you questions with
				approximative product names, figure out which product they meant.

				How the figures are derived:

				` + must(docs.GetTopic("accounting")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
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

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// openRegistry hydrates the registry the Bookkeeper's functions read.
func openRegistry() *tally.Registry {
	return tally.OpenRegistry(&tally.FileStore{Path: RegistryFile})
}

var Products = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Products",
		Description: `Products lists all registered products with their id, name, unit cost,
		selling price, initial stock and initial investment.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of all registered products.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		var b strings.Builder
		fmt.Fprintf(&b, "| ID | Name | Unit Cost | Price | Initial Units | Investment |\n")
		fmt.Fprintf(&b, "|:---|:---|---:|---:|---:|---:|\n")
		for _, l := range openRegistry().Ledgers() {
			p := l.Product
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
				p.ID, p.Name,
				p.UnitCost.Format(Currency), p.SellingPrice.Format(Currency),
				p.InitialUnits, p.InitialInvestment.Format(Currency))
		}
		return okResponse(id, "Products", b.String())
	},
}

var ProductStats = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "ProductStats",
		Description: `ProductStats derives the full financial report of one product:
		units sold, inventory, revenue, COGS, gross and net profit, ROI and margin.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"product": {
					Type:        genai.TypeString,
					Description: "The product id, or its exact name.",
				},
			},
			Required: []string{"product"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted report of the product's derived figures.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		key, ok := args["product"].(string)
		if !ok {
			return errResponse(id, "ProductStats", fmt.Errorf("argument 'product' is not a string but %T", args["product"]))
		}
		r := openRegistry()
		l, err := r.Ledger(key)
		if err != nil {
			// fall back to an exact name match
			for _, candidate := range r.Ledgers() {
				if candidate.Product.Name == key {
					l, err = candidate, nil
					break
				}
			}
		}
		if err != nil {
			return errResponse(id, "ProductStats", err)
		}
		return okResponse(id, "ProductStats", renderer.RenderProduct(renderer.NewProductReport(l, Currency)))
	},
}

var Dashboard = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Dashboard",
		Description: `Dashboard derives the business-wide view: one row per product with its
		figures, plus totals over the whole business.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted dashboard of the whole business.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		return okResponse(id, "Dashboard", renderer.RenderDashboard(renderer.NewDashboard(openRegistry(), Currency)))
	},
}
