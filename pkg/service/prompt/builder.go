package prompt

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/domain/types"
)

//go:embed templates/*.md
var templateFS embed.FS

// detailInstructions adjusts the requested detail level per complexity
var detailInstructions = map[types.Complexity]string{
	types.ComplexitySimple:  "Generate concise test cases with basic steps.",
	types.ComplexityMedium:  "Generate detailed test cases with comprehensive steps and validation.",
	types.ComplexityComplex: "Generate very detailed test cases with extensive steps, multiple validation points, and thorough error handling.",
}

// templateData contains data for the test case generation template
type templateData struct {
	Title                string
	Criteria             string
	TestTypes            string
	IncludeEdgeCases     bool
	IncludeNegativeCases bool
	Priority             string
	Complexity           string
	DetailInstructions   string
}

// Builder renders generation prompts from request parameters
type Builder struct{}

// New creates a new Builder instance
func New() *Builder {
	return &Builder{}
}

// Build renders the test case generation prompt for the given request
func (b *Builder) Build(req *model.GenerationRequest) (string, error) {
	complexity := req.EffectiveComplexity()
	detail, ok := detailInstructions[complexity]
	if !ok {
		detail = detailInstructions[types.ComplexityMedium]
	}

	data := templateData{
		Title:                req.UserStoryTitle,
		Criteria:             req.AcceptanceCriteria,
		TestTypes:            strings.Join(req.TestTypes, ", "),
		IncludeEdgeCases:     req.IncludeEdgeCases,
		IncludeNegativeCases: req.IncludeNegativeCases,
		Priority:             req.EffectivePriority().String(),
		Complexity:           complexity.String(),
		DetailInstructions:   detail,
	}

	content, err := templateFS.ReadFile("templates/testcases.md")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read test case template")
	}

	tmpl, err := template.New("testcases").Parse(string(content))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse test case template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute test case template")
	}

	return buf.String(), nil
}
