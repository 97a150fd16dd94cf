package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/icza/gog"

	"github.com/svgmerge/svgmerge/pkg/generate"
	"github.com/svgmerge/svgmerge/pkg/substitute"
	"github.com/svgmerge/svgmerge/pkg/tabdata"
)

// GenerateRequest carries everything needed for one remote run: the
// template text, the CSV data and the substitution options.
type GenerateRequest struct {
	Template  string `json:"template"`
	Data      string `json:"data"`
	VarType   string `json:"var_type,omitempty"` // "name" (default) or "number"
	ExtraVars string `json:"extra_vars,omitempty"`
	Output    string `json:"output,omitempty"` // filename pattern
}

// GeneratedDocument is one materialized document of a remote run.
type GeneratedDocument struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// GenerateResponse is the result of a remote run, one document per
// data row, in source order.
type GenerateResponse struct {
	Documents []GeneratedDocument `json:"documents"`
}

// Generate materializes one document per data row via the REST API.
func (s *server) Generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		var req GenerateRequest
		if err := unmarshalBody(w, r, &req); err != nil {
			return
		}

		byName := req.VarType != "number"
		pattern := gog.If(req.Output != "", req.Output, "%VAR_0%.svg")

		rules, err := substitute.ParseRules(req.ExtraVars)
		if err != nil {
			_, _ = Errorf(http.StatusBadRequest, w, "Could not parse replacement rules: %v", err)
			return
		}

		table, err := tabdata.ParseString(req.Data, byName)
		if err != nil {
			if errors.Is(err, tabdata.ErrEmptyDataSource) {
				_, _ = Errorf(http.StatusBadRequest, w, "Data contains no rows")
				return
			}
			_, _ = Errorf(http.StatusBadRequest, w, "Could not parse data: %v", err)
			return
		}

		resp := GenerateResponse{}
		for _, row := range table.Rows {
			desc := table.Describe(row)
			content, err := generate.Materialize(req.Template, desc, rules, byName)
			if err != nil {
				var unknownColumn *substitute.UnknownColumnError
				code := gog.If(errors.As(err, &unknownColumn), http.StatusBadRequest, http.StatusInternalServerError)
				_, _ = Errorf(code, w, "Could not materialize document: %v", err)
				return
			}
			resp.Documents = append(resp.Documents, GeneratedDocument{
				Filename: generate.ResolveOutput(pattern, desc),
				Content:  content,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&resp)
	}
}
