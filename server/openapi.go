package server

import (
	"net/http"

	"gopkg.in/yaml.v3"
)

// The OpenAPI document is assembled from the operations this server
// actually exposes, so the served description never drifts from the routes.

type oaDocument struct {
	OpenAPI string            `yaml:"openapi"`
	Info    oaInfo            `yaml:"info"`
	Paths   map[string]oaPath `yaml:"paths"`
}

type oaInfo struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

type oaPath struct {
	Get *oaOperation `yaml:"get,omitempty"`
}

type oaOperation struct {
	Summary    string                `yaml:"summary,omitempty"`
	Parameters []oaParameter         `yaml:"parameters,omitempty"`
	Responses  map[string]oaResponse `yaml:"responses"`
}

type oaParameter struct {
	Name        string   `yaml:"name"`
	In          string   `yaml:"in"`
	Description string   `yaml:"description,omitempty"`
	Required    bool     `yaml:"required"`
	Schema      oaSchema `yaml:"schema"`
}

type oaSchema struct {
	Type   string `yaml:"type"`
	Format string `yaml:"format,omitempty"`
}

type oaResponse struct {
	Description string `yaml:"description"`
}

func buildOpenAPIDocument() ([]byte, error) {
	doc := oaDocument{
		OpenAPI: "3.0.3",
		Info: oaInfo{
			Title:       "Toronto Swim Lane Tracker API",
			Description: "API for retrieving pool swim lane schedules.",
			Version:     "1.0.0",
		},
		Paths: map[string]oaPath{
			"/pools": {Get: &oaOperation{
				Summary: "List pools with lane-swim sessions in a time window",
				Parameters: []oaParameter{
					{
						Name:        "start_date",
						In:          "query",
						Description: "Inclusive lower timestamp bound (YYYY-MM-DDTHH:MM:SS)",
						Schema:      oaSchema{Type: "string", Format: "date-time"},
					},
					{
						Name:        "end_date",
						In:          "query",
						Description: "Inclusive upper timestamp bound (YYYY-MM-DDTHH:MM:SS)",
						Schema:      oaSchema{Type: "string", Format: "date-time"},
					},
					{
						Name:        "simple",
						In:          "query",
						Description: "Return the simplified projection with pool name and times",
						Schema:      oaSchema{Type: "boolean"},
					},
				},
				Responses: map[string]oaResponse{
					"200": {Description: "Matching facilities with their sessions"},
					"400": {Description: "Unparseable timestamp bound"},
				},
			}},
			"/openapi.yaml": {Get: &oaOperation{
				Summary: "This document",
				Responses: map[string]oaResponse{
					"200": {Description: "OpenAPI description in YAML"},
				},
			}},
			"/api/health": {Get: &oaOperation{
				Summary: "Service health and last refresh time",
				Responses: map[string]oaResponse{
					"200": {Description: "Health status"},
				},
			}},
		},
	}
	return yaml.Marshal(doc)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	_, _ = w.Write(s.openapi)
}
