package chi

import (
	"strings"

	"github.com/culturegraph/reconcile/internal/config"
	"github.com/culturegraph/reconcile/internal/domain/match"
	"github.com/culturegraph/reconcile/internal/domain/record"
)

// Manifest is the service metadata document returned on a bare GET,
// following the reconciliation API shape expected by OpenRefine.
type Manifest struct {
	Versions        []string        `json:"versions"`
	Name            string          `json:"name"`
	IdentifierSpace string          `json:"identifierSpace"`
	SchemaSpace     string          `json:"schemaSpace"`
	View            ViewDef         `json:"view"`
	Preview         PreviewDef      `json:"preview"`
	DefaultTypes    []match.TypeRef `json:"defaultTypes"`
	Suggest         SuggestDef      `json:"suggest"`
}

// ViewDef points clients at the human-readable entity page. The {{id}}
// placeholder is substituted client-side.
type ViewDef struct {
	URL string `json:"url"`
}

// PreviewDef describes the embedded preview iframe.
type PreviewDef struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SuggestDef advertises the auto-completion endpoints.
type SuggestDef struct {
	Entity   SuggestService `json:"entity"`
	Type     SuggestService `json:"type"`
	Property SuggestService `json:"property"`
}

// SuggestService locates one suggest endpoint.
type SuggestService struct {
	ServiceURL  string `json:"service_url"`
	ServicePath string `json:"service_path"`
}

// NewManifest builds the manifest from the configured service identity.
func NewManifest(cfg config.ServiceConfig) Manifest {
	base := strings.TrimRight(cfg.BaseURL, "/")
	return Manifest{
		Versions:        []string{"0.2"},
		Name:            cfg.Name,
		IdentifierSpace: cfg.IdentifierSpace,
		SchemaSpace:     cfg.SchemaSpace,
		View: ViewDef{
			URL: base + "/view/{{id}}",
		},
		Preview: PreviewDef{
			URL:    base + "/preview/{{id}}",
			Width:  600,
			Height: 400,
		},
		DefaultTypes: []match.TypeRef{
			{ID: record.CategoryArtifact.TypeID(), Name: record.CategoryArtifact.TypeName()},
			{ID: record.CategoryMuseum.TypeID(), Name: record.CategoryMuseum.TypeName()},
			{ID: record.CategoryArtist.TypeID(), Name: record.CategoryArtist.TypeName()},
		},
		Suggest: SuggestDef{
			Entity:   SuggestService{ServiceURL: base, ServicePath: "/suggest/entity"},
			Type:     SuggestService{ServiceURL: base, ServicePath: "/suggest/type"},
			Property: SuggestService{ServiceURL: base, ServicePath: "/suggest/property"},
		},
	}
}
