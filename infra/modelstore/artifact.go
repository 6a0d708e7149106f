package modelstore

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// ArtifactKind is the only artifact type understood by this loader.
const ArtifactKind = "linear"

// Artifact is the JSON form of a learned model.
type Artifact struct {
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// ToArtifact serialises m.
func ToArtifact(m *LinearModel) Artifact {
	return Artifact{
		Kind:         ArtifactKind,
		Name:         m.Name(),
		Features:     append([]string(nil), FeatureNames...),
		Coefficients: m.Coefficients(),
		Intercept:    m.Intercept(),
	}
}

// Decode reads an artifact from r and builds the model.
func Decode(r io.Reader) (*LinearModel, error) {
	var a Artifact
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.Kind != ArtifactKind {
		return nil, fmt.Errorf("unsupported artifact kind %q", a.Kind)
	}
	if len(a.Features) > 0 && !slices.Equal(a.Features, FeatureNames) {
		return nil, fmt.Errorf("artifact feature order %v does not match %v", a.Features, FeatureNames)
	}
	return NewLinearModel(a.Name, a.Coefficients, a.Intercept)
}

// Encode writes m as an indented artifact.
func Encode(w io.Writer, m *LinearModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToArtifact(m))
}
