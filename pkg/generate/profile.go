package generate

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Profile is a reusable generation configuration stored as TOML. Flags
// given on the command line take precedence over profile values.
type Profile struct {
	DataFile  string `toml:"data-file,omitempty"`
	Template  string `toml:"template,omitempty"`
	VarType   string `toml:"var-type,omitempty"`
	ExtraVars string `toml:"extra-vars,omitempty"`
	Format    string `toml:"format,omitempty"`
	DPI       int    `toml:"dpi,omitempty"`
	Output    string `toml:"output,omitempty"`
	Renderer  string `toml:"renderer,omitempty"`
}

// LoadProfile reads a TOML profile from path.
func LoadProfile(path string) (*Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %q: %w", path, err)
	}
	var p Profile
	if err := toml.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %q: %w", path, err)
	}
	return &p, nil
}

// Encode serializes the profile back to TOML.
func (p *Profile) Encode() (string, error) {
	b, err := toml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("error encoding toml: %w", err)
	}
	return string(b), nil
}
