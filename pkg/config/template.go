package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth bounds enzyme descriptions in full templates.
const commentWrapWidth = 70

// TemplateOptions selects what GenerateTemplate writes.
type TemplateOptions struct {
	Full    bool   // document every key and list Enzymes
	Format  string // "yaml" or "json"
	Enzymes []EnzymeInfo
}

// EnzymeInfo describes one enzyme in a full template.
type EnzymeInfo struct {
	Name        string
	Description string
	Rules       string
}

// GenerateTemplate renders a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate lists the common keys with their defaults.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Enzyme preset (see 'pepdigest enzymes')
enzyme: trypsin

# Peptide length bounds, inclusive
min_length: 6
max_length: 50

# Uncut cleavage sites a peptide may span
# miscleavages: 0

# Digestion mode: full, semi, or none
# digestion: full
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with every setting documented.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# pepdigest configuration - Full Template
# See: https://github.com/yaklabco/pepdigest
#
# Every setting is shown with its default value.

# Enzyme preset; ignored when rules are set
enzyme: trypsin

# Custom cleavage rules. A site after residue a and before residue b is cut
# when a is in pre and b is not in not_post, or when b is in post.
# rules:
#   pre: [K, R]
#   not_post: [P]
#   post: []

# Peptide length bounds, inclusive
min_length: 6
max_length: 50

# Uncut cleavage sites a peptide may span
miscleavages: 0

# Treat the site after an N-terminal methionine as a free cut
methionine_cleavage: true

# Digestion mode: full, semi, or none
digestion: full

# Drop repeated peptides within a sequence
unique: false

# Output format: text, tsv, json, or summary
format: text

# Worker count; 0 uses one per CPU
jobs: 0
`)

	if len(opts.Enzymes) > 0 {
		enzymes := slices.SortedFunc(slices.Values(opts.Enzymes), func(a, b EnzymeInfo) int {
			return strings.Compare(a.Name, b.Name)
		})

		buf.WriteString("\n# Available enzymes:\n")
		for _, e := range enzymes {
			fmt.Fprintf(&buf, "#   %s: %s\n", e.Name, wrapComment(e.Description, commentWrapWidth))
			if e.Rules != "" {
				fmt.Fprintf(&buf, "#     %s\n", e.Rules)
			}
		}
	}

	return buf.Bytes()
}

// wrapComment breaks text into lines of at most width bytes, joined so each
// continuation stays inside the enzyme comment block.
func wrapComment(text string, width int) string {
	var lines []string
	var line strings.Builder
	for word := range strings.FieldsSeq(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n#     ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	yamlBytes, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(yamlBytes, &doc); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader is the comment block at the top of generated files.
func DefaultTemplateHeader() string {
	return `# pepdigest configuration
# See: https://github.com/yaklabco/pepdigest`
}
