package store

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"codepad/internal/suggest"
)

type tableDoc struct {
	Table   string     `yaml:"table"`
	Entries []entryDoc `yaml:"entries"`
}

type entryDoc struct {
	Label  string `yaml:"label"`
	Value  string `yaml:"value"`
	Kind   string `yaml:"kind"`
	Detail string `yaml:"detail,omitempty"`
}

// Export writes the current contents of name as YAML.
func (s *Store) Export(ctx context.Context, name suggest.TableName, w io.Writer) error {
	entries, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	doc := tableDoc{Table: string(name), Entries: make([]entryDoc, 0, len(entries))}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, entryDoc{Label: e.Label, Value: e.Value, Kind: e.Kind.String(), Detail: e.Detail})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return enc.Close()
}

// Import reads a YAML document written by Export and saves it over the
// table it names. It returns that table's name.
func (s *Store) Import(ctx context.Context, r io.Reader) (suggest.TableName, error) {
	var doc tableDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to decode table: %w", err)
	}
	name, err := suggest.ParseTableName(doc.Table)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, doc.Table)
	}

	entries := make([]suggest.Suggestion, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		if e.Label == "" {
			return "", fmt.Errorf("entry %d of %s has no label", i, name)
		}
		kind, ok := suggest.ParseKind(e.Kind)
		if !ok {
			return "", fmt.Errorf("entry %q of %s has unknown kind %q", e.Label, name, e.Kind)
		}
		entries = append(entries, suggest.Suggestion{Label: e.Label, Value: e.Value, Kind: kind, Detail: e.Detail})
	}
	return name, s.Save(ctx, name, entries)
}
