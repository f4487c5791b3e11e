package finals

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mfp-stats/internal/season"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// TournamentIDs is one mapping value: a single id or a list of ids.
type TournamentIDs []int

func (t *TournamentIDs) UnmarshalJSON(b []byte) error {
	var single int
	if err := json.Unmarshal(b, &single); err == nil {
		*t = TournamentIDs{single}
		return nil
	}
	var many []int
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("finals mapping value must be an id or a list of ids: %w", err)
	}
	*t = many
	return nil
}

func (t *TournamentIDs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single int
		if err := node.Decode(&single); err != nil {
			return err
		}
		*t = TournamentIDs{single}
		return nil
	case yaml.SequenceNode:
		var many []int
		if err := node.Decode(&many); err != nil {
			return err
		}
		*t = many
		return nil
	}
	return fmt.Errorf("finals mapping value must be an id or a list of ids, line %d", node.Line)
}

// Mapping links league -> "{season-name} {year}" -> finals tournament ids.
type Mapping map[string]map[string]TournamentIDs

// LoadMapping reads a mapping from a .json, .yaml or .yml file. A missing
// file yields an empty mapping: every season is then treated as having no
// finals.
func LoadMapping(path string, logger zerolog.Logger) (Mapping, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("path", path).Msg("finals mapping not found, no season will have finals")
		return Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read finals mapping: %w", err)
	}

	m, err := Parse(b, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", path).Int("leagues", len(m)).Int("seasons", m.Len()).Msg("finals mapping loaded")
	return m, nil
}

func Parse(b []byte, ext string) (Mapping, error) {
	m := Mapping{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("failed to parse finals mapping yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("failed to parse finals mapping json: %w", err)
		}
	}
	return m, nil
}

// LookupSeason returns the finals tournaments of a season. Seasons with an
// unknown year or season-name never match.
func (m Mapping) LookupSeason(s season.Classified) ([]int, bool) {
	if s.Year == season.YearUnknown || s.Name == season.NameUnknown {
		return nil, false
	}
	seasons, ok := m[s.League]
	if !ok {
		return nil, false
	}
	ids, ok := seasons[s.FinalsKey()]
	if !ok || len(ids) == 0 {
		return nil, false
	}
	return append([]int(nil), ids...), true
}

func (m Mapping) Len() int {
	n := 0
	for _, seasons := range m {
		n += len(seasons)
	}
	return n
}
