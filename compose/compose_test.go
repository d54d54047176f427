package compose

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "track.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "title: Test\nkey: C4\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Tempo)
	assert.Equal(t, 1, cfg.Periods)
	assert.Equal(t, "AABA", cfg.Pattern)
	assert.Equal(t, 1.0, cfg.Tension.Max)
	assert.Equal(t, 33, cfg.Instruments.Bass)
	assert.Equal(t, Granularity{1, 2, 4}, cfg.Reharmonize.Granularity)
}

func TestLoadGranularityAcceptsScalarOrList(t *testing.T) {
	scalarPath := writeConfig(t, "title: T\nkey: C4\nreharmonize:\n  granularity: 2\n")
	cfg, err := Load(scalarPath)
	require.NoError(t, err)
	assert.Equal(t, Granularity{2}, cfg.Reharmonize.Granularity)

	listPath := writeConfig(t, "title: T\nkey: C4\nreharmonize:\n  granularity: [1, 4]\n")
	cfg, err = Load(listPath)
	require.NoError(t, err)
	assert.Equal(t, Granularity{1, 4}, cfg.Reharmonize.Granularity)
}

func TestLoadParsesRestrictions(t *testing.T) {
	path := writeConfig(t, "title: T\nkey: C4\nreharmonize:\n  restrictions:\n    \"0\": i\n    \"4\": v\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	restrictions, err := cfg.Reharmonize.restrictionsAsFloat()
	require.NoError(t, err)
	assert.Equal(t, "i", restrictions[0])
	assert.Equal(t, "v", restrictions[4])
}

func TestModeKindDefaultsToIonian(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 0, int(cfg.ModeKind()))

	cfg.Mode = "minor"
	assert.Equal(t, 1, int(cfg.ModeKind()))
}

func TestAssembleProducesReharmonizedMix(t *testing.T) {
	cfg := &Config{
		Key:     "C4",
		Pattern: "AABA",
		Periods: 1,
		Tension: TensionRange{Min: 1, Max: 5},
		Search:  SearchConfig{Iterations: 2, MutantsPerTrial: 4, MaxFluctuations: 2},
		Reharmonize: ReharmonizeConfig{
			Granularity: Granularity{4},
		},
	}
	cfg.setDefaults()

	rng := rand.New(rand.NewSource(7))
	piece, err := Assemble(cfg, rng)
	require.NoError(t, err)

	assert.NotEmpty(t, piece.Placements)
	assert.NotNil(t, piece.Mix)
	assert.Equal(t, cfg.Key, piece.Melody.Tonic.String())
}
