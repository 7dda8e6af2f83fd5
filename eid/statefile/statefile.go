// Package statefile persists EID model state between runs as a small YAML
// document.
//
// A state file written after one run lets the next run continue the same
// random stream. When a file exists for the requested mode, its rate,
// gamma and burst index take precedence over the values the caller asked
// for; Apply reports that override so it can be surfaced to the user.
package statefile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/types"
)

// ErrCorrupt indicates a state file that could not be parsed.
var ErrCorrupt = errors.New("statefile: corrupt state file")

// document is the on-disk layout.
type document struct {
	Mode     string  `yaml:"mode"`
	Rate     float64 `yaml:"rate"`
	Gamma    float64 `yaml:"gamma,omitempty"`
	Index    int     `yaml:"index,omitempty"`
	Seed     uint64  `yaml:"seed"`
	RNG      string  `yaml:"rng"`
	Previous bool    `yaml:"previous,omitempty"`
	Run      int     `yaml:"run,omitempty"`
	Counters []int64 `yaml:"counters,flow,omitempty"`
	Drawn    int64   `yaml:"drawn"`
}

// Marshal encodes st as YAML.
func Marshal(st eid.State) ([]byte, error) {
	doc := document{
		Mode:     st.Mode.String(),
		Rate:     st.Rate,
		Gamma:    st.Gamma,
		Index:    st.Index,
		Seed:     st.Seed,
		RNG:      hex.EncodeToString(st.RNG),
		Previous: st.Previous,
		Run:      st.Run,
		Counters: st.Counters,
		Drawn:    st.Drawn,
	}
	return yaml.Marshal(&doc)
}

// Unmarshal decodes a YAML state document.
func Unmarshal(data []byte) (eid.State, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return eid.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	mode, err := types.ParseMode(doc.Mode)
	if err != nil {
		return eid.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	rng, err := hex.DecodeString(doc.RNG)
	if err != nil {
		return eid.State{}, fmt.Errorf("%w: rng: %v", ErrCorrupt, err)
	}
	return eid.State{
		Mode:     mode,
		Rate:     doc.Rate,
		Gamma:    doc.Gamma,
		Index:    doc.Index,
		Seed:     doc.Seed,
		RNG:      rng,
		Previous: doc.Previous,
		Run:      doc.Run,
		Counters: doc.Counters,
		Drawn:    doc.Drawn,
	}, nil
}

// Load reads a state file. A missing file is not an error: it returns nil.
func Load(path string) (*eid.State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("statefile: read %s: %w", path, err)
	}
	st, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("statefile: %s: %w", path, err)
	}
	return &st, nil
}

// Save writes st to path, replacing any previous content.
func Save(path string, st eid.State) error {
	data, err := Marshal(st)
	if err != nil {
		return fmt.Errorf("statefile: encode: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("statefile: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("statefile: rename %s: %w", tmp, err)
	}
	return nil
}

// Params are the caller-chosen model parameters a state file may override.
type Params struct {
	Mode       types.Mode
	Rate       float64
	Gamma      float64
	BurstIndex int
}

// Apply merges a loaded state into p. It returns the effective parameters,
// whether the state should be restored, and a notice describing what
// happened. A nil state leaves p untouched.
func Apply(p Params, st *eid.State) (Params, bool, string) {
	if st == nil {
		return p, false, "no saved state, starting a new model"
	}
	if st.Mode != p.Mode {
		return p, false, fmt.Sprintf("saved state is for %v, not %v; ignoring it", st.Mode, p.Mode)
	}
	switch p.Mode {
	case types.ModeBurstFrameErasure:
		p.BurstIndex = st.Index
		p.Rate = eid.BurstRate(st.Index)
		return p, true, fmt.Sprintf("using %v state: index=%d rate=%.2f%%", st.Mode, st.Index, 100*p.Rate)
	default:
		p.Rate = st.Rate
		p.Gamma = st.Gamma
		return p, true, fmt.Sprintf("using %v state: rate=%.2f%% gamma=%.2f", st.Mode, 100*p.Rate, p.Gamma)
	}
}
