package plgn

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/pm1-tools/pm1/pm1"
	"github.com/pm1-tools/pm1/util"
)

// StepLogPlugin appends every transition as a JSON line to Path. The file
// is opened per search and closed when the search finishes or aborts.
type StepLogPlugin struct {
	DefaultPlugin
	Path string

	f   *os.File
	enc *json.Encoder
}

func NewStepLogPlugin(interface{}) pm1.Plugin {
	return &StepLogPlugin{
		Path: util.GetEnvDefault("PM1_STEPLOG", filepath.Join(os.TempDir(), "pm1-steps.log")),
	}
}

func (s *StepLogPlugin) OnStart(number *big.Int) error {
	s.close()
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("steplog: %w", err)
	}
	s.f, s.enc = f, json.NewEncoder(f)
	return nil
}

func (s *StepLogPlugin) OnStep(ev pm1.Event) error {
	if s.enc == nil {
		return nil
	}
	return s.enc.Encode(ev)
}

func (s *StepLogPlugin) OnFinish(*pm1.Result) error {
	return s.close()
}

func (s *StepLogPlugin) close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f, s.enc = nil, nil
	return err
}

// OnAbort closes the log when the search is abandoned before OnFinish.
func (s *StepLogPlugin) OnAbort(error) {
	_ = s.close()
}
