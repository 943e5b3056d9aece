package network

import (
	"sync"

	"github.com/pmezard/go-difflib/difflib"
)

// LayerWrite is a layer write recorded by DryRunSystemController.
type LayerWrite struct {
	Path string
	Old  string
	New  string
}

// Changed reports whether the write would alter the file.
func (w LayerWrite) Changed() bool {
	return w.Old != w.New
}

// Diff renders the write as a unified diff of the file content.
func (w LayerWrite) Diff() string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(w.Old + "\n"),
		B:        difflib.SplitLines(w.New + "\n"),
		FromFile: w.Path,
		ToFile:   w.Path + " (planned)",
		Context:  1,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

// DryRunSystemController records layer writes instead of performing them.
// Reads go to Base, so a write to a missing file fails exactly as it would
// for real.
type DryRunSystemController struct {
	Base SystemController

	mu     sync.Mutex
	Writes []LayerWrite
}

// NewDryRunSystemController creates a dry run controller reading from base.
func NewDryRunSystemController(base SystemController) *DryRunSystemController {
	return &DryRunSystemController{Base: base}
}

func (s *DryRunSystemController) ReadLayer(path string) (string, error) {
	return s.Base.ReadLayer(path)
}

func (s *DryRunSystemController) WriteLayer(path, value string) error {
	old, err := s.Base.ReadLayer(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes = append(s.Writes, LayerWrite{Path: path, Old: old, New: value})
	return nil
}

func (s *DryRunSystemController) IsNotExist(err error) bool {
	return s.Base.IsNotExist(err)
}
