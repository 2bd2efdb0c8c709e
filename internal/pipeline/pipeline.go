// Package pipeline turns a blob of mixed OCR or model output into the ordered
// list of cleaned verse lines: split on line breaks, classify each line, then
// sanitize the kept ones. Output order always follows input order.
package pipeline

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gptpoet/qasida/internal/classify"
	"github.com/gptpoet/qasida/internal/model"
	"github.com/gptpoet/qasida/internal/registry"
	"github.com/gptpoet/qasida/internal/sanitize"
)

// RuleTooShort counts kept lines the sanitizer discarded for length.
const RuleTooShort = "too-short"

// Stats summarises one run.
type Stats struct {
	Lines   int            // raw lines seen
	Kept    int            // classified KEEP
	Emitted int            // survived sanitization
	Dropped map[string]int // per classifier rule, plus RuleTooShort
}

// Result is the output of Run.
type Result struct {
	Lines []model.CleanedLine
	Stats Stats
}

// Pipeline wires a Classifier and a Sanitizer over one Registry.
// It is stateless between calls and safe for concurrent use.
type Pipeline struct {
	cls *classify.Classifier
	san *sanitize.Sanitizer
}

// New returns a Pipeline backed by reg.
func New(reg *registry.Registry) *Pipeline {
	return &Pipeline{cls: classify.New(reg), san: sanitize.New()}
}

var defaultPipeline = New(registry.Default())

// Extract runs the default pipeline over text.
func Extract(text string) []model.CleanedLine { return defaultPipeline.Extract(text) }

// Extract returns the cleaned verse lines of text in input order.
func (p *Pipeline) Extract(text string) []model.CleanedLine { return p.Run(text).Lines }

// ExtractConcurrent is Extract with classification and sanitization spread
// over workers goroutines. The result is identical to Extract.
func (p *Pipeline) ExtractConcurrent(text string, workers int) []model.CleanedLine {
	return p.RunConcurrent(text, workers).Lines
}

type outcome struct {
	decision classify.Decision
	text     string
	ok       bool
}

func (p *Pipeline) process(raw string) outcome {
	d := p.cls.Decide(raw)
	if d.Verdict != classify.Keep {
		return outcome{decision: d}
	}
	// sanitize sees the trimmed line, as the classifier did
	text, ok := p.san.Sanitize(strings.TrimSpace(raw))
	return outcome{decision: d, text: text, ok: ok}
}

// Run is Extract plus statistics.
func (p *Pipeline) Run(text string) Result {
	raws := model.SplitLines(text)
	outs := make([]outcome, len(raws))
	for i, r := range raws {
		outs[i] = p.process(r.Text)
	}
	return merge(raws, outs)
}

// RunConcurrent is Run evaluated by up to workers goroutines, each owning a
// contiguous shard of lines. workers <= 1 runs sequentially.
func (p *Pipeline) RunConcurrent(text string, workers int) Result {
	if workers <= 1 {
		return p.Run(text)
	}
	raws := model.SplitLines(text)
	outs := make([]outcome, len(raws))

	shard := (len(raws) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(raws); start += shard {
		start := start // per-iteration copy; module targets go 1.21 loop semantics
		end := min(start+shard, len(raws))
		g.Go(func() error {
			for i := start; i < end; i++ {
				outs[i] = p.process(raws[i].Text)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return merge(raws, outs)
}

func merge(raws []model.RawLine, outs []outcome) Result {
	res := Result{Stats: Stats{Lines: len(raws), Dropped: map[string]int{}}}
	for i, o := range outs {
		if o.decision.Verdict != classify.Keep {
			res.Stats.Dropped[o.decision.Rule]++
			continue
		}
		res.Stats.Kept++
		if !o.ok {
			res.Stats.Dropped[RuleTooShort]++
			continue
		}
		res.Lines = append(res.Lines, model.CleanedLine{Position: raws[i].Index, Text: o.text})
	}
	res.Stats.Emitted = len(res.Lines)
	return res
}
