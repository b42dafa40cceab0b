package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tripcrew/pkg/llm"
	"tripcrew/pkg/metrics"
)

type Engine struct {
	gen         llm.GeneratorInterface
	concurrency int
}

func NewEngine(gen llm.GeneratorInterface, concurrency int) *Engine {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{gen: gen, concurrency: concurrency}
}

// Run executes stages and returns one result per stage in input order.
// Dependencies must appear earlier in the slice than the stage naming them.
// A failed stage does not stop the others; its dependents see it as not OK.
func (e *Engine) Run(ctx context.Context, stages []Stage) ([]StageResult, error) {
	if err := validateOrder(stages); err != nil {
		return nil, err
	}

	index := make(map[StageKind]int, len(stages))
	done := make([]chan struct{}, len(stages))
	results := make([]StageResult, len(stages))
	for i, s := range stages {
		index[s.Kind] = i
		done[i] = make(chan struct{})
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i := range stages {
		i := i
		g.Go(func() error {
			defer close(done[i])

			upstream := make(Upstream, len(stages[i].DependsOn))
			for _, dep := range stages[i].DependsOn {
				j := index[dep]
				<-done[j]
				upstream[dep] = results[j]
			}
			results[i] = e.runStage(ctx, stages[i], upstream)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (e *Engine) runStage(ctx context.Context, s Stage, upstream Upstream) (res StageResult) {
	start := time.Now()
	res.Kind = s.Kind
	log.Printf("[%s] stage started", s.Kind)

	defer func() {
		if r := recover(); r != nil {
			res.OK = false
			res.Err = fmt.Errorf("stage %s panicked: %v", s.Kind, r)
		}
		res.Duration = time.Since(start)
		outcome := "ok"
		if !res.OK {
			outcome = "failed"
			log.Printf("[%s] stage failed after %s: %v", s.Kind, res.Duration.Round(time.Millisecond), res.Err)
		} else {
			log.Printf("[%s] stage finished in %s (%d chars)", s.Kind, res.Duration.Round(time.Millisecond), len(res.Raw))
		}
		metrics.StageDuration.WithLabelValues(string(s.Kind), outcome).Observe(res.Duration.Seconds())
	}()

	var toolData string
	if s.Tool != nil {
		toolData = s.Tool(ctx)
	}

	out, err := e.gen.Generate(ctx, llm.Request{
		System: s.System,
		Prompt: s.Prompt(toolData, upstream),
		JSON:   s.JSON,
	})
	if err != nil {
		res.Err = err
		return res
	}
	if strings.TrimSpace(out) == "" {
		res.Err = llm.ErrEmptyResponse
		return res
	}
	res.Raw = out
	res.OK = true
	return res
}

func validateOrder(stages []Stage) error {
	seen := make(map[StageKind]bool, len(stages))
	for _, s := range stages {
		if seen[s.Kind] {
			return fmt.Errorf("duplicate stage %s", s.Kind)
		}
		if s.Prompt == nil {
			return fmt.Errorf("stage %s has no prompt", s.Kind)
		}
		for _, dep := range s.DependsOn {
			if !seen[dep] {
				return fmt.Errorf("stage %s depends on %s, which is not scheduled before it", s.Kind, dep)
			}
		}
		seen[s.Kind] = true
	}
	return nil
}
