package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"mood-chat/contract"
	"strings"
	"sync"
)

const keywordDir = "keywords"

// Orchestrator prepares what the chat core needs before serving and owns the
// supervision of the long-running workers. It contains no chat rules.
type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	supervisor contract.ISupervisor
	keywords   contract.IKeywordRepository
	loader     *KeywordLoader
	done       chan struct{}
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	keywords contract.IKeywordRepository, loader *KeywordLoader) *Orchestrator {
	return &Orchestrator{
		log:        log,
		supervisor: supervisor,
		keywords:   keywords,
		loader:     loader,
	}
}

// PrepareKeywords returns the crisis phrase list from the repository. An empty
// repository is seeded with the embedded word files first, so an operator's
// edits survive restarts and a fresh install still has a list.
func (o *Orchestrator) PrepareKeywords() ([]string, error) {
	phrases, err := o.keywords.List()
	if err != nil {
		return nil, fmt.Errorf("listing keywords: %w", err)
	}
	if len(phrases) > 0 {
		o.log.Info(fmt.Sprintf("%d crisis phrases loaded from storage", len(phrases)))
		return phrases, nil
	}

	data, err := o.loader.LoadAll(keywordDir)
	if err != nil {
		return nil, err
	}
	o.log.Info(fmt.Sprintf("%d keyword files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))

	if err := o.keywords.Add(data.Phrases...); err != nil {
		return nil, fmt.Errorf("seeding keywords: %w", err)
	}
	o.log.Info(fmt.Sprintf("%d unique crisis phrases seeded", len(data.Phrases)))
	return o.keywords.List()
}

func (o *Orchestrator) Add(workers ...contract.Worker) *Orchestrator {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.supervisor.Add(workers...)
	return o
}

// Start runs the supervisor in the background. Stop waits for it.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done != nil {
		o.log.Warn("Orchestrator already started")
		return
	}
	o.done = make(chan struct{})

	o.log.Info("Starting orchestrator and all supervised workers")
	go func(done chan struct{}) {
		defer close(done)
		o.supervisor.Run(ctx)
	}(o.done)
}

// Stop cancels the supervised workers and waits until they returned.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()

	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	if done != nil {
		<-done
	}
	o.log.Debug("Orchestrator stopped")
}
