package generate

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"llm-quiz/config"
	"llm-quiz/pkg/logger"
)

// Batcher runs the quota-satisfaction generation loop: chunks are partitioned
// into document groups, each round shuffles the group order, and every
// (group, subtopic) pair gets at most one model call covering all question
// types that still need output. The loop is best-effort; after MaxRetries
// rounds it returns whatever was collected, and a shortfall is a normal
// outcome for the caller to report, not an error.
type Batcher struct {
	Embedder   Embedder
	Client     ModelClient
	BatchSize  int
	MaxRetries int
	Margin     int
	TopK       int

	// Rand controls the per-round group shuffle. Tests pin it to a fixed
	// seed for reproducible runs.
	Rand *rand.Rand
}

// NewBatcher builds a Batcher with the configured knobs and the default
// embedding and model clients.
func NewBatcher() *Batcher {
	gen := config.Cfg.Generation
	return &Batcher{
		Embedder:   OpenAIEmbedder{},
		Client:     NewHTTPModelClient(),
		BatchSize:  gen.BatchSize,
		MaxRetries: gen.MaxRetries,
		Margin:     gen.Margin,
		TopK:       gen.TopK,
		Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateBatch drives the loop over the flattened chunk sequence until every
// (subtopic, type) quota plus margin is met or MaxRetries rounds have run.
// Cancellation of ctx is honored between group iterations and returns what
// has been collected so far. An empty chunk sequence is the one fatal input
// error: nothing can be generated from it.
func (b *Batcher) GenerateBatch(ctx context.Context, chunks []string, quotas Quotas) (*Result, error) {
	if len(chunks) == 0 {
		return nil, errors.New("no source content to generate from")
	}
	if len(quotas) == 0 {
		return nil, errors.New("no question quotas requested")
	}

	batchSize := b.BatchSize
	if batchSize <= 0 {
		batchSize = 8
	}
	maxRetries := b.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 6
	}

	groups := partition(chunks, batchSize)
	result := NewResult(quotas)

	subtopics := make([]string, 0, len(quotas))
	for sub := range quotas {
		subtopics = append(subtopics, sub)
	}
	sort.Strings(subtopics)

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		if result.satisfied(quotas, b.Margin) {
			break
		}
		logger.Info("%v: attempt %d/%d over %d groups", config.ModuleGenerate, attempt+1, maxRetries, len(groups))

		// Shuffle the group order only; chunk order inside a group stays
		// intact so each group keeps its internal coherence.
		if b.Rand != nil {
			b.Rand.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}

		for _, gi := range order {
			select {
			case <-ctx.Done():
				logger.Warn("%v: stop requested, returning collected results", config.ModuleGenerate)
				result.finalize(quotas)
				return result, nil
			default:
			}
			b.runGroup(ctx, groups[gi], subtopics, quotas, result)
		}
	}

	result.finalize(quotas)
	b.logOutcome(quotas, result)
	return result, nil
}

// runGroup issues at most one model call per subtopic against one group. The
// group index is built lazily so rounds where every subtopic is already
// satisfied cost nothing.
func (b *Batcher) runGroup(ctx context.Context, group []string, subtopics []string, quotas Quotas, result *Result) {
	var idx *groupIndex

	for _, sub := range subtopics {
		remaining := make(map[QuestionType]int, len(quotas[sub]))
		outstanding := make([]QuestionType, 0, len(quotas[sub]))
		for _, qt := range AllTypes {
			target, ok := quotas[sub][qt]
			if !ok {
				continue
			}
			rem := target + b.Margin - result.collected(sub, qt)
			if rem < 0 {
				rem = 0
			}
			if rem > 0 {
				remaining[qt] = rem
				outstanding = append(outstanding, qt)
			}
		}
		if len(outstanding) == 0 {
			logger.Debug("%v: subtopic %q fully satisfied, skipping", config.ModuleGenerate, sub)
			continue
		}

		if idx == nil {
			built, err := buildGroupIndex(ctx, b.Embedder, group)
			if err != nil {
				// The whole group is unusable this round; other groups
				// still get their turn.
				logger.Error(err, "%v: group index build failed, skipping group this round", config.ModuleGenerate)
				return
			}
			idx = built
		}

		prompt := BuildPrompt(remaining)
		hits, err := idx.search(ctx, b.Embedder, prompt, b.TopK)
		if err != nil {
			logger.Error(err, "%v: context retrieval failed for subtopic %q", config.ModuleGenerate, sub)
			continue
		}
		contextText := strings.Join(hits, "\n")

		response, err := b.Client.Complete(ctx, prompt, contextText)
		if err != nil {
			logger.Error(err, "%v: model call failed for subtopic %q, zero contribution this round", config.ModuleGenerate, sub)
			continue
		}

		rawQ, rawA := ParseResponse(response, outstanding)
		validQ, validA := PostProcess(rawQ, rawA)
		for _, qt := range outstanding {
			result.apply(sub, qt, remaining[qt], validQ[qt], validA[qt])
		}
	}
}

func (b *Batcher) logOutcome(quotas Quotas, result *Result) {
	for sub, types := range quotas {
		for qt, target := range types {
			got := result.collected(sub, qt)
			logger.Info("%v: subtopic %q type %q collected %d/%d (extras %d)",
				config.ModuleGenerate, sub, qt, got, target, len(result.Extras[sub][qt]))
			if got < target {
				logger.Warn("%v: quota shortfall for subtopic %q type %q: %d of %d",
					config.ModuleGenerate, sub, qt, got, target)
			}
		}
	}
}

func partition(chunks []string, size int) [][]string {
	groups := make([][]string, 0, (len(chunks)+size-1)/size)
	for i := 0; i < len(chunks); i += size {
		j := i + size
		if j > len(chunks) {
			j = len(chunks)
		}
		groups = append(groups, chunks[i:j])
	}
	return groups
}
