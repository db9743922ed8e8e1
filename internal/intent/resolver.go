package intent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/models"
)

// Arbitration thresholds, distinct from the display tiers in action.go.
const (
	trustLocalThreshold = 80 // local matcher wins outright
	suppressThreshold   = 50 // below this nothing is actionable
)

// DefaultRemoteTimeout bounds the gray-zone classifier call independently of
// whatever deadline the caller carries.
const DefaultRemoteTimeout = 5 * time.Second

// Classifier is the remote semantic classifier consulted in the gray zone.
// Implementations must validate their output against the closed category set;
// the resolver additionally degrades any error or invalid result to
// unknown/0 and never propagates a failure.
type Classifier interface {
	Classify(ctx context.Context, message string, data models.Context) (Classification, error)
}

// Resolver runs the full pipeline: local pattern matching, entity extraction,
// contextual linking, gray-zone remote arbitration, and card building. It is
// stateless across calls and safe for concurrent use.
type Resolver struct {
	classifier Classifier
	timeout    time.Duration
	logger     *zap.Logger
}

// NewResolver builds a resolver. classifier may be nil, in which case the
// gray zone always falls back to the local result. A non-positive timeout
// falls back to DefaultRemoteTimeout.
func NewResolver(classifier Classifier, timeout time.Duration, logger *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		classifier: classifier,
		timeout:    timeout,
		logger:     logger,
	}
}

// Resolve turns one message plus a context snapshot into a Result.
//
// Confidence bands: >= 80 trusts the local matcher, 50-79 consults the remote
// classifier and keeps whichever side is more confident, < 50 suppresses the
// message entirely without running extraction.
func (r *Resolver) Resolve(ctx context.Context, message string, data models.Context) Result {
	local := DetectIntentType(message)

	if local.Type == CategoryUnknown || local.Confidence < suppressThreshold {
		return Result{
			IntentType: CategoryUnknown,
			Entities:   Entities{},
			Links:      []ContextualLink{},
			Action:     nil,
			Confidence: 0,
			Source:     SourceNone,
		}
	}

	entities := ExtractEntities(message, data)
	links := FindContextualLinks(entities, data)

	if local.Confidence >= trustLocalThreshold {
		return Result{
			IntentType: local.Type,
			Entities:   entities,
			Links:      links,
			Action:     BuildActionCard(local.Type, entities, links, local.Confidence),
			Confidence: local.Confidence,
			Source:     SourceLocal,
		}
	}

	remote := r.classifyRemote(ctx, message, data)
	if remote.Confidence > local.Confidence {
		// Entity extraction is category-independent, so the earlier pass is
		// reused; only the card is built under the remote type.
		return Result{
			IntentType: remote.Type,
			Entities:   entities,
			Links:      links,
			Action:     BuildActionCard(remote.Type, entities, links, remote.Confidence),
			Confidence: remote.Confidence,
			Source:     SourceRemote,
		}
	}

	return Result{
		IntentType: local.Type,
		Entities:   entities,
		Links:      links,
		Action:     BuildActionCard(local.Type, entities, links, local.Confidence),
		Confidence: local.Confidence,
		Source:     SourceLocal,
	}
}

// classifyRemote wraps the remote call with a bounded timeout and downgrades
// every failure mode (no classifier, transport error, invalid category,
// out-of-range confidence) to unknown/0.
func (r *Resolver) classifyRemote(ctx context.Context, message string, data models.Context) Classification {
	unknown := Classification{Type: CategoryUnknown, Confidence: 0}
	if r.classifier == nil {
		return unknown
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.classifier.Classify(callCtx, message, data)
	if err != nil {
		r.logger.Warn("remote intent classification failed, keeping local result", zap.Error(err))
		return unknown
	}

	category, ok := ParseCategory(string(result.Type))
	if !ok {
		r.logger.Warn("remote classifier returned unrecognized category",
			zap.String("category", string(result.Type)))
		return unknown
	}
	if category == CategoryUnknown {
		return unknown
	}

	confidence := result.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return Classification{Type: category, Confidence: confidence}
}
