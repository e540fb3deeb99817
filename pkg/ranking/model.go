package ranking

import "next-action-be/pkg/feature"

// Candidate is one scoring row: the request's feature vector with one
// catalog action attached. Ephemeral, built only for a single batch.
type Candidate struct {
	Features        feature.Vector
	CandidateAction string
}

// Model scores a whole candidate batch in ONE call. Batching is part of
// the contract: categorical encoding must see all rows of an inference
// together, per-candidate calls are not equivalent.
//
// Implementations must define behavior for categorical values outside
// their training vocabulary (see xgb.UnseenPolicy); silent undefined
// behavior is not acceptable.
type Model interface {
	Score(batch []Candidate) ([]float64, error)
}
