// Package local provides a deterministic, offline embedding implementation.
//
// It exists so a knowledge base can run with no embedding service at all:
// vectors come from a hashed bag-of-words model with stop-word removal and
// log-scaled term weights. Retrieval quality is well below a hosted model,
// but the contract (text in, fixed-length unit vector out) is identical.
package local
