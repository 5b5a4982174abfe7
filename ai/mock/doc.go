// Package mock provides test doubles for the ai package interfaces.
//
// MockEmbedder produces deterministic vectors by default and supports
// behavior injection through its public function fields, so tests can
// simulate embedding failures or fixed vectors without a network.
package mock
