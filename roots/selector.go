// Package roots picks the merkle root history index embedded in
// paymaster data. Strategies are tried in order and every failure falls
// through to the next; only exhaustion yields the best-effort fallback.
package roots

import (
	"context"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/semaphore-paymaster/go-paymaster/codec"
	"github.com/semaphore-paymaster/go-paymaster/contract"
	"github.com/semaphore-paymaster/go-paymaster/indexer"
	"github.com/semaphore-paymaster/go-paymaster/logger"
)

// Strategy identifies which lookup produced a selection.
type Strategy string

const (
	// StrategyContractSearch found the exact root via findRootIndex.
	StrategyContractSearch Strategy = "contract-search"
	// StrategyContractCurrent used the contract's current ring pointer.
	StrategyContractCurrent Strategy = "contract-current"
	// StrategyIndexer found the root through the off-chain indexer.
	StrategyIndexer Strategy = "indexer"
	// StrategyFallback is the best-effort default of index 0.
	StrategyFallback Strategy = "fallback"
)

// Selection is a chosen ring-buffer index tagged with its provenance.
// Exact is true only when the stored root was confirmed to equal the
// target; fallback selections may still fail verification on-chain.
type Selection struct {
	Index    uint32
	Strategy Strategy
	Exact    bool
}

//go:generate mockgen -destination=mock/chainReaderMock.go . ChainReader

// ChainReader is the contract read surface the selector needs. It is
// satisfied by *contract.Caller.
type ChainReader interface {
	FindRootIndex(ctx context.Context, poolID, root *big.Int) (uint32, bool, error)
	GetPoolRootHistoryInfo(ctx context.Context, poolID *big.Int) (*contract.RootHistoryInfo, error)
}

//go:generate mockgen -destination=mock/rootFinderMock.go . RootFinder

// RootFinder is the indexer fallback oracle. It is satisfied by
// indexer.Client implementations.
type RootFinder interface {
	FindRootIndex(ctx context.Context, poolID, root *big.Int) (*indexer.RootEntry, error)
}

// Selector resolves root history indices for one paymaster deployment.
type Selector struct {
	chain ChainReader
	idx   RootFinder
	log   zerolog.Logger
}

// NewSelector creates a selector. idx may be nil when no indexer is
// configured; the indexer strategy is then skipped.
func NewSelector(chain ChainReader, idx RootFinder) *Selector {
	return &Selector{
		chain: chain,
		idx:   idx,
		log:   logger.Logger().With().Str("component", "root-selector").Logger(),
	}
}

// Select resolves the ring index to embed for targetRoot. It never
// fails on strategy errors; the only returned error is context
// cancellation. A nil or zero targetRoot skips the exact-match
// strategies.
func (s *Selector) Select(ctx context.Context, poolID, targetRoot *big.Int) (Selection, error) {
	wantExact := targetRoot != nil && targetRoot.Sign() > 0

	if wantExact {
		index, found, err := s.chain.FindRootIndex(ctx, poolID, targetRoot)
		switch {
		case err != nil:
			// Older deployments lack findRootIndex entirely; a revert
			// lands here and the chain continues.
			s.log.Debug().Err(err).Msg("contract-search unavailable")
		case found && index < codec.RootHistorySize:
			return Selection{Index: index, Strategy: StrategyContractSearch, Exact: true}, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}

	info, err := s.chain.GetPoolRootHistoryInfo(ctx, poolID)
	if err != nil {
		s.log.Debug().Err(err).Msg("contract-current failed")
	} else if info != nil && info.CurrentIndex < codec.RootHistorySize {
		exact := wantExact && info.CurrentRoot != nil && info.CurrentRoot.Cmp(targetRoot) == 0
		return Selection{Index: info.CurrentIndex, Strategy: StrategyContractCurrent, Exact: exact}, nil
	}
	if err = ctx.Err(); err != nil {
		return Selection{}, err
	}

	if s.idx != nil && wantExact {
		entry, err := s.idx.FindRootIndex(ctx, poolID, targetRoot)
		if err != nil {
			s.log.Debug().Err(err).Msg("indexer lookup failed")
		} else if entry != nil && entry.Index < codec.RootHistorySize {
			return Selection{Index: entry.Index, Strategy: StrategyIndexer, Exact: true}, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}

	s.log.Debug().Str("pool", poolID.String()).Msg("all root strategies exhausted, assuming index 0")
	return Selection{Index: 0, Strategy: StrategyFallback, Exact: false}, nil
}
