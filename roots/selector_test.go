package roots_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/semaphore-paymaster/go-paymaster/contract"
	"github.com/semaphore-paymaster/go-paymaster/indexer"
	"github.com/semaphore-paymaster/go-paymaster/roots"
	mock_roots "github.com/semaphore-paymaster/go-paymaster/roots/mock"
)

var (
	testPoolID = big.NewInt(1)
	testRoot   = big.NewInt(123456789)
	errChain   = errors.New("rpc unavailable")
)

func TestSelectContractSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chain := mock_roots.NewMockChainReader(ctrl)
	chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(12), true, nil)

	selector := roots.NewSelector(chain, nil)
	sel, err := selector.Select(context.Background(), testPoolID, testRoot)
	require.NoError(t, err)
	require.Equal(t, roots.Selection{Index: 12, Strategy: roots.StrategyContractSearch, Exact: true}, sel)
}

func TestSelectFallsBackToContractCurrent(t *testing.T) {
	tests := []struct {
		name      string
		search    func(chain *mock_roots.MockChainReader)
		wantExact bool
	}{
		{
			name: "search errors",
			search: func(chain *mock_roots.MockChainReader) {
				chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(0), false, errChain)
			},
			wantExact: true,
		},
		{
			name: "search misses",
			search: func(chain *mock_roots.MockChainReader) {
				chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(0), false, nil)
			},
			wantExact: true,
		},
		{
			name: "search returns out-of-range index",
			search: func(chain *mock_roots.MockChainReader) {
				chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(64), true, nil)
			},
			wantExact: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			chain := mock_roots.NewMockChainReader(ctrl)
			tt.search(chain)
			chain.EXPECT().GetPoolRootHistoryInfo(gomock.Any(), testPoolID).Return(&contract.RootHistoryInfo{
				CurrentIndex: 7,
				CurrentRoot:  testRoot,
				Size:         64,
			}, nil)

			selector := roots.NewSelector(chain, nil)
			sel, err := selector.Select(context.Background(), testPoolID, testRoot)
			require.NoError(t, err)
			require.Equal(t, roots.StrategyContractCurrent, sel.Strategy)
			require.Equal(t, uint32(7), sel.Index)
			require.Equal(t, tt.wantExact, sel.Exact)
		})
	}
}

func TestSelectContractCurrentInexactRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chain := mock_roots.NewMockChainReader(ctrl)
	chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(0), false, nil)
	chain.EXPECT().GetPoolRootHistoryInfo(gomock.Any(), testPoolID).Return(&contract.RootHistoryInfo{
		CurrentIndex: 3,
		CurrentRoot:  big.NewInt(55555),
		Size:         64,
	}, nil)

	selector := roots.NewSelector(chain, nil)
	sel, err := selector.Select(context.Background(), testPoolID, testRoot)
	require.NoError(t, err)
	require.Equal(t, roots.StrategyContractCurrent, sel.Strategy)
	require.False(t, sel.Exact)
}

func TestSelectFallsBackToIndexer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chain := mock_roots.NewMockChainReader(ctrl)
	chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(0), false, errChain)
	chain.EXPECT().GetPoolRootHistoryInfo(gomock.Any(), testPoolID).Return(nil, errChain)

	finder := mock_roots.NewMockRootFinder(ctrl)
	finder.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(&indexer.RootEntry{Index: 21, Root: testRoot}, nil)

	selector := roots.NewSelector(chain, finder)
	sel, err := selector.Select(context.Background(), testPoolID, testRoot)
	require.NoError(t, err)
	require.Equal(t, roots.Selection{Index: 21, Strategy: roots.StrategyIndexer, Exact: true}, sel)
}

func TestSelectUltimateFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chain := mock_roots.NewMockChainReader(ctrl)
	chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(0), false, errChain)
	chain.EXPECT().GetPoolRootHistoryInfo(gomock.Any(), testPoolID).Return(nil, errChain)

	finder := mock_roots.NewMockRootFinder(ctrl)
	finder.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(nil, nil)

	selector := roots.NewSelector(chain, finder)
	sel, err := selector.Select(context.Background(), testPoolID, testRoot)
	require.NoError(t, err)
	require.Equal(t, roots.Selection{Index: 0, Strategy: roots.StrategyFallback, Exact: false}, sel)
}

func TestSelectWithoutTargetRootSkipsExactStrategies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chain := mock_roots.NewMockChainReader(ctrl)
	chain.EXPECT().GetPoolRootHistoryInfo(gomock.Any(), testPoolID).Return(&contract.RootHistoryInfo{
		CurrentIndex: 2,
		CurrentRoot:  testRoot,
		Size:         64,
	}, nil)

	selector := roots.NewSelector(chain, nil)
	sel, err := selector.Select(context.Background(), testPoolID, nil)
	require.NoError(t, err)
	require.Equal(t, roots.Selection{Index: 2, Strategy: roots.StrategyContractCurrent, Exact: false}, sel)
}

func TestSelectHonorsCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chain := mock_roots.NewMockChainReader(ctrl)
	chain.EXPECT().FindRootIndex(gomock.Any(), testPoolID, testRoot).Return(uint32(0), false, errChain)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	selector := roots.NewSelector(chain, nil)
	_, err := selector.Select(ctx, testPoolID, testRoot)
	require.ErrorIs(t, err, context.Canceled)
}
