package contract_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/common"

	"github.com/semaphore-paymaster/go-paymaster/contract"
	mock_contract "github.com/semaphore-paymaster/go-paymaster/contract/mock"
	"github.com/semaphore-paymaster/go-paymaster/types"
)

var testAddress = common.HexToAddress("0x8817340E0a3435E06254f2ed411E6418cd070D6F")

func testUserOp() *types.PackedUserOperation {
	return &types.PackedUserOperation{
		Sender:             common.HexToAddress("0x36615Cf349d7F6344891B1e7CA7C72883F5dc049"),
		Nonce:              big.NewInt(7),
		CallData:           []byte{0x01, 0x02},
		PreVerificationGas: big.NewInt(50000),
		Signature:          []byte{0xff},
	}
}

func packOutputs(t *testing.T, method string, values ...interface{}) []byte {
	t.Helper()
	out, err := contract.PaymasterABI.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return out
}

func TestGetMessageHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := big.NewInt(0xabc)
	mbc := mock_contract.NewMockBlockchainCaller(ctrl)
	mbc.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(packOutputs(t, "getMessageHash", want), nil)

	caller := contract.NewCaller(mbc, testAddress)
	got, err := caller.GetMessageHash(context.Background(), testUserOp())
	require.NoError(t, err)
	require.Zero(t, want.Cmp(got))
}

func TestGetMessageHashNilOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := contract.NewCaller(mock_contract.NewMockBlockchainCaller(ctrl), testAddress)
	_, err := caller.GetMessageHash(context.Background(), nil)
	require.Error(t, err)
}

func TestFindRootIndex(t *testing.T) {
	tests := []struct {
		name      string
		ret       []byte
		callErr   error
		wantIndex uint32
		wantFound bool
		wantErr   bool
	}{
		{
			name:      "found",
			wantIndex: 42,
			wantFound: true,
		},
		{
			name:      "not found",
			wantIndex: 0,
			wantFound: false,
		},
		{
			name:    "call reverts",
			callErr: errors.New("execution reverted"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mbc := mock_contract.NewMockBlockchainCaller(ctrl)
			if tt.callErr != nil {
				mbc.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, tt.callErr)
			} else {
				ret := packOutputs(t, "findRootIndex", tt.wantIndex, tt.wantFound)
				mbc.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return(ret, nil)
			}

			caller := contract.NewCaller(mbc, testAddress)
			index, found, err := caller.FindRootIndex(context.Background(), big.NewInt(1), big.NewInt(12345))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantIndex, index)
			require.Equal(t, tt.wantFound, found)
		})
	}
}

func TestGetPoolRootHistoryInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := big.NewInt(987654321)
	mbc := mock_contract.NewMockBlockchainCaller(ctrl)
	mbc.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(packOutputs(t, "getPoolRootHistoryInfo", uint32(17), root, uint32(64)), nil)

	caller := contract.NewCaller(mbc, testAddress)
	info, err := caller.GetPoolRootHistoryInfo(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, uint32(17), info.CurrentIndex)
	require.Zero(t, root.Cmp(info.CurrentRoot))
	require.Equal(t, uint32(64), info.Size)
}

func TestCallerRejectsGarbageReturnData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mbc := mock_contract.NewMockBlockchainCaller(ctrl)
	mbc.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return([]byte{0x01, 0x02, 0x03}, nil)

	caller := contract.NewCaller(mbc, testAddress)
	_, _, err := caller.FindRootIndex(context.Background(), big.NewInt(1), big.NewInt(2))
	require.Error(t, err)
}
