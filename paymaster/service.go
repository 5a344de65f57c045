package paymaster

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/semaphore-paymaster/go-paymaster/codec"
	"github.com/semaphore-paymaster/go-paymaster/indexer"
	"github.com/semaphore-paymaster/go-paymaster/logger"
	"github.com/semaphore-paymaster/go-paymaster/roots"
	"github.com/semaphore-paymaster/go-paymaster/semaphore"
	"github.com/semaphore-paymaster/go-paymaster/types"
)

// MessageHasher computes the proof message for an operation via the
// contract's getMessageHash read. It is satisfied by *contract.Caller.
type MessageHasher interface {
	GetMessageHash(ctx context.Context, userOp *types.PackedUserOperation) (*big.Int, error)
}

// MemberSource fetches pool members in leaf order. It is satisfied by
// indexer.Client implementations.
type MemberSource interface {
	GetPoolMembers(ctx context.Context, poolID *big.Int) ([]indexer.Member, error)
}

// RootSelector resolves the root history index. It is satisfied by
// *roots.Selector.
type RootSelector interface {
	Select(ctx context.Context, poolID, targetRoot *big.Int) (roots.Selection, error)
}

// ProofGenerator produces membership proofs. It is satisfied by
// *semaphore.Engine.
type ProofGenerator interface {
	GenerateProof(ctx context.Context, material []byte, poolMembers []*big.Int, messageHash, poolID *big.Int) (*semaphore.ProofResult, error)
}

// Service implements the paymaster data operations. It is stateless and
// request-scoped: concurrent calls are fully independent.
type Service struct {
	chain    MessageHasher
	members  MemberSource
	selector RootSelector
	engine   ProofGenerator
	sponsor  *SponsorInfo
	log      zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSponsor attaches sponsor info to stub data results.
func WithSponsor(sponsor SponsorInfo) Option {
	return func(s *Service) {
		s.sponsor = &sponsor
	}
}

// WithLogger overrides the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// NewService wires the orchestrator from its collaborators.
func NewService(chain MessageHasher, members MemberSource, selector RootSelector, engine ProofGenerator, opts ...Option) *Service {
	s := &Service{
		chain:    chain,
		members:  members,
		selector: selector,
		engine:   engine,
		log:      logger.Logger().With().Str("component", "paymaster").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPaymasterStubData returns placeholder paymaster data for gas
// estimation: a dummy proof of minimum depth with zeroed
// nullifier/message/points, scoped to the context's pool, serialized in
// estimation mode against root index 0. It performs no chain calls and
// its result must never be submitted for execution.
func (s *Service) GetPaymasterStubData(ctx context.Context, params *Params) (*StubDataResult, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	pctx, err := codec.ParsePaymasterContext(params.Context)
	if err != nil {
		return nil, err
	}

	dummy := &types.PoolMembershipProof{
		MerkleTreeDepth: types.MinTreeDepth,
		MerkleTreeRoot:  new(big.Int),
		Nullifier:       new(big.Int),
		Message:         new(big.Int),
		Scope:           new(big.Int).Set(pctx.PoolID),
	}
	for i := range dummy.Points {
		dummy.Points[i] = new(big.Int)
	}

	data, err := codec.GeneratePaymasterData(codec.ModeGasEstimation, pctx.PoolID, dummy, 0)
	if err != nil {
		return nil, errors.Wrap(err, "serializing stub data")
	}
	return &StubDataResult{
		Paymaster:               pctx.PaymasterAddress,
		PaymasterData:           data,
		PaymasterPostOpGasLimit: big.NewInt(PostOpGasLimit),
		Sponsor:                 s.sponsor,
		IsFinal:                 false,
	}, nil
}

// GetPaymasterData returns submission-ready paymaster data carrying a
// real membership proof. Every stage failure is surfaced with the stage
// that produced it; the result is never downgraded to stub data.
func (s *Service) GetPaymasterData(ctx context.Context, params *Params) (*DataResult, error) {
	if params != nil && params.UserOperation != nil && params.UserOperation.HasInitCode() {
		return nil, ErrUnsupportedOperation
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	pctx, err := codec.ParsePaymasterContext(params.Context)
	if err != nil {
		return nil, err
	}
	if len(pctx.IdentityBytes) == 0 {
		return nil, ErrMissingIdentity
	}

	opID := uuid.NewString()
	log := s.log.With().Str("op", opID).Str("pool", pctx.PoolID.String()).Logger()

	messageHash, err := s.chain.GetMessageHash(ctx, params.UserOperation)
	if err != nil {
		return nil, errors.Wrap(err, "computing message hash")
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	members, err := s.members.GetPoolMembers(ctx, pctx.PoolID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching pool members")
	}
	commitments := make([]*big.Int, len(members))
	for i, m := range members {
		commitments[i] = m.IdentityCommitment
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	group, err := semaphore.NewGroup(commitments)
	if err != nil {
		return nil, errors.Wrap(err, "building group snapshot")
	}
	targetRoot, err := group.Root()
	if err != nil {
		return nil, errors.Wrap(err, "computing group root")
	}

	selection, err := s.selector.Select(ctx, pctx.PoolID, targetRoot)
	if err != nil {
		return nil, errors.Wrap(err, "selecting root index")
	}
	log.Debug().
		Uint32("index", selection.Index).
		Str("strategy", string(selection.Strategy)).
		Bool("exact", selection.Exact).
		Int("members", len(members)).
		Msg("root index selected")

	result, err := s.engine.GenerateProof(ctx, pctx.IdentityBytes, commitments, messageHash, pctx.PoolID)
	if err != nil {
		return nil, errors.Wrap(err, "generating membership proof")
	}

	data, err := codec.GeneratePaymasterData(codec.ModeValidation, pctx.PoolID, result.Proof, selection.Index)
	if err != nil {
		return nil, errors.Wrap(err, "serializing paymaster data")
	}
	log.Info().Int("bytes", len(data)).Msg("paymaster data ready")

	return &DataResult{
		Paymaster:     pctx.PaymasterAddress,
		PaymasterData: data,
	}, nil
}
