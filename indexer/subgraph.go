package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/semaphore-paymaster/go-paymaster/cache"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultRootCacheSize  = 1024
	defaultRootCacheTTL   = 5 * time.Minute

	// pageSize bounds one members query; pools larger than this are
	// fetched in pages.
	pageSize = 1000
)

const membersQuery = `query PoolMembers($poolId: BigInt!, $first: Int!, $skip: Int!) {
  members(where: {pool: $poolId}, orderBy: memberIndex, orderDirection: asc, first: $first, skip: $skip) {
    identityCommitment
    memberIndex
  }
}`

const rootIndexQuery = `query RootIndex($poolId: BigInt!, $root: BigInt!) {
  rootHistoryEntries(where: {pool: $poolId, root: $root}, first: 1) {
    index
    root
  }
}`

// SubgraphClient implements Client over a GraphQL subgraph endpoint.
// Root lookups are cached; member lists are fetched fresh every call
// since the proof's leaf layout must track on-chain insertions.
type SubgraphClient struct {
	endpoint string
	client   *http.Client
	roots    cache.Cache[RootEntry]
}

// SubgraphOption configures a SubgraphClient.
type SubgraphOption func(*SubgraphClient)

// WithHTTPClient overrides the HTTP client used for queries.
func WithHTTPClient(c *http.Client) SubgraphOption {
	return func(s *SubgraphClient) {
		s.client = c
	}
}

// WithRootCache overrides the root lookup cache.
func WithRootCache(c cache.Cache[RootEntry]) SubgraphOption {
	return func(s *SubgraphClient) {
		s.roots = c
	}
}

// NewSubgraphClient creates a client for the subgraph at endpoint.
func NewSubgraphClient(endpoint string, opts ...SubgraphOption) *SubgraphClient {
	s := &SubgraphClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultRequestTimeout},
		roots:    cache.NewInMemory[RootEntry](defaultRootCacheSize, defaultRootCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

type gqlMember struct {
	IdentityCommitment string `json:"identityCommitment"`
	MemberIndex        string `json:"memberIndex"`
}

type gqlRootEntry struct {
	Index string `json:"index"`
	Root  string `json:"root"`
}

// GetPoolMembers returns the pool's members ordered by insertion index.
func (s *SubgraphClient) GetPoolMembers(ctx context.Context, poolID *big.Int) ([]Member, error) {
	if poolID == nil {
		return nil, errors.New("pool id is nil")
	}

	var members []Member
	for skip := 0; ; skip += pageSize {
		var out struct {
			Members []gqlMember `json:"members"`
		}
		err := s.query(ctx, membersQuery, map[string]interface{}{
			"poolId": poolID.String(),
			"first":  pageSize,
			"skip":   skip,
		}, &out)
		if err != nil {
			return nil, errors.Wrap(err, "fetching pool members")
		}
		for _, m := range out.Members {
			commitment, ok := new(big.Int).SetString(m.IdentityCommitment, 10)
			if !ok {
				return nil, errors.Errorf("invalid identity commitment %q", m.IdentityCommitment)
			}
			index, err := strconv.ParseUint(m.MemberIndex, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid member index %q", m.MemberIndex)
			}
			members = append(members, Member{IdentityCommitment: commitment, Index: index})
		}
		if len(out.Members) < pageSize {
			break
		}
	}

	// The subgraph already orders by memberIndex; keep the guarantee
	// even if a deployment misbehaves.
	sort.Slice(members, func(i, j int) bool { return members[i].Index < members[j].Index })
	return members, nil
}

// FindRootIndex looks up the ring-buffer index recorded for root.
func (s *SubgraphClient) FindRootIndex(ctx context.Context, poolID, root *big.Int) (*RootEntry, error) {
	if poolID == nil || root == nil {
		return nil, errors.New("pool id and root are required")
	}
	key := fmt.Sprintf("%s-%s", poolID.String(), root.String())
	if cached, ok := s.roots.Get(key); ok {
		entry := cached
		return &entry, nil
	}

	var out struct {
		Entries []gqlRootEntry `json:"rootHistoryEntries"`
	}
	err := s.query(ctx, rootIndexQuery, map[string]interface{}{
		"poolId": poolID.String(),
		"root":   root.String(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "looking up root index")
	}
	if len(out.Entries) == 0 {
		return nil, nil
	}

	index, err := strconv.ParseUint(out.Entries[0].Index, 10, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid root index %q", out.Entries[0].Index)
	}
	parsedRoot, ok := new(big.Int).SetString(out.Entries[0].Root, 10)
	if !ok {
		return nil, errors.Errorf("invalid root %q", out.Entries[0].Root)
	}
	entry := RootEntry{Index: uint32(index), Root: parsedRoot}
	s.roots.Set(key, entry)
	return &entry, nil
}

func (s *SubgraphClient) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("subgraph returned status %d", resp.StatusCode)
	}

	var envelope gqlResponse
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrap(err, "decoding subgraph response")
	}
	if len(envelope.Errors) > 0 {
		return errors.Errorf("subgraph error: %s", envelope.Errors[0].Message)
	}
	return json.Unmarshal(envelope.Data, out)
}
