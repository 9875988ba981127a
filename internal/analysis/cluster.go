// Package analysis implements the transaction-graph forensics engine:
// address clustering, coinjoin and change-output scoring, bipartite graph
// projection, and peel-chain tracing and scoring.
package analysis

import (
	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// ClusterSet is a union-find partition over address identifiers. Membership
// grows through common-input-ownership unions only; change-output evidence
// is tracked separately and never merges partitions.
type ClusterSet struct {
	parent map[string]string
	order  []string
}

// NewClusterSet returns an empty partition.
func NewClusterSet() *ClusterSet {
	return &ClusterSet{parent: make(map[string]string)}
}

// Find returns the representative of addr's partition, creating a singleton
// for an unseen address. Paths are compressed on the way up.
func (s *ClusterSet) Find(addr string) string {
	if _, ok := s.parent[addr]; !ok {
		s.parent[addr] = addr
		s.order = append(s.order, addr)
		return addr
	}

	root := addr
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[addr] != root {
		s.parent[addr], addr = root, s.parent[addr]
	}
	return root
}

// Union merges the partitions holding a and b. Merging an already-merged
// pair is a no-op.
func (s *ClusterSet) Union(a, b string) {
	rootA := s.Find(a)
	rootB := s.Find(b)
	if rootA != rootB {
		s.parent[rootB] = rootA
	}
}

// UnionInputs applies the common-input-ownership heuristic to one
// transaction's input addresses: every known address is assumed co-owned
// with the first. Unknown (empty) addresses contribute nothing, and fewer
// than two known addresses leave the partition untouched.
func (s *ClusterSet) UnionInputs(addresses []string) {
	known := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if addr != "" {
			known = append(known, addr)
		}
	}
	if len(known) < 2 {
		return
	}
	for _, other := range known[1:] {
		s.Union(known[0], other)
	}
}

// Members returns the partition containing addr, members in first-seen
// order. Querying an unseen address yields its fresh singleton.
func (s *ClusterSet) Members(addr string) []string {
	root := s.Find(addr)
	members := make([]string, 0)
	for _, a := range s.order {
		if s.Find(a) == root {
			members = append(members, a)
		}
	}
	return members
}

// Groups returns every partition, groups and members both in first-seen
// order.
func (s *ClusterSet) Groups() []model.ClusterGroup {
	index := make(map[string]int)
	groups := make([]model.ClusterGroup, 0)
	for _, addr := range s.order {
		root := s.Find(addr)
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, model.ClusterGroup{Root: root})
		}
		groups[i].Members = append(groups[i].Members, addr)
	}
	return groups
}
