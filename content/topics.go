package content

import (
	"sort"
	"strings"
)

// BlockchainTopics are the chains the site gives their own sections.
var BlockchainTopics = []string{
	"bitcoin", "ethereum", "solana", "cardano", "polkadot",
	"avalanche", "cosmos", "ripple", "tezos", "near",
}

// Subtopics are the cross-chain themes offered as filters.
var Subtopics = []string{
	"defi", "nfts", "dao", "gaming", "metaverse", "cryptography", "privacy",
	"security", "hacks", "legal", "regulation", "stablecoins",
	"interoperability", "scaling", "layer2", "mining", "staking",
	"governance", "identity", "market", "news", "technology", "economics",
}

// TopicCount is the number of items carrying a topic.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// TopicCounts tallies normalized topics across items, most used first and
// alphabetical among equals.
func TopicCounts(items []Item) []TopicCount {
	counts := make(map[string]int)
	for _, it := range items {
		seen := make(map[string]bool, len(it.Tags))
		for _, t := range it.Tags {
			t = normalizeTag(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}
	out := make([]TopicCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TopicCount{Topic: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

// ByTopic returns up to limit items tagged with topic. A limit <= 0 returns
// every match.
func ByTopic(items []Item, topic string, limit int) []Item {
	out := []Item{}
	for _, it := range items {
		if limit > 0 && len(out) == limit {
			break
		}
		if it.HasTag(topic) {
			out = append(out, it)
		}
	}
	return out
}

// Latest returns the first limit items of an already sorted collection.
func Latest(items []Item, limit int) []Item {
	if limit <= 0 || limit >= len(items) {
		return append([]Item{}, items...)
	}
	return append([]Item{}, items[:limit]...)
}

// IsBlockchainTopic reports whether topic is one of BlockchainTopics.
func IsBlockchainTopic(topic string) bool {
	topic = strings.ToLower(strings.TrimSpace(topic))
	for _, t := range BlockchainTopics {
		if t == topic {
			return true
		}
	}
	return false
}
